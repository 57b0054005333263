package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/deliveryqueue/internal/delivery/domain"
	"github.com/allisson/deliveryqueue/internal/metrics"
)

const metricsDomain = "delivery"

// deliveryUseCaseWithMetrics decorates DeliveryUseCase with metrics instrumentation.
type deliveryUseCaseWithMetrics struct {
	next    DeliveryUseCase
	metrics metrics.BusinessMetrics
}

// NewDeliveryUseCaseWithMetrics wraps a DeliveryUseCase with metrics recording.
func NewDeliveryUseCaseWithMetrics(useCase DeliveryUseCase, m metrics.BusinessMetrics) DeliveryUseCase {
	return &deliveryUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (d *deliveryUseCaseWithMetrics) Create(
	ctx context.Context,
	input CreateDeliveryInput,
) (*domain.Delivery, error) {
	start := time.Now()
	delivery, err := d.next.Create(ctx, input)
	metrics.Observe(ctx, d.metrics, metricsDomain, "delivery_create", start, err)
	return delivery, err
}

func (d *deliveryUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	start := time.Now()
	delivery, err := d.next.Get(ctx, id)
	metrics.Observe(ctx, d.metrics, metricsDomain, "delivery_get", start, err)
	return delivery, err
}

func (d *deliveryUseCaseWithMetrics) List(
	ctx context.Context,
	filter domain.ListFilter,
) ([]*domain.Delivery, error) {
	start := time.Now()
	deliveries, err := d.next.List(ctx, filter)
	metrics.Observe(ctx, d.metrics, metricsDomain, "delivery_list", start, err)
	return deliveries, err
}

func (d *deliveryUseCaseWithMetrics) ListBySlot(
	ctx context.Context,
	status domain.Status,
) ([]*domain.Delivery, error) {
	start := time.Now()
	deliveries, err := d.next.ListBySlot(ctx, status)
	metrics.Observe(ctx, d.metrics, metricsDomain, "delivery_list_slot", start, err)
	return deliveries, err
}

func (d *deliveryUseCaseWithMetrics) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateDeliveryInput,
) (*domain.Delivery, error) {
	start := time.Now()
	delivery, err := d.next.Update(ctx, id, input)
	metrics.Observe(ctx, d.metrics, metricsDomain, "delivery_update", start, err)
	return delivery, err
}

func (d *deliveryUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	start := time.Now()
	delivery, err := d.next.Delete(ctx, id)
	metrics.Observe(ctx, d.metrics, metricsDomain, "delivery_delete", start, err)
	return delivery, err
}

func (d *deliveryUseCaseWithMetrics) PromoteNext(ctx context.Context) (*domain.Delivery, error) {
	start := time.Now()
	delivery, err := d.next.PromoteNext(ctx)
	metrics.Observe(ctx, d.metrics, metricsDomain, "delivery_promote", start, err)
	return delivery, err
}
