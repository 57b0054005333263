package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/deliveryqueue/internal/catalog/domain"
	"github.com/allisson/deliveryqueue/internal/metrics"
)

const metricsDomain = "catalog"

// productUseCaseWithMetrics decorates ProductUseCase with metrics instrumentation.
type productUseCaseWithMetrics struct {
	next    ProductUseCase
	metrics metrics.BusinessMetrics
}

// NewProductUseCaseWithMetrics wraps a ProductUseCase with metrics recording.
func NewProductUseCaseWithMetrics(useCase ProductUseCase, m metrics.BusinessMetrics) ProductUseCase {
	return &productUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *productUseCaseWithMetrics) Create(ctx context.Context, name string) (*domain.Product, error) {
	start := time.Now()
	product, err := p.next.Create(ctx, name)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_create", start, err)
	return product, err
}

func (p *productUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	start := time.Now()
	product, err := p.next.Get(ctx, id)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_get", start, err)
	return product, err
}

func (p *productUseCaseWithMetrics) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	start := time.Now()
	product, err := p.next.GetByName(ctx, name)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_get", start, err)
	return product, err
}

func (p *productUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Product, error) {
	start := time.Now()
	products, err := p.next.List(ctx, offset, limit)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_list", start, err)
	return products, err
}

func (p *productUseCaseWithMetrics) Update(
	ctx context.Context,
	id uuid.UUID,
	name string,
) (*domain.Product, error) {
	start := time.Now()
	product, err := p.next.Update(ctx, id, name)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_update", start, err)
	return product, err
}

func (p *productUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := p.next.Delete(ctx, id)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_delete", start, err)
	return err
}

func (p *productUseCaseWithMetrics) Resolve(ctx context.Context, ref string) (uuid.UUID, error) {
	start := time.Now()
	id, err := p.next.Resolve(ctx, ref)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_resolve", start, err)
	return id, err
}

// ResolveItems is recorded once per call, not once per item.
func (p *productUseCaseWithMetrics) ResolveItems(
	ctx context.Context,
	items []domain.ItemRef,
) ([]domain.ResolvedItem, error) {
	start := time.Now()
	resolved, err := p.next.ResolveItems(ctx, items)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_resolve_items", start, err)
	return resolved, err
}
