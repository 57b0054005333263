package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/deliveryqueue/internal/metrics"
	"github.com/allisson/deliveryqueue/internal/stock/domain"
)

const metricsDomain = "stock"

// stockItemUseCaseWithMetrics decorates StockItemUseCase with metrics instrumentation.
type stockItemUseCaseWithMetrics struct {
	next    StockItemUseCase
	metrics metrics.BusinessMetrics
}

// NewStockItemUseCaseWithMetrics wraps a StockItemUseCase with metrics recording.
func NewStockItemUseCaseWithMetrics(useCase StockItemUseCase, m metrics.BusinessMetrics) StockItemUseCase {
	return &stockItemUseCaseWithMetrics{next: useCase, metrics: m}
}

func (s *stockItemUseCaseWithMetrics) Create(
	ctx context.Context,
	input CreateStockItemInput,
) (*domain.StockItem, error) {
	start := time.Now()
	item, err := s.next.Create(ctx, input)
	metrics.Observe(ctx, s.metrics, metricsDomain, "stock_create", start, err)
	return item, err
}

func (s *stockItemUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*domain.StockItem, error) {
	start := time.Now()
	item, err := s.next.Get(ctx, id)
	metrics.Observe(ctx, s.metrics, metricsDomain, "stock_get", start, err)
	return item, err
}

func (s *stockItemUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*domain.StockItem, error) {
	start := time.Now()
	items, err := s.next.List(ctx, offset, limit)
	metrics.Observe(ctx, s.metrics, metricsDomain, "stock_list", start, err)
	return items, err
}

func (s *stockItemUseCaseWithMetrics) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateStockItemInput,
) (*domain.StockItem, error) {
	start := time.Now()
	item, err := s.next.Update(ctx, id, input)
	metrics.Observe(ctx, s.metrics, metricsDomain, "stock_update", start, err)
	return item, err
}

func (s *stockItemUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := s.next.Delete(ctx, id)
	metrics.Observe(ctx, s.metrics, metricsDomain, "stock_delete", start, err)
	return err
}
