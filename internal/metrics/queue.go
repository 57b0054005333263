package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Promotion outcomes.
const (
	PromotionPromoted     = "promoted"
	PromotionNonePending  = "none_pending"
	PromotionSlotOccupied = "slot_occupied"
	PromotionFailed       = "failed"
)

// QueueMetrics records delivery queue events that are not tied to a single
// use case call: promotion attempts and rejected slot claims.
type QueueMetrics interface {
	RecordPromotion(ctx context.Context, outcome string)
	RecordSlotConflict(ctx context.Context, slot string)
}

type queueMetrics struct {
	promotions    metric.Int64Counter
	slotConflicts metric.Int64Counter
}

// NewQueueMetrics creates the queue instruments on the given meter provider.
func NewQueueMetrics(meterProvider metric.MeterProvider, namespace string) (QueueMetrics, error) {
	meter := meterProvider.Meter(namespace)

	promotions, err := meter.Int64Counter(
		fmt.Sprintf("%s_queue_promotions_total", namespace),
		metric.WithDescription("Promotion attempts of the oldest pending delivery, by outcome"),
		metric.WithUnit("{promotion}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create promotion counter: %w", err)
	}

	slotConflicts, err := meter.Int64Counter(
		fmt.Sprintf("%s_queue_slot_conflicts_total", namespace),
		metric.WithDescription("Writes rejected because the active slot was held by another delivery"),
		metric.WithUnit("{conflict}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create slot conflict counter: %w", err)
	}

	return &queueMetrics{promotions: promotions, slotConflicts: slotConflicts}, nil
}

func (q *queueMetrics) RecordPromotion(ctx context.Context, outcome string) {
	q.promotions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (q *queueMetrics) RecordSlotConflict(ctx context.Context, slot string) {
	q.slotConflicts.Add(ctx, 1, metric.WithAttributes(attribute.String("slot", slot)))
}

// NoOpQueueMetrics is used when metrics are disabled.
type NoOpQueueMetrics struct{}

// NewNoOpQueueMetrics creates a no-op QueueMetrics implementation.
func NewNoOpQueueMetrics() QueueMetrics {
	return &NoOpQueueMetrics{}
}

func (n *NoOpQueueMetrics) RecordPromotion(ctx context.Context, outcome string) {}

func (n *NoOpQueueMetrics) RecordSlotConflict(ctx context.Context, slot string) {}
