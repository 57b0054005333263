package usecase

import (
	"context"
	"log/slog"

	"github.com/allisson/deliveryqueue/internal/delivery/domain"
	apperrors "github.com/allisson/deliveryqueue/internal/errors"
	"github.com/allisson/deliveryqueue/internal/metrics"
)

// promoteNext runs the promotion protocol after a delivery left vacated.
// It never returns an error: a failed promotion is logged and the queue
// heals on the next create that finds Em Rota empty.
func (uc *deliveryUseCase) promoteNext(ctx context.Context, vacated domain.Status) {
	promoted, outcome, err := uc.promote(ctx, vacated)

	uc.queueMetrics.RecordPromotion(ctx, outcome)

	switch outcome {
	case metrics.PromotionPromoted:
		uc.logger.Info("pending delivery promoted",
			slog.String("delivery_id", promoted.ID.String()),
			slog.String("vacated_slot", string(vacated)),
		)
	case metrics.PromotionNonePending:
		uc.logger.Info("no pending delivery to promote", slog.String("vacated_slot", string(vacated)))
	case metrics.PromotionSlotOccupied:
		uc.logger.Warn("promotion skipped, slot already occupied", slog.String("vacated_slot", string(vacated)))
	default:
		uc.logger.Error("promotion failed",
			slog.String("vacated_slot", string(vacated)),
			slog.Any("error", err),
		)
	}
}

// promote re-checks that vacated is still empty and atomically moves the
// oldest pending delivery into Em Rota together with its outbox event.
func (uc *deliveryUseCase) promote(
	ctx context.Context,
	vacated domain.Status,
) (*domain.Delivery, string, error) {
	holders, err := uc.deliveryRepo.ListByStatus(ctx, vacated)
	if err != nil {
		return nil, metrics.PromotionFailed, err
	}
	if len(holders) > 0 {
		return nil, metrics.PromotionSlotOccupied, nil
	}

	var promoted *domain.Delivery
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		promoted, err = uc.deliveryRepo.PromoteOldestPending(ctx, uc.now())
		if err != nil || promoted == nil {
			return err
		}
		return uc.recordEvent(ctx, domain.EventDeliveryPromoted, promoted, domain.StatusPendente)
	})

	switch {
	case apperrors.Is(err, domain.ErrSlotOccupied):
		return nil, metrics.PromotionSlotOccupied, nil
	case err != nil:
		return nil, metrics.PromotionFailed, err
	case promoted == nil:
		return nil, metrics.PromotionNonePending, nil
	}
	return promoted, metrics.PromotionPromoted, nil
}

// PromoteNext runs the promotion protocol on demand for the Em Rota slot.
// Unlike the automatic path it reports store errors to the caller.
func (uc *deliveryUseCase) PromoteNext(ctx context.Context) (*domain.Delivery, error) {
	promoted, outcome, err := uc.promote(ctx, domain.StatusEmRota)
	uc.queueMetrics.RecordPromotion(ctx, outcome)
	if err != nil {
		return nil, err
	}
	return promoted, nil
}
