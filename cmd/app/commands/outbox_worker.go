package commands

import (
	"context"
	"errors"
	"log/slog"

	outboxUseCase "github.com/allisson/deliveryqueue/internal/outbox/usecase"
)

// RunOutboxWorker drains the outbox until ctx is cancelled. Cancellation is a
// normal stop and is not reported as an error.
func RunOutboxWorker(ctx context.Context, useCase outboxUseCase.UseCase, logger *slog.Logger) error {
	err := useCase.Start(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("outbox worker stopped")
		return nil
	}
	return err
}
