package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	deliveryUseCase "github.com/allisson/deliveryqueue/internal/delivery/usecase"
)

// RunPromotePending moves the oldest pending delivery into an empty Em Rota
// slot. An occupied slot or an empty queue is reported but is not an error.
func RunPromotePending(
	ctx context.Context,
	deliveries deliveryUseCase.DeliveryUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	promoted, err := deliveries.PromoteNext(ctx)
	if err != nil {
		return fmt.Errorf("failed to promote pending delivery: %w", err)
	}

	if promoted == nil {
		logger.Info("no pending delivery promoted")
		if format == "json" {
			return writeJSON(writer, map[string]any{"promoted": false})
		}
		_, _ = fmt.Fprintln(writer, "No pending delivery promoted.")
		return nil
	}

	logger.Info("pending delivery promoted", slog.String("delivery_id", promoted.ID.String()))
	if format == "json" {
		return writeJSON(writer, map[string]any{
			"promoted":    true,
			"id":          promoted.ID.String(),
			"description": promoted.Description,
			"status":      string(promoted.Status),
		})
	}

	_, _ = fmt.Fprintln(writer, "Delivery promoted!")
	_, _ = fmt.Fprintf(writer, "ID: %s\n", promoted.ID)
	_, _ = fmt.Fprintf(writer, "Description: %s\n", promoted.Description)
	_, _ = fmt.Fprintf(writer, "Status: %s\n", promoted.Status)
	return nil
}
