package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	deliveryDomain "github.com/allisson/deliveryqueue/internal/delivery/domain"
	apperrors "github.com/allisson/deliveryqueue/internal/errors"
	"github.com/allisson/deliveryqueue/internal/outbox/domain"
	userDomain "github.com/allisson/deliveryqueue/internal/user/domain"
)

// LogEventProcessor writes outbox events to the structured log, giving
// operators an ordered trail of slot changes, promotions and account changes.
type LogEventProcessor struct {
	logger *slog.Logger
}

// NewLogEventProcessor creates a new LogEventProcessor.
func NewLogEventProcessor(logger *slog.Logger) *LogEventProcessor {
	return &LogEventProcessor{logger: logger}
}

// Process decodes the event payload and logs it. Unknown event types are
// logged and acknowledged.
func (p *LogEventProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	switch event.EventType {
	case deliveryDomain.EventDeliveryCreated,
		deliveryDomain.EventDeliveryUpdated,
		deliveryDomain.EventDeliveryStatusChanged,
		deliveryDomain.EventDeliveryDeleted,
		deliveryDomain.EventDeliveryPromoted:
		return p.logDeliveryEvent(event)
	case userDomain.EventUserCreated,
		userDomain.EventUserUpdated,
		userDomain.EventUserDeleted:
		return p.logUserEvent(event)
	}

	p.logger.Warn("unknown event type", slog.String("event_type", event.EventType))
	return nil
}

func (p *LogEventProcessor) logDeliveryEvent(event *domain.OutboxEvent) error {
	var payload deliveryDomain.EventPayload
	if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
		return apperrors.Wrap(err, "failed to decode delivery event payload")
	}

	p.logger.Info("delivery queue event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.EventType),
		slog.String("delivery_id", payload.DeliveryID),
		slog.String("status", payload.Status),
		slog.String("previous_status", payload.PreviousStatus),
		slog.Time("recorded_at", event.CreatedAt),
	)
	return nil
}

func (p *LogEventProcessor) logUserEvent(event *domain.OutboxEvent) error {
	var payload userDomain.UserEventPayload
	if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
		return apperrors.Wrap(err, "failed to decode user event payload")
	}

	p.logger.Info("user account event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.EventType),
		slog.String("user_id", payload.UserID.String()),
		slog.Time("recorded_at", event.CreatedAt),
	)
	return nil
}
