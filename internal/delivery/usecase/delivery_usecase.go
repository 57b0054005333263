package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	catalogDomain "github.com/allisson/deliveryqueue/internal/catalog/domain"
	"github.com/allisson/deliveryqueue/internal/database"
	"github.com/allisson/deliveryqueue/internal/delivery/domain"
	apperrors "github.com/allisson/deliveryqueue/internal/errors"
	"github.com/allisson/deliveryqueue/internal/metrics"
	outboxDomain "github.com/allisson/deliveryqueue/internal/outbox/domain"
	appValidation "github.com/allisson/deliveryqueue/internal/validation"
)

const maxDescriptionLength = 1000

// deliveryUseCase implements DeliveryUseCase.
type deliveryUseCase struct {
	txManager    database.TxManager
	deliveryRepo DeliveryRepository
	resolver     ProductResolver
	outboxRepo   OutboxEventRepository
	queueMetrics metrics.QueueMetrics
	logger       *slog.Logger
	now          func() time.Time
}

// NewDeliveryUseCase creates a new DeliveryUseCase.
func NewDeliveryUseCase(
	txManager database.TxManager,
	deliveryRepo DeliveryRepository,
	resolver ProductResolver,
	outboxRepo OutboxEventRepository,
	queueMetrics metrics.QueueMetrics,
	logger *slog.Logger,
) DeliveryUseCase {
	return &deliveryUseCase{
		txManager:    txManager,
		deliveryRepo: deliveryRepo,
		resolver:     resolver,
		outboxRepo:   outboxRepo,
		queueMetrics: queueMetrics,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return domain.ErrDescriptionRequired
	}

	err := validation.Validate(description,
		validation.Length(1, maxDescriptionLength).Error("description must be at most 1000 characters"),
	)
	return appValidation.WrapValidationError(err)
}

func (uc *deliveryUseCase) resolveItems(
	ctx context.Context,
	refs []catalogDomain.ItemRef,
) ([]domain.Item, error) {
	resolved, err := uc.resolver.ResolveItems(ctx, refs)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(resolved))
	for _, r := range resolved {
		items = append(items, domain.Item{ProductID: r.ProductID, Order: r.Order})
	}
	return items, nil
}

// recordEvent writes an outbox event. It must run inside WithTx.
func (uc *deliveryUseCase) recordEvent(
	ctx context.Context,
	eventType string,
	delivery *domain.Delivery,
	previous domain.Status,
) error {
	payload, err := json.Marshal(domain.NewEventPayload(delivery, previous))
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal event payload")
	}

	now := uc.now()
	event := &outboxDomain.OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   string(payload),
		Status:    outboxDomain.OutboxEventStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.outboxRepo.Create(ctx, event); err != nil {
		return apperrors.Wrap(err, "failed to create outbox event")
	}
	return nil
}

// Create stores a new delivery. It claims the Em Rota slot when the slot
// looks free; losing that race to a concurrent writer queues the delivery as
// Pendente instead.
func (uc *deliveryUseCase) Create(ctx context.Context, input CreateDeliveryInput) (*domain.Delivery, error) {
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	if input.OwnerUserID == uuid.Nil {
		return nil, domain.ErrOwnerRequired
	}

	items, err := uc.resolveItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	delivery := &domain.Delivery{
		ID:          uuid.Must(uuid.NewV7()),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.StatusPendente,
		Items:       items,
		OwnerUserID: input.OwnerUserID,
		PieceCount:  len(items),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	holders, err := uc.deliveryRepo.ListByStatus(ctx, domain.StatusEmRota)
	if err != nil {
		return nil, err
	}

	if len(holders) == 0 {
		delivery.Status = domain.StatusEmRota
		err := uc.insert(ctx, delivery)
		if err == nil {
			return delivery, nil
		}
		if !apperrors.Is(err, domain.ErrSlotOccupied) {
			return nil, err
		}

		uc.queueMetrics.RecordSlotConflict(ctx, string(domain.StatusEmRota))
		uc.logger.Info("em rota slot claimed concurrently, queueing delivery",
			slog.String("delivery_id", delivery.ID.String()),
		)
		delivery.Status = domain.StatusPendente
	}

	if err := uc.insert(ctx, delivery); err != nil {
		return nil, err
	}
	return delivery, nil
}

func (uc *deliveryUseCase) insert(ctx context.Context, delivery *domain.Delivery) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.deliveryRepo.Create(ctx, delivery); err != nil {
			return err
		}
		return uc.recordEvent(ctx, domain.EventDeliveryCreated, delivery, "")
	})
}

func (uc *deliveryUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	return uc.deliveryRepo.Get(ctx, id)
}

func (uc *deliveryUseCase) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Delivery, error) {
	return uc.deliveryRepo.List(ctx, filter)
}

func (uc *deliveryUseCase) ListBySlot(ctx context.Context, status domain.Status) ([]*domain.Delivery, error) {
	if !status.IsActive() {
		return nil, domain.ErrInvalidSlot
	}
	return uc.deliveryRepo.ListByStatus(ctx, status)
}

// parseTargetStatus validates a caller-requested status against current.
func parseTargetStatus(raw string, current domain.Status) (domain.Status, error) {
	target, err := domain.ParseStatus(raw)
	if err != nil || target == domain.StatusPendente {
		return "", apperrors.Wrapf(domain.ErrInvalidStatusTransition, "status %q cannot be requested", raw)
	}
	if target != current && !current.CanTransitionTo(target) {
		return "", apperrors.Wrapf(domain.ErrInvalidStatusTransition, "%s to %s", current, target)
	}
	return target, nil
}

// Update applies the supplied fields. A status change into an active slot is
// rejected when another delivery holds it; the conditional write on the
// status read here catches writers that slipped in between. Updates that do
// not change the status never touch it, so a concurrent promotion of the same
// delivery does not turn them into conflicts. Leaving an active slot for a
// terminal status runs the promotion protocol.
func (uc *deliveryUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateDeliveryInput,
) (*domain.Delivery, error) {
	if input.empty() {
		return nil, domain.ErrNoUpdateFields
	}

	current, err := uc.deliveryRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := current.Status
	updated := current.Clone()

	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
		updated.Description = strings.TrimSpace(*input.Description)
	}

	if input.Status != nil {
		target, err := parseTargetStatus(*input.Status, previous)
		if err != nil {
			return nil, err
		}
		if target != previous && target.IsActive() {
			if err := uc.ensureSlotFree(ctx, target, id); err != nil {
				return nil, err
			}
		}
		updated.Status = target
	}

	if input.Items != nil {
		items, err := uc.resolveItems(ctx, *input.Items)
		if err != nil {
			return nil, err
		}
		updated.Items = items
		updated.PieceCount = len(items)
	}

	if input.PieceCount != nil {
		if *input.PieceCount < 0 {
			return nil, domain.ErrInvalidPieceCount
		}
		updated.PieceCount = *input.PieceCount
	}

	updated.UpdatedAt = uc.now()

	if updated.Status == previous {
		return uc.writeFields(ctx, updated)
	}

	releases := previous.IsActive() && updated.Status.IsTerminal()
	written := false
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.deliveryRepo.Update(ctx, updated, previous); err != nil {
			return err
		}
		written = true
		return uc.recordEvent(ctx, domain.EventDeliveryStatusChanged, updated, previous)
	})
	if err != nil {
		if apperrors.Is(err, domain.ErrSlotOccupied) {
			uc.queueMetrics.RecordSlotConflict(ctx, string(updated.Status))
		}
		if releases && written {
			uc.promoteIfVacated(ctx, id, previous)
		}
		return nil, err
	}

	if releases {
		uc.promoteNext(ctx, previous)
	}
	return updated, nil
}

// writeFields stores an update that keeps the status. The returned delivery
// carries whatever status the store holds at write time.
func (uc *deliveryUseCase) writeFields(ctx context.Context, updated *domain.Delivery) (*domain.Delivery, error) {
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.deliveryRepo.UpdateFields(ctx, updated); err != nil {
			return err
		}
		return uc.recordEvent(ctx, domain.EventDeliveryUpdated, updated, updated.Status)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// promoteIfVacated runs promotion after a failed release when the store kept
// the write anyway. Stores without rollback, like the in-memory one, can
// leave the delivery out of slot although the transaction reported an error.
func (uc *deliveryUseCase) promoteIfVacated(ctx context.Context, id uuid.UUID, slot domain.Status) {
	stored, err := uc.deliveryRepo.Get(ctx, id)
	switch {
	case apperrors.Is(err, domain.ErrDeliveryNotFound):
	case err != nil:
		uc.logger.Error("failed to check vacated slot", slog.String("delivery_id", id.String()), slog.Any("error", err))
		return
	case stored.Status == slot:
		return
	}
	uc.promoteNext(ctx, slot)
}

// ensureSlotFree fails with ErrSlotOccupied when a delivery other than self holds slot.
func (uc *deliveryUseCase) ensureSlotFree(ctx context.Context, slot domain.Status, self uuid.UUID) error {
	holders, err := uc.deliveryRepo.ListByStatus(ctx, slot)
	if err != nil {
		return err
	}
	for _, holder := range holders {
		if holder.ID != self {
			uc.queueMetrics.RecordSlotConflict(ctx, string(slot))
			return apperrors.Wrapf(domain.ErrSlotOccupied, "%s is held by delivery %s", slot, holder.ID)
		}
	}
	return nil
}

// Delete removes a delivery and returns it. Deleting an active delivery runs
// the promotion protocol.
func (uc *deliveryUseCase) Delete(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	var deleted *domain.Delivery

	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = uc.deliveryRepo.Delete(ctx, id)
		if err != nil {
			return err
		}
		return uc.recordEvent(ctx, domain.EventDeliveryDeleted, deleted, "")
	})
	if err != nil {
		if deleted != nil && deleted.Status.IsActive() {
			uc.promoteIfVacated(ctx, id, deleted.Status)
		}
		return nil, err
	}

	if deleted.Status.IsActive() {
		uc.promoteNext(ctx, deleted.Status)
	}
	return deleted, nil
}
