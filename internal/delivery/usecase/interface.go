// Package usecase implements the delivery queue manager: the status state
// machine, single occupancy of the active slots and the promotion of pending
// deliveries into a vacated slot.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	catalogDomain "github.com/allisson/deliveryqueue/internal/catalog/domain"
	"github.com/allisson/deliveryqueue/internal/delivery/domain"
	outboxDomain "github.com/allisson/deliveryqueue/internal/outbox/domain"
)

// DeliveryRepository defines the store operations the queue manager relies on.
// Create, Update and PromoteOldestPending return domain.ErrSlotOccupied when
// the write would put a second delivery into an active slot.
type DeliveryRepository interface {
	Create(ctx context.Context, delivery *domain.Delivery) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Delivery, error)
	List(ctx context.Context, filter domain.ListFilter) ([]*domain.Delivery, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Delivery, error)
	// Update writes delivery only while the stored status equals expected.
	Update(ctx context.Context, delivery *domain.Delivery, expected domain.Status) error
	// UpdateFields writes description, items, piece count and updated_at
	// without reading or writing status. delivery.Status is refreshed from
	// the stored row.
	UpdateFields(ctx context.Context, delivery *domain.Delivery) error
	Delete(ctx context.Context, id uuid.UUID) (*domain.Delivery, error)
	// PromoteOldestPending atomically moves the oldest Pendente delivery to
	// Em Rota. It returns nil, nil when nothing is pending.
	PromoteOldestPending(ctx context.Context, now time.Time) (*domain.Delivery, error)
}

// ProductResolver resolves item product references.
type ProductResolver interface {
	ResolveItems(ctx context.Context, items []catalogDomain.ItemRef) ([]catalogDomain.ResolvedItem, error)
}

// OutboxEventRepository records queue events in the caller's transaction.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// CreateDeliveryInput contains the input data for creating a delivery.
type CreateDeliveryInput struct {
	Description string
	Items       []catalogDomain.ItemRef
	OwnerUserID uuid.UUID
}

// UpdateDeliveryInput contains the optional fields of an update. Nil means
// "leave unchanged"; at least one field must be set.
type UpdateDeliveryInput struct {
	Description *string
	Status      *string
	Items       *[]catalogDomain.ItemRef
	PieceCount  *int
}

func (i UpdateDeliveryInput) empty() bool {
	return i.Description == nil && i.Status == nil && i.Items == nil && i.PieceCount == nil
}

// DeliveryUseCase defines the queue manager operations.
type DeliveryUseCase interface {
	Create(ctx context.Context, input CreateDeliveryInput) (*domain.Delivery, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Delivery, error)
	List(ctx context.Context, filter domain.ListFilter) ([]*domain.Delivery, error)
	// ListBySlot returns the occupants of an active slot.
	ListBySlot(ctx context.Context, status domain.Status) ([]*domain.Delivery, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateDeliveryInput) (*domain.Delivery, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Delivery, error)
	// PromoteNext fills an empty Em Rota slot with the oldest pending delivery.
	// It returns nil when the slot is held or nothing is pending.
	PromoteNext(ctx context.Context) (*domain.Delivery, error)
}
