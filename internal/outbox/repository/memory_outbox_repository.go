package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/allisson/deliveryqueue/internal/outbox/domain"
)

// MemoryOutboxEventRepository keeps outbox events in process memory for the
// memory database driver.
type MemoryOutboxEventRepository struct {
	mu     sync.Mutex
	events map[uuid.UUID]domain.OutboxEvent
}

// NewMemoryOutboxEventRepository creates an empty MemoryOutboxEventRepository.
func NewMemoryOutboxEventRepository() *MemoryOutboxEventRepository {
	return &MemoryOutboxEventRepository{events: make(map[uuid.UUID]domain.OutboxEvent)}
}

func (r *MemoryOutboxEventRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[event.ID] = *event
	return nil
}

func (r *MemoryOutboxEventRepository) GetPendingEvents(
	ctx context.Context,
	limit int,
) ([]*domain.OutboxEvent, error) {
	events := r.ListByStatus(domain.OutboxEventStatusPending)
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (r *MemoryOutboxEventRepository) Update(ctx context.Context, event *domain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[event.ID] = *event
	return nil
}

// ListByStatus returns copies of the events with status, oldest first.
func (r *MemoryOutboxEventRepository) ListByStatus(status domain.OutboxEventStatus) []*domain.OutboxEvent {
	r.mu.Lock()
	events := make([]*domain.OutboxEvent, 0)
	for _, event := range r.events {
		if event.Status == status {
			e := event
			events = append(events, &e)
		}
	}
	r.mu.Unlock()

	sort.Slice(events, func(i, j int) bool {
		if events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].ID.String() < events[j].ID.String()
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events
}
