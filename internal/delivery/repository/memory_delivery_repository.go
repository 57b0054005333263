package repository

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/deliveryqueue/internal/delivery/domain"
)

// MemoryDeliveryRepository keeps deliveries in process memory. Every method
// holds the lock for its whole duration, which makes the slot check and the
// write of Create, Update and PromoteOldestPending a single atomic step.
type MemoryDeliveryRepository struct {
	mu         sync.Mutex
	deliveries map[uuid.UUID]*domain.Delivery
}

// NewMemoryDeliveryRepository creates an empty MemoryDeliveryRepository.
func NewMemoryDeliveryRepository() *MemoryDeliveryRepository {
	return &MemoryDeliveryRepository{deliveries: make(map[uuid.UUID]*domain.Delivery)}
}

// slotHolder returns the delivery other than exclude holding status. Callers hold mu.
func (r *MemoryDeliveryRepository) slotHolder(status domain.Status, exclude uuid.UUID) *domain.Delivery {
	if !status.IsActive() {
		return nil
	}
	for id, d := range r.deliveries {
		if id != exclude && d.Status == status {
			return d
		}
	}
	return nil
}

func (r *MemoryDeliveryRepository) Create(ctx context.Context, delivery *domain.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slotHolder(delivery.Status, delivery.ID) != nil {
		return domain.ErrSlotOccupied
	}
	r.deliveries[delivery.ID] = delivery.Clone()
	return nil
}

func (r *MemoryDeliveryRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.deliveries[id]
	if !ok {
		return nil, domain.ErrDeliveryNotFound
	}
	return d.Clone(), nil
}

func (r *MemoryDeliveryRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Delivery, error) {
	r.mu.Lock()
	matched := make([]*domain.Delivery, 0, len(r.deliveries))
	for _, d := range r.deliveries {
		if filter.Matches(d) {
			matched = append(matched, d.Clone())
		}
	}
	r.mu.Unlock()

	sortByCreation(matched)
	if filter.SortRecent {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}

	if filter.Limit <= 0 {
		return matched, nil
	}
	if filter.Offset >= len(matched) {
		return []*domain.Delivery{}, nil
	}
	end := min(filter.Offset+filter.Limit, len(matched))
	return matched[filter.Offset:end], nil
}

func (r *MemoryDeliveryRepository) ListByStatus(
	ctx context.Context,
	status domain.Status,
) ([]*domain.Delivery, error) {
	return r.List(ctx, domain.ListFilter{Status: &status})
}

func (r *MemoryDeliveryRepository) Update(
	ctx context.Context,
	delivery *domain.Delivery,
	expected domain.Status,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.deliveries[delivery.ID]
	if !ok {
		return domain.ErrDeliveryNotFound
	}
	if current.Status != expected {
		return domain.ErrStatusConflict
	}
	if r.slotHolder(delivery.Status, delivery.ID) != nil {
		return domain.ErrSlotOccupied
	}

	updated := delivery.Clone()
	updated.OwnerUserID = current.OwnerUserID
	updated.CreatedAt = current.CreatedAt
	r.deliveries[delivery.ID] = updated
	return nil
}

func (r *MemoryDeliveryRepository) UpdateFields(ctx context.Context, delivery *domain.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.deliveries[delivery.ID]
	if !ok {
		return domain.ErrDeliveryNotFound
	}

	updated := delivery.Clone()
	updated.Status = current.Status
	updated.OwnerUserID = current.OwnerUserID
	updated.CreatedAt = current.CreatedAt
	r.deliveries[delivery.ID] = updated
	delivery.Status = current.Status
	return nil
}

func (r *MemoryDeliveryRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.deliveries[id]
	if !ok {
		return nil, domain.ErrDeliveryNotFound
	}
	delete(r.deliveries, id)
	return d, nil
}

func (r *MemoryDeliveryRepository) PromoteOldestPending(
	ctx context.Context,
	now time.Time,
) (*domain.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var oldest *domain.Delivery
	for _, d := range r.deliveries {
		if d.Status == domain.StatusPendente && (oldest == nil || createdBefore(d, oldest)) {
			oldest = d
		}
	}
	if oldest == nil {
		return nil, nil
	}
	if r.slotHolder(domain.StatusEmRota, oldest.ID) != nil {
		return nil, domain.ErrSlotOccupied
	}

	oldest.Status = domain.StatusEmRota
	oldest.UpdatedAt = now
	return oldest.Clone(), nil
}

func createdBefore(a, b *domain.Delivery) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}

func sortByCreation(deliveries []*domain.Delivery) {
	sort.Slice(deliveries, func(i, j int) bool { return createdBefore(deliveries[i], deliveries[j]) })
}
