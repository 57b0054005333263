package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	catalogDomain "github.com/allisson/deliveryqueue/internal/catalog/domain"
	apperrors "github.com/allisson/deliveryqueue/internal/errors"
	"github.com/allisson/deliveryqueue/internal/stock/domain"
)

// ProductLookup reads catalog products by ID.
type ProductLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*catalogDomain.Product, error)
}

// MemoryStockItemRepository keeps stock items in process memory for the
// "memory" driver. Product names are looked up on every read, and an item
// whose product no longer exists reads as deleted, mirroring ON DELETE CASCADE.
type MemoryStockItemRepository struct {
	mu       sync.RWMutex
	items    map[uuid.UUID]domain.StockItem
	products ProductLookup
}

// NewMemoryStockItemRepository creates an empty MemoryStockItemRepository.
func NewMemoryStockItemRepository(products ProductLookup) *MemoryStockItemRepository {
	return &MemoryStockItemRepository{
		items:    make(map[uuid.UUID]domain.StockItem),
		products: products,
	}
}

func (r *MemoryStockItemRepository) Create(ctx context.Context, item *domain.StockItem) error {
	if _, err := r.products.Get(ctx, item.ProductID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *item
	stored.ProductName = ""
	r.items[item.ID] = stored
	return nil
}

func (r *MemoryStockItemRepository) Get(ctx context.Context, id uuid.UUID) (*domain.StockItem, error) {
	r.mu.RLock()
	item, ok := r.items[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrStockItemNotFound
	}

	found, err := r.withProductName(ctx, item)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, domain.ErrStockItemNotFound
	}
	return found, nil
}

// List returns stock items ordered by creation.
func (r *MemoryStockItemRepository) List(ctx context.Context, offset, limit int) ([]*domain.StockItem, error) {
	r.mu.RLock()
	snapshot := make([]domain.StockItem, 0, len(r.items))
	for _, item := range r.items {
		snapshot = append(snapshot, item)
	}
	r.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool {
		if snapshot[i].CreatedAt.Equal(snapshot[j].CreatedAt) {
			return snapshot[i].ID.String() < snapshot[j].ID.String()
		}
		return snapshot[i].CreatedAt.Before(snapshot[j].CreatedAt)
	})

	all := make([]*domain.StockItem, 0, len(snapshot))
	for _, item := range snapshot {
		found, err := r.withProductName(ctx, item)
		if err != nil {
			return nil, err
		}
		if found != nil {
			all = append(all, found)
		}
	}

	if offset >= len(all) {
		return []*domain.StockItem{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

func (r *MemoryStockItemRepository) Update(ctx context.Context, item *domain.StockItem) error {
	if _, err := r.products.Get(ctx, item.ProductID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[item.ID]
	if !ok {
		return domain.ErrStockItemNotFound
	}
	stored.ProductID = item.ProductID
	stored.Quantity = item.Quantity
	stored.UpdatedAt = item.UpdatedAt
	r.items[item.ID] = stored
	return nil
}

func (r *MemoryStockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

// withProductName returns a copy of item carrying its product name, or nil
// when the product is gone.
func (r *MemoryStockItemRepository) withProductName(
	ctx context.Context,
	item domain.StockItem,
) (*domain.StockItem, error) {
	product, err := r.products.Get(ctx, item.ProductID)
	if err != nil {
		if apperrors.Is(err, catalogDomain.ErrProductNotFound) {
			return nil, nil
		}
		return nil, err
	}
	item.ProductName = product.Name
	return &item, nil
}
