package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/allisson/deliveryqueue/internal/catalog/domain"
)

// MemoryProductRepository keeps products in process memory. It backs the
// "memory" database driver and use case tests.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
}

// NewMemoryProductRepository creates an empty MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{products: make(map[uuid.UUID]domain.Product)}
}

// Create stores a copy of product, rejecting duplicate names.
func (r *MemoryProductRepository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.products {
		if existing.Name == product.Name {
			return domain.ErrProductAlreadyExists
		}
	}
	if _, ok := r.products[product.ID]; ok {
		return domain.ErrProductAlreadyExists
	}

	r.products[product.ID] = *product
	return nil
}

// Get retrieves a product by ID.
func (r *MemoryProductRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &product, nil
}

// GetByName retrieves a product by its exact name.
func (r *MemoryProductRepository) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, product := range r.products {
		if product.Name == name {
			p := product
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

// List returns products ordered by name.
func (r *MemoryProductRepository) List(ctx context.Context, offset, limit int) ([]*domain.Product, error) {
	r.mu.RLock()
	all := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		p := product
		all = append(all, &p)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	if offset >= len(all) {
		return []*domain.Product{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

// Update replaces a stored product, rejecting a name held by another product.
func (r *MemoryProductRepository) Update(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	for id, existing := range r.products {
		if id != product.ID && existing.Name == product.Name {
			return domain.ErrProductAlreadyExists
		}
	}

	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by ID.
func (r *MemoryProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}
