// Package usecase implements the product catalog and the resolution of
// caller-supplied product references into canonical product IDs.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/deliveryqueue/internal/catalog/domain"
)

// ProductRepository defines the interface for Product persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetByName(ctx context.Context, name string) (*domain.Product, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductUseCase defines the interface for catalog business logic.
type ProductUseCase interface {
	Create(ctx context.Context, name string) (*domain.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetByName(ctx context.Context, name string) (*domain.Product, error)
	// Update renames a product. Deliveries keep referencing it by ID.
	Update(ctx context.Context, id uuid.UUID, name string) (*domain.Product, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Resolve maps a product reference to a product ID. A UUID-shaped ref is
	// looked up by ID first; when that misses, or the ref is not UUID-shaped,
	// it is looked up by exact name.
	Resolve(ctx context.Context, ref string) (uuid.UUID, error)

	// ResolveItems resolves every item in order and fails on the first
	// unresolvable reference. Caller-assigned orders are preserved.
	ResolveItems(ctx context.Context, items []domain.ItemRef) ([]domain.ResolvedItem, error)
}
