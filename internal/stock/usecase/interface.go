// Package usecase implements stock item management on top of the product
// catalog.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/deliveryqueue/internal/stock/domain"
)

// StockItemRepository defines stock item persistence. Reads fill ProductName
// from the catalog; items whose product was deleted are gone with it.
type StockItemRepository interface {
	Create(ctx context.Context, item *domain.StockItem) error
	Get(ctx context.Context, id uuid.UUID) (*domain.StockItem, error)
	List(ctx context.Context, offset, limit int) ([]*domain.StockItem, error)
	// Update writes product_id, quantity and updated_at.
	Update(ctx context.Context, item *domain.StockItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductResolver maps a product ID or name to a product ID.
type ProductResolver interface {
	Resolve(ctx context.Context, ref string) (uuid.UUID, error)
}

// CreateStockItemInput contains the input data for creating a stock item.
// Quantity is a pointer so that an omitted quantity can be told apart from zero.
type CreateStockItemInput struct {
	ProductRef string
	Quantity   *int
}

// UpdateStockItemInput contains the optional fields of a stock update. Nil
// means "leave unchanged"; at least one field must be set.
type UpdateStockItemInput struct {
	ProductRef *string
	Quantity   *int
}

// StockItemUseCase defines stock business logic.
type StockItemUseCase interface {
	Create(ctx context.Context, input CreateStockItemInput) (*domain.StockItem, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.StockItem, error)
	List(ctx context.Context, offset, limit int) ([]*domain.StockItem, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateStockItemInput) (*domain.StockItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
