package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/deliveryqueue/internal/stock/domain"
)

// stockItemUseCase implements StockItemUseCase.
type stockItemUseCase struct {
	stockRepo StockItemRepository
	products  ProductResolver
}

// NewStockItemUseCase creates a new StockItemUseCase.
func NewStockItemUseCase(stockRepo StockItemRepository, products ProductResolver) StockItemUseCase {
	return &stockItemUseCase{stockRepo: stockRepo, products: products}
}

func validateQuantity(quantity int) error {
	if quantity < 0 {
		return domain.ErrNegativeQuantity
	}
	return nil
}

// Create resolves the product reference and stores a new item. The returned
// item is read back so that it carries the product name.
func (s *stockItemUseCase) Create(ctx context.Context, input CreateStockItemInput) (*domain.StockItem, error) {
	if input.Quantity == nil {
		return nil, domain.ErrQuantityRequired
	}
	if err := validateQuantity(*input.Quantity); err != nil {
		return nil, err
	}

	productID, err := s.products.Resolve(ctx, input.ProductRef)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &domain.StockItem{
		ID:        uuid.Must(uuid.NewV7()),
		ProductID: productID,
		Quantity:  *input.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.stockRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return s.stockRepo.Get(ctx, item.ID)
}

func (s *stockItemUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.StockItem, error) {
	return s.stockRepo.Get(ctx, id)
}

func (s *stockItemUseCase) List(ctx context.Context, offset, limit int) ([]*domain.StockItem, error) {
	return s.stockRepo.List(ctx, offset, limit)
}

// Update changes the product and/or the quantity of an item.
func (s *stockItemUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateStockItemInput,
) (*domain.StockItem, error) {
	if input.ProductRef == nil && input.Quantity == nil {
		return nil, domain.ErrNoUpdateFields
	}
	if input.Quantity != nil {
		if err := validateQuantity(*input.Quantity); err != nil {
			return nil, err
		}
	}

	item, err := s.stockRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ProductRef != nil {
		productID, err := s.products.Resolve(ctx, *input.ProductRef)
		if err != nil {
			return nil, err
		}
		item.ProductID = productID
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.stockRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return s.stockRepo.Get(ctx, id)
}

func (s *stockItemUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return s.stockRepo.Delete(ctx, id)
}
