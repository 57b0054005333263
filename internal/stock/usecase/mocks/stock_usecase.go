// Package mocks provides mock implementations of the stock use cases for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/deliveryqueue/internal/stock/domain"
	"github.com/allisson/deliveryqueue/internal/stock/usecase"
)

// MockStockItemUseCase is a mock implementation of StockItemUseCase for testing.
type MockStockItemUseCase struct {
	mock.Mock
}

var _ usecase.StockItemUseCase = (*MockStockItemUseCase)(nil)

// Create mocks the Create method of StockItemUseCase.
func (m *MockStockItemUseCase) Create(
	ctx context.Context,
	input usecase.CreateStockItemInput,
) (*domain.StockItem, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockItem), args.Error(1)
}

// Get mocks the Get method of StockItemUseCase.
func (m *MockStockItemUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.StockItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockItem), args.Error(1)
}

// List mocks the List method of StockItemUseCase.
func (m *MockStockItemUseCase) List(ctx context.Context, offset, limit int) ([]*domain.StockItem, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StockItem), args.Error(1)
}

// Update mocks the Update method of StockItemUseCase.
func (m *MockStockItemUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input usecase.UpdateStockItemInput,
) (*domain.StockItem, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockItem), args.Error(1)
}

// Delete mocks the Delete method of StockItemUseCase.
func (m *MockStockItemUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
