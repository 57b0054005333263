// Package mocks provides mock implementations of the catalog use cases for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/deliveryqueue/internal/catalog/domain"
)

// MockProductUseCase is a mock implementation of ProductUseCase for testing.
type MockProductUseCase struct {
	mock.Mock
}

// Create mocks the Create method of ProductUseCase.
func (m *MockProductUseCase) Create(ctx context.Context, name string) (*domain.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// Get mocks the Get method of ProductUseCase.
func (m *MockProductUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// GetByName mocks the GetByName method of ProductUseCase.
func (m *MockProductUseCase) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// List mocks the List method of ProductUseCase.
func (m *MockProductUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Product, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

// Update mocks the Update method of ProductUseCase.
func (m *MockProductUseCase) Update(ctx context.Context, id uuid.UUID, name string) (*domain.Product, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// Delete mocks the Delete method of ProductUseCase.
func (m *MockProductUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Resolve mocks the Resolve method of ProductUseCase.
func (m *MockProductUseCase) Resolve(ctx context.Context, ref string) (uuid.UUID, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// ResolveItems mocks the ResolveItems method of ProductUseCase.
func (m *MockProductUseCase) ResolveItems(
	ctx context.Context,
	items []domain.ItemRef,
) ([]domain.ResolvedItem, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResolvedItem), args.Error(1)
}
