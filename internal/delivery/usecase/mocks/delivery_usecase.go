// Package mocks provides mock implementations of the delivery use cases for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/deliveryqueue/internal/delivery/domain"
	"github.com/allisson/deliveryqueue/internal/delivery/usecase"
)

// MockDeliveryUseCase is a mock implementation of DeliveryUseCase for testing.
type MockDeliveryUseCase struct {
	mock.Mock
}

var _ usecase.DeliveryUseCase = (*MockDeliveryUseCase)(nil)

func (m *MockDeliveryUseCase) one(args mock.Arguments) (*domain.Delivery, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Delivery), args.Error(1)
}

func (m *MockDeliveryUseCase) many(args mock.Arguments) ([]*domain.Delivery, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Delivery), args.Error(1)
}

// Create mocks the Create method of DeliveryUseCase.
func (m *MockDeliveryUseCase) Create(
	ctx context.Context,
	input usecase.CreateDeliveryInput,
) (*domain.Delivery, error) {
	return m.one(m.Called(ctx, input))
}

// Get mocks the Get method of DeliveryUseCase.
func (m *MockDeliveryUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	return m.one(m.Called(ctx, id))
}

// List mocks the List method of DeliveryUseCase.
func (m *MockDeliveryUseCase) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Delivery, error) {
	return m.many(m.Called(ctx, filter))
}

// ListBySlot mocks the ListBySlot method of DeliveryUseCase.
func (m *MockDeliveryUseCase) ListBySlot(ctx context.Context, status domain.Status) ([]*domain.Delivery, error) {
	return m.many(m.Called(ctx, status))
}

// Update mocks the Update method of DeliveryUseCase.
func (m *MockDeliveryUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input usecase.UpdateDeliveryInput,
) (*domain.Delivery, error) {
	return m.one(m.Called(ctx, id, input))
}

// Delete mocks the Delete method of DeliveryUseCase.
func (m *MockDeliveryUseCase) Delete(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	return m.one(m.Called(ctx, id))
}

// PromoteNext mocks the PromoteNext method of DeliveryUseCase.
func (m *MockDeliveryUseCase) PromoteNext(ctx context.Context) (*domain.Delivery, error) {
	return m.one(m.Called(ctx))
}
