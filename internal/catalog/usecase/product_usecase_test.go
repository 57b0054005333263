package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/deliveryqueue/internal/catalog/domain"
	"github.com/allisson/deliveryqueue/internal/catalog/repository"
	apperrors "github.com/allisson/deliveryqueue/internal/errors"
)

// mockProductRepository is a mock implementation of ProductRepository.
type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context, offset, limit int) ([]*domain.Product, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func seedProduct(t *testing.T, repo ProductRepository, name string) *domain.Product {
	t.Helper()

	now := time.Now().UTC()
	product := &domain.Product{ID: uuid.Must(uuid.NewV7()), Name: name, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}

func TestProductUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_TrimsName", func(t *testing.T) {
		repo := &mockProductRepository{}
		uc := NewProductUseCase(repo)

		repo.On("Create", ctx, mock.MatchedBy(func(p *domain.Product) bool {
			return p.Name == "Mesa" && p.ID != uuid.Nil && !p.CreatedAt.IsZero()
		})).Return(nil).Once()

		product, err := uc.Create(ctx, "  Mesa ")

		require.NoError(t, err)
		assert.Equal(t, "Mesa", product.Name)
		repo.AssertExpectations(t)
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		repo := &mockProductRepository{}
		uc := NewProductUseCase(repo)

		_, err := uc.Create(ctx, "   ")

		assert.ErrorIs(t, err, domain.ErrProductNameRequired)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		repo := &mockProductRepository{}
		uc := NewProductUseCase(repo)

		repo.On("Create", ctx, mock.Anything).Return(domain.ErrProductAlreadyExists).Once()

		_, err := uc.Create(ctx, "Mesa")

		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestProductUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RenamesAndTouchesUpdatedAt", func(t *testing.T) {
		repo := repository.NewMemoryProductRepository()
		uc := NewProductUseCase(repo)
		product := seedProduct(t, repo, "Mesa")

		updated, err := uc.Update(ctx, product.ID, " Mesa redonda ")

		require.NoError(t, err)
		assert.Equal(t, "Mesa redonda", updated.Name)
		assert.Equal(t, product.CreatedAt, updated.CreatedAt)
		assert.False(t, updated.UpdatedAt.Before(product.UpdatedAt))

		stored, err := repo.GetByName(ctx, "Mesa redonda")
		require.NoError(t, err)
		assert.Equal(t, product.ID, stored.ID)
	})

	t.Run("Error_NameTakenByAnother", func(t *testing.T) {
		repo := repository.NewMemoryProductRepository()
		uc := NewProductUseCase(repo)
		seedProduct(t, repo, "Mesa")
		chair := seedProduct(t, repo, "Cadeira")

		_, err := uc.Update(ctx, chair.ID, "Mesa")

		assert.ErrorIs(t, err, domain.ErrProductAlreadyExists)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := &mockProductRepository{}
		uc := NewProductUseCase(repo)
		id := uuid.Must(uuid.NewV7())

		repo.On("Get", ctx, id).Return(nil, domain.ErrProductNotFound).Once()

		_, err := uc.Update(ctx, id, "Mesa")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		repo := &mockProductRepository{}
		uc := NewProductUseCase(repo)

		_, err := uc.Update(ctx, uuid.Must(uuid.NewV7()), "  ")

		assert.ErrorIs(t, err, domain.ErrProductNameRequired)
		repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestProductUseCase_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ByID", func(t *testing.T) {
		repo := repository.NewMemoryProductRepository()
		product := seedProduct(t, repo, "Mesa")
		uc := NewProductUseCase(repo)

		id, err := uc.Resolve(ctx, product.ID.String())

		require.NoError(t, err)
		assert.Equal(t, product.ID, id)
	})

	t.Run("Success_ByName", func(t *testing.T) {
		repo := repository.NewMemoryProductRepository()
		product := seedProduct(t, repo, "Cadeira")
		uc := NewProductUseCase(repo)

		id, err := uc.Resolve(ctx, "Cadeira")

		require.NoError(t, err)
		assert.Equal(t, product.ID, id)
	})

	t.Run("Success_UUIDShapedNameFallsBackToName", func(t *testing.T) {
		repo := repository.NewMemoryProductRepository()
		name := uuid.Must(uuid.NewV7()).String()
		product := seedProduct(t, repo, name)
		uc := NewProductUseCase(repo)

		id, err := uc.Resolve(ctx, name)

		require.NoError(t, err)
		assert.Equal(t, product.ID, id)
	})

	t.Run("Success_IDWinsOverName", func(t *testing.T) {
		repo := repository.NewMemoryProductRepository()
		byID := seedProduct(t, repo, "Mesa")
		seedProduct(t, repo, byID.ID.String())
		uc := NewProductUseCase(repo)

		id, err := uc.Resolve(ctx, byID.ID.String())

		require.NoError(t, err)
		assert.Equal(t, byID.ID, id)
	})

	t.Run("Error_UnknownRefEchoedInMessage", func(t *testing.T) {
		uc := NewProductUseCase(repository.NewMemoryProductRepository())

		_, err := uc.Resolve(ctx, "Sofa Retratil")

		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		assert.Contains(t, err.Error(), `"Sofa Retratil"`)
	})

	t.Run("Error_EmptyRef", func(t *testing.T) {
		uc := NewProductUseCase(repository.NewMemoryProductRepository())

		_, err := uc.Resolve(ctx, "")

		assert.ErrorIs(t, err, domain.ErrProductRefRequired)
	})

	t.Run("Error_StoreFailureOnIDLookupPropagates", func(t *testing.T) {
		repo := &mockProductRepository{}
		uc := NewProductUseCase(repo)
		id := uuid.Must(uuid.NewV7())
		storeErr := errors.New("connection reset")

		repo.On("Get", ctx, id).Return(nil, storeErr).Once()

		_, err := uc.Resolve(ctx, id.String())

		assert.ErrorIs(t, err, storeErr)
		repo.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything)
	})

	t.Run("Error_StoreFailureOnNameLookupPropagates", func(t *testing.T) {
		repo := &mockProductRepository{}
		uc := NewProductUseCase(repo)
		storeErr := errors.New("connection reset")

		repo.On("GetByName", ctx, "Mesa").Return(nil, storeErr).Once()

		_, err := uc.Resolve(ctx, "Mesa")

		assert.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, domain.ErrProductNotFound)
	})
}

func TestProductUseCase_ResolveItems(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryProductRepository()
	mesa := seedProduct(t, repo, "Mesa")
	cadeira := seedProduct(t, repo, "Cadeira")
	uc := NewProductUseCase(repo)

	t.Run("Success_PreservesOrderAndDuplicates", func(t *testing.T) {
		items, err := uc.ResolveItems(ctx, []domain.ItemRef{
			{Ref: "Cadeira", Order: 2},
			{Ref: mesa.ID.String(), Order: 1},
			{Ref: "Cadeira", Order: 3},
		})

		require.NoError(t, err)
		assert.Equal(t, []domain.ResolvedItem{
			{ProductID: cadeira.ID, Order: 2},
			{ProductID: mesa.ID, Order: 1},
			{ProductID: cadeira.ID, Order: 3},
		}, items)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		items, err := uc.ResolveItems(ctx, nil)

		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Error_AbortsOnFirstFailure", func(t *testing.T) {
		items, err := uc.ResolveItems(ctx, []domain.ItemRef{
			{Ref: "Mesa", Order: 1},
			{Ref: "Inexistente", Order: 2},
		})

		assert.Nil(t, items)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		assert.Contains(t, err.Error(), "Inexistente")
	})
}
