package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/deliveryqueue/internal/catalog/domain"
)

func TestMemoryProductRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CreateAndLookup", func(t *testing.T) {
		repo := NewMemoryProductRepository()
		product := newProduct("Mesa")
		require.NoError(t, repo.Create(ctx, product))

		byID, err := repo.Get(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mesa", byID.Name)

		byName, err := repo.GetByName(ctx, "Mesa")
		require.NoError(t, err)
		assert.Equal(t, product.ID, byName.ID)
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		repo := NewMemoryProductRepository()
		require.NoError(t, repo.Create(ctx, newProduct("Mesa")))

		err := repo.Create(ctx, newProduct("Mesa"))

		assert.ErrorIs(t, err, domain.ErrProductAlreadyExists)
	})

	t.Run("Success_ReturnsCopies", func(t *testing.T) {
		repo := NewMemoryProductRepository()
		product := newProduct("Mesa")
		require.NoError(t, repo.Create(ctx, product))

		got, err := repo.Get(ctx, product.ID)
		require.NoError(t, err)
		got.Name = "changed"

		again, err := repo.Get(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mesa", again.Name)
	})

	t.Run("Success_ListOrderedAndPaged", func(t *testing.T) {
		repo := NewMemoryProductRepository()
		for _, name := range []string{"Estante", "Armario", "Cadeira"} {
			require.NoError(t, repo.Create(ctx, newProduct(name)))
		}

		all, err := repo.List(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "Armario", all[0].Name)
		assert.Equal(t, "Estante", all[2].Name)

		page, err := repo.List(ctx, 1, 1)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "Cadeira", page[0].Name)

		empty, err := repo.List(ctx, 5, 10)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("Success_Delete", func(t *testing.T) {
		repo := NewMemoryProductRepository()
		product := newProduct("Mesa")
		require.NoError(t, repo.Create(ctx, product))

		require.NoError(t, repo.Delete(ctx, product.ID))

		_, err := repo.Get(ctx, product.ID)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, uuid.Must(uuid.NewV7())), domain.ErrProductNotFound)
	})

	t.Run("Success_UpdateRenames", func(t *testing.T) {
		repo := NewMemoryProductRepository()
		table := newProduct("Mesa")
		chair := newProduct("Cadeira")
		require.NoError(t, repo.Create(ctx, table))
		require.NoError(t, repo.Create(ctx, chair))

		table.Name = "Mesa redonda"
		require.NoError(t, repo.Update(ctx, table))

		got, err := repo.GetByName(ctx, "Mesa redonda")
		require.NoError(t, err)
		assert.Equal(t, table.ID, got.ID)

		chair.Name = "Mesa redonda"
		assert.ErrorIs(t, repo.Update(ctx, chair), domain.ErrProductAlreadyExists)
		assert.ErrorIs(t, repo.Update(ctx, newProduct("Sofa")), domain.ErrProductNotFound)
	})
}
