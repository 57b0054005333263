package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/deliveryqueue/internal/catalog/domain"
)

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db, mock
}

func newProduct(name string) *domain.Product {
	now := time.Now().UTC()
	return &domain.Product{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostgreSQLProductRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLProductRepository(db)
		product := newProduct("Mesa de Jantar")

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products (id, name, created_at, updated_at)")).
			WithArgs(product.ID, product.Name, product.CreatedAt, product.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(context.Background(), product)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLProductRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products")).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(context.Background(), newProduct("Cadeira"))

		assert.ErrorIs(t, err, domain.ErrProductAlreadyExists)
	})

	t.Run("Error_Database", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLProductRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products")).
			WillReturnError(errors.New("connection refused"))

		err := repo.Create(context.Background(), newProduct("Cadeira"))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create product")
	})
}

func TestPostgreSQLProductRepository_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLProductRepository(db)
		product := newProduct("Armario")

		rows := sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow(product.ID.String(), product.Name, product.CreatedAt, product.UpdatedAt)
		mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
			WithArgs(product.ID).
			WillReturnRows(rows)

		got, err := repo.Get(context.Background(), product.ID)

		require.NoError(t, err)
		assert.Equal(t, product.ID, got.ID)
		assert.Equal(t, product.Name, got.Name)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLProductRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
			WillReturnError(sql.ErrNoRows)

		got, err := repo.Get(context.Background(), uuid.Must(uuid.NewV7()))

		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}

func TestPostgreSQLProductRepository_GetByName(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLProductRepository(db)
		product := newProduct("Estante")

		rows := sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow(product.ID.String(), product.Name, product.CreatedAt, product.UpdatedAt)
		mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE name = $1")).
			WithArgs("Estante").
			WillReturnRows(rows)

		got, err := repo.GetByName(context.Background(), "Estante")

		require.NoError(t, err)
		assert.Equal(t, product.ID, got.ID)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLProductRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE name = $1")).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByName(context.Background(), "Inexistente")

		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}

func TestPostgreSQLProductRepository_List(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewPostgreSQLProductRepository(db)
	a, b := newProduct("Armario"), newProduct("Balcao")

	rows := sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
		AddRow(a.ID.String(), a.Name, a.CreatedAt, a.UpdatedAt).
		AddRow(b.ID.String(), b.Name, b.CreatedAt, b.UpdatedAt)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY name ASC")).
		WithArgs(10, 0).
		WillReturnRows(rows)

	products, err := repo.List(context.Background(), 0, 10)

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Armario", products[0].Name)
	assert.Equal(t, "Balcao", products[1].Name)
}

func TestPostgreSQLProductRepository_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLProductRepository(db)
		product := newProduct("Mesa redonda")

		mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET name = $1, updated_at = $2 WHERE id = $3")).
			WithArgs(product.Name, product.UpdatedAt, product.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(context.Background(), product))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLProductRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE products")).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Update(context.Background(), newProduct("Mesa"))

		assert.ErrorIs(t, err, domain.ErrProductAlreadyExists)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLProductRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE products")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), newProduct("Mesa"))

		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}

func TestPostgreSQLProductRepository_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLProductRepository(db)
		id := uuid.Must(uuid.NewV7())

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), id))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLProductRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), uuid.Must(uuid.NewV7()))

		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}
