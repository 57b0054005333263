package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/deliveryqueue/internal/catalog/domain"
	"github.com/allisson/deliveryqueue/internal/database"
	apperrors "github.com/allisson/deliveryqueue/internal/errors"
)

// MySQLProductRepository handles product persistence for MySQL. IDs are
// stored as BINARY(16).
type MySQLProductRepository struct {
	db *sql.DB
}

// NewMySQLProductRepository creates a new MySQLProductRepository.
func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

// Create inserts a new product. The unique index on name rejects duplicates.
func (r *MySQLProductRepository) Create(ctx context.Context, product *domain.Product) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := product.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal product id")
	}

	query := `INSERT INTO products (id, name, created_at, updated_at)
			  VALUES (?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, idBytes, product.Name, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrProductAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create product")
	}
	return nil
}

// Get retrieves a product by ID.
func (r *MySQLProductRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal product id")
	}

	query := `SELECT id, name, created_at, updated_at FROM products WHERE id = ?`
	return r.getOne(ctx, query, idBytes, "failed to get product by id")
}

// GetByName retrieves a product by its exact name.
func (r *MySQLProductRepository) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	query := `SELECT id, name, created_at, updated_at FROM products WHERE name = ?`
	return r.getOne(ctx, query, name, "failed to get product by name")
}

func (r *MySQLProductRepository) getOne(
	ctx context.Context,
	query string,
	arg any,
	errMsg string,
) (*domain.Product, error) {
	querier := database.GetTx(ctx, r.db)

	var product domain.Product
	var idBytes []byte
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&idBytes, &product.Name, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, errMsg)
	}

	if err := product.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal product id")
	}
	return &product, nil
}

// List returns products ordered by name.
func (r *MySQLProductRepository) List(ctx context.Context, offset, limit int) ([]*domain.Product, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at
			  FROM products
			  ORDER BY name ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list products")
	}
	defer rows.Close() //nolint:errcheck

	products := make([]*domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		var idBytes []byte
		if err := rows.Scan(&idBytes, &product.Name, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan product")
		}
		if err := product.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal product id")
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate products")
	}
	return products, nil
}

// Update renames a product. Taking another product's name returns
// ErrProductAlreadyExists.
func (r *MySQLProductRepository) Update(ctx context.Context, product *domain.Product) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := product.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal product id")
	}

	query := `UPDATE products SET name = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, product.Name, product.UpdatedAt, idBytes)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrProductAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update product")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if affected > 0 {
		return nil
	}

	// An unchanged row also reports 0 affected rows in MySQL.
	_, err = r.Get(ctx, product.ID)
	return err
}

// Delete removes a product by ID.
func (r *MySQLProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal product id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete product")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
