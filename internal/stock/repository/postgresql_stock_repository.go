// Package repository provides persistence implementations for stock items.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	catalogDomain "github.com/allisson/deliveryqueue/internal/catalog/domain"
	"github.com/allisson/deliveryqueue/internal/database"
	apperrors "github.com/allisson/deliveryqueue/internal/errors"
	"github.com/allisson/deliveryqueue/internal/stock/domain"
)

const postgresSelectStockItem = `SELECT s.id, s.product_id, p.name, s.quantity, s.created_at, s.updated_at
			  FROM stock_items s
			  JOIN products p ON p.id = s.product_id`

// PostgreSQLStockItemRepository handles stock item persistence for PostgreSQL.
type PostgreSQLStockItemRepository struct {
	db *sql.DB
}

// NewPostgreSQLStockItemRepository creates a new PostgreSQLStockItemRepository.
func NewPostgreSQLStockItemRepository(db *sql.DB) *PostgreSQLStockItemRepository {
	return &PostgreSQLStockItemRepository{db: db}
}

// Create inserts a new stock item. A product deleted since it was resolved
// surfaces as ErrProductNotFound.
func (r *PostgreSQLStockItemRepository) Create(ctx context.Context, item *domain.StockItem) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO stock_items (id, product_id, quantity, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(ctx, query, item.ID, item.ProductID, item.Quantity, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return catalogDomain.ErrProductNotFound
		}
		return apperrors.Wrap(err, "failed to create stock item")
	}
	return nil
}

// Get retrieves a stock item by ID together with its product name.
func (r *PostgreSQLStockItemRepository) Get(ctx context.Context, id uuid.UUID) (*domain.StockItem, error) {
	querier := database.GetTx(ctx, r.db)

	var item domain.StockItem
	err := querier.QueryRowContext(ctx, postgresSelectStockItem+` WHERE s.id = $1`, id).Scan(
		&item.ID, &item.ProductID, &item.ProductName, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStockItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get stock item by id")
	}
	return &item, nil
}

// List returns stock items ordered by creation.
func (r *PostgreSQLStockItemRepository) List(ctx context.Context, offset, limit int) ([]*domain.StockItem, error) {
	querier := database.GetTx(ctx, r.db)

	query := postgresSelectStockItem + `
			  ORDER BY s.created_at ASC, s.id ASC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list stock items")
	}
	defer rows.Close() //nolint:errcheck

	items := make([]*domain.StockItem, 0)
	for rows.Next() {
		var item domain.StockItem
		if err := rows.Scan(
			&item.ID, &item.ProductID, &item.ProductName, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan stock item")
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate stock items")
	}
	return items, nil
}

// Update writes product, quantity and updated_at.
func (r *PostgreSQLStockItemRepository) Update(ctx context.Context, item *domain.StockItem) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE stock_items SET product_id = $1, quantity = $2, updated_at = $3 WHERE id = $4`

	result, err := querier.ExecContext(ctx, query, item.ProductID, item.Quantity, item.UpdatedAt, item.ID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return catalogDomain.ErrProductNotFound
		}
		return apperrors.Wrap(err, "failed to update stock item")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if affected == 0 {
		return domain.ErrStockItemNotFound
	}
	return nil
}

// Delete removes a stock item by ID.
func (r *PostgreSQLStockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete stock item")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if affected == 0 {
		return domain.ErrStockItemNotFound
	}
	return nil
}
