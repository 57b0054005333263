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

const mysqlSelectStockItem = `SELECT s.id, s.product_id, p.name, s.quantity, s.created_at, s.updated_at
			  FROM stock_items s
			  JOIN products p ON p.id = s.product_id`

// MySQLStockItemRepository handles stock item persistence for MySQL. IDs are
// stored as BINARY(16).
type MySQLStockItemRepository struct {
	db *sql.DB
}

// NewMySQLStockItemRepository creates a new MySQLStockItemRepository.
func NewMySQLStockItemRepository(db *sql.DB) *MySQLStockItemRepository {
	return &MySQLStockItemRepository{db: db}
}

// Create inserts a new stock item. A product deleted since it was resolved
// surfaces as ErrProductNotFound.
func (r *MySQLStockItemRepository) Create(ctx context.Context, item *domain.StockItem) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, productIDBytes, err := marshalIDs(item)
	if err != nil {
		return err
	}

	query := `INSERT INTO stock_items (id, product_id, quantity, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, idBytes, productIDBytes, item.Quantity, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return catalogDomain.ErrProductNotFound
		}
		return apperrors.Wrap(err, "failed to create stock item")
	}
	return nil
}

// Get retrieves a stock item by ID together with its product name.
func (r *MySQLStockItemRepository) Get(ctx context.Context, id uuid.UUID) (*domain.StockItem, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal stock item id")
	}

	item, err := scanStockItem(querier.QueryRowContext(ctx, mysqlSelectStockItem+` WHERE s.id = ?`, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStockItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get stock item by id")
	}
	return item, nil
}

// List returns stock items ordered by creation.
func (r *MySQLStockItemRepository) List(ctx context.Context, offset, limit int) ([]*domain.StockItem, error) {
	querier := database.GetTx(ctx, r.db)

	query := mysqlSelectStockItem + `
			  ORDER BY s.created_at ASC, s.id ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list stock items")
	}
	defer rows.Close() //nolint:errcheck

	items := make([]*domain.StockItem, 0)
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan stock item")
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate stock items")
	}
	return items, nil
}

// Update writes product, quantity and updated_at.
func (r *MySQLStockItemRepository) Update(ctx context.Context, item *domain.StockItem) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, productIDBytes, err := marshalIDs(item)
	if err != nil {
		return err
	}

	query := `UPDATE stock_items SET product_id = ?, quantity = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, productIDBytes, item.Quantity, item.UpdatedAt, idBytes)
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
	if affected > 0 {
		return nil
	}

	// An unchanged row also reports 0 affected rows in MySQL.
	_, err = r.Get(ctx, item.ID)
	return err
}

// Delete removes a stock item by ID.
func (r *MySQLStockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal stock item id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM stock_items WHERE id = ?`, idBytes)
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

func marshalIDs(item *domain.StockItem) (idBytes, productIDBytes []byte, err error) {
	idBytes, err = item.ID.MarshalBinary()
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to marshal stock item id")
	}
	productIDBytes, err = item.ProductID.MarshalBinary()
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to marshal product id")
	}
	return idBytes, productIDBytes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStockItem(row rowScanner) (*domain.StockItem, error) {
	var item domain.StockItem
	var idBytes, productIDBytes []byte
	if err := row.Scan(
		&idBytes, &productIDBytes, &item.ProductName, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := item.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal stock item id")
	}
	if err := item.ProductID.UnmarshalBinary(productIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal product id")
	}
	return &item, nil
}
