package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/deliveryqueue/internal/database"
	"github.com/allisson/deliveryqueue/internal/delivery/domain"
	apperrors "github.com/allisson/deliveryqueue/internal/errors"
)

const mysqlDeliveryColumns = `id, description, status, items, owner_user_id, piece_count, created_at, updated_at`

// MySQLDeliveryRepository handles delivery persistence for MySQL. IDs are
// stored as BINARY(16). The generated active_slot column carries a unique
// index so at most one row per active status can exist.
//
// Delete and PromoteOldestPending lock rows with SELECT ... FOR UPDATE and
// must run inside a transaction started by database.TxManager.
type MySQLDeliveryRepository struct {
	db *sql.DB
}

// NewMySQLDeliveryRepository creates a new MySQLDeliveryRepository.
func NewMySQLDeliveryRepository(db *sql.DB) *MySQLDeliveryRepository {
	return &MySQLDeliveryRepository{db: db}
}

func scanMySQLDelivery(row rowScanner) (*domain.Delivery, error) {
	var delivery domain.Delivery
	var id, owner, items []byte
	var status string

	err := row.Scan(
		&id,
		&delivery.Description,
		&status,
		&items,
		&owner,
		&delivery.PieceCount,
		&delivery.CreatedAt,
		&delivery.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := delivery.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal delivery id")
	}
	if err := delivery.OwnerUserID.UnmarshalBinary(owner); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal owner user id")
	}

	delivery.Status = domain.Status(status)
	if delivery.Items, err = decodeItems(items); err != nil {
		return nil, err
	}
	return &delivery, nil
}

// Create inserts a new delivery. Inserting into an occupied slot returns
// ErrSlotOccupied.
func (r *MySQLDeliveryRepository) Create(ctx context.Context, delivery *domain.Delivery) error {
	querier := database.GetTx(ctx, r.db)

	id, err := delivery.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal delivery id")
	}
	owner, err := delivery.OwnerUserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal owner user id")
	}
	items, err := encodeItems(delivery.Items)
	if err != nil {
		return err
	}

	query := `INSERT INTO deliveries (id, description, status, items, owner_user_id, piece_count, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		delivery.Description,
		string(delivery.Status),
		items,
		owner,
		delivery.PieceCount,
		delivery.CreatedAt,
		delivery.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrSlotOccupied
		}
		return apperrors.Wrap(err, "failed to create delivery")
	}
	return nil
}

// Get retrieves a delivery by ID.
func (r *MySQLDeliveryRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	return r.getOne(ctx, id, "")
}

func (r *MySQLDeliveryRepository) getOne(ctx context.Context, id uuid.UUID, lock string) (*domain.Delivery, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal delivery id")
	}

	query := `SELECT ` + mysqlDeliveryColumns + ` FROM deliveries WHERE id = ?` + lock

	delivery, err := scanMySQLDelivery(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDeliveryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get delivery")
	}
	return delivery, nil
}

// List returns deliveries matching filter.
func (r *MySQLDeliveryRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Delivery, error) {
	query, args, err := buildListQuery(
		`SELECT `+mysqlDeliveryColumns+` FROM deliveries`,
		filter,
		mysqlPlaceholder,
		func() (any, error) {
			owner, err := filter.OwnerUserID.MarshalBinary()
			if err != nil {
				return nil, apperrors.Wrap(err, "failed to marshal owner user id")
			}
			return owner, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, query, args...)
}

// ListByStatus returns the deliveries holding status, oldest first.
func (r *MySQLDeliveryRepository) ListByStatus(
	ctx context.Context,
	status domain.Status,
) ([]*domain.Delivery, error) {
	query := `SELECT ` + mysqlDeliveryColumns + ` FROM deliveries
			  WHERE status = ?
			  ORDER BY created_at ASC, id ASC`
	return r.query(ctx, query, string(status))
}

func (r *MySQLDeliveryRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Delivery, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list deliveries")
	}
	defer rows.Close() //nolint:errcheck

	deliveries := make([]*domain.Delivery, 0)
	for rows.Next() {
		delivery, err := scanMySQLDelivery(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan delivery")
		}
		deliveries = append(deliveries, delivery)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate deliveries")
	}
	return deliveries, nil
}

// Update writes delivery only if its stored status still equals expected.
func (r *MySQLDeliveryRepository) Update(
	ctx context.Context,
	delivery *domain.Delivery,
	expected domain.Status,
) error {
	querier := database.GetTx(ctx, r.db)

	id, err := delivery.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal delivery id")
	}
	items, err := encodeItems(delivery.Items)
	if err != nil {
		return err
	}

	query := `UPDATE deliveries
			  SET description = ?, status = ?, items = ?, piece_count = ?, updated_at = ?
			  WHERE id = ? AND status = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		delivery.Description,
		string(delivery.Status),
		items,
		delivery.PieceCount,
		delivery.UpdatedAt,
		id,
		string(expected),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrSlotOccupied
		}
		return apperrors.Wrap(err, "failed to update delivery")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if affected > 0 {
		return nil
	}

	// MySQL reports 0 affected rows for a matching row whose values did not
	// change, so the current status decides between success and conflict.
	current, err := r.Get(ctx, delivery.ID)
	if err != nil {
		return err
	}
	if current.Status != expected {
		return domain.ErrStatusConflict
	}
	return nil
}

// UpdateFields writes everything but the status. MySQL has no RETURNING, so
// the status is read back in the same transaction.
func (r *MySQLDeliveryRepository) UpdateFields(ctx context.Context, delivery *domain.Delivery) error {
	querier := database.GetTx(ctx, r.db)

	id, err := delivery.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal delivery id")
	}
	items, err := encodeItems(delivery.Items)
	if err != nil {
		return err
	}

	query := `UPDATE deliveries
			  SET description = ?, items = ?, piece_count = ?, updated_at = ?
			  WHERE id = ?`

	_, err = querier.ExecContext(
		ctx,
		query,
		delivery.Description,
		items,
		delivery.PieceCount,
		delivery.UpdatedAt,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update delivery")
	}

	current, err := r.Get(ctx, delivery.ID)
	if err != nil {
		return err
	}
	delivery.Status = current.Status
	return nil
}

// Delete removes a delivery and returns the removed row.
func (r *MySQLDeliveryRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	querier := database.GetTx(ctx, r.db)

	delivery, err := r.getOne(ctx, id, " FOR UPDATE")
	if err != nil {
		return nil, err
	}

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal delivery id")
	}

	if _, err := querier.ExecContext(ctx, `DELETE FROM deliveries WHERE id = ?`, idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to delete delivery")
	}
	return delivery, nil
}

// PromoteOldestPending locks the oldest Pendente row, waiting for any writer
// already holding it, moves it to Em Rota and returns it. It returns nil when nothing is pending and ErrSlotOccupied when
// the slot was filled concurrently.
func (r *MySQLDeliveryRepository) PromoteOldestPending(
	ctx context.Context,
	now time.Time,
) (*domain.Delivery, error) {
	querier := database.GetTx(ctx, r.db)

	selectQuery := `SELECT id FROM deliveries
					WHERE status = ?
					ORDER BY created_at ASC, id ASC
					LIMIT 1
					FOR UPDATE`

	var idBytes []byte
	err := querier.QueryRowContext(ctx, selectQuery, string(domain.StatusPendente)).Scan(&idBytes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "failed to select pending delivery")
	}

	updateQuery := `UPDATE deliveries SET status = ?, updated_at = ? WHERE id = ? AND status = ?`

	_, err = querier.ExecContext(
		ctx,
		updateQuery,
		string(domain.StatusEmRota),
		now,
		idBytes,
		string(domain.StatusPendente),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, domain.ErrSlotOccupied
		}
		return nil, apperrors.Wrap(err, "failed to promote pending delivery")
	}

	var id uuid.UUID
	if err := id.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal delivery id")
	}
	return r.Get(ctx, id)
}
