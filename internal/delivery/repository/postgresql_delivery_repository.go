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

const postgresDeliveryColumns = `id, description, status, items, owner_user_id, piece_count, created_at, updated_at`

// PostgreSQLDeliveryRepository handles delivery persistence for PostgreSQL.
// The partial unique index deliveries_active_slot_idx on status makes every
// slot claim atomic.
type PostgreSQLDeliveryRepository struct {
	db *sql.DB
}

// NewPostgreSQLDeliveryRepository creates a new PostgreSQLDeliveryRepository.
func NewPostgreSQLDeliveryRepository(db *sql.DB) *PostgreSQLDeliveryRepository {
	return &PostgreSQLDeliveryRepository{db: db}
}

func scanPostgresDelivery(row rowScanner) (*domain.Delivery, error) {
	var delivery domain.Delivery
	var status string
	var items []byte

	err := row.Scan(
		&delivery.ID,
		&delivery.Description,
		&status,
		&items,
		&delivery.OwnerUserID,
		&delivery.PieceCount,
		&delivery.CreatedAt,
		&delivery.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	delivery.Status = domain.Status(status)
	if delivery.Items, err = decodeItems(items); err != nil {
		return nil, err
	}
	return &delivery, nil
}

// Create inserts a new delivery. Inserting into an occupied slot returns
// ErrSlotOccupied.
func (r *PostgreSQLDeliveryRepository) Create(ctx context.Context, delivery *domain.Delivery) error {
	querier := database.GetTx(ctx, r.db)

	items, err := encodeItems(delivery.Items)
	if err != nil {
		return err
	}

	query := `INSERT INTO deliveries (id, description, status, items, owner_user_id, piece_count, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = querier.ExecContext(
		ctx,
		query,
		delivery.ID,
		delivery.Description,
		string(delivery.Status),
		items,
		delivery.OwnerUserID,
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
func (r *PostgreSQLDeliveryRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresDeliveryColumns + ` FROM deliveries WHERE id = $1`

	delivery, err := scanPostgresDelivery(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDeliveryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get delivery")
	}
	return delivery, nil
}

// List returns deliveries matching filter.
func (r *PostgreSQLDeliveryRepository) List(
	ctx context.Context,
	filter domain.ListFilter,
) ([]*domain.Delivery, error) {
	query, args, err := buildListQuery(
		`SELECT `+postgresDeliveryColumns+` FROM deliveries`,
		filter,
		postgresPlaceholder,
		func() (any, error) { return *filter.OwnerUserID, nil },
	)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, query, args...)
}

// ListByStatus returns the deliveries holding status, oldest first.
func (r *PostgreSQLDeliveryRepository) ListByStatus(
	ctx context.Context,
	status domain.Status,
) ([]*domain.Delivery, error) {
	query := `SELECT ` + postgresDeliveryColumns + ` FROM deliveries
			  WHERE status = $1
			  ORDER BY created_at ASC, id ASC`
	return r.query(ctx, query, string(status))
}

func (r *PostgreSQLDeliveryRepository) query(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Delivery, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list deliveries")
	}
	defer rows.Close() //nolint:errcheck

	deliveries := make([]*domain.Delivery, 0)
	for rows.Next() {
		delivery, err := scanPostgresDelivery(rows)
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
func (r *PostgreSQLDeliveryRepository) Update(
	ctx context.Context,
	delivery *domain.Delivery,
	expected domain.Status,
) error {
	querier := database.GetTx(ctx, r.db)

	items, err := encodeItems(delivery.Items)
	if err != nil {
		return err
	}

	query := `UPDATE deliveries
			  SET description = $1, status = $2, items = $3, piece_count = $4, updated_at = $5
			  WHERE id = $6 AND status = $7`

	result, err := querier.ExecContext(
		ctx,
		query,
		delivery.Description,
		string(delivery.Status),
		items,
		delivery.PieceCount,
		delivery.UpdatedAt,
		delivery.ID,
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
	if affected == 0 {
		return r.missedUpdate(ctx, delivery.ID)
	}
	return nil
}

// UpdateFields writes everything but the status and reads the status back.
func (r *PostgreSQLDeliveryRepository) UpdateFields(ctx context.Context, delivery *domain.Delivery) error {
	querier := database.GetTx(ctx, r.db)

	items, err := encodeItems(delivery.Items)
	if err != nil {
		return err
	}

	query := `UPDATE deliveries
			  SET description = $1, items = $2, piece_count = $3, updated_at = $4
			  WHERE id = $5
			  RETURNING status`

	var status string
	err = querier.QueryRowContext(
		ctx,
		query,
		delivery.Description,
		items,
		delivery.PieceCount,
		delivery.UpdatedAt,
		delivery.ID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrDeliveryNotFound
		}
		return apperrors.Wrap(err, "failed to update delivery")
	}

	delivery.Status = domain.Status(status)
	return nil
}

// missedUpdate tells apart a vanished row from a status that moved on.
func (r *PostgreSQLDeliveryRepository) missedUpdate(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	var exists bool
	err := querier.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM deliveries WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return apperrors.Wrap(err, "failed to check delivery existence")
	}
	if !exists {
		return domain.ErrDeliveryNotFound
	}
	return domain.ErrStatusConflict
}

// Delete removes a delivery and returns the removed row.
func (r *PostgreSQLDeliveryRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM deliveries WHERE id = $1 RETURNING ` + postgresDeliveryColumns

	delivery, err := scanPostgresDelivery(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDeliveryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to delete delivery")
	}
	return delivery, nil
}

// PromoteOldestPending moves the oldest Pendente delivery to Em Rota in one
// statement. It returns nil when nothing is pending and ErrSlotOccupied when
// the slot was filled concurrently. The candidate is locked with a plain
// FOR UPDATE: a row held by another writer is waited for, never skipped, so
// the oldest pending delivery is always the one promoted.
func (r *PostgreSQLDeliveryRepository) PromoteOldestPending(
	ctx context.Context,
	now time.Time,
) (*domain.Delivery, error) {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE deliveries
			  SET status = $1, updated_at = $2
			  WHERE id = (
			      SELECT id FROM deliveries
			      WHERE status = $3
			      ORDER BY created_at ASC, id ASC
			      LIMIT 1
			      FOR UPDATE
			  )
			  RETURNING ` + postgresDeliveryColumns

	row := querier.QueryRowContext(
		ctx,
		query,
		string(domain.StatusEmRota),
		now,
		string(domain.StatusPendente),
	)
	delivery, err := scanPostgresDelivery(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if database.IsUniqueViolation(err) {
			return nil, domain.ErrSlotOccupied
		}
		return nil, apperrors.Wrap(err, "failed to promote pending delivery")
	}
	return delivery, nil
}
