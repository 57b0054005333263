package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/allisson/deliveryqueue/internal/delivery/domain"
)

var deliveryColumns = []string{
	"id", "description", "status", "items", "owner_user_id", "piece_count", "created_at", "updated_at",
}

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db, mock
}

func newDelivery(status domain.Status, createdAt time.Time) *domain.Delivery {
	return &domain.Delivery{
		ID:          uuid.Must(uuid.NewV7()),
		Description: "Entrega " + string(status),
		Status:      status,
		Items:       []domain.Item{{ProductID: uuid.Must(uuid.NewV7()), Order: 1}},
		OwnerUserID: uuid.Must(uuid.NewV7()),
		PieceCount:  1,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func postgresRow(rows *sqlmock.Rows, d *domain.Delivery) *sqlmock.Rows {
	items, _ := encodeItems(d.Items)
	return rows.AddRow(
		d.ID.String(), d.Description, string(d.Status), items, d.OwnerUserID.String(),
		d.PieceCount, d.CreatedAt, d.UpdatedAt,
	)
}

func mysqlRow(rows *sqlmock.Rows, d *domain.Delivery) *sqlmock.Rows {
	items, _ := encodeItems(d.Items)
	id, _ := d.ID.MarshalBinary()
	owner, _ := d.OwnerUserID.MarshalBinary()
	return rows.AddRow(id, d.Description, string(d.Status), items, owner, d.PieceCount, d.CreatedAt, d.UpdatedAt)
}
