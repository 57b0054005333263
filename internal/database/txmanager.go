package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type txKey struct{}

// Querier is the part of *sql.DB and *sql.Tx the repositories need.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager runs a queue write as one unit of work. A status change, the
// promotion that fills the slot it vacated and the outbox event describing
// it either all land or none do. Repositories join the unit through GetTx.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type sqlTxManager struct {
	db *sql.DB
}

// NewTxManager returns a TxManager backed by database transactions on db.
func NewTxManager(db *sql.DB) TxManager {
	return &sqlTxManager{db: db}
}

// WithTx runs fn inside a transaction and commits when it returns nil.
//
// A call made while a transaction is already in ctx joins it instead of
// opening a second one, so the row locks taken by the promotion query stay
// held until the outermost caller commits. On error or panic the transaction
// is rolled back; a failed rollback is joined to fn's error rather than
// replacing it.
func (m *sqlTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback transaction: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// localTxManager backs the in-memory driver. It has no rollback: each
// repository call applies immediately, so when fn fails after a status write
// went through, that write stays. The delivery use case compensates by
// re-reading the delivery after a failed release and promoting the next
// Pendente when the slot turned out to be vacated anyway.
type localTxManager struct{}

// NewLocalTxManager returns the TxManager used with the in-memory driver.
func NewLocalTxManager() TxManager {
	return localTxManager{}
}

// WithTx calls fn with ctx unchanged and returns its error.
func (localTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// GetTx returns the transaction WithTx stored in ctx, or db outside one.
func GetTx(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
