// Package store provides PostgreSQL access methods for all blog entities.
// Each store struct wraps a DBTX, so the same queries run against the pool
// or inside a transaction. Datastore ties them together as a blog.Datastore.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"customblog/internal/blog"
)

// DBTX is the subset of *sql.DB and *sql.Tx used by the stores.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Datastore runs engine transactions against PostgreSQL.
type Datastore struct {
	db *sql.DB
}

// NewDatastore creates a Datastore over the given connection pool.
func NewDatastore(db *sql.DB) *Datastore {
	return &Datastore{db: db}
}

// WithinTx begins a transaction, hands fn the stores bound to it, and
// commits when fn succeeds. The deferred rollback releases the transaction
// on every other exit path, including panics.
func (d *Datastore) WithinTx(ctx context.Context, fn func(tx blog.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(newTxStores(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		slog.Warn("transaction commit failed", "error", err)
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Members returns a member store bound to the pool.
func (d *Datastore) Members() *MemberStore {
	return NewMemberStore(d.db)
}
