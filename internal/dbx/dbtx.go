// Package dbx holds the tiny DB plumbing shared by repositories: the DBTX
// interface satisfied by both *sql.DB and *sql.Tx, and a transaction helper.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql the repositories rely on. Passing it
// instead of *sql.DB lets the same repository run inside or outside a
// transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction: commit on success, rollback on error
// or panic (panics are rethrown).
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
