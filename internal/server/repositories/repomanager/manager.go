// Package repomanager wires repositories to their storage backend and owns
// schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/avolkov/tourneyadmin/internal/dbx"
	"github.com/avolkov/tourneyadmin/internal/server/repositories/players"
	"github.com/avolkov/tourneyadmin/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Players(db dbx.DBTX) players.Repository

	// InTransaction runs fn with a handle whose statements commit or roll
	// back together. Services pass the handle back into Users/Players to get
	// transaction-scoped repositories.
	InTransaction(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error
}
