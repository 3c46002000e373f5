package repomanager

import (
	"context"
	"database/sql"

	"github.com/avolkov/tourneyadmin/internal/dbx"
	"github.com/avolkov/tourneyadmin/internal/server/repositories/players"
	"github.com/avolkov/tourneyadmin/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves the fixed repositories it was built with,
// ignoring the db handle. The in-memory repositories are atomic under their
// own locks, so InTransaction just runs fn directly.
type InMemoryRepositoryManager struct {
	users   users.Repository
	players players.Repository
}

func NewInMemoryRepositoryManager(u users.Repository, p players.Repository) *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{users: u, players: p}
}

func (m *InMemoryRepositoryManager) Users(_ dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Players(_ dbx.DBTX) players.Repository {
	return m.players
}

func (m *InMemoryRepositoryManager) InTransaction(ctx context.Context, _ *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return fn(ctx, nil)
}

func (m *InMemoryRepositoryManager) RunMigrations(_ context.Context, _ *sql.DB) error {
	return nil
}
