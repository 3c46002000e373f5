package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/avolkov/tourneyadmin/internal/dbx"
	"github.com/avolkov/tourneyadmin/internal/server/migrations"
	"github.com/avolkov/tourneyadmin/internal/server/repositories/players"
	"github.com/avolkov/tourneyadmin/internal/server/repositories/users"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Players(db dbx.DBTX) players.Repository {
	return players.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) InTransaction(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return dbx.WithTx(ctx, db, nil, fn)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
