package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avolkov/tourneyadmin/internal/common"
	"github.com/avolkov/tourneyadmin/internal/dbx"
	"github.com/avolkov/tourneyadmin/internal/server/models"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT username, password_hash, role FROM users
		 WHERE username = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.Username, &user.PasswordHash, &user.Role)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.User, error) {
	query :=
		`SELECT username, role FROM users
		 ORDER BY username ASC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.Username, &user.Role); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (username, password_hash, role)
		 VALUES ($1, $2, $3)
		 `

	_, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash, user.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrDuplicateUsername
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// CreateFirstAdmin makes the insert itself the authority on whether the
// system is still uninitialized: the row is only written when the table is
// empty, within one statement, so concurrent bootstrap attempts cannot both
// succeed. A zero-row result or a unique violation both mean somebody else
// got there first.
func (r *PostgresRepository) CreateFirstAdmin(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (username, password_hash, role)
		 SELECT $1, $2, $3
		 WHERE NOT EXISTS (SELECT 1 FROM users)
		 `

	res, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash, user.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrAlreadyInitialized
		}
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrAlreadyInitialized
	}

	return nil
}

func (r *PostgresRepository) UpdateRole(ctx context.Context, username string, role models.Role) error {
	query :=
		`UPDATE users SET role = $2
		 WHERE username = $1
		 `

	return r.execExpectingRow(ctx, query, username, role)
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, username string, hash string) error {
	query :=
		`UPDATE users SET password_hash = $2
		 WHERE username = $1
		 `

	return r.execExpectingRow(ctx, query, username, hash)
}

func (r *PostgresRepository) Delete(ctx context.Context, username string) error {
	query :=
		`DELETE FROM users
		 WHERE username = $1
		 `

	return r.execExpectingRow(ctx, query, username)
}

// execExpectingRow runs a statement that must touch exactly one row and maps
// the zero-row case to common.ErrNotFound.
func (r *PostgresRepository) execExpectingRow(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
