package players

import (
	"context"
	"fmt"

	"github.com/avolkov/tourneyadmin/internal/common"
	"github.com/avolkov/tourneyadmin/internal/dbx"
	"github.com/avolkov/tourneyadmin/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Player, error) {
	query :=
		`SELECT player_name FROM players
		 ORDER BY player_name ASC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Player
	for rows.Next() {
		var player models.Player
		if err := rows.Scan(&player.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, player *models.Player) error {
	query :=
		`INSERT INTO players (player_name)
		 VALUES ($1)
		 `

	_, err := r.db.ExecContext(ctx, query, player.Name)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, name string) error {
	query :=
		`DELETE FROM players
		 WHERE player_name = $1
		 `

	res, err := r.db.ExecContext(ctx, query, name)
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
