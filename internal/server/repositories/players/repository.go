package players

import (
	"context"

	"github.com/avolkov/tourneyadmin/internal/server/models"
)

// Repository is the storage contract for tournament players.
type Repository interface {
	List(ctx context.Context) ([]models.Player, error)
	Create(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, name string) error
}
