package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/avolkov/tourneyadmin/internal/common"
	"github.com/avolkov/tourneyadmin/internal/server/models"
	"github.com/avolkov/tourneyadmin/internal/server/repositories/players"
)

// PlayersService implements the admin player-management operations.
type PlayersService struct {
	repo players.Repository
}

func NewPlayersService(repo players.Repository) *PlayersService {
	return &PlayersService{repo: repo}
}

// List returns all players ordered by name.
func (s *PlayersService) List(ctx context.Context) ([]models.Player, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, common.ErrInternal
	}
	return result, nil
}

// Delete removes a player by name.
func (s *PlayersService) Delete(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must be set", common.ErrValidation)
	}

	err := s.repo.Delete(ctx, name)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrNotFound):
		return err
	default:
		return common.ErrInternal
	}
}
