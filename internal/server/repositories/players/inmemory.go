package players

import (
	"context"
	"sort"
	"sync"

	"github.com/avolkov/tourneyadmin/internal/common"
	"github.com/avolkov/tourneyadmin/internal/server/models"
)

// InMemoryRepository is a map-backed Repository for tests and local
// development.
type InMemoryRepository struct {
	mu      sync.Mutex
	players map[string]struct{}
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{players: make(map[string]struct{})}
}

func (r *InMemoryRepository) List(ctx context.Context) ([]models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]models.Player, 0, len(r.players))
	for name := range r.players {
		result = append(result, models.Player{Name: name})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[player.Name] = struct{}{}
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[name]; !ok {
		return common.ErrNotFound
	}
	delete(r.players, name)
	return nil
}
