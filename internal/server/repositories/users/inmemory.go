package users

import (
	"context"
	"sort"
	"sync"

	"github.com/avolkov/tourneyadmin/internal/common"
	"github.com/avolkov/tourneyadmin/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used in tests and local
// development. All operations, including CreateFirstAdmin, run under one
// mutex, which gives the same winner-takes-all bootstrap guarantee the
// single-statement SQL insert provides.
type InMemoryRepository struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]models.User)}
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &user, nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		user.PasswordHash = ""
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

func (r *InMemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.users)), nil
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return common.ErrDuplicateUsername
	}
	r.users[user.Username] = *user
	return nil
}

func (r *InMemoryRepository) CreateFirstAdmin(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.users) > 0 {
		return common.ErrAlreadyInitialized
	}
	r.users[user.Username] = *user
	return nil
}

func (r *InMemoryRepository) UpdateRole(ctx context.Context, username string, role models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return common.ErrNotFound
	}
	user.Role = role
	r.users[username] = user
	return nil
}

func (r *InMemoryRepository) UpdatePasswordHash(ctx context.Context, username string, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return common.ErrNotFound
	}
	user.PasswordHash = hash
	r.users[username] = user
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[username]; !ok {
		return common.ErrNotFound
	}
	delete(r.users, username)
	return nil
}
