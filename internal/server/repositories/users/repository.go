package users

import (
	"context"

	"github.com/avolkov/tourneyadmin/internal/server/models"
)

// Repository is the storage contract for account records. Absent rows are
// reported as common.ErrNotFound, username collisions as
// common.ErrDuplicateUsername.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int64, error)

	Create(ctx context.Context, user *models.User) error

	// CreateFirstAdmin inserts user only while the users table is still
	// empty, in a single atomic statement. It returns
	// common.ErrAlreadyInitialized when any account already exists, so that
	// under concurrent bootstrap exactly one caller wins.
	CreateFirstAdmin(ctx context.Context, user *models.User) error

	UpdateRole(ctx context.Context, username string, role models.Role) error
	UpdatePasswordHash(ctx context.Context, username string, hash string) error
	Delete(ctx context.Context, username string) error
}
