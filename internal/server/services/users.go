package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkov/tourneyadmin/internal/common"
	"github.com/avolkov/tourneyadmin/internal/dbx"
	"github.com/avolkov/tourneyadmin/internal/server/auth"
	"github.com/avolkov/tourneyadmin/internal/server/models"
	"github.com/avolkov/tourneyadmin/internal/server/repositories/repomanager"
)

// UsersService implements the admin account-management operations. Operations
// that act on a named account take the authenticated caller so the
// self-action bans (no self role change, no self delete) can be enforced
// regardless of role.
type UsersService struct {
	db      *sql.DB
	manager repomanager.RepositoryManager
}

func NewUsersService(db *sql.DB, m repomanager.RepositoryManager) *UsersService {
	return &UsersService{db: db, manager: m}
}

// List returns all accounts ordered by username. Password hashes are never
// included.
func (s *UsersService) List(ctx context.Context) ([]models.User, error) {
	result, err := s.manager.Users(s.db).List(ctx)
	if err != nil {
		return nil, common.ErrInternal
	}
	for i := range result {
		result[i].PasswordHash = ""
	}
	return result, nil
}

// Create adds a new account with the given role and returns the total number
// of accounts afterwards. The insert and the count run in one transaction so
// the reported total always includes the new account.
func (s *UsersService) Create(ctx context.Context, username, password string, role models.Role) (int64, error) {
	if username == "" || password == "" || role == "" {
		return 0, fmt.Errorf("%w: username, password, and role are required", common.ErrValidation)
	}
	if !role.Valid() {
		return 0, fmt.Errorf("%w: role must be 'admin' or 'user'", common.ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, common.ErrInternal
	}

	var total int64
	err = s.manager.InTransaction(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.manager.Users(tx)
		if err := repo.Create(ctx, &models.User{Username: username, PasswordHash: hash, Role: role}); err != nil {
			return err
		}
		var countErr error
		total, countErr = repo.Count(ctx)
		return countErr
	})
	switch {
	case err == nil:
		return total, nil
	case isKnown(err):
		return 0, err
	default:
		return 0, common.ErrInternal
	}
}

// UpdateRole changes the role of another account. Changing the caller's own
// role is forbidden even for admins.
func (s *UsersService) UpdateRole(ctx context.Context, caller auth.Identity, username string, role models.Role) error {
	if username == "" || role == "" {
		return fmt.Errorf("%w: username and role are required", common.ErrValidation)
	}
	if !role.Valid() {
		return fmt.Errorf("%w: role must be 'admin' or 'user'", common.ErrValidation)
	}
	if username == caller.Name {
		return common.ErrForbidden
	}

	err := s.manager.Users(s.db).UpdateRole(ctx, username, role)
	switch {
	case err == nil:
		return nil
	case isKnown(err):
		return err
	default:
		return common.ErrInternal
	}
}

// ResetPassword replaces the stored hash of the given account.
func (s *UsersService) ResetPassword(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return common.ErrInternal
	}

	err = s.manager.Users(s.db).UpdatePasswordHash(ctx, username, hash)
	switch {
	case err == nil:
		return nil
	case isKnown(err):
		return err
	default:
		return common.ErrInternal
	}
}

// Delete removes another account. Deleting the caller's own account is
// forbidden even for admins.
func (s *UsersService) Delete(ctx context.Context, caller auth.Identity, username string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", common.ErrValidation)
	}
	if username == caller.Name {
		return common.ErrForbidden
	}

	err := s.manager.Users(s.db).Delete(ctx, username)
	switch {
	case err == nil:
		return nil
	case isKnown(err):
		return err
	default:
		return common.ErrInternal
	}
}

// isKnown reports whether err is one of the sentinel errors callers are
// expected to match on; anything else gets collapsed to common.ErrInternal
// so storage details never escape.
func isKnown(err error) bool {
	for _, sentinel := range []error{
		common.ErrNotFound,
		common.ErrDuplicateUsername,
		common.ErrForbidden,
		common.ErrValidation,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
