// Package services contains the server-side business logic. This file
// implements AuthService: credential verification, session token issuance,
// and the one-time first-admin bootstrap.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avolkov/tourneyadmin/internal/common"
	"github.com/avolkov/tourneyadmin/internal/server/auth"
	"github.com/avolkov/tourneyadmin/internal/server/config"
	"github.com/avolkov/tourneyadmin/internal/server/models"
	"github.com/avolkov/tourneyadmin/internal/server/repositories/users"
)

// dummyHash is compared against when the username does not exist, so the
// failure path costs one bcrypt verification either way and does not leak
// account existence through timing.
var dummyHash = func() string {
	h, err := auth.HashPassword("tourneyadmin-dummy")
	if err != nil {
		panic(err)
	}
	return h
}()

// AuthService provides authentication-related operations:
//   - Login: verify credentials and mint a session token
//   - CompleteSetup: create the first admin account exactly once
//   - SetupRequired: report whether bootstrap is still open
type AuthService struct {
	repo                         users.Repository
	jwtSecret                    []byte
	sessionTokenValidityDuration time.Duration
}

// NewAuthService constructs an AuthService using the users repository and
// server config.
func NewAuthService(repo users.Repository, cfg *config.Config) *AuthService {
	return &AuthService{
		repo:                         repo,
		jwtSecret:                    []byte(cfg.SecretKey),
		sessionTokenValidityDuration: cfg.SessionTokenValidityDuration,
	}
}

// Login verifies the username/password pair and returns the identity plus a
// signed session token. A missing user and a wrong password are both
// reported as common.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*auth.Identity, string, error) {
	if username == "" || password == "" {
		return nil, "", fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			auth.CheckPassword(password, dummyHash)
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", common.ErrInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", common.ErrInvalidCredentials
	}

	identity := auth.Identity{Name: user.Username, Role: user.Role}

	token, err := auth.GenerateToken(identity, s.jwtSecret, s.sessionTokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return &identity, token, nil
}

// CompleteSetup creates the first admin account. The Count check is only a
// fast path that skips the hashing cost once an account exists; the
// repository's conditional insert is what guarantees a single winner under
// concurrent calls.
func (s *AuthService) CompleteSetup(ctx context.Context, username, password string) (*auth.Identity, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, common.ErrInternal
	}
	if count > 0 {
		return nil, common.ErrAlreadyInitialized
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{Username: username, PasswordHash: hash, Role: models.RoleAdmin}
	if err := s.repo.CreateFirstAdmin(ctx, user); err != nil {
		if errors.Is(err, common.ErrAlreadyInitialized) || errors.Is(err, common.ErrDuplicateUsername) {
			return nil, common.ErrAlreadyInitialized
		}
		return nil, common.ErrInternal
	}

	return &auth.Identity{Name: username, Role: models.RoleAdmin}, nil
}

// SetupRequired reports whether no accounts exist yet, i.e. the bootstrap
// flow is still open.
func (s *AuthService) SetupRequired(ctx context.Context) (bool, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, common.ErrInternal
	}
	return count == 0, nil
}
