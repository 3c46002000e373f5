package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/tourneyadmin/internal/common"
	"github.com/avolkov/tourneyadmin/internal/server/auth"
	"github.com/avolkov/tourneyadmin/internal/server/models"
	"github.com/avolkov/tourneyadmin/internal/server/repositories/repomanager"
	"github.com/avolkov/tourneyadmin/internal/server/repositories/users"
)

var adminCaller = auth.Identity{Name: "root", Role: models.RoleAdmin}

func newUsersService(t *testing.T) (*UsersService, *users.InMemoryRepository) {
	t.Helper()
	repo := users.NewInMemoryRepository()
	seedUser(t, repo, "root", "rootpw", models.RoleAdmin)
	return NewUsersService(nil, repomanager.NewInMemoryRepositoryManager(repo, nil)), repo
}

func TestUsersList_SortedAndSanitized(t *testing.T) {
	svc, repo := newUsersService(t)
	ctx := context.Background()
	seedUser(t, repo, "bob", "pw", models.RoleUser)
	seedUser(t, repo, "alice", "pw", models.RoleUser)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "alice", got[0].Username)
	assert.Equal(t, "bob", got[1].Username)
	assert.Equal(t, "root", got[2].Username)
	for _, u := range got {
		assert.Empty(t, u.PasswordHash, "password hashes must never leave the service")
	}
}

func TestUsersCreate(t *testing.T) {
	svc, repo := newUsersService(t)
	ctx := context.Background()

	total, err := svc.Create(ctx, "bob", "pw", models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total, "total must include the new account")

	stored, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, stored.Role)
	assert.True(t, auth.CheckPassword("pw", stored.PasswordHash))

	// Duplicate username surfaces as the sentinel, not an internal error.
	_, err = svc.Create(ctx, "bob", "pw2", models.RoleUser)
	assert.ErrorIs(t, err, common.ErrDuplicateUsername)
}

func TestUsersCreate_Validation(t *testing.T) {
	svc, _ := newUsersService(t)
	ctx := context.Background()

	for _, tc := range []struct {
		username, password string
		role               models.Role
	}{
		{"", "pw", models.RoleUser},
		{"bob", "", models.RoleUser},
		{"bob", "pw", ""},
		{"bob", "pw", models.Role("owner")},
	} {
		_, err := svc.Create(ctx, tc.username, tc.password, tc.role)
		assert.ErrorIs(t, err, common.ErrValidation)
	}
}

// TestUsersCreate_TransactionCommits drives Create through the real Postgres
// manager: the insert and the count must share one transaction.
func TestUsersCreate_TransactionCommits(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("bob", sqlmock.AnyArg(), "user").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))
	mock.ExpectCommit()

	svc := NewUsersService(db, repomanager.NewPostgresRepositoryManager())
	total, err := svc.Create(context.Background(), "bob", "pw", models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failed count must roll the insert back, not commit half the work.
func TestUsersCreate_TransactionRollsBackOnCountError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("bob", sqlmock.AnyArg(), "user").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users`)).
		WillReturnError(errors.New("db down"))
	mock.ExpectRollback()

	svc := NewUsersService(db, repomanager.NewPostgresRepositoryManager())
	_, err = svc.Create(context.Background(), "bob", "pw", models.RoleUser)
	assert.ErrorIs(t, err, common.ErrInternal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersUpdateRole(t *testing.T) {
	svc, repo := newUsersService(t)
	ctx := context.Background()
	seedUser(t, repo, "bob", "pw", models.RoleUser)

	require.NoError(t, svc.UpdateRole(ctx, adminCaller, "bob", models.RoleAdmin))

	stored, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, stored.Role)

	assert.ErrorIs(t, svc.UpdateRole(ctx, adminCaller, "ghost", models.RoleUser), common.ErrNotFound)
	assert.ErrorIs(t, svc.UpdateRole(ctx, adminCaller, "bob", models.Role("owner")), common.ErrValidation)
}

func TestUsersUpdateRole_SelfForbidden(t *testing.T) {
	svc, repo := newUsersService(t)
	ctx := context.Background()

	// Admins cannot demote themselves.
	err := svc.UpdateRole(ctx, adminCaller, "root", models.RoleUser)
	assert.ErrorIs(t, err, common.ErrForbidden)

	stored, getErr := repo.GetByUsername(ctx, "root")
	require.NoError(t, getErr)
	assert.Equal(t, models.RoleAdmin, stored.Role, "role must be untouched")
}

func TestUsersResetPassword(t *testing.T) {
	svc, repo := newUsersService(t)
	ctx := context.Background()
	seedUser(t, repo, "bob", "old", models.RoleUser)

	require.NoError(t, svc.ResetPassword(ctx, "bob", "new"))

	stored, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword("new", stored.PasswordHash))
	assert.False(t, auth.CheckPassword("old", stored.PasswordHash))

	assert.ErrorIs(t, svc.ResetPassword(ctx, "ghost", "pw"), common.ErrNotFound)
	assert.ErrorIs(t, svc.ResetPassword(ctx, "bob", ""), common.ErrValidation)
}

func TestUsersDelete(t *testing.T) {
	svc, repo := newUsersService(t)
	ctx := context.Background()
	seedUser(t, repo, "bob", "pw", models.RoleUser)

	require.NoError(t, svc.Delete(ctx, adminCaller, "bob"))

	_, err := repo.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, adminCaller, "ghost"), common.ErrNotFound)
}

func TestUsersDelete_SelfForbidden(t *testing.T) {
	svc, repo := newUsersService(t)
	ctx := context.Background()

	err := svc.Delete(ctx, adminCaller, "root")
	assert.ErrorIs(t, err, common.ErrForbidden)

	_, getErr := repo.GetByUsername(ctx, "root")
	assert.NoError(t, getErr, "account must still exist")
}

func TestUsersService_StorageFailure(t *testing.T) {
	var db *sql.DB
	svc := NewUsersService(db, repomanager.NewInMemoryRepositoryManager(&failingUsersRepo{}, nil))
	ctx := context.Background()

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, common.ErrInternal)
	_, err = svc.Create(ctx, "bob", "pw", models.RoleUser)
	assert.ErrorIs(t, err, common.ErrInternal)
	assert.ErrorIs(t, svc.UpdateRole(ctx, adminCaller, "bob", models.RoleUser), common.ErrInternal)
	assert.ErrorIs(t, svc.ResetPassword(ctx, "bob", "pw"), common.ErrInternal)
	assert.ErrorIs(t, svc.Delete(ctx, adminCaller, "bob"), common.ErrInternal)
}
