package players

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/avolkov/tourneyadmin/internal/common"
	"github.com/avolkov/tourneyadmin/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestList_OrderedByName(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+player_name\s+FROM\s+players\s+ORDER\s+BY\s+player_name\s+ASC\s*$`

	rows := sqlmock.NewRows([]string{"player_name"}).AddRow("anna").AddRow("boris")
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "anna" || got[1].Name != "boris" {
		t.Fatalf("unexpected players: %+v", got)
	}
}

func TestList_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+player_name\s+FROM\s+players\s+ORDER\s+BY\s+player_name\s+ASC\s*$`

	mock.ExpectQuery(q).WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+players\s*\(player_name\)\s*VALUES\s*\(\$1\)\s*$`

	mock.ExpectExec(q).WithArgs("anna").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), &models.Player{Name: "anna"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+players\s+WHERE\s+player_name\s*=\s*\$1\s*$`

	mock.ExpectExec(q).WithArgs("anna").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "anna"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+players\s+WHERE\s+player_name\s*=\s*\$1\s*$`

	mock.ExpectExec(q).WithArgs("ghost").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}
