package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"beacon-attendance/core/database"
	"beacon-attendance/core/params"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func newMockRepo(t *testing.T) (*AuthRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewAuthRepository(database.NewFromSQLx(sqlx.NewDb(db, "postgres"))), mock
}

var userCols = []string{"id", "name", "email", "password_hash", "is_admin", "push_player_id", "created_at", "updated_at"}

func TestAuthRepository_GetUserByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE lower(email) = lower($1)")).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(id.String(), "Ana", "ana@example.com", "hash", false, nil, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE lower(email) = lower($1)")).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userCols))

	user, err := repo.GetUserByEmail(context.Background(), "ana@example.com")
	if err != nil || user == nil || user.ID != id || user.PushPlayerID != nil {
		t.Fatalf("GetUserByEmail = %+v, %v", user, err)
	}

	missing, err := repo.GetUserByEmail(context.Background(), "nobody@example.com")
	if err != nil || missing != nil {
		t.Fatalf("expected nil user, got %+v, %v", missing, err)
	}
}

func TestAuthRepository_GetUsers(t *testing.T) {
	repo, mock := newMockRepo(t)
	p := params.QueryParams{PageNumber: 2, PageSize: 10, Search: "an"}
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WithArgs("an").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $2 OFFSET $3")).
		WithArgs("an", 10, 10).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(uuid.New().String(), "Ana", "ana@example.com", "hash", true, "p1", now, now))

	page, err := repo.GetUsers(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if page.TotalItems != 11 || len(page.Items) != 1 || !page.Items[0].IsAdmin {
		t.Fatalf("unexpected page %+v", page)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
