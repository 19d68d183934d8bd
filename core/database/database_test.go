package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func newMockDatabase(t *testing.T) (Database, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewFromSQLx(sqlx.NewDb(db, "postgres")), mock
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	d, mock := newMockDatabase(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE beacons").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := d.WithTx(context.Background(), nil, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(context.Background(), "UPDATE beacons SET last_used = NOW()")
		return err
	})
	if err != nil {
		t.Fatalf("WithTx returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	d, mock := newMockDatabase(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := d.WithTx(context.Background(), &sql.TxOptions{Isolation: sql.LevelReadCommitted}, func(tx *sqlx.Tx) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConstraintHelpers(t *testing.T) {
	excl := fmt.Errorf("insert: %w", &pq.Error{Code: "23P01", Constraint: ConstraintMeetingsBeaconWindow})
	if !IsExclusionViolation(excl, ConstraintMeetingsBeaconWindow) {
		t.Fatalf("expected exclusion violation to match")
	}
	if IsExclusionViolation(excl, "other") {
		t.Fatalf("expected constraint name to be checked")
	}
	if IsUniqueViolation(excl, "") {
		t.Fatalf("did not expect exclusion violation to look like unique violation")
	}

	uniq := &pq.Error{Code: "23505", Constraint: ConstraintUsersEmail}
	if !IsUniqueViolation(uniq, "") || !IsUniqueViolation(uniq, ConstraintUsersEmail) {
		t.Fatalf("expected unique violation to match")
	}
	if IsForeignKeyViolation(errors.New("plain"), "") {
		t.Fatalf("plain errors never match")
	}
}
