package repository

import (
	"context"
	"regexp"
	"testing"

	"beacon-attendance/core/database"
	"beacon-attendance/modules/report/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func newMockRepo(t *testing.T) (*ReportRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewReportRepository(database.NewFromSQLx(sqlx.NewDb(db, "postgres"))), mock
}

func TestReportRepository_InsertMeetingReport(t *testing.T) {
	repo, mock := newMockRepo(t)
	report := &entity.MeetingReport{MeetingID: uuid.New(), ReportDate: "2025-03-10", MeetingTitle: "sync", InvitedTotal: 10}

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (meeting_id) DO NOTHING")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (meeting_id) DO NOTHING")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.InsertMeetingReport(context.Background(), report)
	if err != nil || !created {
		t.Fatalf("first insert = %v, %v", created, err)
	}
	created, err = repo.InsertMeetingReport(context.Background(), report)
	if err != nil || created {
		t.Fatalf("second insert should be a no-op, got %v, %v", created, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestReportRepository_CountByStatusForUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY status")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow("present", 3).AddRow("late", 1))

	got, err := repo.CountByStatusForUser(context.Background(), userID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Status != "present" || got[0].Count != 3 {
		t.Fatalf("unexpected counts %+v", got)
	}
}
