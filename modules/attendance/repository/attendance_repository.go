package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"beacon-attendance/core/database"
	"beacon-attendance/core/logger"
	"beacon-attendance/modules/attendance/entity"

	"github.com/google/uuid"
)

type AttendanceRepository struct {
	DB database.Database
}

func NewAttendanceRepository(db database.Database) *AttendanceRepository {
	return &AttendanceRepository{DB: db}
}

type AttendanceRepositoryInterface interface {
	GetMeetingWindow(ctx context.Context, meetingID uuid.UUID) (*entity.MeetingWindow, error)
	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
	Upsert(ctx context.Context, userID, meetingID uuid.UUID, status entity.Status, markedAt time.Time) (*entity.Attendance, error)
	GetByUserAndMeeting(ctx context.Context, userID, meetingID uuid.UUID) (*entity.Attendance, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Attendance, error)
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]entity.Attendance, error)
}

const attendanceColumns = `id, user_id, meeting_id, status, marked_at`

func (r *AttendanceRepository) GetMeetingWindow(ctx context.Context, meetingID uuid.UUID) (*entity.MeetingWindow, error) {
	query := `SELECT id, start_time, end_time, coordinator_id FROM meetings WHERE id = $1`

	var m entity.MeetingWindow
	if err := r.DB.GetContext(ctx, &m, query, meetingID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("AttendanceRepository:GetMeetingWindow", err)
		return nil, err
	}
	return &m, nil
}

func (r *AttendanceRepository) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID)
	if err != nil {
		logger.Error("AttendanceRepository:UserExists", err)
		return false, err
	}
	return exists, nil
}

// Upsert writes the single row for (user, meeting). A repeated marking
// overwrites status and marked_at in place.
func (r *AttendanceRepository) Upsert(ctx context.Context, userID, meetingID uuid.UUID, status entity.Status, markedAt time.Time) (*entity.Attendance, error) {
	query := `
		INSERT INTO attendance (user_id, meeting_id, status, marked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, meeting_id)
		DO UPDATE SET status = EXCLUDED.status, marked_at = EXCLUDED.marked_at
		RETURNING ` + attendanceColumns

	var a entity.Attendance
	if err := r.DB.GetContext(ctx, &a, query, userID, meetingID, status, markedAt); err != nil {
		logger.Error("AttendanceRepository:Upsert", err)
		return nil, err
	}
	return &a, nil
}

func (r *AttendanceRepository) GetByUserAndMeeting(ctx context.Context, userID, meetingID uuid.UUID) (*entity.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE user_id = $1 AND meeting_id = $2`

	var a entity.Attendance
	if err := r.DB.GetContext(ctx, &a, query, userID, meetingID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("AttendanceRepository:GetByUserAndMeeting", err)
		return nil, err
	}
	return &a, nil
}

func (r *AttendanceRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE user_id = $1 ORDER BY marked_at DESC`

	rows := []entity.Attendance{}
	if err := r.DB.SelectContext(ctx, &rows, query, userID); err != nil {
		logger.Error("AttendanceRepository:ListByUser", err)
		return nil, err
	}
	return rows, nil
}

func (r *AttendanceRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]entity.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE meeting_id = $1 ORDER BY marked_at`

	rows := []entity.Attendance{}
	if err := r.DB.SelectContext(ctx, &rows, query, meetingID); err != nil {
		logger.Error("AttendanceRepository:ListByMeeting", err)
		return nil, err
	}
	return rows, nil
}
