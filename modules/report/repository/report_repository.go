package repository

import (
	"context"
	"database/sql"
	stderrors "errors"

	"beacon-attendance/core/database"
	"beacon-attendance/core/logger"
	"beacon-attendance/modules/report/entity"

	"github.com/google/uuid"
)

type ReportRepository struct {
	DB database.Database
}

func NewReportRepository(db database.Database) *ReportRepository {
	return &ReportRepository{DB: db}
}

type ReportRepositoryInterface interface {
	GetMeetingSummary(ctx context.Context, meetingID uuid.UUID) (*entity.MeetingSummary, error)
	GetMeetingReport(ctx context.Context, meetingID uuid.UUID) (*entity.MeetingReport, error)
	CountByStatusForMeeting(ctx context.Context, meetingID uuid.UUID) ([]entity.StatusCount, error)
	CountByStatusForUser(ctx context.Context, userID uuid.UUID) ([]entity.StatusCount, error)
	// InsertMeetingReport stores report unless one already exists and
	// reports whether this call created it.
	InsertMeetingReport(ctx context.Context, report *entity.MeetingReport) (bool, error)
}

const reportColumns = `
	id, meeting_id, report_date, meeting_title, invited_total, attendees_total, late_total,
	absent_total, attendance_pct, late_pct, absent_pct, created_at`

func (r *ReportRepository) GetMeetingSummary(ctx context.Context, meetingID uuid.UUID) (*entity.MeetingSummary, error) {
	var m entity.MeetingSummary
	err := r.DB.GetContext(ctx, &m, `SELECT id, title, start_time, created_at FROM meetings WHERE id = $1`, meetingID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("ReportRepository:GetMeetingSummary", err)
		return nil, err
	}
	return &m, nil
}

func (r *ReportRepository) GetMeetingReport(ctx context.Context, meetingID uuid.UUID) (*entity.MeetingReport, error) {
	var report entity.MeetingReport
	err := r.DB.GetContext(ctx, &report, `SELECT `+reportColumns+` FROM meeting_reports WHERE meeting_id = $1`, meetingID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("ReportRepository:GetMeetingReport", err)
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) CountByStatusForMeeting(ctx context.Context, meetingID uuid.UUID) ([]entity.StatusCount, error) {
	query := `SELECT status, COUNT(*) AS count FROM attendance WHERE meeting_id = $1 GROUP BY status`

	counts := []entity.StatusCount{}
	if err := r.DB.SelectContext(ctx, &counts, query, meetingID); err != nil {
		logger.Error("ReportRepository:CountByStatusForMeeting", err)
		return nil, err
	}
	return counts, nil
}

func (r *ReportRepository) CountByStatusForUser(ctx context.Context, userID uuid.UUID) ([]entity.StatusCount, error) {
	query := `SELECT status, COUNT(*) AS count FROM attendance WHERE user_id = $1 GROUP BY status`

	counts := []entity.StatusCount{}
	if err := r.DB.SelectContext(ctx, &counts, query, userID); err != nil {
		logger.Error("ReportRepository:CountByStatusForUser", err)
		return nil, err
	}
	return counts, nil
}

func (r *ReportRepository) InsertMeetingReport(ctx context.Context, report *entity.MeetingReport) (bool, error) {
	query := `
		INSERT INTO meeting_reports (meeting_id, report_date, meeting_title, invited_total, attendees_total,
			late_total, absent_total, attendance_pct, late_pct, absent_pct)
		VALUES (:meeting_id, :report_date, :meeting_title, :invited_total, :attendees_total,
			:late_total, :absent_total, :attendance_pct, :late_pct, :absent_pct)
		ON CONFLICT (meeting_id) DO NOTHING`

	result, err := r.DB.NamedExecContext(ctx, query, report)
	if err != nil {
		logger.Error("ReportRepository:InsertMeetingReport", err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
