package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"beacon-attendance/core/database"
	"beacon-attendance/core/entity"
	"beacon-attendance/core/logger"
	"beacon-attendance/core/params"
	meetingEntity "beacon-attendance/modules/meeting/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// MeetingRepository handles meeting persistence. When tx is set every
// statement runs inside that transaction.
type MeetingRepository struct {
	DB database.Database
	tx database.Executor
}

func NewMeetingRepository(db database.Database) *MeetingRepository {
	return &MeetingRepository{DB: db}
}

type MeetingRepositoryInterface interface {
	WithTx(ctx context.Context, fn func(repo MeetingRepositoryInterface) error) error

	// Scheduling
	LookupBeacon(ctx context.Context, beaconID string) (*meetingEntity.BeaconRef, error)
	LockLocation(ctx context.Context, location string) error
	FindBeaconOverlap(ctx context.Context, beaconID string, w meetingEntity.Window) (*meetingEntity.Meeting, error)
	FindLocationOverlap(ctx context.Context, location string, w meetingEntity.Window) (*meetingEntity.Meeting, error)

	// CRUD
	CreateMeeting(ctx context.Context, meeting *meetingEntity.Meeting) (*meetingEntity.Meeting, error)
	AddInvitee(ctx context.Context, meetingID, userID uuid.UUID, markedAt time.Time) error
	GetMeetingByID(ctx context.Context, id uuid.UUID) (*meetingEntity.Meeting, error)
	GetMeetings(ctx context.Context, params params.QueryParams) (*entity.Pagination[meetingEntity.Meeting], error)
	GetMeetingsForUser(ctx context.Context, userID uuid.UUID) ([]meetingEntity.Meeting, error)
	DeleteMeeting(ctx context.Context, id uuid.UUID) error
}

const meetingColumns = `
	m.id, m.title, m.description, m.start_time, m.end_time, m.topics, m.repeat_weekly,
	m.note, m.location, m.coordinator_id, m.beacon_id, b.location AS beacon_location, m.created_at`

const meetingFrom = `
	FROM meetings m
	LEFT JOIN beacons b ON b.id = m.beacon_id`

func (r *MeetingRepository) exec() database.Executor {
	if r.tx != nil {
		return r.tx
	}
	return r.DB.SQLx()
}

// WithTx runs fn against a repository bound to a read committed transaction.
// Nested calls reuse the outer transaction.
func (r *MeetingRepository) WithTx(ctx context.Context, fn func(repo MeetingRepositoryInterface) error) error {
	if r.tx != nil {
		return fn(r)
	}
	return r.DB.WithTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, func(tx *sqlx.Tx) error {
		return fn(&MeetingRepository{DB: r.DB, tx: tx})
	})
}

// ===================== Scheduling =====================

func (r *MeetingRepository) LookupBeacon(ctx context.Context, beaconID string) (*meetingEntity.BeaconRef, error) {
	query := `SELECT id, location, major, minor FROM beacons WHERE id = $1`
	if r.tx != nil {
		query += ` FOR UPDATE`
	}

	var ref meetingEntity.BeaconRef
	err := r.exec().GetContext(ctx, &ref, query, beaconID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("MeetingRepository:LookupBeacon", err)
		return nil, err
	}
	return &ref, nil
}

// LockLocation serialises bookings of one location until the transaction ends.
func (r *MeetingRepository) LockLocation(ctx context.Context, location string) error {
	if r.tx == nil {
		return nil
	}
	_, err := r.tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, location)
	if err != nil {
		logger.Error("MeetingRepository:LockLocation", err)
	}
	return err
}

func (r *MeetingRepository) FindBeaconOverlap(ctx context.Context, beaconID string, w meetingEntity.Window) (*meetingEntity.Meeting, error) {
	query := `SELECT` + meetingColumns + meetingFrom + `
		WHERE m.beacon_id = $1
		  AND m.start_time IS NOT NULL AND m.end_time IS NOT NULL
		  AND m.start_time < $3 AND m.end_time > $2
		ORDER BY m.start_time
		LIMIT 1`
	return r.getOne(ctx, "FindBeaconOverlap", query, beaconID, w.Start, w.End)
}

func (r *MeetingRepository) FindLocationOverlap(ctx context.Context, location string, w meetingEntity.Window) (*meetingEntity.Meeting, error) {
	query := `SELECT` + meetingColumns + `
		FROM meetings m
		JOIN beacons b ON b.id = m.beacon_id
		WHERE b.location = $1
		  AND m.start_time IS NOT NULL AND m.end_time IS NOT NULL
		  AND m.start_time < $3 AND m.end_time > $2
		ORDER BY m.start_time
		LIMIT 1`
	return r.getOne(ctx, "FindLocationOverlap", query, location, w.Start, w.End)
}

// ===================== CRUD =====================

func (r *MeetingRepository) CreateMeeting(ctx context.Context, meeting *meetingEntity.Meeting) (*meetingEntity.Meeting, error) {
	query := `
		INSERT INTO meetings (title, description, start_time, end_time, topics, repeat_weekly, note, location, coordinator_id, beacon_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	created := *meeting
	err := r.exec().QueryRowxContext(ctx, query,
		meeting.Title, meeting.Description, meeting.StartTime, meeting.EndTime, meeting.Topics,
		meeting.RepeatWeekly, meeting.Note, meeting.Location, meeting.CoordinatorID, meeting.BeaconID,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		logger.Error("MeetingRepository:CreateMeeting", err)
		return nil, err
	}
	return &created, nil
}

// AddInvitee records userID as invited with the default absent status.
// An existing row for the pair is left untouched.
func (r *MeetingRepository) AddInvitee(ctx context.Context, meetingID, userID uuid.UUID, markedAt time.Time) error {
	query := `
		INSERT INTO attendance (user_id, meeting_id, status, marked_at)
		VALUES ($1, $2, 'absent', $3)
		ON CONFLICT (user_id, meeting_id) DO NOTHING`

	_, err := r.exec().ExecContext(ctx, query, userID, meetingID, markedAt)
	if err != nil {
		logger.Error("MeetingRepository:AddInvitee", err)
	}
	return err
}

func (r *MeetingRepository) GetMeetingByID(ctx context.Context, id uuid.UUID) (*meetingEntity.Meeting, error) {
	query := `SELECT` + meetingColumns + meetingFrom + ` WHERE m.id = $1`
	return r.getOne(ctx, "GetMeetingByID", query, id)
}

func (r *MeetingRepository) GetMeetings(ctx context.Context, params params.QueryParams) (*entity.Pagination[meetingEntity.Meeting], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM meetings m WHERE ($1 = '' OR m.title ILIKE '%' || $1 || '%')`
	if err := r.exec().GetContext(ctx, &total, countQuery, params.Search); err != nil {
		logger.Error("MeetingRepository:GetMeetings:Count", err)
		return nil, err
	}

	query := `SELECT` + meetingColumns + meetingFrom + `
		WHERE ($1 = '' OR m.title ILIKE '%' || $1 || '%')
		ORDER BY m.start_time DESC NULLS LAST, m.created_at DESC
		LIMIT $2 OFFSET $3`

	meetings := []meetingEntity.Meeting{}
	if err := r.exec().SelectContext(ctx, &meetings, query, params.Search, params.PageSize, params.Offset()); err != nil {
		logger.Error("MeetingRepository:GetMeetings", err)
		return nil, err
	}

	return &entity.Pagination[meetingEntity.Meeting]{
		Items:      meetings,
		TotalItems: total,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

// GetMeetingsForUser lists meetings the user coordinates or is invited to.
func (r *MeetingRepository) GetMeetingsForUser(ctx context.Context, userID uuid.UUID) ([]meetingEntity.Meeting, error) {
	query := `SELECT` + meetingColumns + meetingFrom + `
		WHERE m.coordinator_id = $1
		   OR EXISTS (SELECT 1 FROM attendance a WHERE a.meeting_id = m.id AND a.user_id = $1)
		ORDER BY m.start_time DESC NULLS LAST, m.created_at DESC`

	meetings := []meetingEntity.Meeting{}
	if err := r.exec().SelectContext(ctx, &meetings, query, userID); err != nil {
		logger.Error("MeetingRepository:GetMeetingsForUser", err)
		return nil, err
	}
	return meetings, nil
}

func (r *MeetingRepository) DeleteMeeting(ctx context.Context, id uuid.UUID) error {
	_, err := r.exec().ExecContext(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		logger.Error("MeetingRepository:DeleteMeeting", err)
	}
	return err
}

func (r *MeetingRepository) getOne(ctx context.Context, op, query string, args ...any) (*meetingEntity.Meeting, error) {
	var meeting meetingEntity.Meeting
	err := r.exec().GetContext(ctx, &meeting, query, args...)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("MeetingRepository:"+op, err)
		return nil, err
	}
	return &meeting, nil
}
