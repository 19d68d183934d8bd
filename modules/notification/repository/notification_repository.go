package repository

import (
	"context"
	"time"

	"beacon-attendance/core/database"
	"beacon-attendance/core/logger"
	"beacon-attendance/core/params"
	"beacon-attendance/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type NotificationRepository struct {
	db database.Database
}

func NewNotificationRepository(db database.Database) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (title, message, type, data, user_id, meeting_id, is_read, created_at, updated_at)
		VALUES (:title, :message, :type, :data, :user_id, :meeting_id, :is_read, :created_at, :updated_at)
		RETURNING id
	`
	rows, err := r.db.NamedQueryContext(ctx, query, notification)
	if err != nil {
		logger.Error("NotificationRepository:Create:Error:", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&notification.ID)
	}
	return rows.Err()
}

func (r *NotificationRepository) GetByUserID(ctx context.Context, userID uuid.UUID, params params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	baseQuery := `FROM notifications WHERE user_id = $1`

	var totalItems int
	err := r.db.GetContext(ctx, &totalItems, "SELECT COUNT(*) "+baseQuery, userID)
	if err != nil {
		logger.Error("NotificationRepository:GetByUserID:Count:Error:", err)
		return nil, err
	}

	query := `
		SELECT id, user_id, meeting_id, title, message, type, data, is_read, created_at, updated_at ` + baseQuery + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	notifications := []entity.Notification{}
	err = r.db.SelectContext(ctx, &notifications, query, userID, params.PageSize, params.Offset())
	if err != nil {
		logger.Error("NotificationRepository:GetByUserID:Select:Error:", err)
		return nil, err
	}

	return &entity.PaginatedNotificationEntity{
		Items:      notifications,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`UPDATE notifications SET is_read = true, updated_at = now() WHERE user_id = ? AND id IN (?)`, userID, ids)
	if err != nil {
		return err
	}

	query = r.db.SQLx().Rebind(query)
	if err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.Error("NotificationRepository:MarkAsRead:Error:", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true, updated_at = now() WHERE user_id = $1 AND is_read = false`
	if err := r.db.ExecContext(ctx, query, userID); err != nil {
		logger.Error("NotificationRepository:MarkAllAsRead:Error:", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		logger.Error("NotificationRepository:CountUnread:Error:", err)
		return 0, err
	}
	return count, nil
}

// ListStartingBetween returns meetings with from <= start_time < to.
func (r *NotificationRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]entity.UpcomingMeeting, error) {
	query := `
		SELECT id, title, start_time, end_time
		FROM meetings
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time
	`
	meetings := []entity.UpcomingMeeting{}
	if err := r.db.SelectContext(ctx, &meetings, query, from.UTC(), to.UTC()); err != nil {
		logger.Error("NotificationRepository:ListStartingBetween", err)
		return nil, err
	}
	return meetings, nil
}

// ListRecipients returns the invitees of a meeting that registered a push device.
func (r *NotificationRepository) ListRecipients(ctx context.Context, meetingID uuid.UUID) ([]entity.Recipient, error) {
	query := `
		SELECT u.id AS user_id, u.push_player_id
		FROM attendance a
		JOIN users u ON u.id = a.user_id
		WHERE a.meeting_id = $1
		  AND u.push_player_id IS NOT NULL
		  AND u.push_player_id <> ''
		ORDER BY u.id
	`
	recipients := []entity.Recipient{}
	if err := r.db.SelectContext(ctx, &recipients, query, meetingID); err != nil {
		logger.Error("NotificationRepository:ListRecipients", err)
		return nil, err
	}
	return recipients, nil
}
