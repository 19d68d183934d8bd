package service

import (
	"context"
	"time"

	coredto "beacon-attendance/core/dto"
	coreEntity "beacon-attendance/core/entity"
	"beacon-attendance/core/errors"
	"beacon-attendance/core/logger"
	"beacon-attendance/core/params"
	"beacon-attendance/modules/notification/dto"
	"beacon-attendance/modules/notification/entity"

	"github.com/google/uuid"
)

// InboxRepository is the storage the in-app inbox needs.
type InboxRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByUserID(ctx context.Context, userID uuid.UUID, params params.QueryParams) (*entity.PaginatedNotificationEntity, error)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

type NotificationServiceInterface interface {
	Create(ctx context.Context, req *dto.CreateNotificationRequest) *errors.AppError
	GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*coredto.Pagination[dto.NotificationResponse], *errors.AppError)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) *errors.AppError
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError
	CountUnread(ctx context.Context, userID uuid.UUID) (int, *errors.AppError)
}

type NotificationService struct {
	repo InboxRepository
	loc  *time.Location
	now  func() time.Time
}

func NewNotificationService(repo InboxRepository, loc *time.Location) *NotificationService {
	if loc == nil {
		loc = time.UTC
	}
	return &NotificationService{repo: repo, loc: loc, now: time.Now}
}

func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) *errors.AppError {
	now := s.now().UTC()
	notif := &entity.Notification{
		UserID:    req.UserID,
		MeetingID: req.MeetingID,
		Title:     req.Title,
		Message:   req.Message,
		Type:      req.Type,
		Data:      entity.JSONB(req.Data),
		IsRead:    false,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.repo.Create(ctx, notif); err != nil {
		logger.Error("NotificationService:Create", err)
		return errors.NewAppError(errors.ErrCreateFailed, "failed to create notification", err)
	}
	return nil
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*coredto.Pagination[dto.NotificationResponse], *errors.AppError) {
	page, err := s.repo.GetByUserID(ctx, userID, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get notifications", err)
	}

	items := make([]dto.NotificationResponse, 0, len(page.Items))
	for _, n := range page.Items {
		items = append(items, dto.ToNotificationResponse(n, s.loc))
	}
	return coredto.NewPagination(items, page.TotalItems, page.PageNumber, page.PageSize), nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) *errors.AppError {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return errors.New(errors.ErrInvalidInput, "invalid notification id %q", raw)
		}
		parsed = append(parsed, id)
	}

	if err := s.repo.MarkAsRead(ctx, userID, parsed); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to mark as read", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError {
	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to mark all as read", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, *errors.AppError) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrGetFailed, "failed to count unread", err)
	}
	return count, nil
}
