package service

import (
	"context"
	"strings"
	"time"

	"beacon-attendance/core/database"
	coredto "beacon-attendance/core/dto"
	"beacon-attendance/core/errors"
	"beacon-attendance/core/logger"
	"beacon-attendance/core/params"
	"beacon-attendance/modules/meeting/dto"
	"beacon-attendance/modules/meeting/entity"
	"beacon-attendance/modules/meeting/repository"

	"github.com/google/uuid"
)

type MeetingService struct {
	repo     repository.MeetingRepositoryInterface
	window   *TimeWindow
	resolver *ConflictResolver
	now      func() time.Time
}

type MeetingServiceInterface interface {
	CreateMeeting(ctx context.Context, coordinatorID uuid.UUID, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, *errors.AppError)
	GetMeetings(ctx context.Context, params params.QueryParams) (*coredto.Pagination[dto.MeetingResponse], *errors.AppError)
	GetMyMeetings(ctx context.Context, userID uuid.UUID) ([]dto.MeetingResponse, *errors.AppError)
	GetMeetingByID(ctx context.Context, id uuid.UUID) (*dto.MeetingResponse, *errors.AppError)
	DeleteMeeting(ctx context.Context, id uuid.UUID, requesterID uuid.UUID) *errors.AppError
}

func NewMeetingService(repo repository.MeetingRepositoryInterface, window *TimeWindow) *MeetingService {
	return &MeetingService{
		repo:     repo,
		window:   window,
		resolver: NewConflictResolver(),
		now:      time.Now,
	}
}

// CreateMeeting checks for conflicts and inserts the meeting in one
// transaction. The beacon row and the location stay locked until commit,
// and the coordinator is recorded as invited.
func (s *MeetingService) CreateMeeting(ctx context.Context, coordinatorID uuid.UUID, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, *errors.AppError) {
	var start *time.Time
	if raw := trimmed(req.StartTime); raw != "" {
		parsed, err := s.window.ParseInstant(raw)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidWindow, "start_time is not a valid instant", err)
		}
		start = &parsed
	}

	window, appErr := s.window.ComputeWindow(start, req.DurationMinutes)
	if appErr != nil {
		return nil, appErr
	}

	meeting := &entity.Meeting{
		Title:         strings.TrimSpace(req.Title),
		Description:   nonEmpty(trimmed(req.Description)),
		Topics:        nonEmpty(req.Topics),
		RepeatWeekly:  req.RepeatWeekly,
		Note:          nonEmpty(req.Note),
		Location:      nonEmpty(trimmed(req.Location)),
		CoordinatorID: &coordinatorID,
		BeaconID:      nonEmpty(trimmed(req.BeaconID)),
	}
	if window != nil {
		meeting.StartTime = &window.Start
		meeting.EndTime = &window.End
	}

	var created *entity.Meeting
	err := s.repo.WithTx(ctx, func(tx repository.MeetingRepositoryInterface) error {
		location := trimmed(meeting.Location)

		if meeting.BeaconID != nil {
			ref, err := tx.LookupBeacon(ctx, *meeting.BeaconID)
			if err != nil {
				return errors.NewAppError(errors.ErrGetFailed, "failed to look up beacon", err)
			}
			if ref == nil {
				return errors.NewAppError(errors.ErrBeaconNotFound, "beacon not found", nil)
			}
			if location == "" {
				location = ref.Location
			}
		}

		if window != nil && location != "" {
			if err := tx.LockLocation(ctx, location); err != nil {
				return errors.NewAppError(errors.ErrCreateFailed, "failed to reserve location", err)
			}
		}

		if appErr := s.resolver.CheckConflicts(ctx, tx, window, meeting.BeaconID, meeting.Location); appErr != nil {
			return appErr
		}

		var err error
		created, err = tx.CreateMeeting(ctx, meeting)
		if err != nil {
			return translateCreateError(err)
		}

		if err := tx.AddInvitee(ctx, created.ID, coordinatorID, s.now()); err != nil {
			return errors.NewAppError(errors.ErrCreateFailed, "failed to record coordinator attendance", err)
		}
		return nil
	})
	if err != nil {
		return nil, errors.AsAppError(err)
	}

	logger.Info("MeetingService:CreateMeeting", "meeting_id", created.ID, "coordinator_id", coordinatorID)

	// BeaconLocation is only populated by reads.
	fresh, err := s.repo.GetMeetingByID(ctx, created.ID)
	if err == nil && fresh != nil {
		created = fresh
	}
	return dto.ToMeetingResponse(created, s.window.Location()), nil
}

// translateCreateError maps store level constraint violations that can only
// surface when a concurrent booking slipped past the checks.
func translateCreateError(err error) *errors.AppError {
	switch {
	case database.IsExclusionViolation(err, database.ConstraintMeetingsBeaconWindow):
		return errors.NewAppError(errors.ErrBeaconOverlap, "beacon is already booked for an overlapping meeting", err)
	case database.IsForeignKeyViolation(err, database.ConstraintMeetingsBeaconFK):
		return errors.NewAppError(errors.ErrBeaconNotFound, "beacon not found", err)
	case database.IsCheckViolation(err, database.ConstraintMeetingsWindowOrder):
		return errors.NewAppError(errors.ErrInvalidWindow, "end must be after start", err)
	}
	return errors.NewAppError(errors.ErrCreateFailed, "failed to create meeting", err)
}

func (s *MeetingService) GetMeetings(ctx context.Context, params params.QueryParams) (*coredto.Pagination[dto.MeetingResponse], *errors.AppError) {
	page, err := s.repo.GetMeetings(ctx, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get meetings", err)
	}
	items := dto.ToMeetingResponses(page.Items, s.window.Location())
	return coredto.NewPagination(items, page.TotalItems, page.PageNumber, page.PageSize), nil
}

func (s *MeetingService) GetMyMeetings(ctx context.Context, userID uuid.UUID) ([]dto.MeetingResponse, *errors.AppError) {
	meetings, err := s.repo.GetMeetingsForUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get meetings", err)
	}
	return dto.ToMeetingResponses(meetings, s.window.Location()), nil
}

func (s *MeetingService) GetMeetingByID(ctx context.Context, id uuid.UUID) (*dto.MeetingResponse, *errors.AppError) {
	meeting, err := s.repo.GetMeetingByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get meeting", err)
	}
	if meeting == nil {
		return nil, errors.NewAppError(errors.ErrMeetingNotFound, "meeting not found", nil)
	}
	return dto.ToMeetingResponse(meeting, s.window.Location()), nil
}

// DeleteMeeting removes the meeting together with its attendance and report.
func (s *MeetingService) DeleteMeeting(ctx context.Context, id uuid.UUID, requesterID uuid.UUID) *errors.AppError {
	meeting, err := s.repo.GetMeetingByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "failed to get meeting", err)
	}
	if meeting == nil {
		return errors.NewAppError(errors.ErrMeetingNotFound, "meeting not found", nil)
	}
	if !meeting.IsCoordinator(requesterID) {
		return errors.NewAppError(errors.ErrForbidden, "only the coordinator can delete this meeting", nil)
	}
	if err := s.repo.DeleteMeeting(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete meeting", err)
	}
	logger.Info("MeetingService:DeleteMeeting", "meeting_id", id, "requester_id", requesterID)
	return nil
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
