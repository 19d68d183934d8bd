package service

import (
	"context"
	"time"

	"beacon-attendance/core/errors"
	"beacon-attendance/core/logger"
	"beacon-attendance/modules/attendance/dto"
	"beacon-attendance/modules/attendance/entity"
	"beacon-attendance/modules/attendance/repository"

	"github.com/google/uuid"
)

type AttendanceService struct {
	repo repository.AttendanceRepositoryInterface
	loc  *time.Location
	now  func() time.Time
}

type AttendanceServiceInterface interface {
	MarkSelf(ctx context.Context, userID, meetingID uuid.UUID, at time.Time) (*dto.AttendanceResponse, *errors.AppError)
	AuthorizeAssignment(ctx context.Context, requesterID, meetingID uuid.UUID) *errors.AppError
	AssignAttendance(ctx context.Context, coordinatorID, targetUserID, meetingID uuid.UUID, status entity.Status) (*dto.AttendanceResponse, *errors.AppError)
	GetMyAttendance(ctx context.Context, userID uuid.UUID) ([]dto.AttendanceResponse, *errors.AppError)
	GetMyAttendanceForMeeting(ctx context.Context, userID, meetingID uuid.UUID) (*dto.AttendanceResponse, *errors.AppError)
	ListForMeeting(ctx context.Context, meetingID uuid.UUID) ([]dto.AttendanceResponse, *errors.AppError)
}

func NewAttendanceService(repo repository.AttendanceRepositoryInterface, loc *time.Location) *AttendanceService {
	return &AttendanceService{repo: repo, loc: loc, now: time.Now}
}

// MarkSelf records the caller's own attendance at instant at. The status is
// always derived from the meeting window.
func (s *AttendanceService) MarkSelf(ctx context.Context, userID, meetingID uuid.UUID, at time.Time) (*dto.AttendanceResponse, *errors.AppError) {
	meeting, appErr := s.getMeeting(ctx, meetingID)
	if appErr != nil {
		return nil, appErr
	}

	status, appErr := DeriveStatus(meeting, at)
	if appErr != nil {
		logger.Info("AttendanceService:MarkSelf:Rejected", "meeting_id", meetingID, "user_id", userID, "code", appErr.Code)
		return nil, appErr
	}

	row, err := s.repo.Upsert(ctx, userID, meetingID, status, at)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to record attendance", err)
	}

	logger.Info("AttendanceService:MarkSelf", "meeting_id", meetingID, "user_id", userID, "status", status)
	return dto.ToAttendanceResponse(row, s.loc), nil
}

// AuthorizeAssignment allows only the meeting's coordinator to assign.
func (s *AttendanceService) AuthorizeAssignment(ctx context.Context, requesterID, meetingID uuid.UUID) *errors.AppError {
	meeting, appErr := s.getMeeting(ctx, meetingID)
	if appErr != nil {
		return appErr
	}
	if meeting.CoordinatorID == nil || *meeting.CoordinatorID != requesterID {
		return errors.NewAppError(errors.ErrForbidden, "only the coordinator can assign attendance", nil)
	}
	return nil
}

// AssignAttendance is an administrative override and bypasses the window gate.
func (s *AttendanceService) AssignAttendance(ctx context.Context, coordinatorID, targetUserID, meetingID uuid.UUID, status entity.Status) (*dto.AttendanceResponse, *errors.AppError) {
	if _, appErr := s.getMeeting(ctx, meetingID); appErr != nil {
		return nil, appErr
	}

	exists, err := s.repo.UserExists(ctx, targetUserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get user", err)
	}
	if !exists {
		return nil, errors.NewAppError(errors.ErrUserNotFound, "user not found", nil)
	}

	if status == "" {
		status = entity.StatusAbsent
	}

	row, err := s.repo.Upsert(ctx, targetUserID, meetingID, status, s.now())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to assign attendance", err)
	}

	logger.Info("AttendanceService:AssignAttendance",
		"meeting_id", meetingID,
		"coordinator_id", coordinatorID,
		"user_id", targetUserID,
		"status", status,
	)
	return dto.ToAttendanceResponse(row, s.loc), nil
}

func (s *AttendanceService) GetMyAttendance(ctx context.Context, userID uuid.UUID) ([]dto.AttendanceResponse, *errors.AppError) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get attendance", err)
	}
	return dto.ToAttendanceResponses(rows, s.loc), nil
}

func (s *AttendanceService) GetMyAttendanceForMeeting(ctx context.Context, userID, meetingID uuid.UUID) (*dto.AttendanceResponse, *errors.AppError) {
	row, err := s.repo.GetByUserAndMeeting(ctx, userID, meetingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get attendance", err)
	}
	if row == nil {
		return nil, errors.NewAppError(errors.ErrAttendanceNotFound, "attendance not found", nil)
	}
	return dto.ToAttendanceResponse(row, s.loc), nil
}

func (s *AttendanceService) ListForMeeting(ctx context.Context, meetingID uuid.UUID) ([]dto.AttendanceResponse, *errors.AppError) {
	rows, err := s.repo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get attendance", err)
	}
	return dto.ToAttendanceResponses(rows, s.loc), nil
}

func (s *AttendanceService) getMeeting(ctx context.Context, meetingID uuid.UUID) (*entity.MeetingWindow, *errors.AppError) {
	meeting, err := s.repo.GetMeetingWindow(ctx, meetingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get meeting", err)
	}
	if meeting == nil {
		return nil, errors.NewAppError(errors.ErrMeetingNotFound, "meeting not found", nil)
	}
	return meeting, nil
}
