package service

import (
	"context"
	"fmt"
	"time"

	"beacon-attendance/core/constants"
	"beacon-attendance/core/errors"
	"beacon-attendance/core/logger"
	"beacon-attendance/core/storage"
	"beacon-attendance/modules/report/dto"
	"beacon-attendance/modules/report/entity"
	"beacon-attendance/modules/report/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type ReportService struct {
	repo    repository.ReportRepositoryInterface
	archive storage.ObjectStore
	loc     *time.Location
}

type ReportServiceInterface interface {
	GenerateOrGetMeetingReport(ctx context.Context, meetingID uuid.UUID) (*dto.MeetingReportResponse, *errors.AppError)
	GenerateGeneralReport(ctx context.Context, userID uuid.UUID) (*dto.GeneralReportResponse, *errors.AppError)
}

func NewReportService(repo repository.ReportRepositoryInterface, archive storage.ObjectStore, loc *time.Location) *ReportService {
	if archive == nil {
		archive = storage.NopStore{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{repo: repo, archive: archive, loc: loc}
}

// GenerateOrGetMeetingReport returns the stored report for the meeting, or
// computes and stores it on first call.
func (s *ReportService) GenerateOrGetMeetingReport(ctx context.Context, meetingID uuid.UUID) (*dto.MeetingReportResponse, *errors.AppError) {
	meeting, err := s.repo.GetMeetingSummary(ctx, meetingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get meeting", err)
	}
	if meeting == nil {
		return nil, errors.NewAppError(errors.ErrMeetingNotFound, "meeting not found", nil)
	}

	existing, err := s.repo.GetMeetingReport(ctx, meetingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get report", err)
	}
	if existing != nil {
		return dto.ToMeetingReportResponse(existing, s.loc), nil
	}

	counts, err := s.repo.CountByStatusForMeeting(ctx, meetingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to count attendance", err)
	}
	tally := TallyOf(counts)

	report := &entity.MeetingReport{
		MeetingID:      meetingID,
		ReportDate:     s.reportDate(meeting),
		MeetingTitle:   meeting.Title,
		InvitedTotal:   tally.Total,
		AttendeesTotal: tally.Present,
		LateTotal:      tally.Late,
		AbsentTotal:    tally.Absent,
		AttendancePct:  Percent(tally.Present, tally.Total),
		LatePct:        Percent(tally.Late, tally.Total),
		AbsentPct:      Percent(tally.Absent, tally.Total),
	}

	created, err := s.repo.InsertMeetingReport(ctx, report)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to store report", err)
	}

	// A concurrent caller may have won the insert; either way the stored row is returned.
	stored, err := s.repo.GetMeetingReport(ctx, meetingID)
	if err != nil || stored == nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get report", err)
	}

	if created {
		logger.Info("ReportService:GenerateOrGetMeetingReport:Created", "meeting_id", meetingID, "invited", tally.Total)
		s.archiveReport(ctx, stored)
	}
	return dto.ToMeetingReportResponse(stored, s.loc), nil
}

// GenerateGeneralReport is always computed from live attendance rows.
func (s *ReportService) GenerateGeneralReport(ctx context.Context, userID uuid.UUID) (*dto.GeneralReportResponse, *errors.AppError) {
	counts, err := s.repo.CountByStatusForUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to count attendance", err)
	}
	tally := TallyOf(counts)

	return &dto.GeneralReportResponse{
		UserID:        userID.String(),
		TotalMeetings: tally.Total,
		PresentTotal:  tally.Present,
		LateTotal:     tally.Late,
		AbsentTotal:   tally.Absent,
		PresentPct:    Percent(tally.Present, tally.Total),
		LatePct:       Percent(tally.Late, tally.Total),
		AbsentPct:     Percent(tally.Absent, tally.Total),
	}, nil
}

func (s *ReportService) reportDate(m *entity.MeetingSummary) string {
	at := m.CreatedAt
	if m.StartTime != nil {
		at = *m.StartTime
	}
	return at.In(s.loc).Format(constants.ReportDateLayout)
}

// archiveReport is best effort: the stored row is the source of truth.
func (s *ReportService) archiveReport(ctx context.Context, report *entity.MeetingReport) {
	key := ArchiveKey(report)
	if _, err := s.archive.PutJSON(ctx, key, dto.ToMeetingReportResponse(report, s.loc)); err != nil {
		logger.Warn("ReportService:ArchiveReport", "meeting_id", report.MeetingID, "key", key, "error", err)
	}
}

// ArchiveKey is <date>/<title-slug>-<meeting id>.json.
func ArchiveKey(report *entity.MeetingReport) string {
	name := slug.Make(report.MeetingTitle)
	if name == "" {
		name = "meeting"
	}
	return fmt.Sprintf("%s/%s-%s.json", report.ReportDate, name, report.MeetingID)
}
