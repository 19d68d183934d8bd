package service

import (
	"context"
	"testing"
	"time"

	"beacon-attendance/core/errors"
	"beacon-attendance/modules/attendance/entity"

	"github.com/google/uuid"
)

type pairKey struct{ user, meeting uuid.UUID }

type fakeRepo struct {
	meetings map[uuid.UUID]*entity.MeetingWindow
	users    map[uuid.UUID]bool
	rows     map[pairKey]*entity.Attendance
	upserts  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		meetings: map[uuid.UUID]*entity.MeetingWindow{},
		users:    map[uuid.UUID]bool{},
		rows:     map[pairKey]*entity.Attendance{},
	}
}

func (f *fakeRepo) GetMeetingWindow(_ context.Context, id uuid.UUID) (*entity.MeetingWindow, error) {
	return f.meetings[id], nil
}

func (f *fakeRepo) UserExists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.users[id], nil
}

func (f *fakeRepo) Upsert(_ context.Context, userID, meetingID uuid.UUID, status entity.Status, markedAt time.Time) (*entity.Attendance, error) {
	f.upserts++
	key := pairKey{userID, meetingID}
	row, ok := f.rows[key]
	if !ok {
		row = &entity.Attendance{ID: uuid.New(), UserID: userID, MeetingID: meetingID}
		f.rows[key] = row
	}
	row.Status = status
	row.MarkedAt = markedAt
	copied := *row
	return &copied, nil
}

func (f *fakeRepo) GetByUserAndMeeting(_ context.Context, userID, meetingID uuid.UUID) (*entity.Attendance, error) {
	row, ok := f.rows[pairKey{userID, meetingID}]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]entity.Attendance, error) {
	var out []entity.Attendance
	for k, row := range f.rows {
		if k.user == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByMeeting(_ context.Context, meetingID uuid.UUID) ([]entity.Attendance, error) {
	var out []entity.Attendance
	for k, row := range f.rows {
		if k.meeting == meetingID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func setup() (*AttendanceService, *fakeRepo, uuid.UUID, uuid.UUID) {
	repo := newFakeRepo()
	coordinator, meetingID := uuid.New(), uuid.New()
	w := nineToTen()
	w.ID = meetingID
	w.CoordinatorID = &coordinator
	repo.meetings[meetingID] = w
	repo.users[coordinator] = true

	svc := NewAttendanceService(repo, time.UTC)
	svc.now = func() time.Time { return clock(12, 0, 0) }
	return svc, repo, coordinator, meetingID
}

func TestMarkSelf_OverwritesInPlace(t *testing.T) {
	svc, repo, _, meetingID := setup()
	ctx := context.Background()
	user := uuid.New()

	first, appErr := svc.MarkSelf(ctx, user, meetingID, clock(9, 20, 0))
	if appErr != nil || first.Status != entity.StatusPresent {
		t.Fatalf("first mark = %+v, %v", first, appErr)
	}

	second, appErr := svc.MarkSelf(ctx, user, meetingID, clock(9, 45, 0))
	if appErr != nil || second.Status != entity.StatusLate {
		t.Fatalf("second mark = %+v, %v", second, appErr)
	}

	if len(repo.rows) != 1 {
		t.Fatalf("expected exactly one row for the pair, have %d", len(repo.rows))
	}
	if first.ID != second.ID {
		t.Fatalf("re-marking must update the same row")
	}
}

func TestMarkSelf_RejectionsRecordNothing(t *testing.T) {
	svc, repo, _, meetingID := setup()
	ctx := context.Background()

	cases := map[time.Time]errors.ErrorCode{
		clock(8, 59, 0): errors.ErrNotYetStarted,
		clock(10, 1, 0): errors.ErrAlreadyEnded,
	}
	for at, want := range cases {
		_, appErr := svc.MarkSelf(ctx, uuid.New(), meetingID, at)
		if appErr == nil || appErr.Code != want {
			t.Fatalf("mark at %s: expected %s, got %v", at.Format("15:04"), want, appErr)
		}
	}
	if repo.upserts != 0 {
		t.Fatalf("rejected markings must not be recorded")
	}

	if _, appErr := svc.MarkSelf(ctx, uuid.New(), uuid.New(), clock(9, 10, 0)); appErr == nil || appErr.Code != errors.ErrMeetingNotFound {
		t.Fatalf("expected MEETING_NOT_FOUND, got %v", appErr)
	}
}

func TestAssignAttendance(t *testing.T) {
	svc, repo, coordinator, meetingID := setup()
	ctx := context.Background()
	attendee := uuid.New()
	repo.users[attendee] = true

	if appErr := svc.AuthorizeAssignment(ctx, uuid.New(), meetingID); appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("expected FORBIDDEN for non coordinator, got %v", appErr)
	}
	if appErr := svc.AuthorizeAssignment(ctx, coordinator, meetingID); appErr != nil {
		t.Fatalf("coordinator should be allowed: %v", appErr)
	}

	// No time gate: the clock is long past the meeting end.
	got, appErr := svc.AssignAttendance(ctx, coordinator, attendee, meetingID, entity.StatusPresent)
	if appErr != nil || got.Status != entity.StatusPresent {
		t.Fatalf("assign = %+v, %v", got, appErr)
	}

	got, appErr = svc.AssignAttendance(ctx, coordinator, attendee, meetingID, "")
	if appErr != nil || got.Status != entity.StatusAbsent {
		t.Fatalf("default status should be absent, got %+v, %v", got, appErr)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("expected one row, have %d", len(repo.rows))
	}

	if _, appErr := svc.AssignAttendance(ctx, coordinator, uuid.New(), meetingID, entity.StatusLate); appErr == nil || appErr.Code != errors.ErrUserNotFound {
		t.Fatalf("expected USER_NOT_FOUND, got %v", appErr)
	}
	if _, appErr := svc.AssignAttendance(ctx, coordinator, attendee, uuid.New(), entity.StatusLate); appErr == nil || appErr.Code != errors.ErrMeetingNotFound {
		t.Fatalf("expected MEETING_NOT_FOUND, got %v", appErr)
	}
}

func TestGetMyAttendanceForMeeting_NotFound(t *testing.T) {
	svc, _, _, meetingID := setup()
	_, appErr := svc.GetMyAttendanceForMeeting(context.Background(), uuid.New(), meetingID)
	if appErr == nil || appErr.Code != errors.ErrAttendanceNotFound {
		t.Fatalf("expected ATTENDANCE_NOT_FOUND, got %v", appErr)
	}
}
