package service

import (
	"context"
	"testing"
	"time"

	"beacon-attendance/core/errors"
	"beacon-attendance/modules/meeting/dto"
	"beacon-attendance/modules/meeting/entity"

	"github.com/google/uuid"
)

func newTestService(repo *fakeRepo) *MeetingService {
	svc := NewMeetingService(repo, NewTimeWindowIn(time.UTC))
	svc.now = func() time.Time { return hm(8, 0) }
	return svc
}

func createReq(start string, minutes int, beacon string) *dto.CreateMeetingRequest {
	req := &dto.CreateMeetingRequest{Title: "Weekly sync", StartTime: &start, DurationMinutes: &minutes}
	if beacon != "" {
		req.BeaconID = &beacon
	}
	return req
}

func TestMeetingService_CreateMeeting_BeaconDoubleBooking(t *testing.T) {
	repo := newFakeRepo(entity.BeaconRef{ID: "B", Location: "Room 101"})
	svc := newTestService(repo)
	coordinator := uuid.New()
	ctx := context.Background()

	first, appErr := svc.CreateMeeting(ctx, coordinator, createReq("2025-03-10T14:00:00Z", 60, "B"))
	if appErr != nil {
		t.Fatalf("first creation failed: %v", appErr)
	}
	if first.Location != "Room 101" || first.DurationMinutes != 60 {
		t.Fatalf("unexpected response %+v", first)
	}

	_, appErr = svc.CreateMeeting(ctx, coordinator, createReq("2025-03-10T14:30:00Z", 60, "B"))
	if appErr == nil || appErr.Code != errors.ErrBeaconOverlap {
		t.Fatalf("expected BEACON_OVERLAP, got %v", appErr)
	}
	if len(repo.meetings) != 1 {
		t.Fatalf("rejected meeting must not be stored, have %d", len(repo.meetings))
	}

	if _, appErr = svc.CreateMeeting(ctx, coordinator, createReq("2025-03-10T15:00:00Z", 30, "B")); appErr != nil {
		t.Fatalf("back to back meeting should be accepted: %v", appErr)
	}
	if len(repo.lockedLocation) == 0 || repo.lockedLocation[0] != "Room 101" {
		t.Fatalf("expected location lock on Room 101, got %v", repo.lockedLocation)
	}
}

func TestMeetingService_CreateMeeting_RecordsCoordinatorAsInvited(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	coordinator := uuid.New()

	resp, appErr := svc.CreateMeeting(context.Background(), coordinator, &dto.CreateMeetingRequest{Title: "Unscheduled"})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if resp.StartTime != nil || resp.EndTime != nil {
		t.Fatalf("unscheduled meeting must not get a window")
	}
	id := uuid.MustParse(resp.ID)
	if !repo.invites[inviteKey{id, coordinator}] {
		t.Fatalf("coordinator attendance row missing")
	}
	if resp.CoordinatorID != coordinator.String() {
		t.Fatalf("coordinator = %s", resp.CoordinatorID)
	}
}

func TestMeetingService_CreateMeeting_Errors(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, appErr := svc.CreateMeeting(ctx, uuid.New(), createReq("2025-03-10T14:00:00Z", 0, ""))
	if appErr == nil || appErr.Code != errors.ErrInvalidWindow {
		t.Fatalf("expected INVALID_WINDOW, got %v", appErr)
	}

	_, appErr = svc.CreateMeeting(ctx, uuid.New(), createReq("not a time", 30, ""))
	if appErr == nil || appErr.Code != errors.ErrInvalidWindow {
		t.Fatalf("expected INVALID_WINDOW, got %v", appErr)
	}

	unscheduled := &dto.CreateMeetingRequest{Title: "x", BeaconID: strPtr("ghost")}
	_, appErr = svc.CreateMeeting(ctx, uuid.New(), unscheduled)
	if appErr == nil || appErr.Code != errors.ErrBeaconNotFound {
		t.Fatalf("expected BEACON_NOT_FOUND, got %v", appErr)
	}
}

func TestMeetingService_GetMeetingAndMyMeetings(t *testing.T) {
	repo := newFakeRepo(entity.BeaconRef{ID: "B", Location: "Room 101"})
	svc := newTestService(repo)
	ctx := context.Background()
	coordinator, stranger := uuid.New(), uuid.New()

	created, _ := svc.CreateMeeting(ctx, coordinator, createReq("2025-03-10T09:00:00Z", 60, "B"))

	got, appErr := svc.GetMeetingByID(ctx, uuid.MustParse(created.ID))
	if appErr != nil || got.Location != "Room 101" {
		t.Fatalf("GetMeetingByID = %+v, %v", got, appErr)
	}

	if _, appErr := svc.GetMeetingByID(ctx, uuid.New()); appErr == nil || appErr.Code != errors.ErrMeetingNotFound {
		t.Fatalf("expected MEETING_NOT_FOUND, got %v", appErr)
	}

	mine, _ := svc.GetMyMeetings(ctx, coordinator)
	if len(mine) != 1 {
		t.Fatalf("coordinator should see 1 meeting, got %d", len(mine))
	}
	theirs, _ := svc.GetMyMeetings(ctx, stranger)
	if len(theirs) != 0 {
		t.Fatalf("stranger should see no meetings, got %d", len(theirs))
	}
}

func TestMeetingService_DeleteMeeting(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	coordinator := uuid.New()

	created, _ := svc.CreateMeeting(ctx, coordinator, &dto.CreateMeetingRequest{Title: "x"})
	id := uuid.MustParse(created.ID)

	if appErr := svc.DeleteMeeting(ctx, id, uuid.New()); appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("expected FORBIDDEN, got %v", appErr)
	}
	if appErr := svc.DeleteMeeting(ctx, id, coordinator); appErr != nil {
		t.Fatalf("delete failed: %v", appErr)
	}
	if _, ok := repo.meetings[id]; ok {
		t.Fatalf("meeting still stored")
	}
}
