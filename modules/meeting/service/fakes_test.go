package service

import (
	"context"
	"sort"
	"time"

	"beacon-attendance/core/entity"
	"beacon-attendance/core/params"
	meetingEntity "beacon-attendance/modules/meeting/entity"
	"beacon-attendance/modules/meeting/repository"

	"github.com/google/uuid"
)

type inviteKey struct{ meetingID, userID uuid.UUID }

// fakeRepo is an in-memory MeetingRepositoryInterface. Transactions run
// inline against the same state.
type fakeRepo struct {
	beacons        map[string]meetingEntity.BeaconRef
	meetings       map[uuid.UUID]meetingEntity.Meeting
	invites        map[inviteKey]bool
	lockedLocation []string
	txCount        int
}

var _ repository.MeetingRepositoryInterface = (*fakeRepo)(nil)

func newFakeRepo(beacons ...meetingEntity.BeaconRef) *fakeRepo {
	r := &fakeRepo{
		beacons:  map[string]meetingEntity.BeaconRef{},
		meetings: map[uuid.UUID]meetingEntity.Meeting{},
		invites:  map[inviteKey]bool{},
	}
	for _, b := range beacons {
		r.beacons[b.ID] = b
	}
	return r
}

func (r *fakeRepo) WithTx(ctx context.Context, fn func(repo repository.MeetingRepositoryInterface) error) error {
	r.txCount++
	return fn(r)
}

func (r *fakeRepo) LookupBeacon(_ context.Context, id string) (*meetingEntity.BeaconRef, error) {
	b, ok := r.beacons[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *fakeRepo) LockLocation(_ context.Context, location string) error {
	r.lockedLocation = append(r.lockedLocation, location)
	return nil
}

func (r *fakeRepo) FindBeaconOverlap(_ context.Context, beaconID string, w meetingEntity.Window) (*meetingEntity.Meeting, error) {
	for _, m := range r.sorted() {
		mw, ok := m.Window()
		if ok && m.BeaconID != nil && *m.BeaconID == beaconID && mw.Overlaps(w) {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindLocationOverlap(_ context.Context, location string, w meetingEntity.Window) (*meetingEntity.Meeting, error) {
	for _, m := range r.sorted() {
		mw, ok := m.Window()
		if !ok || m.BeaconID == nil {
			continue
		}
		b, ok := r.beacons[*m.BeaconID]
		if ok && b.Location == location && mw.Overlaps(w) {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) CreateMeeting(_ context.Context, m *meetingEntity.Meeting) (*meetingEntity.Meeting, error) {
	created := *m
	created.ID = uuid.New()
	created.CreatedAt = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	r.meetings[created.ID] = created
	return &created, nil
}

func (r *fakeRepo) AddInvitee(_ context.Context, meetingID, userID uuid.UUID, _ time.Time) error {
	r.invites[inviteKey{meetingID, userID}] = true
	return nil
}

func (r *fakeRepo) GetMeetingByID(_ context.Context, id uuid.UUID) (*meetingEntity.Meeting, error) {
	m, ok := r.meetings[id]
	if !ok {
		return nil, nil
	}
	if m.BeaconID != nil {
		if b, ok := r.beacons[*m.BeaconID]; ok {
			loc := b.Location
			m.BeaconLocation = &loc
		}
	}
	return &m, nil
}

func (r *fakeRepo) GetMeetings(_ context.Context, p params.QueryParams) (*entity.Pagination[meetingEntity.Meeting], error) {
	items := r.sorted()
	return &entity.Pagination[meetingEntity.Meeting]{Items: items, TotalItems: len(items), PageNumber: p.PageNumber, PageSize: p.PageSize}, nil
}

func (r *fakeRepo) GetMeetingsForUser(_ context.Context, userID uuid.UUID) ([]meetingEntity.Meeting, error) {
	var out []meetingEntity.Meeting
	for _, m := range r.sorted() {
		if m.IsCoordinator(userID) || r.invites[inviteKey{m.ID, userID}] {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeRepo) DeleteMeeting(_ context.Context, id uuid.UUID) error {
	delete(r.meetings, id)
	for k := range r.invites {
		if k.meetingID == id {
			delete(r.invites, k)
		}
	}
	return nil
}

func (r *fakeRepo) sorted() []meetingEntity.Meeting {
	out := make([]meetingEntity.Meeting, 0, len(r.meetings))
	for _, m := range r.meetings {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}
