package service

import (
	"context"
	"testing"
	"time"

	"beacon-attendance/core/errors"
	"beacon-attendance/modules/beacon/dto"
	"beacon-attendance/modules/beacon/entity"

	"github.com/lib/pq"
)

type fakeRepo struct {
	beacons map[string]*entity.Beacon
	now     time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		beacons: map[string]*entity.Beacon{},
		now:     time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRepo) List(context.Context) ([]entity.Beacon, error) {
	out := []entity.Beacon{}
	for _, b := range f.beacons {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*entity.Beacon, error) {
	b, ok := f.beacons[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) Create(_ context.Context, b *entity.Beacon) error {
	if _, ok := f.beacons[b.ID]; ok {
		return &pq.Error{Code: "23505", Constraint: "beacons_pkey"}
	}
	b.CreatedAt = f.now
	copied := *b
	f.beacons[b.ID] = &copied
	return nil
}

func (f *fakeRepo) Update(_ context.Context, b *entity.Beacon) (bool, error) {
	if _, ok := f.beacons[b.ID]; !ok {
		return false, nil
	}
	lastUsed := f.now
	b.LastUsed = &lastUsed
	copied := *b
	f.beacons[b.ID] = &copied
	return true, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.beacons[id]; !ok {
		return false, nil
	}
	delete(f.beacons, id)
	return true, nil
}

func TestBeaconService_CreateAndLookup(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBeaconService(repo, time.UTC)
	ctx := context.Background()

	created, appErr := svc.Create(ctx, &dto.CreateBeaconRequest{ID: " fda50693 ", Major: 1, Minor: 2, Location: "Room A"})
	if appErr != nil {
		t.Fatalf("Create: %v", appErr)
	}
	if created.ID != "fda50693" || created.Location != "Room A" {
		t.Fatalf("unexpected beacon %+v", created)
	}

	got, appErr := svc.Lookup(ctx, "fda50693")
	if appErr != nil || got.Location != "Room A" || got.Major != 1 || got.Minor != 2 {
		t.Fatalf("Lookup = %+v, %v", got, appErr)
	}

	_, appErr = svc.Create(ctx, &dto.CreateBeaconRequest{ID: "fda50693", Location: "Room B"})
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("expected ALREADY_EXISTS, got %v", appErr)
	}
}

func TestBeaconService_LookupMissing(t *testing.T) {
	svc := NewBeaconService(newFakeRepo(), nil)
	_, appErr := svc.Lookup(context.Background(), "missing")
	if appErr == nil || appErr.Code != errors.ErrBeaconNotFound {
		t.Fatalf("expected BEACON_NOT_FOUND, got %v", appErr)
	}
}

func TestBeaconService_UpdateRefreshesLastUsed(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBeaconService(repo, time.UTC)
	ctx := context.Background()
	if _, appErr := svc.Create(ctx, &dto.CreateBeaconRequest{ID: "b1", Location: "Room A"}); appErr != nil {
		t.Fatal(appErr)
	}

	location := "Room C"
	updated, appErr := svc.Update(ctx, "b1", &dto.UpdateBeaconRequest{Location: &location})
	if appErr != nil {
		t.Fatalf("Update: %v", appErr)
	}
	if updated.Location != "Room C" || updated.LastUsed == nil || !updated.LastUsed.Equal(repo.now) {
		t.Fatalf("unexpected update result %+v", updated)
	}

	empty := "  "
	if _, appErr := svc.Update(ctx, "b1", &dto.UpdateBeaconRequest{Location: &empty}); appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("expected INVALID_INPUT for blank location, got %v", appErr)
	}
	if _, appErr := svc.Update(ctx, "nope", &dto.UpdateBeaconRequest{}); appErr == nil || appErr.Code != errors.ErrBeaconNotFound {
		t.Fatalf("expected BEACON_NOT_FOUND, got %v", appErr)
	}
}

func TestBeaconService_Delete(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBeaconService(repo, time.UTC)
	ctx := context.Background()
	_, _ = svc.Create(ctx, &dto.CreateBeaconRequest{ID: "b1", Location: "Room A"})

	if appErr := svc.Delete(ctx, "b1"); appErr != nil {
		t.Fatalf("Delete: %v", appErr)
	}
	if appErr := svc.Delete(ctx, "b1"); appErr == nil || appErr.Code != errors.ErrBeaconNotFound {
		t.Fatalf("expected BEACON_NOT_FOUND on second delete, got %v", appErr)
	}
}
