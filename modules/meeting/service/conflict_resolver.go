package service

import (
	"context"
	"strings"

	"beacon-attendance/core/errors"
	"beacon-attendance/core/logger"
	"beacon-attendance/modules/meeting/entity"
)

// ConflictStore is the read side the resolver needs. Inside a transaction
// the meeting repository locks the beacon row on lookup.
type ConflictStore interface {
	LookupBeacon(ctx context.Context, beaconID string) (*entity.BeaconRef, error)
	FindBeaconOverlap(ctx context.Context, beaconID string, w entity.Window) (*entity.Meeting, error)
	FindLocationOverlap(ctx context.Context, location string, w entity.Window) (*entity.Meeting, error)
}

type ConflictResolver struct{}

func NewConflictResolver() *ConflictResolver {
	return &ConflictResolver{}
}

// CheckConflicts rejects a window that collides with another booking on the
// same beacon, then on the same location. The first failing check wins.
func (r *ConflictResolver) CheckConflicts(ctx context.Context, store ConflictStore, w *entity.Window, beaconID, locationHint *string) *errors.AppError {
	if w == nil {
		return nil
	}

	var beacon *entity.BeaconRef
	if id := trimmed(beaconID); id != "" {
		ref, err := store.LookupBeacon(ctx, id)
		if err != nil {
			logger.Error("ConflictResolver:CheckConflicts:LookupBeacon", err)
			return errors.NewAppError(errors.ErrGetFailed, "failed to look up beacon", err)
		}
		if ref == nil {
			return errors.NewAppError(errors.ErrBeaconNotFound, "beacon not found", nil)
		}
		beacon = ref

		clash, err := store.FindBeaconOverlap(ctx, id, *w)
		if err != nil {
			logger.Error("ConflictResolver:CheckConflicts:FindBeaconOverlap", err)
			return errors.NewAppError(errors.ErrGetFailed, "failed to check beacon availability", err)
		}
		if clash != nil {
			logger.Info("ConflictResolver:CheckConflicts:BeaconOverlap", "beacon_id", id, "meeting_id", clash.ID)
			return errors.NewAppError(errors.ErrBeaconOverlap, "beacon is already booked for an overlapping meeting", nil)
		}
	}

	location := trimmed(locationHint)
	if location == "" && beacon != nil {
		location = beacon.Location
	}
	if location == "" {
		return nil
	}

	clash, err := store.FindLocationOverlap(ctx, location, *w)
	if err != nil {
		logger.Error("ConflictResolver:CheckConflicts:FindLocationOverlap", err)
		return errors.NewAppError(errors.ErrGetFailed, "failed to check location availability", err)
	}
	if clash != nil {
		logger.Info("ConflictResolver:CheckConflicts:LocationOverlap", "location", location, "meeting_id", clash.ID)
		return errors.NewAppError(errors.ErrLocationOverlap, "location is already booked for an overlapping meeting", nil)
	}
	return nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
