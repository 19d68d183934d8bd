package service

import (
	"time"

	"beacon-attendance/core/errors"
	"beacon-attendance/modules/attendance/entity"
	meetingEntity "beacon-attendance/modules/meeting/entity"
)

// DeriveStatus classifies a self marking at instant at. Markings are
// accepted from start to end inclusive; up to the midpoint they count as
// present, afterwards as late.
func DeriveStatus(m *entity.MeetingWindow, at time.Time) (entity.Status, *errors.AppError) {
	if m.StartTime == nil || m.EndTime == nil {
		return "", errors.NewAppError(errors.ErrWindowNotConfigured, "meeting has no start and end configured", nil)
	}

	w := meetingEntity.Window{Start: *m.StartTime, End: *m.EndTime}
	switch {
	case at.Before(w.Start):
		return "", errors.NewAppError(errors.ErrNotYetStarted, "meeting has not started yet", nil)
	case at.After(w.End):
		return "", errors.NewAppError(errors.ErrAlreadyEnded, "meeting has already ended", nil)
	}

	if !at.After(w.Midpoint()) {
		return entity.StatusPresent, nil
	}
	return entity.StatusLate, nil
}
