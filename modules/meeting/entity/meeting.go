package entity

import (
	"time"

	"github.com/google/uuid"
)

type Meeting struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Title          string     `db:"title" json:"title"`
	Description    *string    `db:"description" json:"description,omitempty"`
	StartTime      *time.Time `db:"start_time" json:"start_time,omitempty"`
	EndTime        *time.Time `db:"end_time" json:"end_time,omitempty"`
	Topics         *string    `db:"topics" json:"topics,omitempty"`
	RepeatWeekly   bool       `db:"repeat_weekly" json:"repeat_weekly"`
	Note           *string    `db:"note" json:"note,omitempty"`
	Location       *string    `db:"location" json:"location,omitempty"` // explicit override
	CoordinatorID  *uuid.UUID `db:"coordinator_id" json:"coordinator_id,omitempty"`
	BeaconID       *string    `db:"beacon_id" json:"beacon_id,omitempty"`
	BeaconLocation *string    `db:"beacon_location" json:"-"` // joined, read only
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// Window returns the scheduled window, or false for unscheduled meetings.
func (m *Meeting) Window() (Window, bool) {
	if m.StartTime == nil || m.EndTime == nil {
		return Window{}, false
	}
	return Window{Start: *m.StartTime, End: *m.EndTime}, true
}

// ResolvedLocation prefers the beacon's location over the stored override.
func (m *Meeting) ResolvedLocation() string {
	if m.BeaconLocation != nil && *m.BeaconLocation != "" {
		return *m.BeaconLocation
	}
	if m.Location != nil {
		return *m.Location
	}
	return ""
}

func (m *Meeting) IsCoordinator(userID uuid.UUID) bool {
	return m.CoordinatorID != nil && *m.CoordinatorID == userID
}

// BeaconRef is the registry view of a beacon consumed at scheduling time.
type BeaconRef struct {
	ID       string `db:"id"`
	Location string `db:"location"`
	Major    int    `db:"major"`
	Minor    int    `db:"minor"`
}
