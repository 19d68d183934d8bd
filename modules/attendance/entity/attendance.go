package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
)

// ParseStatus accepts the three known states, case insensitively.
func ParseStatus(raw string) (Status, bool) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusPresent, StatusLate, StatusAbsent:
		return s, true
	}
	return "", false
}

type Attendance struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	MeetingID uuid.UUID `db:"meeting_id" json:"meeting_id"`
	Status    Status    `db:"status" json:"status"`
	MarkedAt  time.Time `db:"marked_at" json:"marked_at"`
}

// MeetingWindow is the part of a meeting the state machine reads.
type MeetingWindow struct {
	ID            uuid.UUID  `db:"id"`
	StartTime     *time.Time `db:"start_time"`
	EndTime       *time.Time `db:"end_time"`
	CoordinatorID *uuid.UUID `db:"coordinator_id"`
}
