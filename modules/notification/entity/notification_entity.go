package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"beacon-attendance/core/entity"

	"github.com/google/uuid"
)

const TypeMeetingStarting = "meeting_starting"

type Notification struct {
	UserID    uuid.UUID  `db:"user_id" json:"user_id"`
	MeetingID *uuid.UUID `db:"meeting_id" json:"meeting_id,omitempty"`
	Title     string     `db:"title" json:"title"`
	Message   string     `db:"message" json:"message"`
	Type      string     `db:"type" json:"type"`
	Data      JSONB      `db:"data" json:"data"`
	IsRead    bool       `db:"is_read" json:"is_read"`
	entity.BaseEntity
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

func (a *JSONB) Scan(value any) error {
	if value == nil {
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, a)
}

type PaginatedNotificationEntity = entity.Pagination[Notification]

// UpcomingMeeting is a meeting whose start falls inside the notifier window.
type UpcomingMeeting struct {
	ID        uuid.UUID  `db:"id"`
	Title     string     `db:"title"`
	StartTime time.Time  `db:"start_time"`
	EndTime   *time.Time `db:"end_time"`
}

// Recipient is an invitee with a registered push device.
type Recipient struct {
	UserID   uuid.UUID `db:"user_id"`
	PlayerID string    `db:"push_player_id"`
}
