package entity

import (
	"time"

	"github.com/google/uuid"
)

// MeetingReport is a point in time snapshot. Once stored it is never
// recomputed, even if attendance changes afterwards.
type MeetingReport struct {
	ID             uuid.UUID `db:"id" json:"id"`
	MeetingID      uuid.UUID `db:"meeting_id" json:"meeting_id"`
	ReportDate     string    `db:"report_date" json:"report_date"`
	MeetingTitle   string    `db:"meeting_title" json:"meeting_title"`
	InvitedTotal   int       `db:"invited_total" json:"invited_total"`
	AttendeesTotal int       `db:"attendees_total" json:"attendees_total"`
	LateTotal      int       `db:"late_total" json:"late_total"`
	AbsentTotal    int       `db:"absent_total" json:"absent_total"`
	AttendancePct  float64   `db:"attendance_pct" json:"attendance_pct"`
	LatePct        float64   `db:"late_pct" json:"late_pct"`
	AbsentPct      float64   `db:"absent_pct" json:"absent_pct"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type MeetingSummary struct {
	ID        uuid.UUID  `db:"id"`
	Title     string     `db:"title"`
	StartTime *time.Time `db:"start_time"`
	CreatedAt time.Time  `db:"created_at"`
}

// StatusCount is one row of a GROUP BY status aggregate.
type StatusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}
