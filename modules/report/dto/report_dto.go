package dto

import (
	"time"

	"beacon-attendance/modules/report/entity"
)

type MeetingReportResponse struct {
	ID             string    `json:"id"`
	MeetingID      string    `json:"meeting_id"`
	Date           string    `json:"date"`
	MeetingTitle   string    `json:"meeting_title"`
	InvitedTotal   int       `json:"invited_total"`
	AttendeesTotal int       `json:"attendees_total"`
	LateTotal      int       `json:"late_total"`
	AbsentTotal    int       `json:"absent_total"`
	AttendancePct  float64   `json:"attendance_pct"`
	LatePct        float64   `json:"late_pct"`
	AbsentPct      float64   `json:"absent_pct"`
	CreatedAt      time.Time `json:"created_at"`
}

type GeneralReportResponse struct {
	UserID        string  `json:"user_id"`
	TotalMeetings int     `json:"total_meetings"`
	PresentTotal  int     `json:"present_total"`
	LateTotal     int     `json:"late_total"`
	AbsentTotal   int     `json:"absent_total"`
	PresentPct    float64 `json:"present_pct"`
	LatePct       float64 `json:"late_pct"`
	AbsentPct     float64 `json:"absent_pct"`
}

func ToMeetingReportResponse(r *entity.MeetingReport, loc *time.Location) *MeetingReportResponse {
	if r == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}
	return &MeetingReportResponse{
		ID:             r.ID.String(),
		MeetingID:      r.MeetingID.String(),
		Date:           r.ReportDate,
		MeetingTitle:   r.MeetingTitle,
		InvitedTotal:   r.InvitedTotal,
		AttendeesTotal: r.AttendeesTotal,
		LateTotal:      r.LateTotal,
		AbsentTotal:    r.AbsentTotal,
		AttendancePct:  r.AttendancePct,
		LatePct:        r.LatePct,
		AbsentPct:      r.AbsentPct,
		CreatedAt:      r.CreatedAt.In(loc),
	}
}
