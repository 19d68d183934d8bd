package dto

import (
	"time"

	"beacon-attendance/modules/attendance/entity"
)

// MarkAttendanceRequest is the self service marking. Any status sent by the
// client is ignored; it is derived from the meeting window.
type MarkAttendanceRequest struct {
	MeetingID string `json:"meeting_id"`
	Status    string `json:"status,omitempty"`
}

// AssignAttendanceRequest is the coordinator override. Status defaults to absent.
type AssignAttendanceRequest struct {
	UserID    string `json:"user_id"`
	MeetingID string `json:"meeting_id"`
	Status    string `json:"status"`
}

type AttendanceResponse struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	MeetingID string        `json:"meeting_id"`
	Status    entity.Status `json:"status"`
	MarkedAt  time.Time     `json:"marked_at"`
}

func ToAttendanceResponse(a *entity.Attendance, loc *time.Location) *AttendanceResponse {
	if a == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceResponse{
		ID:        a.ID.String(),
		UserID:    a.UserID.String(),
		MeetingID: a.MeetingID.String(),
		Status:    a.Status,
		MarkedAt:  a.MarkedAt.In(loc),
	}
}

func ToAttendanceResponses(rows []entity.Attendance, loc *time.Location) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *ToAttendanceResponse(&rows[i], loc))
	}
	return out
}
