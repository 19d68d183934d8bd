package dto

import (
	"time"

	"beacon-attendance/modules/meeting/entity"
)

// ===================== Request DTOs =====================

// CreateMeetingRequest carries a start instant and a duration. start_time may
// be RFC 3339 or a naive local time in the configured zone.
type CreateMeetingRequest struct {
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	StartTime       *string `json:"start_time"`
	DurationMinutes *int    `json:"duration_minutes"`
	Topics          string  `json:"topics"`
	RepeatWeekly    bool    `json:"repeat_weekly"`
	Note            string  `json:"note"`
	Location        *string `json:"location"`
	BeaconID        *string `json:"beacon_id"`
}

// ===================== Response DTOs =====================

type MeetingResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	Topics          string     `json:"topics,omitempty"`
	RepeatWeekly    bool       `json:"repeat_weekly"`
	Note            string     `json:"note,omitempty"`
	Location        string     `json:"location,omitempty"`
	CoordinatorID   string     `json:"coordinator_id,omitempty"`
	BeaconID        string     `json:"beacon_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ToMeetingResponse renders every instant in loc.
func ToMeetingResponse(m *entity.Meeting, loc *time.Location) *MeetingResponse {
	if m == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	resp := &MeetingResponse{
		ID:           m.ID.String(),
		Title:        m.Title,
		Description:  deref(m.Description),
		Topics:       deref(m.Topics),
		RepeatWeekly: m.RepeatWeekly,
		Note:         deref(m.Note),
		Location:     m.ResolvedLocation(),
		BeaconID:     deref(m.BeaconID),
		CreatedAt:    m.CreatedAt.In(loc),
	}
	if m.CoordinatorID != nil {
		resp.CoordinatorID = m.CoordinatorID.String()
	}
	if w, ok := m.Window(); ok {
		start, end := w.Start.In(loc), w.End.In(loc)
		resp.StartTime = &start
		resp.EndTime = &end
		resp.DurationMinutes = int(w.Duration() / time.Minute)
	}
	return resp
}

func ToMeetingResponses(meetings []entity.Meeting, loc *time.Location) []MeetingResponse {
	result := make([]MeetingResponse, 0, len(meetings))
	for i := range meetings {
		result = append(result, *ToMeetingResponse(&meetings[i], loc))
	}
	return result
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
