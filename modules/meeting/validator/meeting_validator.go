package validator

import (
	"beacon-attendance/core/validator"
	"beacon-attendance/modules/meeting/dto"
)

const maxTitleLength = 200

func ValidateCreateMeetingRequest(req *dto.CreateMeetingRequest) *validator.ValidationResult {
	result := validator.New()
	result.Required("title", req.Title)
	result.MaxLength("title", req.Title, maxTitleLength)
	if req.DurationMinutes != nil && *req.DurationMinutes > 24*60 {
		result.Add("duration_minutes", "duration_minutes must not exceed one day")
	}
	return result
}
