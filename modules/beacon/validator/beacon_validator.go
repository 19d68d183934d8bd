package validator

import (
	"beacon-attendance/core/validator"
	"beacon-attendance/modules/beacon/dto"
)

const maxLocationLength = 255

func ValidateCreateBeaconRequest(req *dto.CreateBeaconRequest) *validator.ValidationResult {
	result := validator.New()
	result.Required("id", req.ID)
	result.Required("location", req.Location)
	result.MaxLength("location", req.Location, maxLocationLength)
	if req.Major < 0 || req.Major > 65535 {
		result.Add("major", "major must be between 0 and 65535")
	}
	if req.Minor < 0 || req.Minor > 65535 {
		result.Add("minor", "minor must be between 0 and 65535")
	}
	return result
}

func ValidateUpdateBeaconRequest(req *dto.UpdateBeaconRequest) *validator.ValidationResult {
	result := validator.New()
	if req.Location != nil {
		result.Required("location", *req.Location)
		result.MaxLength("location", *req.Location, maxLocationLength)
	}
	if req.Major != nil && (*req.Major < 0 || *req.Major > 65535) {
		result.Add("major", "major must be between 0 and 65535")
	}
	if req.Minor != nil && (*req.Minor < 0 || *req.Minor > 65535) {
		result.Add("minor", "minor must be between 0 and 65535")
	}
	return result
}
