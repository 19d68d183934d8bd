package validator

import (
	"beacon-attendance/core/validator"
	"beacon-attendance/modules/auth/dto"
)

const (
	minPasswordLength = 8
	maxNameLength     = 120
)

func ValidateRegisterRequest(req *dto.RegisterRequest) *validator.ValidationResult {
	result := validator.New()
	result.Required("name", req.Name)
	result.MaxLength("name", req.Name, maxNameLength)
	result.Required("email", req.Email)
	result.Email("email", req.Email)
	result.Required("password", req.Password)
	if req.Password != "" {
		result.MinLength("password", req.Password, minPasswordLength)
	}
	return result
}

func ValidateLoginRequest(req *dto.LoginRequest) *validator.ValidationResult {
	result := validator.New()
	result.Required("email", req.Email)
	result.Required("password", req.Password)
	return result
}

func ValidateRegisterDeviceRequest(req *dto.RegisterDeviceRequest) *validator.ValidationResult {
	result := validator.New()
	result.Required("player_id", req.PlayerID)
	result.MaxLength("player_id", req.PlayerID, 255)
	return result
}
