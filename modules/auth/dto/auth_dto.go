package dto

import (
	"time"

	"beacon-attendance/modules/auth/entity"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresAt   time.Time     `json:"expires_at"`
	User        *UserResponse `json:"user"`
}

type RegisterDeviceRequest struct {
	PlayerID string `json:"player_id"`
}

type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	IsAdmin       bool      `json:"is_admin"`
	HasPushDevice bool      `json:"has_push_device"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToUserResponse(u *entity.User, loc *time.Location) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		IsAdmin:       u.IsAdmin,
		HasPushDevice: u.PushPlayerID != nil && *u.PushPlayerID != "",
		CreatedAt:     u.CreatedAt.In(loc),
	}
}
