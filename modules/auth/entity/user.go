package entity

import (
	"beacon-attendance/core/entity"
)

type User struct {
	Name         string  `db:"name" json:"name"`
	Email        string  `db:"email" json:"email"`
	PasswordHash string  `db:"password_hash" json:"-"`
	IsAdmin      bool    `db:"is_admin" json:"is_admin"`
	PushPlayerID *string `db:"push_player_id" json:"push_player_id,omitempty"`
	entity.BaseEntity
}

type PaginatedUserEntity = entity.Pagination[User]
