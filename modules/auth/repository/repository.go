package repository

import (
	"context"
	"database/sql"
	stderrors "errors"

	"beacon-attendance/core/database"
	"beacon-attendance/core/logger"
	"beacon-attendance/core/params"
	"beacon-attendance/modules/auth/entity"

	"github.com/google/uuid"
)

// AuthRepository handles user persistence for authentication.
type AuthRepository struct {
	DB database.Database
}

func NewAuthRepository(db database.Database) *AuthRepository {
	return &AuthRepository{DB: db}
}

type AuthRepositoryInterface interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUsers(ctx context.Context, params params.QueryParams) (*entity.PaginatedUserEntity, error)
	UpdatePushPlayerID(ctx context.Context, userID uuid.UUID, playerID *string) (bool, error)
}

const userColumns = `id, name, email, password_hash, is_admin, push_player_id, created_at, updated_at`

func (r *AuthRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	if err := r.DB.GetContext(ctx, &user, query, email); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByEmail", err)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.DB.GetContext(ctx, &user, query, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByID", err)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	var created entity.User
	err := r.DB.GetContext(ctx, &created, query, user.Name, user.Email, user.PasswordHash, user.IsAdmin)
	if err != nil {
		logger.Error("AuthRepository:CreateUser", err)
		return nil, err
	}
	return &created, nil
}

func (r *AuthRepository) GetUsers(ctx context.Context, params params.QueryParams) (*entity.PaginatedUserEntity, error) {
	filter := ` WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')`

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`+filter, params.Search); err != nil {
		logger.Error("AuthRepository:GetUsers:Count", err)
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users` + filter + ` ORDER BY name, id LIMIT $2 OFFSET $3`
	users := []entity.User{}
	if err := r.DB.SelectContext(ctx, &users, query, params.Search, params.PageSize, params.Offset()); err != nil {
		logger.Error("AuthRepository:GetUsers:Select", err)
		return nil, err
	}

	return &entity.PaginatedUserEntity{
		Items:      users,
		TotalItems: total,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

// UpdatePushPlayerID sets or clears the push device of a user.
func (r *AuthRepository) UpdatePushPlayerID(ctx context.Context, userID uuid.UUID, playerID *string) (bool, error) {
	var id uuid.UUID
	query := `UPDATE users SET push_player_id = $2, updated_at = now() WHERE id = $1 RETURNING id`
	if err := r.DB.GetContext(ctx, &id, query, userID, playerID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		logger.Error("AuthRepository:UpdatePushPlayerID", err)
		return false, err
	}
	return true, nil
}
