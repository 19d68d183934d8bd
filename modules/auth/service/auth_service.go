package service

import (
	"context"
	"strings"
	"time"

	"beacon-attendance/core/cache"
	"beacon-attendance/core/constants"
	"beacon-attendance/core/database"
	coredto "beacon-attendance/core/dto"
	"beacon-attendance/core/errors"
	"beacon-attendance/core/logger"
	"beacon-attendance/core/params"
	"beacon-attendance/core/utils"
	"beacon-attendance/modules/auth/dto"
	"beacon-attendance/modules/auth/entity"
	"beacon-attendance/modules/auth/repository"

	"github.com/google/uuid"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, *errors.AppError)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError)
	Logout(ctx context.Context, token string, expiresAt time.Time) *errors.AppError
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError)
	GetUsers(ctx context.Context, params params.QueryParams) (*coredto.Pagination[dto.UserResponse], *errors.AppError)
	RegisterDevice(ctx context.Context, userID uuid.UUID, playerID *string) *errors.AppError
}

type AuthService struct {
	repo   repository.AuthRepositoryInterface
	cache  cache.Cache
	signer *utils.TokenSigner
	loc    *time.Location
	now    func() time.Time
}

func NewAuthService(repo repository.AuthRepositoryInterface, c cache.Cache, signer *utils.TokenSigner, loc *time.Location) *AuthService {
	if loc == nil {
		loc = time.UTC
	}
	return &AuthService{repo: repo, cache: c, signer: signer, loc: loc, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (service *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, *errors.AppError) {
	email := normalizeEmail(req.Email)

	existing, err := service.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user by email", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "user with email already exists", nil)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}

	created, err := service.repo.CreateUser(ctx, &entity.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hashed,
	})
	if err != nil {
		if database.IsUniqueViolation(err, database.ConstraintUsersEmail) {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "user with email already exists", nil)
		}
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create user", err)
	}

	logger.Info("AuthService:Register", "user_id", created.ID)
	return dto.ToUserResponse(created, service.loc), nil
}

// Login authenticates by email and password. Repeated failures lock the
// email for constants.BlockDuration.
func (service *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	email := normalizeEmail(req.Email)

	blocked, err := service.cache.IsLoginBlocked(ctx, email)
	if err != nil {
		logger.Error("AuthService:Login:IsLoginBlocked", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get login attempt", err)
	}
	if blocked {
		return nil, errors.NewAppError(errors.ErrTooManyAttempts, "too many failed attempts, try again in 15 minutes", nil)
	}

	user, err := service.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user by email", err)
	}
	if user == nil || !utils.ComparePassword(user.PasswordHash, req.Password) {
		if _, err := service.cache.IncrementLoginAttempt(ctx, email); err != nil {
			logger.Error("AuthService:Login:IncrementLoginAttempt", err)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid email or password", nil)
	}

	token, expiresAt, err := service.signer.Generate(user.ID, user.Email, user.IsAdmin, constants.ScopeTokenAccess)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}

	if err := service.cache.ResetLoginAttempts(ctx, email); err != nil {
		logger.Warn("AuthService:Login:ResetLoginAttempts", "error", err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.In(service.loc),
		User:        dto.ToUserResponse(user, service.loc),
	}, nil
}

// Logout revokes token until it would have expired anyway.
func (service *AuthService) Logout(ctx context.Context, token string, expiresAt time.Time) *errors.AppError {
	ttl := expiresAt.Sub(service.now())
	if ttl <= 0 {
		return nil
	}
	if err := service.cache.AddToTokenBlacklist(ctx, token, ttl); err != nil {
		logger.Error("AuthService:Logout:AddToBlacklist", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to add token to blacklist", err)
	}
	return nil
}

func (service *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := service.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrUserNotFound, "user not found", nil)
	}
	return dto.ToUserResponse(user, service.loc), nil
}

func (service *AuthService) GetUsers(ctx context.Context, queryParams params.QueryParams) (*coredto.Pagination[dto.UserResponse], *errors.AppError) {
	page, err := service.repo.GetUsers(ctx, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get users", err)
	}

	items := make([]dto.UserResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *dto.ToUserResponse(&page.Items[i], service.loc))
	}
	return coredto.NewPagination(items, page.TotalItems, page.PageNumber, page.PageSize), nil
}

// RegisterDevice stores the push player id used by meeting reminders. A nil
// playerID removes the device.
func (service *AuthService) RegisterDevice(ctx context.Context, userID uuid.UUID, playerID *string) *errors.AppError {
	if playerID != nil {
		trimmed := strings.TrimSpace(*playerID)
		playerID = &trimmed
	}

	ok, err := service.repo.UpdatePushPlayerID(ctx, userID, playerID)
	if err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to register device", err)
	}
	if !ok {
		return errors.NewAppError(errors.ErrUserNotFound, "user not found", nil)
	}
	return nil
}
