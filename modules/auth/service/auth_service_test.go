package service

import (
	"context"
	"testing"
	"time"

	"beacon-attendance/core/cache"
	"beacon-attendance/core/constants"
	"beacon-attendance/core/errors"
	"beacon-attendance/core/params"
	"beacon-attendance/core/utils"
	"beacon-attendance/modules/auth/dto"
	"beacon-attendance/modules/auth/entity"

	"github.com/google/uuid"
)

type fakeRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[uuid.UUID]*entity.User{}}
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeRepo) CreateUser(_ context.Context, u *entity.User) (*entity.User, error) {
	created := *u
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	f.users[created.ID] = &created
	return &created, nil
}

func (f *fakeRepo) GetUsers(_ context.Context, p params.QueryParams) (*entity.PaginatedUserEntity, error) {
	items := []entity.User{}
	for _, u := range f.users {
		items = append(items, *u)
	}
	return &entity.PaginatedUserEntity{Items: items, TotalItems: len(items), PageNumber: p.PageNumber, PageSize: p.PageSize}, nil
}

func (f *fakeRepo) UpdatePushPlayerID(_ context.Context, userID uuid.UUID, playerID *string) (bool, error) {
	u, ok := f.users[userID]
	if !ok {
		return false, nil
	}
	u.PushPlayerID = playerID
	return true, nil
}

func newTestService() (*AuthService, *fakeRepo, *cache.MemoryCache) {
	repo := newFakeRepo()
	c := cache.NewMemoryCache()
	signer := utils.NewTokenSigner("test-secret", "beacon-attendance", time.Hour)
	return NewAuthService(repo, c, signer, time.UTC), repo, c
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	user, appErr := svc.Register(ctx, &dto.RegisterRequest{Name: "Ana", Email: " Ana@Example.com ", Password: "secret123"})
	if appErr != nil {
		t.Fatalf("Register: %v", appErr)
	}
	if user.Email != "ana@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}

	_, appErr = svc.Register(ctx, &dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret123"})
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("expected ALREADY_EXISTS, got %v", appErr)
	}

	resp, appErr := svc.Login(ctx, &dto.LoginRequest{Email: "ANA@example.com", Password: "secret123"})
	if appErr != nil {
		t.Fatalf("Login: %v", appErr)
	}
	claims, err := svc.signer.Parse(resp.AccessToken)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != user.ID || claims.Scope != constants.ScopeTokenAccess {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestAuthService_LoginLocksAfterRepeatedFailures(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	if _, appErr := svc.Register(ctx, &dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret123"}); appErr != nil {
		t.Fatal(appErr)
	}

	for i := 0; i < constants.MaxLoginAttempts; i++ {
		_, appErr := svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "wrong"})
		if appErr == nil || appErr.Code != errors.ErrUnauthorized {
			t.Fatalf("attempt %d: expected UNAUTHORIZED, got %v", i, appErr)
		}
	}

	_, appErr := svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	if appErr == nil || appErr.Code != errors.ErrTooManyAttempts {
		t.Fatalf("expected TOO_MANY_ATTEMPTS, got %v", appErr)
	}
}

func TestAuthService_LogoutBlacklistsToken(t *testing.T) {
	svc, _, c := newTestService()
	ctx := context.Background()
	now := time.Now()
	svc.now = func() time.Time { return now }

	if appErr := svc.Logout(ctx, "token-1", now.Add(time.Hour)); appErr != nil {
		t.Fatalf("Logout: %v", appErr)
	}
	revoked, _ := c.IsTokenBlacklisted(ctx, "token-1")
	if !revoked {
		t.Fatal("token should be blacklisted")
	}

	if appErr := svc.Logout(ctx, "token-2", now.Add(-time.Minute)); appErr != nil {
		t.Fatalf("Logout expired: %v", appErr)
	}
	revoked, _ = c.IsTokenBlacklisted(ctx, "token-2")
	if revoked {
		t.Fatal("an already expired token needs no blacklist entry")
	}
}

func TestAuthService_MeAndDevice(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	user, _ := svc.Register(ctx, &dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret123"})

	playerID := "  player-1 "
	if appErr := svc.RegisterDevice(ctx, user.ID, &playerID); appErr != nil {
		t.Fatalf("RegisterDevice: %v", appErr)
	}
	if got := repo.users[user.ID].PushPlayerID; got == nil || *got != "player-1" {
		t.Fatalf("player id not stored trimmed: %v", got)
	}

	me, appErr := svc.Me(ctx, user.ID)
	if appErr != nil || !me.HasPushDevice {
		t.Fatalf("Me = %+v, %v", me, appErr)
	}

	if appErr := svc.RegisterDevice(ctx, user.ID, nil); appErr != nil {
		t.Fatalf("RemoveDevice: %v", appErr)
	}
	if repo.users[user.ID].PushPlayerID != nil {
		t.Fatal("device should be removed")
	}

	if _, appErr := svc.Me(ctx, uuid.New()); appErr == nil || appErr.Code != errors.ErrUserNotFound {
		t.Fatalf("expected USER_NOT_FOUND, got %v", appErr)
	}
	if appErr := svc.RegisterDevice(ctx, uuid.New(), &playerID); appErr == nil || appErr.Code != errors.ErrUserNotFound {
		t.Fatalf("expected USER_NOT_FOUND, got %v", appErr)
	}
}
