package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stayinn/stayinn-api/internal/domain/user"
	"github.com/stayinn/stayinn-api/internal/pkg/jwt"
	"github.com/stayinn/stayinn-api/internal/pkg/password"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
	byID    map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[uuid.UUID]*user.User),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	r.byEmail[u.Email] = u
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return r.byID[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return r.byEmail[email], nil
}

type fakeRefreshRepo struct {
	byHash map[string]*RefreshTokenRecord
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{byHash: make(map[string]*RefreshTokenRecord)}
}

func (r *fakeRefreshRepo) Create(_ context.Context, rec *RefreshTokenRecord) error {
	r.byHash[rec.TokenHash] = rec
	return nil
}

func (r *fakeRefreshRepo) GetByTokenHash(_ context.Context, hash string) (*RefreshTokenRecord, error) {
	return r.byHash[hash], nil
}

func (r *fakeRefreshRepo) MarkUsed(_ context.Context, hash string) error {
	if rec, ok := r.byHash[hash]; ok && !rec.UsedAt.Valid {
		rec.UsedAt.Valid = true
		rec.UsedAt.Time = time.Now()
	}
	return nil
}

func (r *fakeRefreshRepo) Revoke(_ context.Context, hash string) error {
	if rec, ok := r.byHash[hash]; ok && !rec.RevokedAt.Valid {
		rec.RevokedAt.Valid = true
		rec.RevokedAt.Time = time.Now()
	}
	return nil
}

func (r *fakeRefreshRepo) RevokeAllForUser(_ context.Context, userID uuid.UUID) error {
	for _, rec := range r.byHash {
		if rec.UserID == userID && !rec.RevokedAt.Valid {
			rec.RevokedAt.Valid = true
			rec.RevokedAt.Time = time.Now()
		}
	}
	return nil
}

func newAuthService() (*Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	jwtService := jwt.NewService("secret", time.Minute, time.Hour)
	svc := NewService(repo, newFakeRefreshRepo(), jwtService, nil)
	return svc, repo
}

func TestRegisterCreatesGuest(t *testing.T) {
	svc, _ := newAuthService()

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "Guest@Example.com",
		Password: "password123",
		FullName: "Test Guest",
	}, "127.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if resp.User.Role != "guest" {
		t.Errorf("expected guest role, got %s", resp.User.Role)
	}
	if resp.User.Email != "guest@example.com" {
		t.Errorf("email not normalized: %s", resp.User.Email)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("missing token pair")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	req := &RegisterRequest{Email: "a@b.com", Password: "password123", FullName: "A"}

	if _, err := svc.Register(context.Background(), req, "", ""); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), req, "", "")
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo := newAuthService()
	hash, _ := password.Hash("correct-password")
	u := &user.User{ID: uuid.New(), Email: "a@b.com", PasswordHash: hash, Role: user.RoleGuest}
	repo.Create(context.Background(), u)

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "a@b.com", Password: "wrong"}, "", "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	// Unknown account reports the same error
	_, err = svc.Login(context.Background(), &LoginRequest{Email: "nobody@b.com", Password: "whatever"}, "", "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _ := newAuthService()

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Email: "a@b.com", Password: "password123", FullName: "A",
	}, "", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), resp.RefreshToken, "", "")
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if rotated.RefreshToken == resp.RefreshToken {
		t.Error("refresh token not rotated")
	}

	// The consumed token cannot be exchanged again
	_, err = svc.Refresh(context.Background(), resp.RefreshToken, "", "")
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("expected ErrInvalidRefreshToken for reused token, got %v", err)
	}
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	svc, _ := newAuthService()

	first, err := svc.Register(context.Background(), &RegisterRequest{
		Email: "a@b.com", Password: "password123", FullName: "A",
	}, "", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	second, err := svc.Login(context.Background(), &LoginRequest{
		Email: "a@b.com", Password: "password123",
	}, "", "")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	userID, err := uuid.Parse(first.User.ID)
	if err != nil {
		t.Fatalf("bad user id: %v", err)
	}
	if err := svc.LogoutAll(context.Background(), userID); err != nil {
		t.Fatalf("logout all failed: %v", err)
	}

	for _, token := range []string{first.RefreshToken, second.RefreshToken} {
		if _, err := svc.Refresh(context.Background(), token, "", ""); !errors.Is(err, ErrInvalidRefreshToken) {
			t.Errorf("expected ErrInvalidRefreshToken after logout-all, got %v", err)
		}
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _ := newAuthService()

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Email: "a@b.com", Password: "password123", FullName: "A",
	}, "", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.Logout(context.Background(), resp.RefreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	_, err = svc.Refresh(context.Background(), resp.RefreshToken, "", "")
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("expected ErrInvalidRefreshToken after logout, got %v", err)
	}
}
