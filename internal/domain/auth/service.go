package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stayinn/stayinn-api/internal/domain/user"
	"github.com/stayinn/stayinn-api/internal/pkg/jwt"
	"github.com/stayinn/stayinn-api/internal/pkg/password"
)

// revokedKeyPrefix namespaces denylisted refresh JTIs in Redis
const revokedKeyPrefix = "auth:revoked:"

// Service handles authentication business logic
type Service struct {
	userRepo   user.Repository
	tokenRepo  RefreshTokenRepository
	jwtService *jwt.Service
	redis      *redis.Client // nil if Redis disabled
}

// NewService creates auth service
func NewService(userRepo user.Repository, tokenRepo RefreshTokenRepository, jwtService *jwt.Service, redisClient *redis.Client) *Service {
	return &Service{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		redis:      redisClient,
	}
}

// Register creates new guest account
func (s *Service) Register(ctx context.Context, req *RegisterRequest, ip, userAgent string) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         user.RoleGuest,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, u, ip, userAgent)
}

// Login verifies credentials and issues a token pair
func (s *Service) Login(ctx context.Context, req *LoginRequest, ip, userAgent string) (*AuthResponse, error) {
	u, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if u == nil || !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, u, ip, userAgent)
}

// Refresh rotates a refresh token: the presented token is consumed and a
// fresh pair is issued. A token can be exchanged at most once.
func (s *Service) Refresh(ctx context.Context, refreshToken, ip, userAgent string) (*AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	if s.isRevoked(ctx, claims.ID) {
		return nil, ErrInvalidRefreshToken
	}

	rec, err := s.tokenRepo.GetByTokenHash(ctx, jwt.HashRefreshToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if rec == nil || !rec.Usable(time.Now()) {
		return nil, ErrInvalidRefreshToken
	}

	u, err := s.userRepo.GetByID(ctx, rec.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidRefreshToken
	}

	if err := s.tokenRepo.MarkUsed(ctx, rec.TokenHash); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, u, ip, userAgent)
}

// Logout revokes the presented refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}

	if err := s.tokenRepo.Revoke(ctx, jwt.HashRefreshToken(refreshToken)); err != nil {
		return err
	}

	s.denylist(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
	return nil
}

// LogoutAll revokes every refresh session of the account. Outstanding
// access tokens stay valid until their short TTL runs out.
func (s *Service) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	return s.tokenRepo.RevokeAllForUser(ctx, userID)
}

// Me returns the account behind an authenticated request
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) issueTokens(ctx context.Context, u *user.User, ip, userAgent string) (*AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, jti, expiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}

	rec := &RefreshTokenRecord{
		ID:        uuid.New(),
		UserID:    u.ID,
		TokenHash: jwt.HashRefreshToken(refreshToken),
		JTI:       jti,
		ExpiresAt: expiresAt,
		UserAgent: userAgent,
		IP:        ip,
	}
	if err := s.tokenRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         u.ToResponse(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtService.GetAccessTTL().Seconds()),
	}, nil
}

func (s *Service) isRevoked(ctx context.Context, jti string) bool {
	if s.redis == nil {
		return false
	}
	n, err := s.redis.Exists(ctx, revokedKeyPrefix+jti).Result()
	return err == nil && n > 0
}

func (s *Service) denylist(ctx context.Context, jti string, ttl time.Duration) {
	if s.redis == nil || ttl <= 0 {
		return
	}
	s.redis.Set(ctx, revokedKeyPrefix+jti, 1, ttl)
}
