package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type RefreshTokenRecord struct {
	ID        uuid.UUID    `db:"id"`
	UserID    uuid.UUID    `db:"user_id"`
	TokenHash string       `db:"token_hash"`
	JTI       string       `db:"jti"`
	ExpiresAt time.Time    `db:"expires_at"`
	UsedAt    sql.NullTime `db:"used_at"`
	RevokedAt sql.NullTime `db:"revoked_at"`
	CreatedAt time.Time    `db:"created_at"`
	UserAgent string       `db:"user_agent"`
	IP        string       `db:"ip"`
}

// Usable reports whether the record can still be exchanged for a new pair
func (r *RefreshTokenRecord) Usable(now time.Time) bool {
	return !r.UsedAt.Valid && !r.RevokedAt.Valid && now.Before(r.ExpiresAt)
}

// RefreshTokenRepository defines refresh token persistence
type RefreshTokenRepository interface {
	Create(ctx context.Context, rec *RefreshTokenRecord) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*RefreshTokenRecord, error)
	MarkUsed(ctx context.Context, tokenHash string) error
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}

type refreshTokenRepository struct {
	db *sqlx.DB
}

func NewRefreshTokenRepository(db *sqlx.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, rec *RefreshTokenRecord) error {
	query := `
		INSERT INTO user_refresh_tokens (id, user_id, token_hash, jti, expires_at, used_at, revoked_at, created_at, user_agent, ip)
		VALUES ($1, $2, $3, $4, $5, NULL, NULL, NOW(), $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query, rec.ID, rec.UserID, rec.TokenHash, rec.JTI, rec.ExpiresAt, rec.UserAgent, rec.IP)
	return err
}

func (r *refreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*RefreshTokenRecord, error) {
	query := `
		SELECT id, user_id, token_hash, jti, expires_at, used_at, revoked_at, created_at, user_agent, ip
		FROM user_refresh_tokens
		WHERE token_hash = $1
	`
	var rec RefreshTokenRecord
	if err := r.db.GetContext(ctx, &rec, query, tokenHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *refreshTokenRepository) MarkUsed(ctx context.Context, tokenHash string) error {
	query := `UPDATE user_refresh_tokens SET used_at = NOW() WHERE token_hash = $1 AND used_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, tokenHash)
	return err
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	query := `UPDATE user_refresh_tokens SET revoked_at = NOW() WHERE token_hash = $1 AND revoked_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, tokenHash)
	return err
}

func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE user_refresh_tokens SET revoked_at = NOW() WHERE user_id = $1 AND revoked_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
