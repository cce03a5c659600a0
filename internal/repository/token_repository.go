package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/smartcampus/hub/internal/domain"
)

// TokenRepo persists and validates refresh tokens.  Only the SHA-256
// hash of an issued token touches the database.
type TokenRepo struct {
	db *sql.DB
}

// NewTokenRepo returns a TokenRepo bound to the given database.
func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// Store inserts a refresh token hash row.
func (r *TokenRepo) Store(ctx context.Context, userID uint64, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, tokenHash, expiresAt)
	return err
}

// Validate returns the owning user id if a non-revoked, non-expired
// token with the given hash exists, otherwise domain.ErrUnauthorized.
func (r *TokenRepo) Validate(ctx context.Context, tokenHash string, now time.Time) (uint64, error) {
	var (
		userID    uint64
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash = ? LIMIT 1",
		tokenHash).Scan(&userID, &expiresAt, &revokedAt)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("%w: unknown refresh token", domain.ErrUnauthorized)
	}
	if err != nil {
		return 0, err
	}
	if revokedAt.Valid {
		return 0, fmt.Errorf("%w: refresh token revoked", domain.ErrUnauthorized)
	}
	if now.After(expiresAt) {
		return 0, fmt.Errorf("%w: refresh token expired", domain.ErrUnauthorized)
	}
	return userID, nil
}

// Revoke marks a token as revoked.  Revoking an unknown or already
// revoked token is a no-op.
func (r *TokenRepo) Revoke(ctx context.Context, tokenHash string, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at = ? WHERE token_hash = ? AND revoked_at IS NULL",
		now, tokenHash)
	return err
}

// RevokeAllForUser revokes every live token for a user, e.g. on logout
// from all devices or when an account is disabled.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at = ? WHERE user_id = ? AND revoked_at IS NULL",
		now, userID)
	return err
}
