package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/thuwalaco/thuwala-site/internal/model"
)

// TokenRepo persists password reset tokens. At most one live token
// exists per user: Create is always preceded by DeleteUnusedForUser in
// the reset flow, and the reconciler sweeps expired rows at startup.
type TokenRepo struct{ db *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// Create inserts a reset token row.
func (r *TokenRepo) Create(ctx context.Context, userID uint64, token string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO password_reset_tokens (user_id, token, expires_at) VALUES (?,?,?)",
		userID, token, expiresAt)
	if isDuplicate(err) {
		return ErrTokenExists
	}
	return err
}

// GetUnused returns the token row if it exists and has not been
// consumed yet. Expiry is left to the caller so it can distinguish
// "unknown token" from "expired token" in its response.
func (r *TokenRepo) GetUnused(ctx context.Context, token string) (model.PasswordResetToken, error) {
	var t model.PasswordResetToken
	err := r.db.QueryRowContext(ctx,
		"SELECT id,user_id,token,created_at,expires_at,is_used FROM password_reset_tokens WHERE token=? AND is_used=0 LIMIT 1",
		token).Scan(&t.ID, &t.UserID, &t.Token, &t.CreatedAt, &t.ExpiresAt, &t.IsUsed)
	return t, err
}

// MarkUsed consumes a token. A token is consumed exactly once; the
// is_used guard in the WHERE clause makes a second consume a no-op
// that reports sql.ErrNoRows.
func (r *TokenRepo) MarkUsed(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE password_reset_tokens SET is_used=1 WHERE id=? AND is_used=0", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteUnusedForUser removes any live tokens for the user before a
// new one is issued.
func (r *TokenRepo) DeleteUnusedForUser(ctx context.Context, userID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM password_reset_tokens WHERE user_id=? AND is_used=0", userID)
	return err
}

// DeleteExpired removes every token whose expiry is before now,
// regardless of use-state, and returns the number of rows removed.
func (r *TokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM password_reset_tokens WHERE expires_at<?", now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
