package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/kjh/spacebook/internal/model"
)

// TokenRepo persists refresh tokens, one live row per user. Only the
// SHA-256 hash of the token ever reaches the table; replacing the
// row wholesale on every signup/login/reissue guarantees at most one
// valid refresh token per user.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// ReplaceForUser deletes any previous token row for the user and
// inserts the new hash in one transaction, so a crash between the
// two statements can never leave two live tokens.
func (r *TokenRepo) ReplaceForUser(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE user_id=?", userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, tokenHash, exp.UTC()); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Lookup resolves a stored token row by hash. An unknown hash is
// ErrInvalidRefreshToken; a known but expired one is
// ErrExpiredRefreshToken. A hash that was replaced by a newer login
// simply no longer exists, so replay of an old token falls into the
// invalid case.
func (r *TokenRepo) Lookup(ctx context.Context, tokenHash string) (model.RefreshToken, error) {
	var rt model.RefreshToken
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, token_hash, expires_at, created_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&rt.ID, &rt.UserID, &rt.TokenHash, &rt.ExpiresAt, &rt.CreatedAt)
	if err == sql.ErrNoRows {
		return model.RefreshToken{}, ErrInvalidRefreshToken
	}
	if err != nil {
		return model.RefreshToken{}, err
	}
	if time.Now().UTC().After(rt.ExpiresAt) {
		return model.RefreshToken{}, ErrExpiredRefreshToken
	}
	return rt, nil
}

// DeleteForUser drops the user's token row. Used on logout and
// account withdrawal.
func (r *TokenRepo) DeleteForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE user_id=?", userID)
	return err
}
