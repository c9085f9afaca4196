package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepo stores refresh-token sessions, one row per user.
type SessionRepo struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewSessionRepo(pool *pgxpool.Pool, timeout time.Duration) *SessionRepo {
	return &SessionRepo{pool: pool, timeout: timeout}
}

// Upsert replaces the user's session; logging in on a second device
// invalidates the first refresh token.
func (r *SessionRepo) Upsert(ctx context.Context, userID int64, refreshToken string, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO session (userid, refreshtoken, expiresat)
		VALUES ($1, $2, $3)
		ON CONFLICT (userid)
		DO UPDATE SET refreshtoken = EXCLUDED.refreshtoken, expiresat = EXCLUDED.expiresat
	`, userID, refreshToken, expiresAt)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (r *SessionRepo) DeleteByToken(ctx context.Context, refreshToken string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM session WHERE refreshtoken = $1`, refreshToken)
	if err != nil {
		return false, fmt.Errorf("delete session by token: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SessionRepo) DeleteByUser(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `DELETE FROM session WHERE userid = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete sessions for user: %w", err)
	}
	return nil
}

// DeleteExpired is an opportunistic sweep run after each login.
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM session WHERE expiresat < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
