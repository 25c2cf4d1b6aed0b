package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/ericfisherdev/jobtracker/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SessionStore = (*SessionRepo)(nil)

// SessionRepo is the SQLite implementation of the SessionStore port interface.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new SessionRepo backed by the given DB.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Revoke records tokenID as revoked. Idempotent.
func (r *SessionRepo) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	const query = `INSERT OR IGNORE INTO revoked_sessions (token_id, expires_at) VALUES (?, ?)`
	if _, err := r.db.Writer.ExecContext(ctx, query, tokenID, expiresAt.Unix()); err != nil {
		return fmt.Errorf("revoke session %s: %w", tokenID, err)
	}
	return nil
}

// IsRevoked returns whether tokenID has been revoked.
func (r *SessionRepo) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	const query = `SELECT COUNT(*) FROM revoked_sessions WHERE token_id = ?`
	var count int
	if err := r.db.Reader.QueryRowContext(ctx, query, tokenID).Scan(&count); err != nil {
		return false, fmt.Errorf("check revoked session %s: %w", tokenID, err)
	}
	return count > 0, nil
}

// PruneExpired deletes revocations that expired before now and returns how many were removed.
func (r *SessionRepo) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM revoked_sessions WHERE expires_at < ?`
	result, err := r.db.Writer.ExecContext(ctx, query, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune revoked sessions: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}
	return n, nil
}
