package driven

import (
	"context"
	"time"
)

// SessionStore records revoked session token ids so that a logged-out token
// is rejected even before it expires.
type SessionStore interface {
	// Revoke marks tokenID as revoked until expiresAt. Revoking twice is a no-op.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error

	// IsRevoked reports whether tokenID has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	// PruneExpired removes revocations whose expiry is before now.
	PruneExpired(ctx context.Context, now time.Time) (int64, error)
}
