package storage

import (
	"context"
	"time"
)

// RevocationStorage defines interface for the session token denylist
type RevocationStorage interface {
	// Revoke marks token id as revoked until expiresAt.
	// Entries whose expiry has passed are purged during the same write
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error

	// IsRevoked reports whether token id is on the denylist and not yet expired
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	// Close releases the underlying database
	Close() error
}
