package shared

import (
	"context"
	"time"
)

// IdempotencyStore tracks already-handled submission keys so retried
// requests do not import the same invoice batch twice
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL. Returns true if
	// the key was newly marked, false if it was already processed.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been processed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close releases any resources held by the store
	Close() error
}
