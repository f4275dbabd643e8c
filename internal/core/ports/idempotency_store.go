package ports

import (
	"context"
	"time"
)

// StoredResponse is a completed response kept for Idempotency-Key replays.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore persists responses keyed by a client supplied key.
type IdempotencyStore interface {
	// Load returns (nil, nil) when the key has not been seen.
	Load(ctx context.Context, key string) (*StoredResponse, error)
	Save(ctx context.Context, key string, resp StoredResponse, ttl time.Duration) error
}
