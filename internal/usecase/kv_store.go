package usecase

import (
	"context"
	"time"
)

// KVStore is the local persistent key/value store for the notification
// and settings JSON blobs. ttl <= 0 means no expiry.
type KVStore interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
