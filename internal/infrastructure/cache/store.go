package cache

import (
	"context"
	"fmt"
)

// ErrCacheMiss indicates the key was not found in cache
var ErrCacheMiss = fmt.Errorf("cache miss")

// Store is a response cache keyed by "<kind>:<subject>". Payloads are raw
// upstream response bodies.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte) error
}

// Key builds the canonical cache key for a request kind and subject.
func Key(kind, subject string) string {
	return kind + ":" + subject
}
