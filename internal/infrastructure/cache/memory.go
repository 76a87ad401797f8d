package cache

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is the default in-process response cache. Entries never expire and
// are never evicted; the cache lives exactly as long as the client that owns
// it, so a fresh analysis run starts cold.
type Memory struct {
	c *gocache.Cache
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{c: gocache.New(gocache.NoExpiration, 0)}
}

// Get retrieves a payload from the cache
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	return v.([]byte), nil
}

// Set stores a payload in the cache
func (m *Memory) Set(_ context.Context, key string, payload []byte) error {
	m.c.Set(key, payload, gocache.NoExpiration)
	return nil
}

// Len returns the number of cached entries
func (m *Memory) Len() int {
	return m.c.ItemCount()
}
