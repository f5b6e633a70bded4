// Package cache memoizes fully rendered page bodies for a fixed time
// window. An entry stays live for its TTL even when the data underneath
// changes; the staleness is deliberate, trading freshness for rendering
// cost. Clear drops every entry immediately.
package cache

import (
	"context"
	"sync"
	"time"
)

// RenderFunc produces the bytes to cache on a miss.
type RenderFunc func() ([]byte, error)

// PageCache stores rendered page bodies keyed by rendering target.
// Concurrent readers within the TTL window observe the same bytes. Two
// renders racing on an expired entry is tolerable: last writer wins and
// both renders are equivalent for the same data snapshot.
type PageCache interface {
	// GetOrRender returns the cached bytes for key if present and
	// unexpired; otherwise it invokes render, stores the result with the
	// given TTL, and returns it. The second result reports a cache hit.
	GetOrRender(ctx context.Context, key string, ttl time.Duration, render RenderFunc) ([]byte, bool, error)

	// Clear removes all cached entries regardless of remaining TTL.
	Clear(ctx context.Context) error
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryPageCache is the in-process PageCache. It starts empty, evicts
// lazily on access past expiry, and can be swept by the janitor.
type MemoryPageCache struct {
	mu      sync.Mutex
	entries map[string]entry

	now func() time.Time // overridable in tests
}

// NewMemoryPageCache creates an empty in-process page cache.
func NewMemoryPageCache() *MemoryPageCache {
	return &MemoryPageCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (c *MemoryPageCache) GetOrRender(ctx context.Context, key string, ttl time.Duration, render RenderFunc) ([]byte, bool, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		if c.now().Before(e.expiresAt) {
			c.mu.Unlock()
			return e.data, true, nil
		}
		delete(c.entries, key)
	}
	c.mu.Unlock()

	// Render outside the lock. A concurrent miss on the same key renders
	// twice; last writer wins.
	data, err := render()
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	c.entries[key] = entry{data: data, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()

	return data, false, nil
}

func (c *MemoryPageCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	return nil
}

// Sweep drops expired entries eagerly. Called periodically by the
// janitor so abandoned keys do not pile up between requests. Returns the
// number of entries removed.
func (c *MemoryPageCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of live entries, expired or not.
func (c *MemoryPageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
