package api

import (
	"sync"
	"time"
)

// responseCache is a process-wide cache of successful GET response bodies,
// keyed by absolute URL. Entries expire after the configured TTL. Mutable
// authenticated resources (the cart endpoints) never go through it; see
// Client.Get.
type responseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	body      []byte
	timestamp time.Time
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// get returns the cached body for key when present and fresh
func (c *responseCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.timestamp) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.body, true
}

// set stores body under key with the current timestamp
func (c *responseCache) set(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{body: body, timestamp: c.now()}
}

// invalidate drops the entries stored under the given keys
func (c *responseCache) invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
}

// clear drops every entry
func (c *responseCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
