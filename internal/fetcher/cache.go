package fetcher

import (
	"sync"
	"time"
)

// Cache is a bounded time-to-live cache for fetched responses, keyed by the
// full request fingerprint. It sits explicitly in front of a Client at call
// sites that opt in; entries expire by wall clock.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	resp   *Response
	expiry time.Time
}

// NewCache creates a cache whose entries live for ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached response for spec, if present and unexpired.
// Expired entries are evicted on access.
func (c *Cache) Get(spec RequestSpec) (*Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := spec.Fingerprint()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiry) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.resp, true
}

// Put stores the response for spec until the TTL elapses.
func (c *Cache) Put(spec RequestSpec, resp *Response) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[spec.Fingerprint()] = cacheEntry{
		resp:   resp,
		expiry: c.now().Add(c.ttl),
	}
}
