package service

import (
	"sync"
	"time"
)

// DefaultCacheTTL is how long a memoized read stays fresh
const DefaultCacheTTL = 60 * time.Second

// Cache keys shared by the read and write paths. Writers must refresh the
// same key the readers use so a read never trails the most recent write.
const (
	CacheKeyBookableDates = "dates:bookable"
	CacheKeyAllDates      = "dates:all"
	CacheKeyAppointments  = "appointments:all"
	CacheKeyStyles        = "styles:active"
	CacheKeyAllStyles     = "styles:all"
	CacheKeyCategories    = "categories:active"
	CacheKeyAllCategories = "categories:all"
)

type cacheEntry struct {
	value    interface{}
	storedAt time.Time
}

// QueryCache is a per-key read-through memo for list queries. It is an
// explicit injected object, process-local, and invalidated by writers
// re-running the read query with force=true right after the mutation.
type QueryCache struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewQueryCache(ttl time.Duration) *QueryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &QueryCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the memoized value for key if it is younger than the TTL and
// force is false; otherwise it runs loader, stores the result, and returns it.
// A loader error leaves any previous entry untouched.
func (c *QueryCache) Get(key string, force bool, loader func() (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	if !force {
		if entry, ok := c.entries[key]; ok && c.now().Sub(entry.storedAt) < c.ttl {
			c.mu.Unlock()
			return entry.value, nil
		}
	}
	c.mu.Unlock()

	value, err := loader()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, storedAt: c.now()}
	c.mu.Unlock()
	return value, nil
}

// Invalidate drops a single key. No cross-key invalidation.
func (c *QueryCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
