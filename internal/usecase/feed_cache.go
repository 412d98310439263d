package usecase

import (
	"sync"
	"time"

	"jobstream/internal/domain/job"
)

// ListingCache holds the most recent successful listing fetch. One
// instance is shared by every consumer of the feed; it is constructed
// and injected explicitly so tests can build isolated caches instead
// of leaning on process-global state. Never persisted.
type ListingCache struct {
	mu        sync.Mutex
	views     []job.View
	fetchedAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

func NewListingCache(ttl time.Duration) *ListingCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ListingCache{ttl: ttl, now: time.Now}
}

// Get returns the cached listing when one exists and is younger than
// the TTL. The returned slice is shared; callers must not mutate it.
func (c *ListingCache) Get() ([]job.View, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.views == nil {
		return nil, false
	}
	if c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.views, true
}

// Stale returns whatever is cached regardless of age, for surfacing
// prior data alongside a fetch error.
func (c *ListingCache) Stale() ([]job.View, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.views, c.views != nil
}

func (c *ListingCache) Put(views []job.View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views = views
	c.fetchedAt = c.now()
}

func (c *ListingCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views = nil
	c.fetchedAt = time.Time{}
}
