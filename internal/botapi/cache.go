package botapi

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cached memoizes the last successful fetch of one endpoint for a fixed
// TTL. Concurrent callers share a single in-flight request. Failures are
// never cached.
type Cached[T any] struct {
	fetch func(context.Context) (T, error)
	ttl   time.Duration
	now   func() time.Time

	group singleflight.Group

	mu      sync.Mutex
	value   T
	fetched time.Time
	valid   bool
}

// NewCached wraps fetch with TTL memoization.
func NewCached[T any](ttl time.Duration, fetch func(context.Context) (T, error)) *Cached[T] {
	return &Cached[T]{
		fetch: fetch,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the cached value when it is still fresh, otherwise fetches a
// new one. The returned bool reports whether the value came from cache.
func (c *Cached[T]) Get(ctx context.Context) (T, bool, error) {
	c.mu.Lock()
	if c.valid && c.now().Sub(c.fetched) < c.ttl {
		v := c.value
		c.mu.Unlock()
		return v, true, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("fetch", func() (any, error) {
		// Re-check under the group: a concurrent caller may have
		// refreshed the cache while we waited on the lock.
		c.mu.Lock()
		if c.valid && c.now().Sub(c.fetched) < c.ttl {
			v := c.value
			c.mu.Unlock()
			return v, nil
		}
		c.mu.Unlock()

		fresh, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.value = fresh
		c.fetched = c.now()
		c.valid = true
		c.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v.(T), false, nil
}

// Invalidate drops the cached value so the next Get refetches.
func (c *Cached[T]) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}
