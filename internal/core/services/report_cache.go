package services

import (
	"log"
	"sync"
	"time"

	"rentdesk/internal/events"

	"github.com/karlseguin/ccache/v3"
)

// ReportCache memoises dashboard results until the next mutation
type ReportCache struct {
	cache *ccache.Cache[any]
	ttl   time.Duration

	// gen counts clears; a result computed across a clear is not stored
	mu  sync.RWMutex
	gen uint64
}

// NewReportCache creates a cache holding at most size entries for ttl each.
// A zero ttl disables caching.
func NewReportCache(size int64, ttl time.Duration) *ReportCache {
	if size <= 0 {
		size = 500
	}
	return &ReportCache{
		cache: ccache.New(ccache.Configure[any]().MaxSize(size)),
		ttl:   ttl,
	}
}

// Subscribe clears the cache whenever hub publishes an event
func (c *ReportCache) Subscribe(hub *events.Hub) {
	hub.Subscribe(func(events.Event) {
		c.Clear()
	})
}

// Clear drops every cached report
func (c *ReportCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.gen++
	c.mu.Unlock()
	c.cache.Clear()
}

// Len returns the number of cached entries
func (c *ReportCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.ItemCount()
}

// Stop releases the cache's background worker
func (c *ReportCache) Stop() {
	if c != nil {
		c.cache.Stop()
	}
}

// cached returns the value under key, computing it with fn on a miss
func cached[T any](c *ReportCache, key string, fn func() (T, error)) (T, error) {
	if c == nil || c.ttl <= 0 {
		return fn()
	}

	if item := c.cache.Get(key); item != nil && !item.Expired() {
		if v, ok := item.Value().(T); ok {
			return v, nil
		}
		log.Printf("⚠️ Report cache: unexpected value type under %q", key)
		c.cache.Delete(key)
	}

	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()

	v, err := fn()
	if err != nil {
		return v, err
	}

	c.mu.RLock()
	if c.gen == gen {
		c.cache.Set(key, v, c.ttl)
	}
	c.mu.RUnlock()
	return v, nil
}
