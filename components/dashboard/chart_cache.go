package dashboard

import (
	"sync"
	"time"
)

// DefaultChartCacheTTL is how long rendered chart markup stays reusable.
const DefaultChartCacheTTL = 5 * time.Minute

// RenderCache memoizes rendered chart HTML keyed by view-model content.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// ChartCache is an in-memory TTL cache for rendered charts. It holds markup
// only; analytics responses are never cached.
type ChartCache struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]cachedChart
	hits    uint64
	misses  uint64
}

type cachedChart struct {
	html    string
	expires time.Time
}

// ChartCacheStats reports cache effectiveness.
type ChartCacheStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// NewChartCache builds a cache with the provided TTL. A non-positive TTL
// disables caching.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:        ttl,
		maxEntries: 512,
		now:        time.Now,
		entries:    make(map[string]cachedChart),
	}
}

// GetOrRender returns a live entry or renders and stores a new one. Render
// errors are not cached.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if c == nil || c.ttl <= 0 {
		return render()
	}
	if html, ok := c.lookup(key); ok {
		return html, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	c.store(key, html)
	return html, nil
}

// Stats returns a snapshot of the cache counters.
func (c *ChartCache) Stats() ChartCacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ChartCacheStats{Entries: len(c.entries), Hits: c.hits, Misses: c.misses}
}

func (c *ChartCache) lookup(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if ok && c.now().Before(entry.expires) {
		c.hits++
		return entry.html, true
	}
	if ok {
		delete(c.entries, key)
	}
	c.misses++
	return "", false
}

func (c *ChartCache) store(key, html string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if len(c.entries) >= c.maxEntries {
		c.sweep(now)
	}
	c.entries[key] = cachedChart{html: html, expires: now.Add(c.ttl)}
}

// sweep drops expired entries, then the soonest to expire if still full.
func (c *ChartCache) sweep(now time.Time) {
	var (
		oldestKey string
		oldest    time.Time
	)
	for key, entry := range c.entries {
		if !now.Before(entry.expires) {
			delete(c.entries, key)
			continue
		}
		if oldestKey == "" || entry.expires.Before(oldest) {
			oldestKey, oldest = key, entry.expires
		}
	}
	if len(c.entries) >= c.maxEntries && oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
