package elevation

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"roadtrace/internal/geo"
)

// Cache is a thread-safe TTL cache of elevations keyed by rounded coordinate.
type Cache struct {
	items map[string]cacheItem
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
}

type cacheItem struct {
	value  float64
	expiry time.Time
}

// NewCache creates a cache whose entries live for ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		items: make(map[string]cacheItem),
		ttl:   ttl,
		now:   time.Now,
	}
}

func cacheKey(v geo.Vertex) string {
	return fmt.Sprintf("%.5f,%.5f", v.Lat, v.Lon)
}

// Get returns the cached elevation for v.
func (c *Cache) Get(v geo.Vertex) (float64, bool) {
	key := cacheKey(v)
	c.mu.RLock()
	item, found := c.items[key]
	c.mu.RUnlock()
	if !found {
		return 0, false
	}
	if c.now().After(item.expiry) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return 0, false
	}
	return item.value, true
}

// Set stores the elevation for v.
func (c *Cache) Set(v geo.Vertex, elevation float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[cacheKey(v)] = cacheItem{value: elevation, expiry: c.now().Add(c.ttl)}
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// CachedProvider serves repeated locations from a Cache and forwards only misses.
type CachedProvider struct {
	next  Provider
	cache *Cache
}

// NewCachedProvider wraps next with a cache of the given TTL.
func NewCachedProvider(next Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{next: next, cache: NewCache(ttl)}
}

// Lookup implements Provider.
func (p *CachedProvider) Lookup(ctx context.Context, locations []geo.Vertex) ([]float64, error) {
	out := make([]float64, len(locations))
	var missIdx []int
	var misses []geo.Vertex
	for i, v := range locations {
		if e, ok := p.cache.Get(v); ok {
			out[i] = e
			continue
		}
		missIdx = append(missIdx, i)
		misses = append(misses, v)
	}
	if len(misses) == 0 {
		return out, nil
	}

	fetched, err := p.next.Lookup(ctx, misses)
	if err != nil {
		return nil, err
	}
	if len(fetched) != len(misses) {
		return nil, fmt.Errorf("%w: sent %d, got %d", ErrLengthMismatch, len(misses), len(fetched))
	}
	for j, i := range missIdx {
		out[i] = fetched[j]
		if !math.IsNaN(fetched[j]) && !math.IsInf(fetched[j], 0) {
			p.cache.Set(misses[j], fetched[j])
		}
	}
	return out, nil
}
