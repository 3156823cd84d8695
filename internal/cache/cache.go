package cache

import (
	"sync"
	"time"
)

type entry struct {
	key string
	ts  time.Time
}

type value struct {
	data []byte
	ts   time.Time
}

// Cache is a small TTL-bounded byte cache the read API puts in front of
// object storage, so hot keys don't hit the store on every request.
type Cache struct {
	mu       sync.Mutex
	items    map[string]value
	order    []entry
	capacity int
	ttl      time.Duration
}

// New creates a cache with the provided capacity and ttl.
func New(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{
		items:    make(map[string]value, capacity),
		order:    make([]entry, 0, capacity),
		capacity: capacity,
		ttl:      ttl,
	}
}

// Get returns the cached payload for key when it is still inside the ttl window.
func (c *Cache) Get(key string) ([]byte, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.items[key]; ok {
		if now.Sub(v.ts) <= c.ttl {
			return v.data, true
		}
	}
	return nil, false
}

// Set records a payload under key, evicting expired and overflow entries.
func (c *Cache) Set(key string, data []byte) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = value{data: data, ts: now}
	c.order = append(c.order, entry{key: key, ts: now})
	c.compact(now)
}

func (c *Cache) compact(now time.Time) {
	cutoff := now.Add(-c.ttl)

	for len(c.order) > 0 && (len(c.items) > c.capacity || c.order[0].ts.Before(cutoff)) {
		oldest := c.order[0]
		c.order = c.order[1:]

		if v, ok := c.items[oldest.key]; ok {
			if v.ts.Equal(oldest.ts) {
				delete(c.items, oldest.key)
			}
		}
	}
}
