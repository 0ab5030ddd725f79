package product

import (
	"context"
	"sync"
)

// Lookuper is satisfied by Client and by the cache itself.
type Lookuper interface {
	Lookup(ctx context.Context, code string) (Product, error)
}

// Cache decorates a Lookuper with an in-memory write-through cache.
// Only successful non-generic lookups are cached: misses and failures stay
// uncached so a code can resolve later once the catalog learns about it.
type Cache struct {
	next Lookuper

	mu      sync.Mutex
	entries map[string]Product
}

func NewCache(next Lookuper) *Cache {
	return &Cache{
		next:    next,
		entries: make(map[string]Product),
	}
}

func (c *Cache) Lookup(ctx context.Context, code string) (Product, error) {
	c.mu.Lock()
	if p, ok := c.entries[code]; ok {
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()

	p, err := c.next.Lookup(ctx, code)
	if err != nil {
		return Product{}, err
	}

	if p.Found {
		c.mu.Lock()
		c.entries[code] = p
		c.mu.Unlock()
	}

	return p, nil
}
