package references

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache stores resolved values keyed by canonical reference and target kind.
// A value stored under a kind is also stored under the raw slot ("") unless
// that slot is already taken, so later untyped lookups reuse the first
// resolution. One Cache is shared by a root context and every context derived
// from it.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]map[string]any
	fetches singleflight.Group
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]map[string]any)}
}

func (c *Cache) Set(ref, kind string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	slots, ok := c.entries[ref]
	if !ok {
		slots = make(map[string]any)
		c.entries[ref] = slots
	}

	slots[kind] = value
	if kind != "" {
		if _, ok := slots[""]; !ok {
			slots[""] = value
		}
	}
}

// Get returns the value cached for ref and kind, or nil.
func (c *Cache) Get(ref, kind string) any {
	v, _ := c.Lookup(ref, kind)
	return v
}

// Has reports whether a value, possibly nil, was stored for ref and kind.
func (c *Cache) Has(ref, kind string) bool {
	_, ok := c.Lookup(ref, kind)
	return ok
}

// Lookup combines Get and Has under a single lock.
func (c *Cache) Lookup(ref, kind string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	slots, ok := c.entries[ref]
	if !ok {
		return nil, false
	}
	v, ok := slots[kind]
	return v, ok
}

// Len returns the number of distinct references cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
