package references

import (
	"sync"
)

// RefCacheKey identifies a relative URI resolved against a base URI.
type RefCacheKey struct {
	Base string
	URI  string
}

// RefCache is a thread-safe cache of relative URI resolutions. Resolutions are
// pure functions of their key so the cache is shared process wide.
type RefCache struct {
	cache sync.Map // map[RefCacheKey]string
}

var globalRefCache = &RefCache{}

// ResolveRelativeURICached resolves uri against base, reusing earlier results.
func ResolveRelativeURICached(base, uri string) (string, error) {
	return globalRefCache.Resolve(base, uri)
}

// Resolve resolves uri against base using the cache. Failed resolutions are not cached.
func (c *RefCache) Resolve(base, uri string) (string, error) {
	key := RefCacheKey{Base: base, URI: uri}

	if cached, ok := c.cache.Load(key); ok {
		return cached.(string), nil
	}

	resolved, err := resolveRelativeURI(base, uri)
	if err != nil {
		return "", err
	}

	c.cache.Store(key, resolved)

	return resolved, nil
}

// Clear removes all cached resolutions.
func (c *RefCache) Clear() {
	c.cache.Clear()
}

type RefCacheStats struct {
	Size int64
}

// GetRefCacheStats returns statistics about the global resolution cache.
func GetRefCacheStats() RefCacheStats {
	var size int64
	globalRefCache.cache.Range(func(_, _ any) bool {
		size++
		return true
	})
	return RefCacheStats{Size: size}
}

// ClearGlobalRefCache clears the global resolution cache.
func ClearGlobalRefCache() {
	globalRefCache.Clear()
}
