// Package utils holds small process-wide helpers shared by the reference
// resolver.
package utils

import (
	"net/url"
	"sync"
)

// URLCache memoizes url.Parse. Callers always receive their own copy.
type URLCache struct {
	entries sync.Map // map[string]url.URL
}

var globalURLCache = &URLCache{}

// ParseURLCached parses rawURL through the process-wide cache.
func ParseURLCached(rawURL string) (*url.URL, error) {
	return globalURLCache.Parse(rawURL)
}

// Parse returns a fresh *url.URL for rawURL. Parse failures are not cached.
func (c *URLCache) Parse(rawURL string) (*url.URL, error) {
	if cached, ok := c.entries.Load(rawURL); ok {
		u := cached.(url.URL)
		return &u, nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	c.entries.Store(rawURL, *parsed)

	return parsed, nil
}

// Len returns the number of cached URLs.
func (c *URLCache) Len() int64 {
	var n int64
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Clear drops every cached URL.
func (c *URLCache) Clear() {
	c.entries.Clear()
}

type URLCacheStats struct {
	Size int64
}

// GetURLCacheStats reports the size of the process-wide cache.
func GetURLCacheStats() URLCacheStats {
	return URLCacheStats{Size: globalURLCache.Len()}
}

// ClearGlobalURLCache empties the process-wide cache.
func ClearGlobalURLCache() {
	globalURLCache.Clear()
}
