// Package cache clears and reports the process-wide caches used while reading
// documents. Per-document state lives in references.Cache and is not touched.
package cache

import (
	"github.com/oasref/openapi/internal/utils"
	"github.com/oasref/openapi/marshaller"
	"github.com/oasref/openapi/references"
)

// ClearAllCaches empties the URL, URI resolution and struct field caches.
func ClearAllCaches() {
	ClearURLCache()
	ClearReferenceCache()
	ClearFieldCache()
}

// ClearURLCache empties the parsed URL cache.
func ClearURLCache() {
	utils.ClearGlobalURLCache()
}

// ClearReferenceCache empties the cache of relative URIs resolved against a base.
func ClearReferenceCache() {
	references.ClearGlobalRefCache()
}

// ClearFieldCache empties the struct field metadata cache. It is rebuilt on
// the next decode.
func ClearFieldCache() {
	marshaller.ClearGlobalFieldCache()
}

// Stats holds the entry count of each process-wide cache.
type Stats struct {
	URLCacheSize       int64
	ReferenceCacheSize int64
	FieldCacheSize     int64
}

// GetAllCacheStats returns the current entry counts.
func GetAllCacheStats() Stats {
	return Stats{
		URLCacheSize:       utils.GetURLCacheStats().Size,
		ReferenceCacheSize: references.GetRefCacheStats().Size,
		FieldCacheSize:     marshaller.GetFieldCacheStats().Size,
	}
}
