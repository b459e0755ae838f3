package cache_test

import (
	"fmt"

	"github.com/oasref/openapi/cache"
	"github.com/oasref/openapi/references"
)

func ExampleClearAllCaches() {
	cache.ClearAllCaches()

	_, _ = references.ResolveRelativeURICached("https://api.example.com/openapi.yaml", "schemas.yaml#/User")

	fmt.Println("reference cache:", cache.GetAllCacheStats().ReferenceCacheSize)

	cache.ClearAllCaches()

	fmt.Println("reference cache:", cache.GetAllCacheStats().ReferenceCacheSize)

	// Output:
	// reference cache: 1
	// reference cache: 0
}
