package references_test

import (
	"sync"
	"testing"

	"github.com/oasref/openapi/references"
	"github.com/stretchr/testify/assert"
)

func TestCache_TypedSetFillsRawSlot(t *testing.T) {
	t.Parallel()

	c := references.NewCache()
	first := &struct{ name string }{name: "first"}
	second := &struct{ name string }{name: "second"}

	c.Set("a.yaml#/Pet", "Schema", first)
	c.Set("a.yaml#/Pet", "Response", second)

	assert.Same(t, first, c.Get("a.yaml#/Pet", "Schema"))
	assert.Same(t, second, c.Get("a.yaml#/Pet", "Response"))
	assert.Same(t, first, c.Get("a.yaml#/Pet", ""), "raw slot keeps the first typed value")
	assert.False(t, c.Has("a.yaml#/Pet", "Parameter"))
	assert.False(t, c.Has("b.yaml#/Pet", ""))
	assert.Equal(t, 1, c.Len())
}

func TestCache_NilValuesAreRemembered(t *testing.T) {
	t.Parallel()

	c := references.NewCache()
	c.Set("a.yaml#/missing", "", nil)

	v, ok := c.Lookup("a.yaml#/missing", "")
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.True(t, c.Has("a.yaml#/missing", ""))
}

func TestCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := references.NewCache()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Set("ref", "Schema", i)
			_ = c.Get("ref", "")
		}()
	}
	wg.Wait()

	assert.True(t, c.Has("ref", "Schema"))
	assert.True(t, c.Has("ref", ""))
}

func TestNewContext_SeedsCacheWithBaseSpecification(t *testing.T) {
	t.Parallel()

	base := &struct{}{}
	rc, err := references.NewContext(base, "/specs/openapi.yaml", nil)
	assert.NoError(t, err)
	assert.Equal(t, "file:///specs/openapi.yaml", rc.URI())
	assert.Equal(t, references.ResolveModeAll, rc.Mode)
	assert.True(t, rc.ThrowException)
	assert.Same(t, base, rc.Cache().Get("file:///specs/openapi.yaml", ""))

	shared, err := references.NewContext(nil, "/specs/other.yaml", rc.Cache())
	assert.NoError(t, err)
	assert.Same(t, rc.Cache(), shared.Cache(), "a context for another document shares the cache")
	assert.Nil(t, shared.BaseSpecification)
	assert.False(t, shared.Cache().Has("file:///specs/other.yaml", ""), "a shared cache is not seeded")

	existing := references.NewCache()
	withCache, err := references.NewContext(base, "/specs/openapi.yaml", existing)
	assert.NoError(t, err)
	assert.False(t, withCache.Cache().Has("file:///specs/openapi.yaml", ""), "a supplied cache is not seeded")
}
