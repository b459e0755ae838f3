package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLCache_Parse_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		scheme string
		host   string
		path   string
	}{
		{name: "http document", raw: "https://example.com/specs/openapi.yaml", scheme: "https", host: "example.com", path: "/specs/openapi.yaml"},
		{name: "file uri", raw: "file:///root/openapi.yaml", scheme: "file", path: "/root/openapi.yaml"},
		{name: "relative path", raw: "defs.yaml", path: "defs.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := &URLCache{}

			first, err := c.Parse(tt.raw)
			require.NoError(t, err, "first parse should succeed")
			second, err := c.Parse(tt.raw)
			require.NoError(t, err, "cached parse should succeed")

			assert.Equal(t, tt.scheme, second.Scheme, "scheme should match")
			assert.Equal(t, tt.host, second.Host, "host should match")
			assert.Equal(t, tt.path, second.Path, "path should match")
			assert.Equal(t, first.String(), second.String(), "cached result should equal the parsed one")
			assert.NotSame(t, first, second, "each call should return its own copy")
			assert.Equal(t, int64(1), c.Len(), "one entry should be cached")
		})
	}
}

func TestURLCache_Parse_CopiesAreIndependent(t *testing.T) {
	t.Parallel()
	c := &URLCache{}

	first, err := c.Parse("https://example.com/a")
	require.NoError(t, err)
	first.Host = "changed.example.com"

	second, err := c.Parse("https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "example.com", second.Host, "mutating a result should not affect the cache")
}

func TestURLCache_Parse_Error(t *testing.T) {
	t.Parallel()
	c := &URLCache{}

	_, err := c.Parse("://missing-scheme")
	require.Error(t, err, "invalid URL should fail")
	assert.Equal(t, int64(0), c.Len(), "failures should not be cached")
}

func TestURLCache_ConcurrentParse(t *testing.T) {
	t.Parallel()
	c := &URLCache{}

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := c.Parse("https://example.com/openapi.json")
			assert.NoError(t, err)
			assert.Equal(t, "example.com", u.Host)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), c.Len(), "concurrent parses should share one entry")

	c.Clear()
	assert.Equal(t, int64(0), c.Len(), "clear should empty the cache")
}
