package version_test

import (
	"testing"

	"github.com/oasref/openapi/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected version.Version
	}{
		{input: "1.0.0", expected: version.Version{Major: 1}},
		{input: "1.1.0", expected: version.Version{Major: 1, Minor: 1}},
		{input: "10.20.30", expected: version.Version{Major: 10, Minor: 20, Patch: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			v, err := version.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *v)
			assert.Equal(t, tt.input, v.String())
		})
	}
}

func TestParse_Error(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "1", "1.0", "1.0.0.0", "a.b.c", "1.-1.0", "1.0.x", "01.0.0", "+1.0.0"} {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			_, err := version.Parse(input)
			require.Error(t, err)
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b     string
		expected int
	}{
		{a: "1.0.0", b: "1.0.0", expected: 0},
		{a: "1.0.0", b: "1.1.0", expected: -1},
		{a: "1.10.0", b: "1.9.0", expected: 1},
		{a: "2.0.0", b: "1.99.99", expected: 1},
		{a: "1.0.1", b: "1.0.2", expected: -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			t.Parallel()

			a, b := version.MustParse(tt.a), version.MustParse(tt.b)
			assert.Equal(t, tt.expected, a.Compare(*b))
			assert.Equal(t, tt.expected < 0, a.LessThan(*b))
		})
	}
}

func TestVersion_IsOneOf(t *testing.T) {
	t.Parallel()

	supported := []*version.Version{version.MustParse("1.0.0"), version.MustParse("1.1.0")}
	assert.True(t, version.MustParse("1.1.0").IsOneOf(supported))
	assert.False(t, version.MustParse("1.2.0").IsOneOf(supported))
	assert.False(t, version.MustParse("1.0.0").IsOneOf(nil))
}

func TestMustParse_Panic(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { version.MustParse("latest") })
}
