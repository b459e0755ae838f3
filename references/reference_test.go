package references_test

import (
	"testing"

	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/jsonpointer"
	"github.com/oasref/openapi/references"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFromReference_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		ref         string
		expectedURI string
		expectedPtr jsonpointer.JSONPointer
		canonical   string
	}{
		{
			name:        "local pointer",
			ref:         "#/components/schemas/Pet",
			expectedPtr: "/components/schemas/Pet",
			canonical:   "#/components/schemas/Pet",
		},
		{
			name:        "file with pointer",
			ref:         "definitions.yaml#/Dog",
			expectedURI: "definitions.yaml",
			expectedPtr: "/Dog",
			canonical:   "definitions.yaml#/Dog",
		},
		{
			name:        "file without fragment",
			ref:         "https://example.com/pet.json",
			expectedURI: "https://example.com/pet.json",
			expectedPtr: "",
			canonical:   "https://example.com/pet.json#",
		},
		{
			name:        "percent encoded fragment is decoded",
			ref:         "#/paths/~1pets~1%7BpetId%7D/get",
			expectedPtr: "/paths/~1pets~1{petId}/get",
			canonical:   "#/paths/~1pets~1%7BpetId%7D/get",
		},
		{
			name:        "space and percent",
			ref:         "#/components/schemas/Foo%20Bar/c%25d",
			expectedPtr: "/components/schemas/Foo Bar/c%d",
			canonical:   "#/components/schemas/Foo%20Bar/c%25d",
		},
		{
			name:        "only the first hash splits",
			ref:         "a.yaml#/x#y",
			expectedURI: "a.yaml",
			expectedPtr: "/x#y",
			canonical:   "a.yaml#/x%23y",
		},
		{
			name:        "malformed escapes are kept",
			ref:         "#/a%zz",
			expectedPtr: "/a%zz",
			canonical:   "#/a%25zz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ref, err := references.CreateFromReference(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedURI, ref.DocumentURI)
			assert.Equal(t, tt.expectedPtr, ref.JSONPointer)
			assert.Equal(t, tt.canonical, ref.Reference())

			reparsed, err := references.CreateFromReference(ref.Reference())
			require.NoError(t, err)
			assert.Equal(t, ref, reparsed, "canonical form should parse back to the same reference")
			assert.Equal(t, ref.Reference(), reparsed.Reference())
		})
	}
}

func TestCreateFromReference_Error(t *testing.T) {
	t.Parallel()

	_, err := references.CreateFromReference("definitions.yaml#Dog")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidPointerSyntax)
	assert.Equal(t, "Invalid JSON Pointer syntax: Dog", errors.Cause(err))
}

func TestCreateFromURI(t *testing.T) {
	t.Parallel()

	ref := references.CreateFromURI("file:///specs/openapi.yaml", "/components/schemas/Pet")
	assert.Equal(t, "file:///specs/openapi.yaml#/components/schemas/Pet", ref.Reference())
	assert.False(t, ref.IsLocal())

	local := references.CreateFromURI("", "/paths/~1pets")
	assert.Equal(t, "#/paths/~1pets", local.Reference())
	assert.True(t, local.IsLocal())
	assert.Equal(t, "#/paths/~1pets", local.ToJSON().GetOrZero("$ref"))

	replaced := references.CreateFromURI("a.yaml#/old", "/new")
	assert.Equal(t, "a.yaml#/new", replaced.Reference())
}

func TestCreateFromJSON(t *testing.T) {
	t.Parallel()

	ref, err := references.CreateFromJSON([]byte(`{"$ref": "pets.json#/Pet"}`))
	require.NoError(t, err)
	assert.Equal(t, "pets.json", ref.DocumentURI)
	assert.Equal(t, jsonpointer.JSONPointer("/Pet"), ref.JSONPointer)

	for _, input := range []string{`{"ref": "#/a"}`, `{"$ref": 1}`, `["#/a"]`, `{"$ref": `} {
		_, err := references.CreateFromJSON([]byte(input))
		require.Error(t, err, "input %s should fail", input)
		assert.ErrorIs(t, err, errors.ErrMalformedReference)
	}
}
