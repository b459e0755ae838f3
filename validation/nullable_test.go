package validation

import (
	"testing"

	"github.com/oasref/openapi/jsonpointer"
	"github.com/stretchr/testify/assert"
)

func TestAllowNull_Success(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"Name": map[string]any{"type": "string", "nullable": true, "enum": []any{"a", "b"}},
				"example": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"default": map[string]any{"type": "integer", "nullable": true},
					},
					"example": map[string]any{"type": "string", "nullable": true},
				},
				"Untyped": map[string]any{"nullable": true},
			},
		},
	}

	allowNull(tree, "")

	schemas := tree["components"].(map[string]any)["schemas"].(map[string]any)
	name := schemas["Name"].(map[string]any)
	assert.Equal(t, []any{"string", "null"}, name["type"])
	assert.Equal(t, []any{"a", "b", nil}, name["enum"])

	named := schemas["example"].(map[string]any)
	property := named["properties"].(map[string]any)["default"].(map[string]any)
	assert.Equal(t, []any{"integer", "null"}, property["type"], "schemas named like value keys are still schemas")
	assert.Equal(t, "string", named["example"].(map[string]any)["type"], "example values are left alone")

	assert.NotContains(t, schemas["Untyped"], "type")

	allowNull(tree, "")
	assert.Equal(t, []any{"string", "null"}, name["type"], "rewriting twice is a no-op")
	assert.Len(t, name["enum"], 3)
}

func TestFragment_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ptr  jsonpointer.JSONPointer
		want string
	}{
		{ptr: "", want: ""},
		{ptr: "/components/schemas/Pet", want: "/components/schemas/Pet"},
		{ptr: "/paths/~1pets~1{petId}/get", want: "/paths/~1pets~1%7BpetId%7D/get"},
		{ptr: "/content/text~1plain; charset=utf-8", want: "/content/text~1plain%3B%20charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fragment(tt.ptr))
		})
	}
}
