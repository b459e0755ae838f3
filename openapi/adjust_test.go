package openapi

import (
	"testing"

	"github.com/oasref/openapi/json"
	"github.com/oasref/openapi/yml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustRelativeReferences(t *testing.T) {
	t.Parallel()

	document, err := yml.Unmarshal([]byte(`A:
  $ref: '#/B'
B:
  type: string
  next:
    $ref: '#/C'
C:
  type: integer
D:
  $ref: 'other.yaml#/X'
E:
  $ref: '../api.yaml#/components/schemas/P'
F:
  externalValue: examples/f.json
G:
  - $ref: 'https://example.com/shared.yaml#/G'
`))
	require.NoError(t, err)

	before, err := json.MarshalIndent(document, 0)
	require.NoError(t, err)

	adjusted, err := adjustRelativeReferences(document, "file:///root/sub/defs.yaml", "file:///root/api.yaml")
	require.NoError(t, err)

	out, err := json.MarshalIndent(adjusted, 0)
	require.NoError(t, err)

	assert.JSONEq(t, `{
  "A": {"type": "string", "next": {"$ref": "file:///root/sub/defs.yaml#/C"}},
  "B": {"type": "string", "next": {"type": "integer"}},
  "C": {"type": "integer"},
  "D": {"$ref": "./sub/other.yaml#/X"},
  "E": {"$ref": "#/components/schemas/P"},
  "F": {"externalValue": "./sub/examples/f.json"},
  "G": [{"$ref": "https://example.com/shared.yaml#/G"}]
}`, string(out))

	after, err := json.MarshalIndent(document, 0)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "the fetched document is not modified")
}
