package json_test

import (
	"bytes"
	"testing"

	"github.com/oasref/openapi/json"
	"github.com/oasref/openapi/sequencedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestUnmarshal_Success(t *testing.T) {
	t.Parallel()

	v, err := json.Unmarshal([]byte(`{"z": 1, "a": [1.5, "x", true, null], "200": {}, "big": 1e3}`))
	require.NoError(t, err)

	m, ok := v.(*sequencedmap.Map[string, any])
	require.True(t, ok)

	var keys []string
	for k := range m.Keys() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"z", "a", "200", "big"}, keys, "object keys keep document order")
	assert.Equal(t, 1, m.GetOrZero("z"))
	assert.Equal(t, []any{1.5, "x", true, nil}, m.GetOrZero("a"))
	assert.Equal(t, sequencedmap.New[string, any](), m.GetOrZero("200"))
	assert.Equal(t, 1000.0, m.GetOrZero("big"))
}

func TestUnmarshal_Error(t *testing.T) {
	t.Parallel()

	for _, input := range []string{`{"a": }`, `{"a": 1} {}`, `[1, 2`, ``} {
		_, err := json.Unmarshal([]byte(input))
		assert.Error(t, err, "input %q should fail", input)
	}
}

func TestMarshal_Success(t *testing.T) {
	t.Parallel()

	inner := sequencedmap.New[string, any]()
	inner.Set("$ref", "#/components/schemas/Pet")

	doc := sequencedmap.New[string, any]()
	doc.Set("title", "Café <&> /pets")
	doc.Set("count", 2)
	doc.Set("ratio", 0.5)
	doc.Set("items", []any{inner, nil, false})
	doc.Set("empty", sequencedmap.New[string, any]())
	doc.Set("none", []any{})

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, `{
  "title": "Café <&> /pets",
  "count": 2,
  "ratio": 0.5,
  "items": [
    {
      "$ref": "#/components/schemas/Pet"
    },
    null,
    false
  ],
  "empty": {},
  "none": []
}`, string(data))

	compact, err := json.MarshalIndent(doc, 0)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Café <&> /pets","count":2,"ratio":0.5,"items":[{"$ref":"#/components/schemas/Pet"},null,false],"empty":{},"none":[]}`, string(compact))

	reparsed, err := json.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, doc, reparsed)
}

func TestYAMLToJSON_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		yamlInput    string
		expectedJSON string
		indentation  int
	}{
		{
			name:         "simple scalar string",
			yamlInput:    `hello world`,
			expectedJSON: "\"hello world\"\n",
			indentation:  2,
		},
		{
			name: "simple object",
			yamlInput: `name: John
age: 30`,
			expectedJSON: `{
  "name": "John",
  "age": 30
}
`,
			indentation: 2,
		},
		{
			name: "status codes as keys",
			yamlInput: `200:
  description: ok`,
			expectedJSON: `{
    "200": {
        "description": "ok"
    }
}
`,
			indentation: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var node yaml.Node
			require.NoError(t, yaml.Unmarshal([]byte(tt.yamlInput), &node))

			var buffer bytes.Buffer
			err := json.YAMLToJSON(&node, tt.indentation, &buffer)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedJSON, buffer.String())
		})
	}
}
