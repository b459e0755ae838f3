package openapi_test

import (
	"testing"

	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/openapi"
	"github.com/oasref/openapi/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docHeader = `openapi: 3.0.0
info:
  title: Test
  version: 1.0.0
`

func TestReadFromYAML_ConstructionErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		yaml     string
		expected []string
	}{
		{
			name: "boolean property given a string",
			yaml: docHeader + `paths: {}
components:
  schemas:
    A:
      uniqueItems: "yes"
`,
			expected: []string{"Property 'uniqueItems' must be a boolean, but got string"},
		},
		{
			name: "list property given a mapping",
			yaml: docHeader + `paths: {}
servers:
  url: https://example.com
`,
			expected: []string{"Property 'servers' must be an array, but got object"},
		},
		{
			name: "string list with other items",
			yaml: docHeader + `paths: {}
components:
  schemas:
    A:
      required: [name, 1]
`,
			expected: []string{"property 'required' must be array of strings, but array has integer element."},
		},
		{
			name: "string map with other values",
			yaml: docHeader + `paths: {}
components:
  securitySchemes:
    oauth:
      type: oauth2
      flows:
        implicit:
          authorizationUrl: https://example.com/auth
          scopes:
            read: Read access
            write: 2
`,
			expected: []string{"property 'scopes' must be map<string, string>, but entry 'write' is of type integer."},
		},
		{
			name: "enum given a scalar",
			yaml: docHeader + `paths: {}
components:
  schemas:
    A:
      enum: red
`,
			expected: []string{"Property 'enum' must be an array, but got string"},
		},
		{
			name: "reference with additional properties",
			yaml: docHeader + `paths: {}
components:
  schemas:
    A:
      $ref: '#/components/schemas/B'
      description: not allowed
`,
			expected: []string{"Reference: additional properties are given. Only $ref should be set in a Reference Object."},
		},
		{
			name: "invalid status code",
			yaml: docHeader + `paths:
  /a:
    get:
      responses:
        '600':
          description: Nope.
`,
			expected: []string{"Responses: 600 is not a valid HTTP status code."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := openapi.ReadFromYAML([]byte(tt.yaml))
			require.NoError(t, err, "construction errors are recorded, not returned")
			assert.Equal(t, tt.expected, doc.Errors())
		})
	}
}

func TestReadFromYAML_TypeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		yaml     string
		expected string
	}{
		{
			name: "object given a scalar",
			yaml: `openapi: 3.0.0
info: broken
paths: {}
`,
			expected: "Unable to instantiate Info Object with data '\"broken\"'",
		},
		{
			name: "additionalProperties given a string",
			yaml: docHeader + `paths: {}
components:
  schemas:
    A:
      additionalProperties: maybe
`,
			expected: `Schema::$additionalProperties MUST be either boolean or a Schema/Reference object, "string" given`,
		},
		{
			name: "path given a scalar",
			yaml: docHeader + `paths:
  /a: 1
`,
			expected: `Path MUST be either array or PathItem object, "integer" given`,
		},
		{
			name: "response given a list",
			yaml: docHeader + `paths:
  /a:
    get:
      responses:
        '200': []
`,
			expected: `Response MUST be either an array, a Response or a Reference object, "array" given`,
		},
		{
			name:     "document is not a mapping",
			yaml:     "- openapi\n",
			expected: "Unable to instantiate OpenAPI Object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := openapi.ReadFromYAML([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrType)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestReadFromYAML_Properties(t *testing.T) {
	t.Parallel()

	doc, err := openapi.ReadFromYAML([]byte(docHeader + `paths:
  /a: null
  /b:
    x-internal: true
    parameters: []
    get:
      responses:
        default:
          description: Anything.
x-generator: hand
unknownProperty: kept
components:
  schemas:
    A:
      type: object
      maximum: 10
      additionalProperties:
        $ref: '#/components/schemas/B'
      example:
        $ref: '#/components/examples/E'
    B:
      additionalProperties: false
      nullable: true
`))
	require.NoError(t, err)
	assert.Empty(t, doc.Errors())

	item, found := doc.Paths.Items.Get("/a")
	assert.True(t, found, "null path items are kept")
	assert.Nil(t, item)

	b := doc.GetPathItem("/b")
	require.NotNil(t, b)
	internal, _ := b.GetExtension("x-internal")
	assert.Equal(t, true, internal)
	assert.NotNil(t, b.Parameters)
	assert.Empty(t, b.Parameters)

	generator, _ := doc.GetExtension("x-generator")
	assert.Equal(t, "hand", generator)
	unknown, _ := doc.GetUnknown("unknownProperty")
	assert.Equal(t, "kept", unknown)

	a := doc.Components.GetSchema("A").GetObject()
	require.NotNil(t, a)
	assert.True(t, a.AdditionalPropertiesAllowed())
	require.NotNil(t, a.GetAdditionalPropertiesSchema())
	assert.True(t, a.GetAdditionalPropertiesSchema().IsReference())
	assert.IsType(t, &openapi.Reference{}, a.Example, "a $ref in an untyped value becomes a reference")

	nullable, set := a.IsNullable()
	assert.False(t, nullable)
	assert.True(t, set, "nullable defaults to false when a type is given")
	exclusive, set := a.IsExclusiveMaximum()
	assert.False(t, exclusive)
	assert.True(t, set)
	_, set = a.IsExclusiveMinimum()
	assert.False(t, set, "exclusiveMinimum has no default without minimum")

	bSchema := doc.Components.GetSchema("B").GetObject()
	assert.False(t, bSchema.AdditionalPropertiesAllowed())
	nullable, set = bSchema.IsNullable()
	assert.True(t, nullable)
	assert.True(t, set)
}

func TestParameter_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		param   openapi.Parameter
		style   string
		explode bool
	}{
		{name: "query", param: openapi.Parameter{In: openapi.ParameterInQuery}, style: "form", explode: true},
		{name: "cookie", param: openapi.Parameter{In: openapi.ParameterInCookie}, style: "form", explode: true},
		{name: "path", param: openapi.Parameter{In: openapi.ParameterInPath}, style: "simple", explode: false},
		{name: "header", param: openapi.Parameter{In: openapi.ParameterInHeader}, style: "simple", explode: false},
		{name: "explicit non-form style", param: openapi.Parameter{In: openapi.ParameterInQuery, Style: pointer.From("deepObject")}, style: "deepObject", explode: false},
		{name: "explicit form style", param: openapi.Parameter{In: openapi.ParameterInPath, Style: pointer.From("form")}, style: "form", explode: true},
		{name: "explicit explode", param: openapi.Parameter{In: openapi.ParameterInQuery, Explode: pointer.From(false)}, style: "form", explode: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.style, tt.param.GetStyle())
			assert.Equal(t, tt.explode, tt.param.GetExplode())
		})
	}
}

func TestEncoding_DefaultContentType(t *testing.T) {
	t.Parallel()

	doc, err := openapi.ReadFromYAML([]byte(docHeader + `paths:
  /upload:
    post:
      requestBody:
        content:
          multipart/form-data:
            schema:
              type: object
              properties:
                file:
                  type: string
                  format: binary
                id:
                  type: integer
                meta:
                  type: object
                tags:
                  type: array
                  items:
                    type: string
                custom:
                  type: string
            encoding:
              file: {}
              id: {}
              meta: {}
              tags: {}
              custom:
                contentType: image/png
                style: form
      responses:
        '204':
          description: Stored.
`))
	require.NoError(t, err)

	body := doc.GetPathItem("/upload").Post.RequestBody.GetObject()
	require.NotNil(t, body)
	mediaType := body.Content.GetOrZero("multipart/form-data")
	require.NotNil(t, mediaType)

	expected := map[string]string{
		"file":   "application/octet-stream",
		"id":     "text/plain",
		"meta":   "application/json",
		"tags":   "text/plain",
		"custom": "image/png",
	}
	for name, contentType := range expected {
		encoding := mediaType.Encoding.GetOrZero(name)
		require.NotNil(t, encoding, name)
		assert.Equal(t, contentType, encoding.GetContentType(), name)
	}

	assert.True(t, mediaType.Encoding.GetOrZero("custom").GetExplode(), "explode defaults to true for the form style")
	assert.False(t, mediaType.Encoding.GetOrZero("file").GetExplode())
}
