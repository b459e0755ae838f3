package openapi_test

import (
	"testing"

	"github.com/oasref/openapi/openapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		yaml     string
		expected []string
	}{
		{
			name: "missing required properties",
			yaml: `openapi: 3.0.0
info:
  version: 1.0.0
`,
			expected: []string{
				"OpenAPI is missing required property: paths",
				"Info is missing required property: title",
			},
		},
		{
			name:     "unsupported version",
			yaml:     "openapi: 3.1.0\n" + docTail,
			expected: []string{"Unsupported openapi version: 3.1.0"},
		},
		{
			name: "path must begin with a slash",
			yaml: docHeader + `paths:
  pets: {}
`,
			expected: []string{"Path must begin with /: pets"},
		},
		{
			name: "contact and license",
			yaml: `openapi: 3.0.0
info:
  title: Test
  version: 1.0.0
  contact:
    email: nobody
    url: example.com
  license:
    url: example.com/license
paths: {}
`,
			expected: []string{
				"Contact::$email does not seem to be a valid email address: nobody",
				"Contact::$url does not seem to be a valid URL: example.com",
				"License is missing required property: name",
				"License::$url does not seem to be a valid URL: example.com/license",
			},
		},
		{
			name: "path parameter",
			yaml: docHeader + `paths:
  /pets/{id}:
    parameters:
      - name: id
        in: path
        style: form
        schema:
          type: string
        content:
          application/json: {}
          text/plain: {}
`,
			expected: []string{
				"Parameter is missing required property: required",
				"Parameter 'required' must be true for 'in': 'path'.",
				"A Parameter Object MUST contain either a schema property, or a content property, but not both.",
				"A Parameter Object with Content property MUST have A SINGLE content type.",
				"A Parameter Object DOES NOT support this serialization style.",
			},
		},
		{
			name: "header",
			yaml: docHeader + `paths: {}
components:
  headers:
    Rate:
      name: X-Rate
      in: header
      schema:
        type: integer
`,
			expected: []string{
				"'name' must not be specified in Header Object.",
				"'in' must not be specified in Header Object.",
			},
		},
		{
			name: "operation and response",
			yaml: docHeader + `paths:
  /a:
    get:
      summary: No responses.
    put:
      responses:
        '200': {}
`,
			expected: []string{
				"Operation is missing required property: responses",
				"Response is missing required property: description",
			},
		},
		{
			name: "link",
			yaml: docHeader + `paths: {}
components:
  links:
    Both:
      operationId: getPet
      operationRef: '#/paths/~1pets/get'
`,
			expected: []string{"Link: operationId and operationRef are mutually exclusive."},
		},
		{
			name: "component keys",
			yaml: docHeader + `paths: {}
components:
  schemas:
    'Pet Name':
      type: string
`,
			expected: []string{"Invalid key 'Pet Name' used in Components Object for attribute 'schemas', does not match ^[a-zA-Z0-9\\.\\-_]+$."},
		},
		{
			name: "security schemes",
			yaml: docHeader + `paths: {}
components:
  securitySchemes:
    key:
      type: apiKey
      in: body
    basic:
      type: http
    oauth:
      type: oauth2
    oidc:
      type: openIdConnect
    other:
      type: magic
`,
			expected: []string{
				"SecurityScheme is missing required property: name",
				"Invalid value for Security Scheme property 'in': body",
				"SecurityScheme is missing required property: scheme",
				"SecurityScheme is missing required property: flows",
				"SecurityScheme is missing required property: openIdConnectUrl",
				"Unknown Security Scheme type: magic",
			},
		},
		{
			name: "oauth flow, discriminator, tag, server and external docs",
			yaml: docHeader + `paths: {}
servers:
  - description: no url
    variables:
      region:
        enum: [eu, us]
tags:
  - description: no name
externalDocs:
  url: docs
components:
  securitySchemes:
    oauth:
      type: oauth2
      flows:
        password:
          tokenUrl: https://example.com/token
  schemas:
    Pet:
      discriminator:
        mapping:
          dog: '#/components/schemas/Dog'
`,
			expected: []string{
				"Server is missing required property: url",
				"ServerVariable is missing required property: default",
				"Tag is missing required property: name",
				"ExternalDocumentation::$url does not seem to be a valid URL: docs",
				"OAuthFlow is missing required property: scopes",
				"Discriminator is missing required property: propertyName",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := openapi.ReadFromYAML([]byte(tt.yaml))
			require.NoError(t, err)

			assert.False(t, doc.Validate())
			assert.ElementsMatch(t, tt.expected, doc.Errors())
		})
	}
}

const docTail = `info:
  title: Test
  version: 1.0.0
paths: {}
`

func TestValidate_ResetsPreviousRun(t *testing.T) {
	t.Parallel()

	doc, err := openapi.ReadFromYAML([]byte(docHeader + "paths: {}\n"))
	require.NoError(t, err)
	require.True(t, doc.Validate())

	doc.Info.Title = ""
	require.False(t, doc.Validate())
	assert.Equal(t, []string{"Info is missing required property: title"}, doc.Errors())

	doc.Info.Title = "Fixed"
	assert.True(t, doc.Validate(), "errors of an earlier run are discarded")
	assert.Empty(t, doc.Errors())
}

func TestValidate_PositionsAfterRead(t *testing.T) {
	t.Parallel()

	doc, err := openapi.ReadFromFile(t.Context(), "testdata/petstore.yaml")
	require.NoError(t, err)

	doc.Info.Version = ""

	assert.False(t, doc.Validate())
	assert.Equal(t, []string{"[/info] Info is missing required property: version"}, doc.Errors())
}
