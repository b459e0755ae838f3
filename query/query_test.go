package query_test

import (
	"testing"

	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/openapi"
	"github.com/oasref/openapi/query"
	"github.com/oasref/openapi/sequencedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readPetstore(t *testing.T, opts ...openapi.Option) *openapi.OpenAPI {
	t.Helper()

	doc, err := openapi.ReadFromFile(t.Context(), "testdata/petstore.yaml", opts...)
	require.NoError(t, err)

	return doc
}

func TestRun_Success(t *testing.T) {
	t.Parallel()

	doc := readPetstore(t)

	tests := []struct {
		name       string
		expression string
		dialect    query.Dialect
		want       []any
	}{
		{
			name:       "bracket path",
			expression: "$.paths['/pets'].get.operationId",
			want:       []any{"listPets"},
		},
		{
			name:       "wildcard",
			expression: "$.components.schemas.*.type",
			want:       []any{"object", "string", "object"},
		},
		{
			name:       "descendants",
			expression: "$..operationId",
			want:       []any{"listPets"},
		},
		{
			name:       "resolved reference is inlined",
			expression: "$.paths['/pets'].get.parameters[0].name",
			want:       []any{"limit"},
		},
		{
			name:       "legacy bracket path",
			expression: "$.paths['/pets'].get.operationId",
			dialect:    query.DialectLegacy,
			want:       []any{"listPets"},
		},
		{
			name:       "legacy descendants",
			expression: "$..operationId",
			dialect:    query.DialectLegacy,
			want:       []any{"listPets"},
		},
		{
			name:       "no match",
			expression: "$.paths['/owners']",
			want:       []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := query.Run(doc, tt.expression, tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRun_UnresolvedDocument(t *testing.T) {
	t.Parallel()

	doc := readPetstore(t, openapi.WithoutReferenceResolution())

	got, err := query.Run(doc, "$.paths['/pets'].get.parameters[0]", query.DialectRFC9535)
	require.NoError(t, err)
	require.Len(t, got, 1)

	ref, ok := got[0].(*sequencedmap.Map[string, any])
	require.True(t, ok, "an unresolved reference is queried as its $ref mapping")
	assert.Equal(t, "#/components/parameters/Limit", ref.GetOrZero("$ref"))
}

func TestNewPath_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		expression string
		dialect    query.Dialect
	}{
		{name: "unterminated bracket", expression: "$.paths[", dialect: query.DialectRFC9535},
		{name: "legacy unterminated bracket", expression: "$.paths[", dialect: query.DialectLegacy},
		{name: "unknown dialect", expression: "$", dialect: "xpath"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := query.NewPath(tt.expression, tt.dialect)
			require.Error(t, err)
			require.ErrorIs(t, err, errors.ErrInvalidQuery)
		})
	}
}

func TestPath_Query_Nodes(t *testing.T) {
	t.Parallel()

	root, err := query.Document(readPetstore(t))
	require.NoError(t, err)

	path, err := query.NewPath("$.components.schemas.*~", query.DialectRFC9535)
	require.NoError(t, err)
	assert.Equal(t, "$.components.schemas.*~", path.String())

	var names []string
	for _, node := range path.Query(root) {
		names = append(names, node.Value)
	}
	assert.Equal(t, []string{"Pet", "Status", "Error"}, names, "the ~ extension selects property names")
}
