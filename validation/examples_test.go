package validation_test

import (
	"context"
	"testing"

	"github.com/oasref/openapi/openapi"
	"github.com/oasref/openapi/references"
	"github.com/oasref/openapi/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const responsePath = "/paths/~1pets~1{petId}/get/responses/200"

var expectedViolations = []string{
	"[/paths/~1pets~1{petId}/get/parameters/0/example] maximum: got 150, want 100",
	"[/paths/~1pets~1{petId}/get/parameters/1/examples/bad/value] got string, want boolean",
	"[" + responsePath + "/headers/X-Rate-Limit/example] got string, want integer",
	"[" + responsePath + "/content/application~1json/examples/missingName/value] missing property 'name'",
	"[/components/schemas/Age/default] minimum: got -1, want 0",
	"[/components/requestBodies/Sized/content/application~1json/example] value must be one of 'small', 'large'",
}

func messages(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

func TestValidateExamples_Violations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []openapi.Option
	}{
		{name: "resolved document"},
		{name: "inline resolution", opts: []openapi.Option{openapi.WithResolveMode(references.ResolveModeInline)}},
		{name: "unresolved document", opts: []openapi.Option{openapi.WithoutReferenceResolution()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			doc, err := openapi.ReadFromFile(ctx, "testdata/examples.yaml", tt.opts...)
			require.NoError(t, err)

			errs := validation.ValidateExamples(ctx, doc)
			assert.ElementsMatch(t, expectedViolations, messages(errs), "every invalid example should be reported once")

			for _, err := range errs {
				var validationErr *validation.Error
				require.ErrorAs(t, err, &validationErr)
				assert.NotEmpty(t, validationErr.Location, "violations should carry a location")
			}
		})
	}
}

func TestValidateExamples_Valid(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	doc, err := openapi.ReadFromFile(ctx, "testdata/valid.yaml")
	require.NoError(t, err)

	assert.Empty(t, validation.ValidateExamples(ctx, doc), "nullable items and defaults should validate")
}

func TestValidateExamples_WithoutFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	doc, err := openapi.ReadFromYAML([]byte(`openapi: 3.0.3
info:
  title: In memory
  version: 1.0.0
paths: {}
components:
  schemas:
    Local:
      type: integer
      example: 1
    Id:
      $ref: '#/components/schemas/Local'
    External:
      $ref: 'other.yaml#/Thing'
  parameters:
    Id:
      name: id
      in: query
      schema:
        $ref: '#/components/schemas/Id'
      example: one
    Other:
      name: other
      in: query
      schema:
        $ref: '#/components/schemas/External'
      example: 1
`))
	require.NoError(t, err)

	errs := validation.ValidateExamples(ctx, doc)
	require.Len(t, errs, 2)

	var localErr *validation.Error
	require.ErrorAs(t, errs[0], &localErr)
	assert.Equal(t, "/components/parameters/Id/example", localErr.Location.String())
	assert.Equal(t, "got string, want integer", localErr.Message, "local references should resolve inside the document")

	var externalErr *validation.Error
	require.ErrorAs(t, errs[1], &externalErr)
	assert.Equal(t, "/components/parameters/Other/example", externalErr.Location.String())
	assert.Contains(t, externalErr.Message, "can not be compiled", "external references need a document location")
}

func TestValidateExamples_NilDocument(t *testing.T) {
	t.Parallel()

	assert.Nil(t, validation.ValidateExamples(context.Background(), nil))
}

func TestValidateExamples_Cancelled(t *testing.T) {
	t.Parallel()

	doc, err := openapi.ReadFromFile(context.Background(), "testdata/examples.yaml")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errs := validation.ValidateExamples(ctx, doc)
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], context.Canceled)
}
