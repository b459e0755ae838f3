// Package validation checks the examples and defaults of a document against
// the schemas they belong to.
//
// Schemas are compiled as JSON Schema draft 4, the dialect OpenAPI 3.0 schema
// objects extend. The encoded document is registered as a single resource so
// that unresolved local references keep working, and references to other
// documents are loaded through the reference context of the document.
package validation

import (
	"bytes"
	"context"
	"net/url"
	"slices"
	"strings"

	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/json"
	"github.com/oasref/openapi/jsonpointer"
	"github.com/oasref/openapi/openapi"
	"github.com/oasref/openapi/sequencedmap"
	jsValidator "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/message"
)

// defaultDocumentURL locates documents that were not read from a file.
const defaultDocumentURL = "file:///openapi.json"

// check pairs the location of an example with the location of its schema.
type check struct {
	schema  jsonpointer.JSONPointer
	example jsonpointer.JSONPointer
}

// ValidateExamples checks every example and default value of doc against its
// schema:
//   - example and examples of media types, parameters and headers against
//     their schema,
//   - example and default of schema objects against the schema itself.
//
// Examples held as unresolved references are skipped. Each violation is
// returned as an *Error located at the offending value.
func ValidateExamples(ctx context.Context, doc *openapi.OpenAPI, opts ...Option) []error {
	if doc == nil {
		return nil
	}
	o := getOptions(opts)

	checks, err := collectChecks(doc)
	if err != nil {
		return []error{err}
	}
	if len(checks) == 0 {
		return nil
	}

	tree, err := toJSONValue(openapi.Marshal(doc))
	if err != nil {
		return []error{err}
	}
	allowNull(tree, "")

	rc := doc.GetReferenceContext()
	base := defaultDocumentURL
	if rc != nil {
		base = rc.URI()
	}

	c := jsValidator.NewCompiler()
	c.DefaultDraft(jsValidator.Draft4)
	c.UseLoader(&documentLoader{ctx: ctx, rc: rc})
	if err := c.AddResource(base, tree); err != nil {
		return []error{err}
	}

	var errs []error
	for _, chk := range checks {
		if err := ctx.Err(); err != nil {
			return append(errs, err)
		}

		instance, err := chk.example.Evaluate(tree)
		if err != nil {
			o.logger.Debug("example missing from encoded document", "location", chk.example, "error", err)
			continue
		}

		schema, err := c.Compile(base + "#" + fragment(chk.schema))
		if err != nil {
			errs = append(errs, newError(chk.example, "schema %s can not be compiled: %s", chk.schema, err))
			continue
		}

		if err := schema.Validate(instance); err != nil {
			errs = append(errs, violations(err, chk.example, o.printer)...)
		}
	}

	return errs
}

func collectChecks(doc *openapi.OpenAPI) ([]check, error) {
	var checks []check

	err := openapi.Walk(doc, func(location jsonpointer.JSONPointer, n openapi.Node) error {
		switch v := n.(type) {
		case *openapi.MediaType:
			checks = appendExampleChecks(checks, location, v.Schema, v.Example, v.Examples)
		case *openapi.Parameter:
			checks = appendExampleChecks(checks, location, v.Schema, v.Example, v.Examples)
		case *openapi.Header:
			checks = appendExampleChecks(checks, location, v.Schema, v.Example, v.Examples)
		case *openapi.Schema:
			for key, value := range map[string]any{"example": v.Example, "default": v.Default} {
				if hasValue(value) {
					checks = append(checks, check{schema: location, example: location.Append(key)})
				}
			}
		}
		return nil
	})

	slices.SortStableFunc(checks, func(a, b check) int {
		return strings.Compare(string(a.example), string(b.example))
	})

	return checks, err
}

func appendExampleChecks(checks []check, location jsonpointer.JSONPointer, schema *openapi.ReferencedSchema, example any, examples *sequencedmap.Map[string, *openapi.ReferencedExample]) []check {
	if schema == nil {
		return checks
	}
	schemaLocation := location.Append("schema")

	if hasValue(example) {
		checks = append(checks, check{schema: schemaLocation, example: location.Append("example")})
	}

	for name, ex := range examples.All() {
		if obj := ex.GetObject(); obj != nil && hasValue(obj.Value) {
			checks = append(checks, check{schema: schemaLocation, example: location.Append("examples", name, "value")})
		}
	}

	return checks
}

// hasValue reports whether v is a literal value. Null counts as absent and
// unresolved references can not be checked.
func hasValue(v any) bool {
	if v == nil {
		return false
	}
	_, isNode := v.(openapi.Node)
	return !isNode
}

// violations flattens a validation error into its leaf causes.
func violations(err error, location jsonpointer.JSONPointer, p *message.Printer) []error {
	var validationErr *jsValidator.ValidationError
	if !errors.As(err, &validationErr) {
		return []error{newError(location, "%s", err)}
	}

	var errs []error
	var collect func(e *jsValidator.ValidationError)
	collect = func(e *jsValidator.ValidationError) {
		if len(e.Causes) == 0 {
			errs = append(errs, newError(location.Append(e.InstanceLocation...), "%s", e.ErrorKind.LocalizedString(p)))
			return
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(validationErr)

	return errs
}

// fragment percent-encodes the tokens of ptr for use as a URL fragment.
func fragment(ptr jsonpointer.JSONPointer) string {
	segments := strings.Split(string(ptr), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

// toJSONValue converts a tree value into the representation the validator
// works on.
func toJSONValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsValidator.UnmarshalJSON(bytes.NewReader(data))
}
