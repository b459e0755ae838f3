package openapi

import (
	"github.com/oasref/openapi/pointer"
	"github.com/oasref/openapi/sequencedmap"
)

// Operation describes a single API operation on a path.
type Operation struct {
	Object

	Tags         []string                                         `key:"tags"`
	Summary      *string                                          `key:"summary"`
	Description  *string                                          `key:"description"`
	ExternalDocs *ExternalDocumentation                           `key:"externalDocs"`
	OperationID  *string                                          `key:"operationId"`
	Parameters   []*ReferencedParameter                           `key:"parameters"`
	RequestBody  *ReferencedRequestBody                           `key:"requestBody"`
	Responses    *Responses                                       `key:"responses" required:"true"`
	Callbacks    *sequencedmap.Map[string, *Referenced[Callback]] `key:"callbacks"`
	Deprecated   *bool                                            `key:"deprecated"`
	Security     []*SecurityRequirement                           `key:"security"`
	Servers      []*Server                                        `key:"servers"`
}

// GetOperationID returns the operationId or an empty string.
func (o *Operation) GetOperationID() string {
	if o == nil {
		return ""
	}
	return pointer.ValueOrZero(o.OperationID)
}

// RequestBody is the OpenAPI 3.0 Request Body Object.
type RequestBody struct {
	Object

	Description *string                               `key:"description"`
	Content     *sequencedmap.Map[string, *MediaType] `key:"content" required:"true"`
	Required    *bool                                 `key:"required"`
}

// MediaType describes the payload of one content type.
type MediaType struct {
	Object

	Schema   *ReferencedSchema                             `key:"schema"`
	Example  any                                           `key:"example"`
	Examples *sequencedmap.Map[string, *ReferencedExample] `key:"examples"`
	Encoding *sequencedmap.Map[string, *Encoding]          `key:"encoding"`
}

// afterDecode derives the default content type of each encoding from the
// schema of the property it applies to.
func (m *MediaType) afterDecode() error {
	schema := m.Schema.GetObject()
	if schema == nil {
		return nil
	}

	for name, encoding := range m.Encoding.All() {
		if encoding == nil {
			continue
		}
		encoding.defaultContentType = defaultContentType(schema.GetProperty(name).GetObject())
	}

	return nil
}

func defaultContentType(schema *Schema) string {
	if schema == nil {
		return ""
	}

	schemaType := schema.GetType()
	format := schema.GetFormat()
	if schemaType == "array" {
		items := schema.Items.GetObject()
		if items == nil || items.Type == nil {
			return ""
		}
		schemaType = items.GetType()
		format = items.GetFormat()
	}

	switch schemaType {
	case "string":
		if format == "binary" {
			return "application/octet-stream"
		}
		return "text/plain"
	case "boolean", "integer", "number":
		return "text/plain"
	case "object":
		return "application/json"
	}

	return ""
}

// Encoding describes how a single property of a request body is serialized.
type Encoding struct {
	Object

	ContentType   *string                                        `key:"contentType"`
	Headers       *sequencedmap.Map[string, *Referenced[Header]] `key:"headers"`
	Style         *string                                        `key:"style"`
	Explode       *bool                                          `key:"explode"`
	AllowReserved *bool                                          `key:"allowReserved"`

	defaultContentType string
}

// GetContentType returns contentType, defaulting from the schema of the
// encoded property.
func (e *Encoding) GetContentType() string {
	if e == nil {
		return ""
	}
	return pointer.ValueOr(e.ContentType, e.defaultContentType)
}

// GetExplode returns explode, which defaults to true for the form style.
func (e *Encoding) GetExplode() bool {
	if e == nil {
		return false
	}
	if e.Explode != nil {
		return *e.Explode
	}
	return e.Style != nil && *e.Style == "form"
}

// Example is the OpenAPI 3.0 Example Object.
type Example struct {
	Object

	Summary       *string `key:"summary"`
	Description   *string `key:"description"`
	Value         any     `key:"value"`
	ExternalValue *string `key:"externalValue"`
}

// Link is the OpenAPI 3.0 Link Object.
type Link struct {
	Object

	OperationRef *string                        `key:"operationRef"`
	OperationID  *string                        `key:"operationId"`
	Parameters   *sequencedmap.Map[string, any] `key:"parameters"`
	RequestBody  any                            `key:"requestBody"`
	Description  *string                        `key:"description"`
	Server       *Server                        `key:"server"`
}

func (l *Link) validate() {
	if notEmpty(l.OperationID) && notEmpty(l.OperationRef) {
		l.addValidationError("Link: operationId and operationRef are mutually exclusive.")
	}
}

// Callback maps runtime expressions to the path items describing the
// requests the API may send.
type Callback struct {
	Object

	Expressions *sequencedmap.Map[string, *PathItem] `key:",inline"`
}
