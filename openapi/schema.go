package openapi

import (
	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/pointer"
	"github.com/oasref/openapi/sequencedmap"
)

// Schema is the OpenAPI 3.0 Schema Object, an extended subset of JSON Schema draft 4.
type Schema struct {
	Object

	Title                *string                                        `key:"title"`
	MultipleOf           *float64                                       `key:"multipleOf"`
	Maximum              *float64                                       `key:"maximum"`
	ExclusiveMaximum     *bool                                          `key:"exclusiveMaximum"`
	Minimum              *float64                                       `key:"minimum"`
	ExclusiveMinimum     *bool                                          `key:"exclusiveMinimum"`
	MaxLength            *int                                           `key:"maxLength"`
	MinLength            *int                                           `key:"minLength"`
	Pattern              *string                                        `key:"pattern"`
	MaxItems             *int                                           `key:"maxItems"`
	MinItems             *int                                           `key:"minItems"`
	UniqueItems          *bool                                          `key:"uniqueItems"`
	MaxProperties        *int                                           `key:"maxProperties"`
	MinProperties        *int                                           `key:"minProperties"`
	Required             []string                                       `key:"required"`
	Enum                 any                                            `key:"enum,list"`
	Type                 *string                                        `key:"type"`
	AllOf                []*Referenced[Schema]                          `key:"allOf"`
	OneOf                []*Referenced[Schema]                          `key:"oneOf"`
	AnyOf                []*Referenced[Schema]                          `key:"anyOf"`
	Not                  *Referenced[Schema]                            `key:"not"`
	Items                *Referenced[Schema]                            `key:"items"`
	Properties           *sequencedmap.Map[string, *Referenced[Schema]] `key:"properties"`
	AdditionalProperties *BoolOrSchema                                  `key:"additionalProperties"`
	Description          *string                                        `key:"description"`
	Format               *string                                        `key:"format"`
	Default              any                                            `key:"default"`
	Nullable             *bool                                          `key:"nullable"`
	Discriminator        *Discriminator                                 `key:"discriminator"`
	ReadOnly             *bool                                          `key:"readOnly"`
	WriteOnly            *bool                                          `key:"writeOnly"`
	XML                  *XML                                           `key:"xml"`
	ExternalDocs         *ExternalDocumentation                         `key:"externalDocs"`
	Example              any                                            `key:"example"`
	Deprecated           *bool                                          `key:"deprecated"`
}

// GetType returns the value of type or an empty string.
func (s *Schema) GetType() string {
	if s == nil {
		return ""
	}
	return pointer.ValueOrZero(s.Type)
}

// GetFormat returns the value of format or an empty string.
func (s *Schema) GetFormat() string {
	if s == nil {
		return ""
	}
	return pointer.ValueOrZero(s.Format)
}

// GetEnum returns the enum values. A whole enum given as an unresolved
// reference yields nil.
func (s *Schema) GetEnum() []any {
	if s == nil {
		return nil
	}
	values, _ := s.Enum.([]any)
	return values
}

// GetProperty returns the named property schema.
func (s *Schema) GetProperty(name string) *ReferencedSchema {
	if s == nil {
		return nil
	}
	property, _ := s.Properties.Get(name)
	return property
}

// AdditionalPropertiesAllowed reports whether properties beyond the declared
// ones are allowed, which is the default.
func (s *Schema) AdditionalPropertiesAllowed() bool {
	if s == nil || s.AdditionalProperties == nil || s.AdditionalProperties.Bool == nil {
		return true
	}
	return *s.AdditionalProperties.Bool
}

// GetAdditionalPropertiesSchema returns the schema additional properties must
// match, or nil when additionalProperties is absent or a boolean.
func (s *Schema) GetAdditionalPropertiesSchema() *ReferencedSchema {
	if s == nil || s.AdditionalProperties == nil {
		return nil
	}
	return s.AdditionalProperties.Schema
}

// IsNullable returns the value of nullable. The boolean is false when nullable
// is absent and there is no type it could default against.
func (s *Schema) IsNullable() (bool, bool) {
	return defaultedBool(s.Nullable, s.Type != nil)
}

// IsExclusiveMaximum returns the value of exclusiveMaximum, which defaults to
// false when maximum is set.
func (s *Schema) IsExclusiveMaximum() (bool, bool) {
	return defaultedBool(s.ExclusiveMaximum, s.Maximum != nil)
}

// IsExclusiveMinimum returns the value of exclusiveMinimum, which defaults to
// false when minimum is set.
func (s *Schema) IsExclusiveMinimum() (bool, bool) {
	return defaultedBool(s.ExclusiveMinimum, s.Minimum != nil)
}

func defaultedBool(v *bool, hasDefault bool) (bool, bool) {
	if v != nil {
		return *v, true
	}
	return false, hasDefault
}

// BoolOrSchema holds the value of additionalProperties.
type BoolOrSchema struct {
	Bool   *bool
	Schema *Referenced[Schema]
}

func (b *BoolOrSchema) decode(data any) error {
	switch v := data.(type) {
	case bool:
		b.Bool = &v
		return nil
	case *sequencedmap.Map[string, any]:
		schema := &ReferencedSchema{}
		if err := schema.decode(v); err != nil {
			return err
		}
		b.Schema = schema
		return nil
	}

	return errors.ErrType.Wrapf("Schema::$additionalProperties MUST be either boolean or a Schema/Reference object, \"%s\" given", typeName(data))
}

func (b *BoolOrSchema) heldValue() any {
	if b.Schema != nil {
		return b.Schema
	}
	if b.Bool != nil {
		return *b.Bool
	}
	return nil
}

// GetNavigableNode exposes the boolean or the schema to JSON pointers.
func (b *BoolOrSchema) GetNavigableNode() (any, error) {
	return b.heldValue(), nil
}

// Discriminator is the OpenAPI 3.0 Discriminator Object.
type Discriminator struct {
	Object

	PropertyName string                            `key:"propertyName" required:"true"`
	Mapping      *sequencedmap.Map[string, string] `key:"mapping"`
}

// XML is the OpenAPI 3.0 XML Object.
type XML struct {
	Object

	Name      *string `key:"name"`
	Namespace *string `key:"namespace"`
	Prefix    *string `key:"prefix"`
	Attribute *bool   `key:"attribute"`
	Wrapped   *bool   `key:"wrapped"`
}
