package openapi

import (
	"reflect"
	"regexp"

	"github.com/oasref/openapi/marshaller"
	"github.com/oasref/openapi/sequencedmap"
)

var componentKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9\.\-_]+$`)

// Components holds the reusable objects of a document.
type Components struct {
	Object

	Schemas         *sequencedmap.Map[string, *ReferencedSchema]         `key:"schemas"`
	Responses       *sequencedmap.Map[string, *ReferencedResponse]       `key:"responses"`
	Parameters      *sequencedmap.Map[string, *ReferencedParameter]      `key:"parameters"`
	Examples        *sequencedmap.Map[string, *ReferencedExample]        `key:"examples"`
	RequestBodies   *sequencedmap.Map[string, *ReferencedRequestBody]    `key:"requestBodies"`
	Headers         *sequencedmap.Map[string, *ReferencedHeader]         `key:"headers"`
	SecuritySchemes *sequencedmap.Map[string, *ReferencedSecurityScheme] `key:"securitySchemes"`
	Links           *sequencedmap.Map[string, *ReferencedLink]           `key:"links"`
	Callbacks       *sequencedmap.Map[string, *ReferencedCallback]       `key:"callbacks"`
}

// GetSchema returns the named schema, or nil.
func (c *Components) GetSchema(name string) *ReferencedSchema {
	if c == nil {
		return nil
	}
	schema, _ := c.Schemas.Get(name)
	return schema
}

func (c *Components) validate() {
	v := reflect.ValueOf(c).Elem()

	for _, field := range marshaller.GetFields(v.Type()).Keyed() {
		m, ok := v.FieldByIndex(field.Index).Interface().(sequencedmap.OrderedMap)
		if !ok || reflect.ValueOf(m).IsNil() {
			continue
		}
		for key := range m.AllUntyped() {
			name, _ := key.(string)
			if !componentKeyPattern.MatchString(name) {
				c.addValidationError("Invalid key '%s' used in Components Object for attribute '%s', does not match ^[a-zA-Z0-9\\.\\-_]+$.", name, field.Key)
			}
		}
	}
}
