package openapi

import (
	"strings"

	"github.com/oasref/openapi/sequencedmap"
)

// validator is implemented by objects with rules beyond required properties.
type validator interface {
	validate()
}

func requireSet(o *Object, kind, property string, set bool) {
	if !set {
		o.addValidationError("%s is missing required property: %s", kind, property)
	}
}

func validateEmail(o *Object, kind, property string, value *string) {
	if notEmpty(value) && !strings.Contains(*value, "@") {
		o.addValidationError("%s::$%s does not seem to be a valid email address: %s", kind, property, *value)
	}
}

func validateURL(o *Object, kind, property string, value *string) {
	if notEmpty(value) && !strings.Contains(*value, "//") {
		o.addValidationError("%s::$%s does not seem to be a valid URL: %s", kind, property, *value)
	}
}

func notEmpty(s *string) bool {
	return s != nil && *s != ""
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case []any:
		return len(t) == 0
	case *sequencedmap.Map[string, any]:
		return t.Len() == 0
	}
	return false
}
