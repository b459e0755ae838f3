package openapi

import (
	"reflect"

	"github.com/oasref/openapi/marshaller"
)

// Errors returns the errors recorded on n and every object below it, each
// prefixed with the position of the object it belongs to.
func Errors(n Node) []string {
	var all []string
	collectErrors(n, map[*Object]bool{}, &all)
	return all
}

func collectErrors(n Node, visited map[*Object]bool, all *[]string) {
	o := n.node()
	if visited[o] {
		return
	}
	visited[o] = true

	*all = append(*all, o.ownErrors()...)

	_ = eachChild(n, func(_ []string, child any, _ func(any)) error {
		if c := childNode(child); c != nil {
			collectErrors(c, visited, all)
		}
		return nil
	})
}

// Validate checks n and every object below it against the rules of OpenAPI
// 3.0 and reports whether no errors, including those recorded while reading
// and resolving, remain. Validation errors of a previous call are discarded.
func Validate(n Node) bool {
	validateNode(n, map[*Object]bool{})
	return len(Errors(n)) == 0
}

func validateNode(n Node, visited map[*Object]bool) {
	o := n.node()
	if visited[o] {
		return
	}
	visited[o] = true

	_ = eachChild(n, func(_ []string, child any, _ func(any)) error {
		if c := childNode(child); c != nil {
			validateNode(c, visited)
		}
		return nil
	})

	o.validationErrors = nil

	if _, ok := n.(*Reference); ok {
		return
	}

	v := reflect.ValueOf(n).Elem()
	fields := marshaller.GetFields(v.Type())
	for _, key := range fields.RequiredFields {
		f, _ := fields.Field(key)
		if v.FieldByIndex(f.Index).IsZero() {
			o.addValidationError("%s is missing required property: %s", kindOf(n), key)
		}
	}

	if rules, ok := n.(validator); ok {
		rules.validate()
	}
}
