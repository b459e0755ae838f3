package validation

import (
	"slices"
	"strings"
)

// schemaMaps name the mappings whose values are all schemas keyed by a user
// chosen name.
var schemaMaps = map[string]bool{
	"properties": true,
	"schemas":    true,
}

// valueKeys hold literal values rather than schemas.
var valueKeys = map[string]bool{
	"example":  true,
	"examples": true,
	"default":  true,
	"enum":     true,
}

// allowNull rewrites every nullable schema below v into its draft 4 form, in
// which null is one of the allowed types and enum values.
func allowNull(v any, parentKey string) {
	switch v := v.(type) {
	case map[string]any:
		if !schemaMaps[parentKey] && v["nullable"] == true {
			addNullType(v)
		}
		for key, child := range v {
			if !schemaMaps[parentKey] && (valueKeys[key] || strings.HasPrefix(key, "x-")) {
				continue
			}
			allowNull(child, key)
		}
	case []any:
		for _, item := range v {
			allowNull(item, parentKey)
		}
	}
}

func addNullType(schema map[string]any) {
	t, ok := schema["type"].(string)
	if !ok {
		return
	}
	schema["type"] = []any{t, "null"}

	enum, ok := schema["enum"].([]any)
	if ok && !slices.ContainsFunc(enum, func(item any) bool { return item == nil }) {
		schema["enum"] = append(enum, nil)
	}
}
