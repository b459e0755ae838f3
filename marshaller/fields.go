// Package marshaller holds the reflection metadata shared by the document
// decoder, encoder and walkers: a cache of `key` tagged struct fields and a
// registry of named model types.
package marshaller

import (
	"reflect"
	"slices"
	"strings"
	"sync"
)

const (
	// KeyTag names the struct tag carrying the document key of a field.
	KeyTag = "key"
	// RequiredTag marks a field whose key must be present in the document.
	RequiredTag = "required"
)

// InlineRole describes what an inline field holds.
type InlineRole string

const (
	// InlineNone is used for regular keyed fields.
	InlineNone InlineRole = ""
	// InlineEntries holds the entries of a map-like object such as Paths or Responses.
	InlineEntries InlineRole = "entries"
	// InlineExtensions holds x- specification extensions.
	InlineExtensions InlineRole = "extensions"
	// InlineUnknown holds properties that are neither declared nor extensions.
	InlineUnknown InlineRole = "unknown"
)

// CachedFieldInfo describes one document field of a struct type.
type CachedFieldInfo struct {
	// Name is the Go field name.
	Name string
	// Index is the field index path, suitable for reflect.Value.FieldByIndex.
	Index []int
	// Key is the document key. Empty for inline fields.
	Key string
	// Role is set for inline fields.
	Role InlineRole
	// Required is set by `required:"true"`.
	Required bool
	// Type is the Go type of the field.
	Type reflect.Type
	// Options are the tag options following the key, such as "list" in `key:"enum,list"`.
	Options []string
}

// HasOption reports whether the key tag of the field carries option.
func (f CachedFieldInfo) HasOption(option string) bool {
	return slices.Contains(f.Options, option)
}

// Inline reports whether the field is merged into the enclosing object.
func (f CachedFieldInfo) Inline() bool {
	return f.Role != InlineNone
}

// CachedFieldMaps is the field metadata of a struct type, in declaration order
// with embedded structs flattened in place.
type CachedFieldMaps struct {
	Fields         []CachedFieldInfo
	FieldIndexes   map[string]int
	RequiredFields []string
	ExtensionIndex int
	UnknownIndex   int
	EntriesIndex   int
}

// Field returns the field for a document key.
func (c *CachedFieldMaps) Field(key string) (CachedFieldInfo, bool) {
	i, ok := c.FieldIndexes[key]
	if !ok {
		return CachedFieldInfo{}, false
	}
	return c.Fields[i], true
}

// Keyed returns the fields that have a document key.
func (c *CachedFieldMaps) Keyed() []CachedFieldInfo {
	return slices.DeleteFunc(slices.Clone(c.Fields), func(f CachedFieldInfo) bool {
		return f.Inline()
	})
}

// FieldCacheStats reports the size of the field cache.
type FieldCacheStats struct {
	Size int64
}

var fieldCache sync.Map

// GetFields returns the cached field metadata of t, building it on first use.
// Pointer types are dereferenced. Non-struct types yield an empty result that
// is not cached.
func GetFields(t reflect.Type) *CachedFieldMaps {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if cached, ok := fieldCache.Load(t); ok {
		return cached.(*CachedFieldMaps)
	}

	if t.Kind() != reflect.Struct {
		return &CachedFieldMaps{FieldIndexes: map[string]int{}, ExtensionIndex: -1, UnknownIndex: -1, EntriesIndex: -1}
	}

	built := buildFieldMaps(t)
	actual, _ := fieldCache.LoadOrStore(t, built)

	return actual.(*CachedFieldMaps)
}

func buildFieldMaps(t reflect.Type) *CachedFieldMaps {
	c := &CachedFieldMaps{
		FieldIndexes:   map[string]int{},
		ExtensionIndex: -1,
		UnknownIndex:   -1,
		EntriesIndex:   -1,
	}

	collectFields(t, nil, c)

	return c
}

func collectFields(t reflect.Type, parent []int, c *CachedFieldMaps) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		index := append(slices.Clone(parent), i)

		if field.Anonymous {
			ft := field.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct && field.Tag.Get(KeyTag) == "" {
				collectFields(ft, index, c)
				continue
			}
		}

		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get(KeyTag)
		if tag == "" || tag == "-" {
			continue
		}

		key, opts, _ := strings.Cut(tag, ",")
		info := CachedFieldInfo{
			Name:     field.Name,
			Index:    index,
			Key:      key,
			Required: field.Tag.Get(RequiredTag) == "true",
			Type:     field.Type,
		}
		if opts != "" {
			info.Options = strings.Split(opts, ",")
		}

		if key == "" {
			info.Role = inlineRole(opts)
			if info.Role == InlineNone {
				continue
			}
		}

		c.Fields = append(c.Fields, info)
		pos := len(c.Fields) - 1

		switch info.Role {
		case InlineExtensions:
			c.ExtensionIndex = pos
		case InlineUnknown:
			c.UnknownIndex = pos
		case InlineEntries:
			c.EntriesIndex = pos
		default:
			c.FieldIndexes[key] = pos
			if info.Required {
				c.RequiredFields = append(c.RequiredFields, key)
			}
		}
	}
}

func inlineRole(opts string) InlineRole {
	parts := strings.Split(opts, ",")
	if !slices.Contains(parts, "inline") {
		return InlineNone
	}
	switch {
	case slices.Contains(parts, string(InlineExtensions)):
		return InlineExtensions
	case slices.Contains(parts, string(InlineUnknown)):
		return InlineUnknown
	default:
		return InlineEntries
	}
}

// ClearGlobalFieldCache drops all cached field metadata.
func ClearGlobalFieldCache() {
	fieldCache.Range(func(key, _ any) bool {
		fieldCache.Delete(key)
		return true
	})
}

// GetFieldCacheStats returns the number of cached struct types.
func GetFieldCacheStats() FieldCacheStats {
	var size int64
	fieldCache.Range(func(_, _ any) bool {
		size++
		return true
	})
	return FieldCacheStats{Size: size}
}
