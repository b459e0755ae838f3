package jsonpointer

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/oasref/openapi/errors"
)

// KeyNavigable is an interface that can be implemented by a struct to allow navigation by key, bypassing navigating by struct tags.
// Implementations return an error matching errors.ErrNotFound when the key is absent.
type KeyNavigable interface {
	NavigateWithKey(key string) (any, error)
}

// IndexNavigable is an interface that can be implemented by a struct to allow navigation by index.
// Implementations return an error matching errors.ErrNotFound when the index is absent.
type IndexNavigable interface {
	NavigateWithIndex(index int) (any, error)
}

// NavigableNoder is implemented by wrappers that stand in for another value during navigation.
type NavigableNoder interface {
	GetNavigableNode() (any, error)
}

type containerKind int

const (
	notContainer containerKind = iota
	arrayContainer
	objectContainer
)

// Evaluate resolves the pointer against the document. It walks generic trees
// (maps, slices, KeyNavigable and IndexNavigable values) and structs whose
// fields carry the configured struct tags. A field tagged with ",inline" is
// searched as if its entries belonged to the enclosing struct.
func (j JSONPointer) Evaluate(document any, opts ...option) (any, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}

	o := getOptions(opts)

	current, err := unwrapNoder(document)
	if err != nil {
		return nil, err
	}

	currentPath := ""

	for _, part := range j.Path() {
		next, found, kind := step(current, part, o)

		switch {
		case kind == notContainer:
			return nil, errors.ErrNotFound.Wrapf("Failed to evaluate pointer \"%s\". Value at path \"%s\" is not an array or object", string(j), currentPath)
		case !found && kind == objectContainer:
			return nil, errors.ErrNotFound.Wrapf("Failed to evaluate pointer \"%s\". Object has no member \"%s\" at path \"%s\".", string(j), part, currentPath)
		case !found:
			return nil, errors.ErrNotFound.Wrapf("Failed to evaluate pointer \"%s\". Array has no member \"%s\" at path \"%s\".", string(j), part, currentPath)
		}

		current, err = unwrapNoder(next)
		if err != nil {
			return nil, err
		}

		currentPath = fmt.Sprintf("%s/%s", currentPath, part)
	}

	return current, nil
}

// GetTarget evaluates the pointer against the source.
func GetTarget(source any, pointer JSONPointer, opts ...option) (any, error) {
	return pointer.Evaluate(source, opts...)
}

func unwrapNoder(v any) (any, error) {
	for {
		noder, ok := v.(NavigableNoder)
		if !ok || isNil(v) {
			return v, nil
		}
		next, err := noder.GetNavigableNode()
		if err != nil {
			return nil, err
		}
		v = next
	}
}

func step(current any, part string, o *options) (any, bool, containerKind) {
	if isNil(current) {
		return nil, false, notContainer
	}

	switch c := current.(type) {
	case KeyNavigable:
		v, err := c.NavigateWithKey(part)
		if err != nil {
			return nil, false, arrayContainer
		}
		return v, true, arrayContainer
	case IndexNavigable:
		index, ok := parseIndex(part)
		if !ok {
			return nil, false, arrayContainer
		}
		v, err := c.NavigateWithIndex(index)
		if err != nil {
			return nil, false, arrayContainer
		}
		return v, true, arrayContainer
	case map[string]any:
		v, ok := c[part]
		return v, ok, arrayContainer
	case []any:
		index, ok := parseIndex(part)
		if !ok || index >= len(c) {
			return nil, false, arrayContainer
		}
		return c[index], true, arrayContainer
	}

	return reflectStep(reflect.ValueOf(current), part, o)
}

func reflectStep(v reflect.Value, part string, o *options) (any, bool, containerKind) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false, notContainer
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false, notContainer
		}
		target := v.MapIndex(reflect.ValueOf(part).Convert(v.Type().Key()))
		if !target.IsValid() {
			return nil, false, arrayContainer
		}
		return target.Interface(), true, arrayContainer
	case reflect.Slice, reflect.Array:
		index, ok := parseIndex(part)
		if !ok || index >= v.Len() {
			return nil, false, arrayContainer
		}
		return v.Index(index).Interface(), true, arrayContainer
	case reflect.Struct:
		target, ok := structField(v, part, o)
		return target, ok, objectContainer
	default:
		return nil, false, notContainer
	}
}

func structField(v reflect.Value, key string, o *options) (any, bool) {
	t := v.Type()

	var inlined []reflect.Value

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if field.Anonymous {
			embedded := fieldValue
			if embedded.Kind() == reflect.Ptr {
				if embedded.IsNil() {
					continue
				}
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				if target, ok := structField(embedded, key, o); ok {
					return target, true
				}
			}
			continue
		}

		if !field.IsExported() {
			continue
		}

		name, inline := tagName(field, o)
		if inline {
			inlined = append(inlined, fieldValue)
			continue
		}
		if name == "" || name != key {
			continue
		}

		return fieldTarget(fieldValue)
	}

	for _, fieldValue := range inlined {
		if isNilValue(fieldValue) {
			continue
		}
		next, found, _ := step(fieldValue.Interface(), key, o)
		if found {
			return next, true
		}
	}

	return nil, false
}

func tagName(field reflect.StructField, o *options) (string, bool) {
	for _, tag := range o.StructTags {
		value := field.Tag.Get(tag)
		if value == "" {
			continue
		}
		name, opts, _ := strings.Cut(value, ",")
		return name, name == "" && slices.Contains(strings.Split(opts, ","), "inline")
	}
	return "", false
}

func fieldTarget(fieldValue reflect.Value) (any, bool) {
	if isNilValue(fieldValue) {
		return nil, false
	}

	if fieldValue.Kind() == reflect.Ptr && fieldValue.Elem().Kind() != reflect.Struct {
		return fieldValue.Elem().Interface(), true
	}

	return fieldValue.Interface(), true
}

func parseIndex(part string) (int, bool) {
	if part == "" || part == "-" || (len(part) > 1 && part[0] == '0') {
		return 0, false
	}
	for _, r := range part {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	index, err := strconv.Atoi(part)
	if err != nil {
		return 0, false
	}
	return index, true
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	return isNilValue(reflect.ValueOf(v))
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
