package openapi

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/oasref/openapi/jsonpointer"
	"github.com/oasref/openapi/marshaller"
	"github.com/oasref/openapi/sequencedmap"
)

// visitFunc is called for each child of a node. child is a Node (possibly a
// *Reference) or a referenceSlot. set replaces a child held in an untyped
// slot and is nil for all other children.
type visitFunc func(path []string, child any, set func(any)) error

// valueHolder is implemented by slots wrapping a single value, such as BoolOrSchema.
type valueHolder interface {
	heldValue() any
}

// nodeHolder is implemented by objects holding nodes outside their keyed
// fields. Those nodes share the position of their holder.
type nodeHolder interface {
	heldNodes() []Node
}

// WalkFunc is called by Walk with an object and its location in the encoded
// document.
type WalkFunc func(location jsonpointer.JSONPointer, n Node) error

// Walk calls fn for n and every object below it, depth first in field order.
// Unresolved references are visited as *Reference. An object reachable
// through several paths is visited once, at the first location, which is
// where Marshal writes it out in full.
func Walk(n Node, fn WalkFunc) error {
	return walk(n, "", fn, map[*Object]bool{})
}

func walk(n Node, location jsonpointer.JSONPointer, fn WalkFunc, visited map[*Object]bool) error {
	o := n.node()
	if visited[o] {
		return nil
	}
	visited[o] = true

	if err := fn(location, n); err != nil {
		return err
	}

	return eachChild(n, func(path []string, child any, _ func(any)) error {
		if c := childNode(child); c != nil {
			return walk(c, location.Append(path...), fn, visited)
		}
		return nil
	})
}

// eachChild calls visit for the direct children of n in field order.
// Extensions and unknown properties hold raw values and are not visited.
func eachChild(n Node, visit visitFunc) error {
	if h, ok := n.(nodeHolder); ok {
		for _, held := range h.heldNodes() {
			if err := visit(nil, held, nil); err != nil {
				return err
			}
		}
	}

	v := reflect.ValueOf(n).Elem()

	for _, f := range marshaller.GetFields(v.Type()).Fields {
		if f.Role == marshaller.InlineExtensions || f.Role == marshaller.InlineUnknown {
			continue
		}

		var path []string
		if f.Key != "" {
			path = []string{f.Key}
		}

		fv := v.FieldByIndex(f.Index)
		if fv.Kind() == reflect.Interface {
			if err := walkUntyped(fv, path, visit); err != nil {
				return err
			}
			continue
		}

		if err := walkValue(fv.Interface(), path, visit); err != nil {
			return err
		}
	}

	return nil
}

// walkUntyped visits the nodes of an untyped field: the value itself, or the
// items of a sequence.
func walkUntyped(fv reflect.Value, path []string, visit visitFunc) error {
	if fv.IsNil() {
		return nil
	}

	switch value := fv.Interface().(type) {
	case Node:
		return visit(path, value, func(replacement any) { setInterface(fv, replacement) })
	case []any:
		for i, item := range value {
			if _, ok := item.(Node); !ok {
				continue
			}
			err := visit(appendPath(path, strconv.Itoa(i)), item, func(replacement any) { value[i] = replacement })
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func walkValue(x any, path []string, visit visitFunc) error {
	if isNilValue(x) {
		return nil
	}

	switch value := x.(type) {
	case referenceSlot:
		return visit(path, value, nil)
	case Node:
		return visit(path, value, nil)
	case valueHolder:
		return walkValue(value.heldValue(), path, visit)
	case sequencedmap.OrderedMap:
		if value.GetValueType().Kind() == reflect.Interface {
			return nil
		}
		for key, item := range value.AllUntyped() {
			if err := walkValue(item, appendPath(path, fmt.Sprint(key)), visit); err != nil {
				return err
			}
		}
		return nil
	}

	rv := reflect.ValueOf(x)
	if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() != reflect.Ptr {
		return nil
	}
	for i := range rv.Len() {
		if err := walkValue(rv.Index(i).Interface(), appendPath(path, strconv.Itoa(i)), visit); err != nil {
			return err
		}
	}

	return nil
}

// slotNode returns what a slot currently holds: its reference or its object.
func slotNode(slot referenceSlot) Node {
	if ref := slot.reference(); ref != nil {
		return ref
	}
	return slot.object()
}

func setInterface(fv reflect.Value, replacement any) {
	if replacement == nil {
		fv.Set(reflect.Zero(fv.Type()))
		return
	}
	fv.Set(reflect.ValueOf(replacement))
}

func appendPath(path []string, segment string) []string {
	return append(append(make([]string, 0, len(path)+1), path...), segment)
}

func isNilValue(x any) bool {
	if x == nil {
		return true
	}
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
