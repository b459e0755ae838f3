package openapi

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/oasref/openapi/jsonpointer"
	"github.com/oasref/openapi/marshaller"
	"github.com/oasref/openapi/references"
	"github.com/oasref/openapi/sequencedmap"
)

// encodeHook is implemented by objects that adjust their serialized form.
type encodeHook interface {
	afterEncode(data *sequencedmap.Map[string, any])
}

// Marshal converts n into a tree value suitable for the json and yml
// packages. Only properties that are set are emitted. An object reached again
// while it is being serialized, as happens with recursive schemas after
// resolution, is emitted as a reference to its position. Objects without a
// document context refer to where they were first written within n.
func Marshal(n Node) any {
	e := &encoder{inProgress: map[*Object]jsonpointer.JSONPointer{}}
	return e.node(n, "")
}

type encoder struct {
	// inProgress maps objects being written to their location in the output.
	inProgress map[*Object]jsonpointer.JSONPointer
}

func (e *encoder) node(n Node, at jsonpointer.JSONPointer) any {
	if isNilValue(n) {
		return nil
	}

	if ref, ok := n.(*Reference); ok {
		return sequencedmap.New(sequencedmap.NewElem[string, any]("$ref", ref.Ref))
	}

	o := n.node()
	if written, ok := e.inProgress[o]; ok {
		if position, hasPosition := o.GetPosition(); hasPosition {
			written = position
		}
		return sequencedmap.New(sequencedmap.NewElem[string, any]("$ref", references.CreateFromURI("", written).Reference()))
	}
	e.inProgress[o] = at
	defer delete(e.inProgress, o)

	v := reflect.ValueOf(n).Elem()
	fields := marshaller.GetFields(v.Type())
	data := sequencedmap.New[string, any]()

	var extensions, unknown *sequencedmap.Map[string, any]

	for _, f := range fields.Fields {
		fv := v.FieldByIndex(f.Index)

		switch f.Role {
		case marshaller.InlineExtensions:
			extensions, _ = fv.Interface().(*sequencedmap.Map[string, any])
			continue
		case marshaller.InlineUnknown:
			unknown, _ = fv.Interface().(*sequencedmap.Map[string, any])
			continue
		case marshaller.InlineEntries:
			if entries, ok := e.value(fv.Interface(), at).(*sequencedmap.Map[string, any]); ok {
				for key, value := range entries.All() {
					data.Set(key, value)
				}
			}
			continue
		}

		if fv.IsZero() {
			continue
		}
		data.Set(f.Key, e.value(fv.Interface(), at.Append(f.Key)))
	}

	for key, value := range extensions.All() {
		data.Set(key, e.value(value, at.Append(key)))
	}
	for key, value := range unknown.All() {
		data.Set(key, e.value(value, at.Append(key)))
	}

	if hook, ok := n.(encodeHook); ok {
		hook.afterEncode(data)
	}

	return data
}

func (e *encoder) value(x any, at jsonpointer.JSONPointer) any {
	if isNilValue(x) {
		return nil
	}

	switch v := x.(type) {
	case referenceSlot:
		return e.node(slotNode(v), at)
	case Node:
		return e.node(v, at)
	case valueHolder:
		return e.value(v.heldValue(), at)
	case float64:
		return encodeNumber(v)
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = e.value(item, at.Append(strconv.Itoa(i)))
		}
		return items
	case sequencedmap.OrderedMap:
		m := sequencedmap.NewWithCapacity[string, any](v.Len())
		for key, item := range v.AllUntyped() {
			m.Set(fmt.Sprint(key), e.value(item, at.Append(fmt.Sprint(key))))
		}
		return m
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Ptr:
		return e.value(rv.Elem().Interface(), at)
	case reflect.Slice:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = e.value(rv.Index(i).Interface(), at.Append(strconv.Itoa(i)))
		}
		return items
	case reflect.String:
		return rv.String()
	}

	return x
}

// encodeNumber writes integral numbers as integers.
func encodeNumber(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int(f)
	}
	return f
}
