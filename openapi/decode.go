package openapi

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/json"
	"github.com/oasref/openapi/marshaller"
	"github.com/oasref/openapi/sequencedmap"
)

// valueDecoder is implemented by slots that decode themselves from a tree
// value, such as Referenced and BoolOrSchema.
type valueDecoder interface {
	decode(data any) error
}

// entryDecoder is implemented by map-like objects that take custom action on
// the keys that are not declared fields or extensions.
type entryDecoder interface {
	decodeEntry(key string, value any) error
}

// postDecoder is implemented by objects that derive state once all their
// properties are set.
type postDecoder interface {
	afterDecode() error
}

// decodeNode populates n from a mapping. Malformed properties are recorded as
// errors of n; data that is not a mapping at all can not become an object and
// is returned as an ErrType error.
func decodeNode(n Node, data any) error {
	m, ok := data.(*sequencedmap.Map[string, any])
	if !ok {
		return errors.ErrType.Wrapf("Unable to instantiate %s Object with data '%s'", kindOf(n), describeData(data))
	}

	o := n.node()
	v := reflect.ValueOf(n).Elem()
	fields := marshaller.GetFields(v.Type())
	entries, hasEntryDecoder := n.(entryDecoder)

	for key, value := range m.All() {
		if f, ok := fields.Field(key); ok {
			if err := decodeField(o, f, value, v.FieldByIndex(f.Index)); err != nil {
				return err
			}
			continue
		}

		switch {
		case strings.HasPrefix(key, "x-"):
			o.setExtension(key, value)
		case hasEntryDecoder:
			if err := entries.decodeEntry(key, value); err != nil {
				return err
			}
		case fields.EntriesIndex >= 0:
			if err := decodeEntry(o, fields.Fields[fields.EntriesIndex], v, key, value); err != nil {
				return err
			}
		default:
			o.setUnknown(key, value)
		}
	}

	if p, ok := n.(postDecoder); ok {
		return p.afterDecode()
	}

	return nil
}

func decodeField(o *Object, f marshaller.CachedFieldInfo, value any, fv reflect.Value) error {
	if value == nil {
		return nil
	}

	if fv.Kind() == reflect.Interface {
		list := f.HasOption("list")
		if _, isList := value.([]any); list && !isList {
			if _, isRef := isReferenceData(value); !isRef {
				o.addError("Property '%s' must be an array, but got %s", f.Key, typeName(value))
				return nil
			}
		}

		decoded, err := decodeAny(value, list)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(decoded))
		return nil
	}

	decoded, ok, err := decodeValue(o, f.Key, value, fv.Type())
	if err != nil || !ok {
		return err
	}
	fv.Set(decoded)

	return nil
}

// decodeEntry stores a key of a map-like object in its inline entries map.
func decodeEntry(o *Object, f marshaller.CachedFieldInfo, v reflect.Value, key string, value any) error {
	fv := v.FieldByIndex(f.Index)
	if fv.IsNil() {
		fv.Set(reflect.New(fv.Type().Elem()))
	}
	om := fv.Interface().(sequencedmap.OrderedMap)

	if value == nil {
		return om.SetUntyped(key, nil)
	}

	decoded, ok, err := decodeValue(o, key, value, om.GetValueType())
	if err != nil || !ok {
		return err
	}

	return om.SetUntyped(key, decoded.Interface())
}

// decodeAny keeps an untyped value as is, except that a {"$ref": ...} mapping
// becomes a Reference. With list set the items of a sequence are checked too.
func decodeAny(value any, list bool) (any, error) {
	if m, ok := isReferenceData(value); ok {
		return NewReference(m, "")
	}

	items, ok := value.([]any)
	if !ok || !list {
		return value, nil
	}

	decoded := make([]any, len(items))
	for i, item := range items {
		if m, ok := isReferenceData(item); ok {
			ref, err := NewReference(m, "")
			if err != nil {
				return nil, err
			}
			decoded[i] = ref
			continue
		}
		decoded[i] = item
	}

	return decoded, nil
}

// decodeValue converts value to type t. The boolean is false when value was
// rejected with an error recorded on o.
func decodeValue(o *Object, key string, value any, t reflect.Type) (reflect.Value, bool, error) {
	switch t.Kind() {
	case reflect.Interface:
		if value == nil {
			return reflect.Zero(t), true, nil
		}
		return reflect.ValueOf(value), true, nil
	case reflect.String:
		s, ok := scalarString(value)
		if !ok {
			o.addError("Property '%s' must be a string, but got %s", key, typeName(value))
			return reflect.Value{}, false, nil
		}
		return reflect.ValueOf(s).Convert(t), true, nil
	case reflect.Bool:
		b, ok := value.(bool)
		if !ok {
			o.addError("Property '%s' must be a boolean, but got %s", key, typeName(value))
			return reflect.Value{}, false, nil
		}
		return reflect.ValueOf(b), true, nil
	case reflect.Int:
		i, ok := integerValue(value)
		if !ok {
			o.addError("Property '%s' must be an integer, but got %s", key, typeName(value))
			return reflect.Value{}, false, nil
		}
		return reflect.ValueOf(i), true, nil
	case reflect.Float64:
		f, ok := numberValue(value)
		if !ok {
			o.addError("Property '%s' must be a number, but got %s", key, typeName(value))
			return reflect.Value{}, false, nil
		}
		return reflect.ValueOf(f), true, nil
	case reflect.Slice:
		return decodeSlice(o, key, value, t)
	case reflect.Ptr:
		return decodePointer(o, key, value, t)
	}

	return reflect.Value{}, false, errors.ErrType.Wrapf("unsupported field type %s for property '%s'", t, key)
}

func decodePointer(o *Object, key string, value any, t reflect.Type) (reflect.Value, bool, error) {
	ptr := reflect.New(t.Elem())

	switch target := ptr.Interface().(type) {
	case valueDecoder:
		if err := target.decode(value); err != nil {
			return reflect.Value{}, false, err
		}
		return ptr, true, nil
	case sequencedmap.OrderedMap:
		ok, err := decodeMap(o, key, value, target)
		return ptr, ok, err
	case Node:
		if err := decodeNode(target, value); err != nil {
			return reflect.Value{}, false, err
		}
		return ptr, true, nil
	}

	elem, ok, err := decodeValue(o, key, value, t.Elem())
	if err != nil || !ok {
		return reflect.Value{}, ok, err
	}
	ptr.Elem().Set(elem)

	return ptr, true, nil
}

func decodeSlice(o *Object, key string, value any, t reflect.Type) (reflect.Value, bool, error) {
	items, ok := value.([]any)
	if !ok {
		o.addError("Property '%s' must be an array, but got %s", key, typeName(value))
		return reflect.Value{}, false, nil
	}

	decoded := reflect.MakeSlice(t, 0, len(items))
	for _, item := range items {
		if t.Elem().Kind() == reflect.String {
			if _, isString := item.(string); !isString {
				o.addError("property '%s' must be array of strings, but array has %s element.", key, typeName(item))
				continue
			}
		}

		elem, ok, err := decodeValue(o, key, item, t.Elem())
		if err != nil {
			return reflect.Value{}, false, err
		}
		if ok {
			decoded = reflect.Append(decoded, elem)
		}
	}

	return decoded, true, nil
}

func decodeMap(o *Object, key string, value any, target sequencedmap.OrderedMap) (bool, error) {
	m, ok := value.(*sequencedmap.Map[string, any])
	if !ok {
		o.addError("Property '%s' must be an array, but got %s", key, typeName(value))
		return false, nil
	}

	target.Init()
	valueType := target.GetValueType()

	for k, item := range m.All() {
		if valueType.Kind() == reflect.String {
			if _, isString := item.(string); !isString {
				o.addError("property '%s' must be map<string, string>, but entry '%s' is of type %s.", key, k, typeName(item))
				continue
			}
		}

		if item == nil && valueType.Kind() != reflect.Interface {
			o.addError("Property '%s' must not contain null values, but entry '%s' is null", key, k)
			continue
		}

		elem, ok, err := decodeValue(o, key, item, valueType)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}
		if err := target.SetUntyped(k, elem.Interface()); err != nil {
			return false, errors.ErrType.Wrap(err)
		}
	}

	return true, nil
}

func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

func integerValue(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		if v == math.Trunc(v) && math.Abs(v) <= 1<<53 {
			return int(v), true
		}
	}
	return 0, false
}

func numberValue(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// typeName names the type of a tree value in messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64:
		return "integer"
	case float64:
		return "number"
	case []any:
		return "array"
	case *sequencedmap.Map[string, any]:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

func describeData(data any) string {
	b, err := json.MarshalIndent(data, 0)
	if err != nil {
		return fmt.Sprint(data)
	}
	return string(b)
}
