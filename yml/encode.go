package yml

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/sequencedmap"
	"gopkg.in/yaml.v3"
)

// DefaultIndentation is the number of spaces used per nesting level by Marshal.
const DefaultIndentation = 2

// Marshal renders a document tree as YAML.
func Marshal(v any) ([]byte, error) {
	node, err := ValueToNode(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(DefaultIndentation)
	if err := enc.Encode(node); err != nil {
		return nil, errors.ErrType.Wrap(err)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.ErrType.Wrap(err)
	}

	return buf.Bytes(), nil
}

// ValueToNode converts a document tree into a YAML node. Mapping keys that a
// YAML reader would not resolve back to a string, such as HTTP status codes,
// are single quoted.
func ValueToNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case *yaml.Node:
		return t, nil
	case string:
		return CreateStringNode(t), nil
	case bool:
		return CreateBoolNode(t), nil
	case int:
		return CreateIntNode(int64(t)), nil
	case int64:
		return CreateIntNode(t), nil
	case float64:
		return CreateFloatNode(t), nil
	case *sequencedmap.Map[string, any]:
		node := CreateMapNode(nil)
		for key, value := range t.All() {
			valueNode, err := ValueToNode(value)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, CreateKeyNode(key), valueNode)
		}
		if len(node.Content) == 0 {
			node.Style = yaml.FlowStyle
		}
		return node, nil
	case []any:
		node := CreateSliceNode(nil)
		for _, item := range t {
			itemNode, err := ValueToNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, itemNode)
		}
		if len(node.Content) == 0 {
			node.Style = yaml.FlowStyle
		}
		return node, nil
	}

	return reflectToNode(reflect.ValueOf(v))
}

func reflectToNode(v reflect.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return ValueToNode(nil)
		}
		return ValueToNode(v.Elem().Interface())
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			break
		}
		keys := v.MapKeys()
		m := sequencedmap.NewWithCapacity[string, any](len(keys))
		sorted := make([]string, 0, len(keys))
		for _, k := range keys {
			sorted = append(sorted, k.String())
		}
		slices.Sort(sorted)
		for _, k := range sorted {
			m.Set(k, v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key())).Interface())
		}
		return ValueToNode(m)
	case reflect.Slice, reflect.Array:
		items := make([]any, v.Len())
		for i := range items {
			items[i] = v.Index(i).Interface()
		}
		return ValueToNode(items)
	case reflect.String:
		return CreateStringNode(v.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return CreateIntNode(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(v.Uint(), 10)}, nil
	case reflect.Float32, reflect.Float64:
		return CreateFloatNode(v.Float()), nil
	case reflect.Bool:
		return CreateBoolNode(v.Bool()), nil
	}

	return nil, errors.ErrType.Wrapf("unsupported value of type %s", v.Type())
}

// CreateKeyNode creates a mapping key, quoting keys that would otherwise not be read back as strings.
func CreateKeyNode(key string) *yaml.Node {
	node := CreateStringNode(key)
	if node.Style == 0 && needsQuoting(key) {
		node.Style = yaml.SingleQuotedStyle
	}
	return node
}

// CreateStringNode creates a string scalar. Multi-line strings use the literal block style.
func CreateStringNode(value string) *yaml.Node {
	node := &yaml.Node{
		Value: value,
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
	}
	if strings.Contains(strings.TrimRight(value, "\n"), "\n") && !strings.ContainsAny(value, "\t\r") {
		node.Style = yaml.LiteralStyle
	}
	return node
}

func CreateIntNode(value int64) *yaml.Node {
	return &yaml.Node{
		Value: strconv.FormatInt(value, 10),
		Kind:  yaml.ScalarNode,
		Tag:   "!!int",
	}
}

// CreateFloatNode creates a float scalar whose text always resolves back to a float.
func CreateFloatNode(value float64) *yaml.Node {
	var text string
	switch {
	case math.IsInf(value, 1):
		text = ".inf"
	case math.IsInf(value, -1):
		text = "-.inf"
	case math.IsNaN(value):
		text = ".nan"
	default:
		text = strconv.FormatFloat(value, 'g', -1, 64)
		if !strings.ContainsAny(text, ".eE") {
			text += ".0"
		} else if strings.ContainsAny(text, "eE") && !strings.Contains(text, ".") {
			// yaml 1.1 floats require a dot in the mantissa
			mantissa, exp, _ := strings.Cut(strings.ToLower(text), "e")
			text = fmt.Sprintf("%s.0e%s", mantissa, exp)
		}
	}

	return &yaml.Node{
		Value: text,
		Kind:  yaml.ScalarNode,
		Tag:   "!!float",
	}
}

func CreateBoolNode(value bool) *yaml.Node {
	return &yaml.Node{
		Value: strconv.FormatBool(value),
		Kind:  yaml.ScalarNode,
		Tag:   "!!bool",
	}
}

func CreateMapNode(content []*yaml.Node) *yaml.Node {
	return &yaml.Node{
		Content: content,
		Kind:    yaml.MappingNode,
		Tag:     "!!map",
	}
}

func CreateSliceNode(elements []*yaml.Node) *yaml.Node {
	return &yaml.Node{
		Content: elements,
		Kind:    yaml.SequenceNode,
		Tag:     "!!seq",
	}
}

func needsQuoting(s string) bool {
	var probe yaml.Node
	if err := yaml.Unmarshal([]byte(s), &probe); err != nil {
		return true
	}
	if len(probe.Content) != 1 {
		return s != ""
	}
	scalar := probe.Content[0]
	return scalar.Kind != yaml.ScalarNode || scalar.ShortTag() != "!!str" || scalar.Value != s
}
