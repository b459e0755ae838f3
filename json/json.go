// Package json provides ordered JSON decoding and encoding of document trees.
package json

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/sequencedmap"
	"github.com/oasref/openapi/yml"
	"gopkg.in/yaml.v3"
)

// DefaultIndentation is the number of spaces used per nesting level by Marshal.
const DefaultIndentation = 2

// YAMLToJSON will convert the provided YAML node to JSON in a stable way not reordering keys.
func YAMLToJSON(node *yaml.Node, indentation int, buffer io.Writer) error {
	v, err := yml.NodeToValue(node)
	if err != nil {
		return err
	}

	data, err := MarshalIndent(v, indentation)
	if err != nil {
		return err
	}

	_, err = buffer.Write(append(data, '\n'))
	return err
}

// Unmarshal decodes a JSON text into a document tree. Objects keep their key
// order, integral numbers become int and other numbers float64.
func Unmarshal(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, errors.ErrType.Wrap(err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.ErrType.Wrapf("invalid character after top-level value")
	}

	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := sequencedmap.New[string, any]()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := keyTok.(string)
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			s := []any{}
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				s = append(s, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return s, nil
		}
		return nil, errors.ErrType.Wrapf("unexpected delimiter %s", t)
	case json.Number:
		return numberValue(t)
	default:
		// string, bool or nil
		return t, nil
	}
}

func numberValue(n json.Number) (any, error) {
	if !strings.ContainsAny(n.String(), ".eE") {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil && i >= math.MinInt && i <= math.MaxInt {
			return int(i), nil
		}
	}
	return n.Float64()
}

// Marshal renders a document tree as JSON using DefaultIndentation.
func Marshal(v any) ([]byte, error) {
	return MarshalIndent(v, DefaultIndentation)
}

// MarshalIndent renders a document tree as JSON. Keys are written in
// insertion order, slashes and unicode are not escaped. An indentation of 0
// writes compact output.
func MarshalIndent(v any, indentation int) ([]byte, error) {
	w := &writer{indent: strings.Repeat(" ", indentation)}
	if err := w.value(v, 0); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

type writer struct {
	buf    bytes.Buffer
	indent string
}

func (w *writer) newline(depth int) {
	if w.indent == "" {
		return
	}
	w.buf.WriteByte('\n')
	for range depth {
		w.buf.WriteString(w.indent)
	}
}

func (w *writer) value(v any, depth int) error {
	switch t := v.(type) {
	case *sequencedmap.Map[string, any]:
		if t.Len() == 0 {
			w.buf.WriteString("{}")
			return nil
		}
		w.buf.WriteByte('{')
		first := true
		for key, value := range t.All() {
			if !first {
				w.buf.WriteByte(',')
			}
			first = false
			w.newline(depth + 1)
			if err := w.scalar(key); err != nil {
				return err
			}
			w.buf.WriteByte(':')
			if w.indent != "" {
				w.buf.WriteByte(' ')
			}
			if err := w.value(value, depth+1); err != nil {
				return err
			}
		}
		w.newline(depth)
		w.buf.WriteByte('}')
		return nil
	case []any:
		if len(t) == 0 {
			w.buf.WriteString("[]")
			return nil
		}
		w.buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			w.newline(depth + 1)
			if err := w.value(item, depth+1); err != nil {
				return err
			}
		}
		w.newline(depth)
		w.buf.WriteByte(']')
		return nil
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return errors.ErrType.Wrapf("unsupported value: %s", strconv.FormatFloat(t, 'g', -1, 64))
		}
	}

	return w.scalar(v)
}

func (w *writer) scalar(v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return errors.ErrType.Wrap(err)
	}
	w.buf.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return nil
}
