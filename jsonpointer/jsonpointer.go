// Package jsonpointer implements RFC 6901 JSON Pointers and their evaluation
// against generic document trees and typed, tag annotated structs.
package jsonpointer

import (
	"strings"

	"github.com/oasref/openapi/errors"
)

const (
	// DefaultStructTag is the default struct tag used to name navigable struct fields.
	DefaultStructTag = "key"
)

// JSONPointer is a JSON pointer as defined by RFC 6901. The empty pointer addresses the whole document.
type JSONPointer string

type options struct {
	StructTags []string
}

type option func(o *options)

// WithStructTags will set the type of struct tags to use when navigating structs.
func WithStructTags(structTags ...string) option {
	return func(o *options) {
		o.StructTags = structTags
	}
}

func getOptions(opts []option) *options {
	o := &options{
		StructTags: []string{DefaultStructTag},
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

var (
	encoder = strings.NewReplacer("~", "~0", "/", "~1")
	decoder = strings.NewReplacer("~1", "/", "~0", "~")
)

// New parses and validates a JSON pointer string.
func New(pointer string) (JSONPointer, error) {
	j := JSONPointer(pointer)
	if err := j.Validate(); err != nil {
		return "", err
	}
	return j, nil
}

// MustNew is like New but panics on invalid syntax. Intended for constants and tests.
func MustNew(pointer string) JSONPointer {
	j, err := New(pointer)
	if err != nil {
		panic(err)
	}
	return j
}

// Validate reports whether the pointer matches the syntax ^(/[^/]*)*$.
func (j JSONPointer) Validate() error {
	if j == "" || j[0] == '/' {
		return nil
	}
	return errors.ErrInvalidPointerSyntax.Wrapf("Invalid JSON Pointer syntax: %s", string(j))
}

func (j JSONPointer) String() string {
	return string(j)
}

// IsRoot reports whether the pointer addresses the whole document.
func (j JSONPointer) IsRoot() bool {
	return j == ""
}

// Encode escapes a single reference token, ~ becomes ~0 and / becomes ~1.
func Encode(s string) string {
	return encoder.Replace(s)
}

// Decode reverses Encode.
func Decode(s string) string {
	return decoder.Replace(s)
}

// EscapeString is an alias of Encode.
func EscapeString(s string) string {
	return Encode(s)
}

// Path returns the decoded reference tokens of the pointer.
func (j JSONPointer) Path() []string {
	if j == "" {
		return []string{}
	}

	parts := strings.Split(string(j[1:]), "/")
	for i, part := range parts {
		parts[i] = Decode(part)
	}
	return parts
}

// Append returns a new pointer with the encoded segments added.
func (j JSONPointer) Append(segments ...string) JSONPointer {
	var sb strings.Builder
	sb.WriteString(string(j))
	for _, segment := range segments {
		sb.WriteByte('/')
		sb.WriteString(Encode(segment))
	}
	return JSONPointer(sb.String())
}

// Parent returns the pointer with the last segment removed. The boolean is
// false when the pointer is already the root and has no parent.
func (j JSONPointer) Parent() (JSONPointer, bool) {
	path := j.Path()
	if len(path) == 0 {
		return "", false
	}

	return PartsToJSONPointer(path[:len(path)-1]), true
}

// PartsToJSONPointer builds a pointer from decoded reference tokens.
func PartsToJSONPointer(parts []string) JSONPointer {
	return JSONPointer("").Append(parts...)
}
