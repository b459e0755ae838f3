package openapi

import (
	"fmt"

	"github.com/oasref/openapi/jsonpointer"
	"github.com/oasref/openapi/marshaller"
	"github.com/oasref/openapi/sequencedmap"
)

// Node is implemented by every object of the document graph.
type Node interface {
	node() *Object
}

// Object carries the state shared by all document objects: specification
// extensions, properties that are neither declared nor extensions, the
// location of the object within its root document and the errors found while
// building, resolving and validating it.
type Object struct {
	// Extensions holds the x- properties in document order.
	Extensions *sequencedmap.Map[string, any] `key:",inline,extensions"`
	// Unknown holds undeclared properties in document order.
	Unknown *sequencedmap.Map[string, any] `key:",inline,unknown"`

	root        any
	position    jsonpointer.JSONPointer
	hasPosition bool

	errors           []string
	validationErrors []string
}

func (o *Object) node() *Object {
	return o
}

// GetRoot returns the root document the object was assigned to, or nil.
func (o *Object) GetRoot() any {
	if o == nil {
		return nil
	}
	return o.root
}

// GetPosition returns the location of the object within its root document.
// The boolean is false when no location was assigned.
func (o *Object) GetPosition() (jsonpointer.JSONPointer, bool) {
	if o == nil {
		return "", false
	}
	return o.position, o.hasPosition
}

// GetExtension returns the value of the x- property key.
func (o *Object) GetExtension(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	return o.Extensions.Get(key)
}

// GetUnknown returns the value of an undeclared property.
func (o *Object) GetUnknown(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	return o.Unknown.Get(key)
}

func (o *Object) setDocumentContext(root any, position jsonpointer.JSONPointer) {
	o.root = root
	o.position = position
	o.hasPosition = true
}

func (o *Object) addError(format string, args ...any) {
	o.errors = append(o.errors, fmt.Sprintf(format, args...))
}

func (o *Object) addValidationError(format string, args ...any) {
	o.validationErrors = append(o.validationErrors, fmt.Sprintf(format, args...))
}

// ownErrors returns the errors of this object alone, prefixed with its position.
func (o *Object) ownErrors() []string {
	all := append(append([]string{}, o.errors...), o.validationErrors...)
	if !o.hasPosition {
		return all
	}

	for i, err := range all {
		all[i] = fmt.Sprintf("[%s] %s", o.position, err)
	}
	return all
}

func (o *Object) setExtension(key string, value any) {
	if o.Extensions == nil {
		o.Extensions = sequencedmap.New[string, any]()
	}
	o.Extensions.Set(key, value)
}

func (o *Object) setUnknown(key string, value any) {
	if o.Unknown == nil {
		o.Unknown = sequencedmap.New[string, any]()
	}
	o.Unknown.Set(key, value)
}

// kindOf names the object type in messages.
func kindOf(n Node) string {
	if kind := marshaller.KindOf(n); kind != "" {
		return kind
	}
	return fmt.Sprintf("%T", n)
}
