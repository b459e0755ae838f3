package errors

import (
	"fmt"
)

const (
	// ErrInvalidPointerSyntax is returned when a JSON pointer string is malformed.
	ErrInvalidPointerSyntax Error = "invalid json pointer syntax"
	// ErrMalformedReference is returned when a reference object has no usable $ref.
	ErrMalformedReference Error = "malformed json reference object"
	// ErrNotFound is returned when a JSON pointer does not address a value in a document.
	ErrNotFound Error = "nonexistent json pointer reference"
	// ErrUnresolvableReference is returned when a $ref can not be resolved.
	ErrUnresolvableReference Error = "unresolvable reference"
	// ErrCyclicReference is returned when a reference resolves back onto itself.
	ErrCyclicReference Error = "cyclic reference"
	// ErrIO is returned when reading or writing a document fails.
	ErrIO Error = "io error"
	// ErrType is returned when data can not be turned into the requested object type.
	ErrType Error = "type error"
	// ErrInvalidQuery is returned when a JSONPath expression can not be parsed.
	ErrInvalidQuery Error = "invalid jsonpath query"
	// ErrInvalidOverlay is returned when an overlay document breaks the rules of the overlay format.
	ErrInvalidOverlay Error = "invalid overlay"
)

// ReferenceError describes a failure to resolve a single $ref.
type ReferenceError struct {
	// Ref is the raw $ref value.
	Ref string
	// Target is the kind of object the reference was expected to resolve to.
	Target string
	// Position is the JSON pointer of the reference inside its document, empty if unknown.
	Position string
	// Circular is set when the failure is a reference cycle.
	Circular bool
	// Message is the human readable description.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

var _ error = (*ReferenceError)(nil)

func (e *ReferenceError) Error() string {
	return e.Message
}

// Context returns the document position of the failing reference.
func (e *ReferenceError) Context() string {
	return e.Position
}

func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is matches ErrUnresolvableReference for all reference errors and ErrCyclicReference for cycles.
func (e *ReferenceError) Is(target error) bool {
	switch target {
	case ErrUnresolvableReference:
		return true
	case ErrCyclicReference:
		return e.Circular
	}
	return false
}

// NewReferenceError creates a ReferenceError with a formatted message.
func NewReferenceError(cause error, format string, args ...any) *ReferenceError {
	return &ReferenceError{
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// NewCyclicReferenceError creates the error reported when a reference resolves onto itself.
func NewCyclicReferenceError(ref string) *ReferenceError {
	return &ReferenceError{
		Ref:      ref,
		Circular: true,
		Message:  "Cyclic reference detected on a Reference Object.",
	}
}
