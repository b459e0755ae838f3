package validation

import (
	"fmt"

	"github.com/oasref/openapi/jsonpointer"
)

// Error is an example that does not satisfy its schema.
type Error struct {
	// Location points at the offending value in the encoded document.
	Location jsonpointer.JSONPointer
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Location, e.Message)
}

func newError(location jsonpointer.JSONPointer, format string, args ...any) *Error {
	return &Error{Location: location, Message: fmt.Sprintf(format, args...)}
}
