package errors

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrSeperator is used to seperate the message from the cause in the error message
const ErrSeperator = " -- "

// Error provides a string based error type allowing the definition of const errors in packages
type Error string

func (s Error) Error() string {
	return string(s)
}

// Is checks if target error is equivalent to Error
func (s Error) Is(target error) bool {
	return s.Error() == target.Error() || strings.HasPrefix(target.Error(), s.Error()+ErrSeperator)
}

// As will set target errors value to equal Error if they are equivalent
func (s Error) As(target interface{}) bool {
	v := reflect.ValueOf(target).Elem()
	if v.Type().Name() == "Error" && v.CanSet() {
		v.SetString(string(s))
		return true
	}
	return false
}

// Wrap will add the provided error as a cause for this Error and return the wrapped error
func (s Error) Wrap(err error) error {
	return wrappedError{cause: err, msg: string(s)}
}

// Wrapf will add a formatted message as the cause for this Error.
func (s Error) Wrapf(format string, args ...any) error {
	return wrappedError{cause: fmt.Errorf(format, args...), msg: string(s)}
}

type wrappedError struct {
	cause error
	msg   string
}

func (w wrappedError) Error() string {
	if w.cause != nil {
		return fmt.Sprintf("%s%s%v", w.msg, ErrSeperator, w.cause)
	}
	return w.msg
}

func (w wrappedError) Is(target error) bool {
	return Error(w.msg).Is(target)
}

func (w wrappedError) As(target interface{}) bool {
	return Error(w.msg).As(target)
}

func (w wrappedError) Unwrap() error {
	return w.cause
}

// Cause returns the innermost message of an error created with Wrap or Wrapf,
// which is the human readable part without the kind prefix.
func Cause(err error) string {
	var w wrappedError
	if errors.As(err, &w) && w.cause != nil {
		return w.cause.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// The below are just wrappers as we are stealing the namespace of the errors package

// Is checks if err is equivalent to target
func Is(err error, target error) bool {
	return errors.Is(err, target)
}

// As will set target errors value to equal Error if they are equivalent
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns a new error with the specified message.
func New(message string) error {
	return errors.New(message)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

type JoinedErrors interface {
	Unwrap() []error
}

func UnwrapErrors(err error) []error {
	if err == nil {
		return nil
	}

	if je, ok := err.(JoinedErrors); ok {
		return je.Unwrap()
	}
	return []error{err}
}
