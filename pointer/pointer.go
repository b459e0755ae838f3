// Package pointer converts between values and the optional pointer fields of
// document objects.
package pointer

// From returns a pointer to a copy of t.
func From[T any](t T) *T {
	return &t
}

// ValueOrZero dereferences v, returning the zero value for nil.
func ValueOrZero[T any](v *T) T {
	var zero T
	return ValueOr(v, zero)
}

// ValueOr dereferences v, returning def for nil.
func ValueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
