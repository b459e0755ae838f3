package marshaller

import (
	"reflect"
	"sync"

	"github.com/oasref/openapi/errors"
)

// TypeFactory creates a new zero instance of a registered type.
type TypeFactory func() any

var (
	typeFactories sync.Map // kind -> TypeFactory
	typeKinds     sync.Map // reflect.Type -> kind
)

// RegisterType registers a factory for T under kind and warms the field cache
// for T. This should be called in init() functions of packages that define
// models.
func RegisterType[T any](kind string, factory func() *T) {
	typ := reflect.TypeOf((*T)(nil)).Elem()

	typeFactories.Store(kind, TypeFactory(func() any {
		return factory()
	}))
	typeKinds.Store(typ, kind)

	GetFields(typ)
}

// CreateInstance creates a new instance of the type registered under kind.
func CreateInstance(kind string) (any, error) {
	r, ok := typeFactories.Load(kind)
	if !ok {
		return nil, errors.ErrType.Wrapf("unknown object type %q", kind)
	}
	return r.(TypeFactory)(), nil
}

// IsRegistered reports whether a factory is registered under kind.
func IsRegistered(kind string) bool {
	_, ok := typeFactories.Load(kind)
	return ok
}

// KindOf returns the kind v's type was registered under, or "" if it was not.
func KindOf(v any) string {
	if v == nil {
		return ""
	}

	typ := reflect.TypeOf(v)
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	kind, ok := typeKinds.Load(typ)
	if !ok {
		return ""
	}
	return kind.(string)
}
