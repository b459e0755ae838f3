// Package sequencedmap provides a map implementation that maintains the order of keys as they are added.
package sequencedmap

import (
	"fmt"
	"iter"
	"reflect"
	"slices"

	"github.com/oasref/openapi/errors"
)

// Element is a key-value pair that is stored in a sequenced map.
type Element[K comparable, V any] struct {
	Key   K
	Value V
}

// NewElem creates a new element with the specified key and value.
func NewElem[K comparable, V any](key K, value V) *Element[K, V] {
	return &Element[K, V]{
		Key:   key,
		Value: value,
	}
}

// Map is a map implementation that maintains the order of keys as they are added.
// Setting an existing key replaces its value in place.
type Map[K comparable, V any] struct {
	m map[K]*Element[K, V]
	l []*Element[K, V]
}

// OrderedMap is the untyped view of a Map used by reflection driven code.
type OrderedMap interface {
	Init()
	Len() int
	SetUntyped(key, value any) error
	GetUntyped(key any) (any, bool)
	AllUntyped() iter.Seq2[any, any]
	GetKeyType() reflect.Type
	GetValueType() reflect.Type
}

var _ OrderedMap = (*Map[string, any])(nil)

// New creates a new map with the specified elements.
func New[K comparable, V any](elements ...*Element[K, V]) *Map[K, V] {
	return NewWithCapacity(len(elements), elements...)
}

// NewWithCapacity creates a new map with the specified capacity and elements.
func NewWithCapacity[K comparable, V any](capacity int, elements ...*Element[K, V]) *Map[K, V] {
	capacity = max(capacity, len(elements))

	m := &Map[K, V]{
		m: make(map[K]*Element[K, V], capacity),
		l: make([]*Element[K, V], 0, capacity),
	}

	for _, element := range elements {
		m.Set(element.Key, element.Value)
	}

	return m
}

// From creates a new map from the given sequence.
func From[K comparable, V any](seq iter.Seq2[K, V]) *Map[K, V] {
	m := New[K, V]()
	for k, v := range seq {
		m.Set(k, v)
	}
	return m
}

// Init initializes the underlying resources of the map.
func (m *Map[K, V]) Init() {
	if m.m == nil {
		m.m = make(map[K]*Element[K, V])
	}
}

// Len returns the number of elements in the map. nil safe.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.l)
}

// Set sets the value for the specified key. New keys are appended, existing keys keep their position.
func (m *Map[K, V]) Set(key K, value V) {
	m.Init()

	if element, ok := m.m[key]; ok {
		element.Value = value
		return
	}

	element := NewElem(key, value)
	m.m[key] = element
	m.l = append(m.l, element)
}

// SetUntyped sets the value for the specified key with untyped key and value.
// An error is returned if the key or value is not of the correct type.
func (m *Map[K, V]) SetUntyped(key, value any) error {
	k, ok := key.(K)
	if !ok {
		return fmt.Errorf("expected key to be of type %v, got %T", m.GetKeyType(), key)
	}

	var v V
	if value != nil {
		v, ok = value.(V)
		if !ok {
			return fmt.Errorf("expected value to be of type %v, got %T", m.GetValueType(), value)
		}
	}

	m.Set(k, v)

	return nil
}

// Get returns the value for the specified key. nil safe.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if m == nil || m.m == nil {
		var zero V
		return zero, false
	}

	element, ok := m.m[key]
	if !ok {
		var zero V
		return zero, false
	}
	return element.Value, true
}

// GetUntyped returns the value for the specified untyped key.
func (m *Map[K, V]) GetUntyped(key any) (any, bool) {
	k, ok := key.(K)
	if !ok {
		return nil, false
	}
	v, ok := m.Get(k)
	if !ok {
		return nil, false
	}
	return v, true
}

// GetOrZero returns the value for the specified key or the zero value if absent.
func (m *Map[K, V]) GetOrZero(key K) V {
	v, _ := m.Get(key)
	return v
}

// Has returns whether the key exists in the map. nil safe.
func (m *Map[K, V]) Has(key K) bool {
	if m == nil || m.m == nil {
		return false
	}
	_, ok := m.m[key]
	return ok
}

// Delete removes the key from the map.
func (m *Map[K, V]) Delete(key K) {
	if m == nil || m.m == nil {
		return
	}

	element, ok := m.m[key]
	if !ok {
		return
	}

	delete(m.m, key)
	m.l = slices.DeleteFunc(m.l, func(e *Element[K, V]) bool {
		return e == element
	})
}

// All iterates the map in insertion order. Elements added during iteration are not visited.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}

		for _, element := range slices.Clone(m.l) {
			if !yield(element.Key, element.Value) {
				return
			}
		}
	}
}

// AllUntyped iterates the map in insertion order with untyped keys and values.
func (m *Map[K, V]) AllUntyped() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for k, v := range m.All() {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Keys iterates the keys in insertion order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values iterates the values in insertion order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// GetKeyType returns the type of the keys.
func (m *Map[K, V]) GetKeyType() reflect.Type {
	return reflect.TypeOf((*K)(nil)).Elem()
}

// GetValueType returns the type of the values.
func (m *Map[K, V]) GetValueType() reflect.Type {
	return reflect.TypeOf((*V)(nil)).Elem()
}

// NavigateWithKey returns the value for the specified key.
// This is an implementation of the jsonpointer.KeyNavigable interface.
func (m *Map[K, V]) NavigateWithKey(key string) (any, error) {
	v, ok := m.GetUntyped(key)
	if !ok {
		return nil, errors.ErrNotFound.Wrapf("key %s not found", key)
	}
	return v, nil
}
