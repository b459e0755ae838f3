package sequencedmap_test

import (
	"maps"
	"reflect"
	"slices"
	"testing"

	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/sequencedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_Set_PreservesOrder(t *testing.T) {
	t.Parallel()

	m := sequencedmap.New[string, int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("c", 3)
	m.Set("a", 20)

	assert.Equal(t, 3, m.Len(), "overwriting a key must not add an entry")
	assert.Equal(t, []string{"b", "a", "c"}, slices.Collect(m.Keys()))
	assert.Equal(t, []int{1, 20, 3}, slices.Collect(m.Values()))
}

func TestMap_New_WithElements(t *testing.T) {
	t.Parallel()

	m := sequencedmap.New(
		sequencedmap.NewElem("x", "1"),
		sequencedmap.NewElem("y", "2"),
	)

	v, ok := m.Get("y")
	require.True(t, ok)
	assert.Equal(t, "2", v)
	assert.True(t, m.Has("x"))
	assert.False(t, m.Has("z"))
	assert.Empty(t, m.GetOrZero("z"))
}

func TestMap_Delete(t *testing.T) {
	t.Parallel()

	m := sequencedmap.From(maps.All(map[string]int{"only": 1}))
	m.Set("second", 2)
	m.Delete("only")
	m.Delete("missing")

	assert.Equal(t, []string{"second"}, slices.Collect(m.Keys()))
	assert.False(t, m.Has("only"))
}

func TestMap_NilSafe(t *testing.T) {
	t.Parallel()

	var m *sequencedmap.Map[string, int]

	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Has("a"))
	_, ok := m.Get("a")
	assert.False(t, ok)
	assert.Empty(t, slices.Collect(m.Keys()))
	m.Delete("a")
}

func TestMap_ZeroValue_Set(t *testing.T) {
	t.Parallel()

	var m sequencedmap.Map[string, int]
	m.Set("a", 1)

	assert.Equal(t, 1, m.GetOrZero("a"))
}

func TestMap_All_AddDuringIteration(t *testing.T) {
	t.Parallel()

	m := sequencedmap.New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	var seen []string
	for k := range m.All() {
		seen = append(seen, k)
		if k == "a" {
			m.Set("c", 3)
		}
	}

	assert.Equal(t, []string{"a", "b"}, seen, "elements added during iteration are not visited")
	assert.Equal(t, 3, m.Len())
}

func TestMap_Untyped(t *testing.T) {
	t.Parallel()

	m := sequencedmap.New[string, any]()
	require.NoError(t, m.SetUntyped("a", 1))
	require.NoError(t, m.SetUntyped("b", nil))

	typed := sequencedmap.New[string, int]()
	err := typed.SetUntyped("a", "not an int")
	require.Error(t, err)
	err = typed.SetUntyped(1, 1)
	require.Error(t, err)

	v, ok := m.GetUntyped("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	assert.Equal(t, reflect.TypeOf(""), typed.GetKeyType())
	assert.Equal(t, reflect.TypeOf(0), typed.GetValueType())
	assert.Equal(t, reflect.TypeOf((*any)(nil)).Elem(), m.GetValueType())

	var keys []any
	for k := range m.AllUntyped() {
		keys = append(keys, k)
	}
	assert.Equal(t, []any{"a", "b"}, keys)
}

func TestMap_NavigateWithKey(t *testing.T) {
	t.Parallel()

	m := sequencedmap.New(sequencedmap.NewElem("pets", 3))

	v, err := m.NavigateWithKey("pets")
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = m.NavigateWithKey("cats")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}
