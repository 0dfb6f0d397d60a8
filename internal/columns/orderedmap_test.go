package columns

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMapKeepsInsertionOrder(t *testing.T) {
	m := NewOrderedMap[string]()
	m.Set("b", "2")
	m.Set("a", "1")
	m.Set("c", "3")
	m.Set("a", "updated")

	assert.Equal(t, []string{"b", "a", "c"}, m.Keys(), "updates keep the original position")

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, "updated", v)
}

func TestOrderedMapDelete(t *testing.T) {
	m := NewOrderedMap[string]()
	m.Set("a", "1")
	m.Set("b", "2")
	m.Set("c", "3")

	m.Delete("b")
	m.Delete("missing")

	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.Equal(t, 2, m.Len())
}

func TestOrderedMapCloneIsIndependent(t *testing.T) {
	m := NewOrderedMap[string]()
	m.Set("a", "1")

	clone := m.Clone()
	clone.Set("b", "2")
	clone.Delete("a")

	assert.Equal(t, []string{"a"}, m.Keys())
	assert.Equal(t, []string{"b"}, clone.Keys())
}

func TestOrderedMapMarshalJSON(t *testing.T) {
	m := NewOrderedMap[string]()
	m.Set("z", "last declared first")
	m.Set("a", "second")

	got, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"last declared first","a":"second"}`, string(got))
}
