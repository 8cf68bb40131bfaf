package mining

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewItemset_CanonicalOrder(t *testing.T) {
	tests := []struct {
		name  string
		input []Item
		want  []Item
	}{
		{name: "already sorted", input: []Item{"bread", "milk"}, want: []Item{"bread", "milk"}},
		{name: "reverse order", input: []Item{"milk", "eggs", "bread"}, want: []Item{"bread", "eggs", "milk"}},
		{name: "duplicates collapse", input: []Item{"milk", "milk", "bread"}, want: []Item{"bread", "milk"}},
		{name: "empty", input: nil, want: []Item{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewItemset(tt.input...)
			assert.Equal(t, tt.want, append([]Item{}, set.Items()...))
			assert.Equal(t, len(tt.want), set.Len())
		})
	}
}

func TestItemset_EqualityIgnoresInputOrder(t *testing.T) {
	a := NewItemset("milk", "bread", "eggs")
	b := NewItemset("eggs", "milk", "bread")

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())
	assert.False(t, a.Equal(NewItemset("milk", "bread")))
}

func TestItemset_ItemsIsACopy(t *testing.T) {
	set := NewItemset("bread", "milk")
	items := set.Items()
	items[0] = "zzz"

	assert.Equal(t, []Item{"bread", "milk"}, set.Items())
}

func TestItemset_SetAlgebra(t *testing.T) {
	abc := NewItemset("a", "b", "c")
	ab := NewItemset("a", "b")
	cd := NewItemset("c", "d")

	assert.True(t, ab.IsSubsetOf(abc))
	assert.False(t, abc.IsSubsetOf(ab))
	assert.False(t, cd.IsSubsetOf(abc))
	assert.True(t, NewItemset().IsSubsetOf(ab))

	assert.Equal(t, []Item{"a", "b", "c", "d"}, ab.Union(cd).Items())
	assert.Equal(t, []Item{"a", "b", "c"}, ab.Union(abc).Items())
	assert.Equal(t, []Item{"c"}, abc.Minus(ab).Items())
	assert.Equal(t, []Item{"a", "b"}, abc.Minus(cd).Items())

	assert.True(t, abc.Contains("b"))
	assert.False(t, abc.Contains("d"))
}

func TestItemset_Prefix(t *testing.T) {
	set := NewItemset("c", "a", "b")

	assert.Equal(t, []Item{}, append([]Item{}, set.Prefix(0)...))
	assert.Equal(t, []Item{"a", "b"}, set.Prefix(2))
	assert.Equal(t, []Item{"a", "b", "c"}, set.Prefix(10))
}

func TestItemset_String(t *testing.T) {
	assert.Equal(t, "{bread, milk}", NewItemset("milk", "bread").String())
	assert.Equal(t, "{}", NewItemset().String())
}

func TestLattice_ContainsAndLen(t *testing.T) {
	l := Lattice{
		{NewItemset("a"), NewItemset("b")},
		{NewItemset("a", "b")},
	}

	assert.Equal(t, 3, l.Len())
	assert.True(t, l.Contains(NewItemset("b", "a")))
	assert.False(t, l.Contains(NewItemset("a", "b", "c")))
	assert.False(t, l.Contains(NewItemset("c")))
}
