package subst

import (
	"testing"

	"github.com/aretw0/unify/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AllUnbound(t *testing.T) {
	s := New(4)
	require.Equal(t, 4, s.Len())
	for i := 0; i < 4; i++ {
		r := s.LookupIndex(i)
		assert.False(t, r.Bound())
		assert.Equal(t, i, r.Var)
		assert.Equal(t, 1, s.Size(i))
	}
}

func TestFind_OutOfRangePanics(t *testing.T) {
	s := New(2)
	assert.Panics(t, func() { s.Find(2) })
	assert.Panics(t, func() { s.Find(-1) })
	assert.Panics(t, func() { New(0).Find(0) })
}

func TestLookup_Value(t *testing.T) {
	s := New(1)
	a := domain.Atom("a")
	r := s.Lookup(a)
	assert.True(t, r.Bound())
	assert.Same(t, a, r.Value)
}

func TestLookup_VarIsOneBased(t *testing.T) {
	s := New(3)
	a := domain.Atom("a")
	s.Bind(2, a)

	r := s.Lookup(domain.NewVar(3))
	require.True(t, r.Bound())
	assert.Same(t, a, r.Value)
	assert.False(t, s.Lookup(domain.NewVar(1)).Bound())
}

func TestBind_SharesValue(t *testing.T) {
	s := New(2)
	v := domain.NewValue("c", domain.NewVar(2))
	s.Bind(0, v)
	assert.Same(t, v, s.LookupIndex(0).Value)
	assert.True(t, s.Bound(0))
	assert.False(t, s.Bound(1))
}

func TestUnion_LargerClassIsRoot(t *testing.T) {
	s := New(4)
	s.Union(0, 1)
	s.Union(0, 2)
	root := s.Find(0)

	s.Union(3, 0)
	assert.Equal(t, root, s.Find(3), "singleton is absorbed by the larger class")
	assert.Equal(t, 4, s.Size(3))
}

func TestUnion_KeepsBinding(t *testing.T) {
	a := domain.Atom("a")

	t.Run("bound left", func(t *testing.T) {
		s := New(2)
		s.Bind(0, a)
		s.Union(0, 1)
		assert.Same(t, a, s.LookupIndex(1).Value)
	})

	t.Run("bound right", func(t *testing.T) {
		s := New(2)
		s.Bind(1, a)
		s.Union(0, 1)
		assert.Same(t, a, s.LookupIndex(0).Value)
	})

	t.Run("bound singleton against larger unbound class", func(t *testing.T) {
		s := New(4)
		s.Union(0, 1)
		s.Union(0, 2)
		s.Bind(3, a)
		s.Union(0, 3)
		for i := 0; i < 4; i++ {
			assert.Same(t, a, s.LookupIndex(i).Value, "var %d", i)
		}
		assert.Equal(t, 4, s.Size(0))
	})
}

func TestUnion_SameClassIsNoop(t *testing.T) {
	s := New(2)
	s.Union(0, 1)
	s.Union(1, 0)
	assert.Equal(t, 2, s.Size(0))
	assert.Len(t, s.Classes(), 1)
}

func TestFind_CompressesPath(t *testing.T) {
	s := New(5)
	// Build a chain 0 -> 1 -> 2 -> 3 -> 4 by hand.
	for i := 0; i < 4; i++ {
		s.cells[i].parent = i + 1
	}

	assert.Equal(t, 4, s.Find(0))
	for i := 0; i < 4; i++ {
		assert.Equal(t, 4, s.cells[i].parent, "cell %d", i)
	}
}

func TestFind_StopsAtBinding(t *testing.T) {
	s := New(3)
	s.Bind(2, domain.Atom("a"))
	s.cells[0].parent = 1
	s.cells[1].parent = 2

	assert.Equal(t, 2, s.Find(0))
	assert.Equal(t, 2, s.cells[0].parent)
}

func TestClasses(t *testing.T) {
	s := New(5)
	s.Union(0, 3)
	s.Union(1, 4)

	classes := s.Classes()
	require.Len(t, classes, 3)
	assert.Equal(t, []int{0, 3}, classes[s.Find(0)])
	assert.Equal(t, []int{1, 4}, classes[s.Find(4)])
	assert.Equal(t, []int{2}, classes[2])
}
