package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func alphabetTerms() map[string]Term {
	x := NewVar(1)
	return map[string]Term{
		"var":    x,
		"a":      Atom("a"),
		"b":      Atom("b"),
		"c(1)":   NewValue("c", x),
		"d(111)": NewValue("d", x, x, x),
		"d(124)": NewValue("d", x, NewVar(2), NewVar(4)),
	}
}

func TestMaxVar(t *testing.T) {
	terms := alphabetTerms()

	tests := []struct {
		name string
		want int
	}{
		{"var", 1},
		{"a", 0},
		{"b", 0},
		{"c(1)", 1},
		{"d(111)", 1},
		{"d(124)", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxVar(terms[tt.name]))
		})
	}
}

func TestMaxVar_OrderIndependent(t *testing.T) {
	left := NewValue("f", NewValue("g", NewVar(7)), NewVar(2))
	right := NewValue("f", NewVar(2), NewValue("g", NewVar(7)))
	assert.Equal(t, 7, MaxVar(left))
	assert.Equal(t, MaxVar(left), MaxVar(right))
}

func TestMaxVar_Deep(t *testing.T) {
	var term Term = NewVar(3)
	for i := 0; i < 100000; i++ {
		term = NewValue("s", term)
	}
	assert.Equal(t, 3, MaxVar(term))
}

func TestCheckVars(t *testing.T) {
	for name, term := range alphabetTerms() {
		assert.NoError(t, CheckVars(term), name)
	}

	err := CheckVars(NewValue("f", Atom("a"), NewValue("g", Var{Index: 0})))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "got 0")
}

func TestVars_FirstOccurrenceOrder(t *testing.T) {
	term := NewValue("d", NewValue("c", NewVar(3)), NewVar(1), NewVar(3), NewVar(2))
	assert.Equal(t, []int{3, 1, 2}, Vars(term))
	assert.Empty(t, Vars(Atom("a")))
}

func TestString(t *testing.T) {
	term := NewValue("d", NewValue("c", NewVar(1)), NewVar(2), Atom("a"))
	assert.Equal(t, "d(c(?1), ?2, a)", term.String())
	assert.Equal(t, "?5", NewVar(5).String())
}

func TestEqual(t *testing.T) {
	a := NewValue("f", NewVar(1), Atom("a"))
	assert.True(t, Equal(a, NewValue("f", NewVar(1), Atom("a"))))
	assert.False(t, Equal(a, NewValue("f", NewVar(2), Atom("a"))))
	assert.False(t, Equal(a, NewValue("f", NewVar(1))))
	assert.False(t, Equal(a, NewVar(1)))
	assert.True(t, Equal(NewVar(4), NewVar(4)))
}

func TestSize(t *testing.T) {
	assert.Equal(t, 1, Size(Atom("a")))
	assert.Equal(t, 5, Size(NewValue("d", NewValue("c", NewVar(1)), NewVar(2), Atom("a"))))
}

func TestNewVar_PanicsOnNonPositive(t *testing.T) {
	assert.Panics(t, func() { NewVar(0) })
	assert.Panics(t, func() { NewVar(-3) })
}

func TestIsGround(t *testing.T) {
	assert.True(t, IsGround(NewValue("c", Atom("a"))))
	assert.False(t, IsGround(NewValue("c", NewVar(1))))
}
