package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Term is a first-order term: either a *Value (a constructor applied to children)
// or a Var (a reference to a unification variable).
// The interface is sealed; only this package provides implementations.
type Term interface {
	String() string
	isTerm()
}

// Value is a concrete node: a constructor tag and its ordered children.
// The number of children is the constructor's arity. It is never checked against
// a language here; see package language for that.
type Value struct {
	Tag      string
	Children []Term
}

// Var references a unification variable by its one-based index.
type Var struct {
	Index int
}

func (*Value) isTerm() {}
func (Var) isTerm()    {}

// NewValue creates a value node with the given tag and children.
func NewValue(tag string, children ...Term) *Value {
	return &Value{Tag: tag, Children: children}
}

// Atom creates a zero-arity value node.
func Atom(tag string) *Value {
	return &Value{Tag: tag}
}

// NewVar creates a variable reference. Indices are one-based; it panics on i < 1.
func NewVar(i int) Var {
	if i < 1 {
		panic(fmt.Sprintf("domain: variable index must be positive, got %d", i))
	}
	return Var{Index: i}
}

// Arity returns the number of children.
func (v *Value) Arity() int {
	return len(v.Children)
}

func (v *Value) String() string {
	var sb strings.Builder
	writeTerm(&sb, v)
	return sb.String()
}

func (v Var) String() string {
	return "?" + strconv.Itoa(v.Index)
}

func writeTerm(sb *strings.Builder, t Term) {
	switch t := t.(type) {
	case *Value:
		sb.WriteString(t.Tag)
		if len(t.Children) == 0 {
			return
		}
		sb.WriteByte('(')
		for i, c := range t.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeTerm(sb, c)
		}
		sb.WriteByte(')')
	case Var:
		sb.WriteString(t.String())
	default:
		sb.WriteString("<nil>")
	}
}

// MaxVar returns the largest variable index referenced anywhere in t, or 0 if t is ground.
// The traversal uses an explicit stack, so deep terms do not grow the call stack.
func MaxVar(t Term) int {
	unchecked := []Term{t}
	maxVar := 0
	for len(unchecked) > 0 {
		n := len(unchecked) - 1
		current := unchecked[n]
		unchecked = unchecked[:n]

		switch c := current.(type) {
		case *Value:
			unchecked = append(unchecked, c.Children...)
		case Var:
			maxVar = max(maxVar, c.Index)
		}
	}
	return maxVar
}

// CheckVars reports the first variable in t whose index is not positive.
// Such terms cannot come from NewVar or the parser, only from a struct literal.
func CheckVars(t Term) error {
	unchecked := []Term{t}
	for len(unchecked) > 0 {
		n := len(unchecked) - 1
		current := unchecked[n]
		unchecked = unchecked[:n]

		switch c := current.(type) {
		case *Value:
			unchecked = append(unchecked, c.Children...)
		case Var:
			if c.Index < 1 {
				return fmt.Errorf("%w: variable index must be positive, got %d", ErrValidation, c.Index)
			}
		}
	}
	return nil
}

// Vars returns the distinct variable indices of t in left-to-right, first-occurrence order.
func Vars(t Term) []int {
	var out []int
	seen := make(map[int]bool)
	var visit func(Term)
	visit = func(t Term) {
		switch c := t.(type) {
		case *Value:
			for _, child := range c.Children {
				visit(child)
			}
		case Var:
			if !seen[c.Index] {
				seen[c.Index] = true
				out = append(out, c.Index)
			}
		}
	}
	visit(t)
	return out
}

// Size returns the number of nodes (values and variables) in t.
func Size(t Term) int {
	switch c := t.(type) {
	case *Value:
		n := 1
		for _, child := range c.Children {
			n += Size(child)
		}
		return n
	case Var:
		return 1
	default:
		return 0
	}
}

// Equal reports whether a and b are structurally identical, variables included.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case *Value:
		y, ok := b.(*Value)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		if x.Tag != y.Tag || len(x.Children) != len(y.Children) {
			return false
		}
		for i := range x.Children {
			if !Equal(x.Children[i], y.Children[i]) {
				return false
			}
		}
		return true
	case Var:
		y, ok := b.(Var)
		return ok && x.Index == y.Index
	default:
		return a == nil && b == nil
	}
}

// IsGround reports whether t contains no variables.
func IsGround(t Term) bool {
	return MaxVar(t) == 0
}
