package subst

import (
	"fmt"

	"github.com/aretw0/unify/pkg/domain"
)

type cellKind uint8

const (
	// link points at another cell. A cell linking to itself is an unbound representative.
	link cellKind = iota
	// binding holds the value its whole class is bound to. It is always a representative.
	binding
)

type cell struct {
	kind   cellKind
	parent int
	value  *domain.Value
}

// Substitution is a union-find forest over variable indices.
// Each class representative is either unbound (a self link) or bound to a value.
// Bound values are shared with the terms that were unified, never copied, so those
// terms must not be mutated while the substitution is in use.
//
// Indices taken by methods are 0-based: term variable ?N is cell N-1.
type Substitution struct {
	cells []cell
	// sizes is only meaningful at representatives.
	sizes []int
}

// Resolution is the result of a lookup: the class binding, or the 0-based
// representative index when the class is unbound.
type Resolution struct {
	Value *domain.Value
	Var   int
}

// Bound reports whether the lookup ended at a value.
func (r Resolution) Bound() bool {
	return r.Value != nil
}

// New allocates n fresh, unconstrained variables.
func New(n int) *Substitution {
	s := &Substitution{
		cells: make([]cell, n),
		sizes: make([]int, n),
	}
	for i := range s.cells {
		s.cells[i] = cell{kind: link, parent: i}
		s.sizes[i] = 1
	}
	return s
}

// Len returns the number of variables in s.
func (s *Substitution) Len() int {
	return len(s.cells)
}

func (s *Substitution) check(i int) {
	if i < 0 || i >= len(s.cells) {
		panic(fmt.Sprintf("subst: variable index %d out of range [0, %d)", i, len(s.cells)))
	}
}

// Find returns the representative of i, then relinks every cell visited on the
// way directly to it.
func (s *Substitution) Find(i int) int {
	s.check(i)

	r := i
	var stale []int
	for {
		c := s.cells[r]
		if c.kind == binding || c.parent == r {
			break
		}
		stale = append(stale, r)
		r = c.parent
	}

	// stale holds the whole path except the representative itself.
	for _, j := range stale {
		s.cells[j].parent = r
	}

	return r
}

// LookupIndex resolves the 0-based variable i.
func (s *Substitution) LookupIndex(i int) Resolution {
	r := s.Find(i)
	if c := s.cells[r]; c.kind == binding {
		return Resolution{Value: c.value, Var: r}
	}
	return Resolution{Var: r}
}

// Lookup resolves a term one level: a value resolves to itself, a variable to its
// class binding or its representative.
func (s *Substitution) Lookup(t domain.Term) Resolution {
	switch t := t.(type) {
	case *domain.Value:
		return Resolution{Value: t, Var: -1}
	case domain.Var:
		return s.LookupIndex(t.Index - 1)
	default:
		panic(fmt.Sprintf("subst: unexpected term %T", t))
	}
}

// Bind binds the class of i to v. A binding already held by the class is replaced.
func (s *Substitution) Bind(i int, v *domain.Value) {
	r := s.Find(i)
	s.cells[r] = cell{kind: binding, parent: r, value: v}
}

// Union merges the classes of i and j.
//
// The larger class becomes the root. When exactly one representative is bound it
// becomes the root instead, so the binding survives the merge. When both are bound
// the binding of the absorbed class is lost; callers must not merge two bound
// classes unless they accept that.
func (s *Substitution) Union(i, j int) {
	ri, rj := s.Find(i), s.Find(j)
	if ri == rj {
		return
	}

	bi, bj := s.cells[ri].kind == binding, s.cells[rj].kind == binding
	root, child := ri, rj
	switch {
	case bi && !bj:
	case bj && !bi:
		root, child = rj, ri
	case s.sizes[rj] > s.sizes[ri]:
		root, child = rj, ri
	}

	s.cells[child] = cell{kind: link, parent: root}
	s.sizes[root] += s.sizes[child]
}

// Size returns the number of variables in the class of i.
func (s *Substitution) Size(i int) int {
	return s.sizes[s.Find(i)]
}

// Bound reports whether the class of i holds a binding.
func (s *Substitution) Bound(i int) bool {
	return s.cells[s.Find(i)].kind == binding
}

// Classes groups every variable by representative. Members are 0-based and ascending.
func (s *Substitution) Classes() map[int][]int {
	classes := make(map[int][]int)
	for i := range s.cells {
		r := s.Find(i)
		classes[r] = append(classes[r], i)
	}
	return classes
}
