package runtime

import (
	"fmt"

	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/subst"
)

// resolver rebuilds terms through a substitution.
// Results are memoized per class, so a class mentioned many times is built once and
// its nodes are shared inside the output. The output never shares nodes with the input.
type resolver struct {
	s      *subst.Substitution
	done   map[int]domain.Term
	active map[int]bool
}

func newResolver(s *subst.Substitution) *resolver {
	return &resolver{
		s:      s,
		done:   make(map[int]domain.Term),
		active: make(map[int]bool),
	}
}

// Resolve applies s to t. Bound variables are replaced by their resolved bindings and
// unbound variables by the canonical variable of their class (representative + 1).
// A cyclic binding, only possible when the occurs check was disabled, yields an
// *domain.OccursError.
func Resolve(s *subst.Substitution, t domain.Term) (domain.Term, error) {
	return newResolver(s).term(t)
}

// Bindings resolves every variable ?1..?n. Element i holds the term for ?(i+1).
func Bindings(s *subst.Substitution, n int) ([]domain.Term, error) {
	if n > s.Len() {
		return nil, fmt.Errorf("bindings: %d variables requested, substitution has %d", n, s.Len())
	}
	r := newResolver(s)
	out := make([]domain.Term, n)
	for i := range out {
		t, err := r.term(domain.NewVar(i + 1))
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func (r *resolver) term(t domain.Term) (domain.Term, error) {
	switch t := t.(type) {
	case *domain.Value:
		children := make([]domain.Term, len(t.Children))
		for i, c := range t.Children {
			rc, err := r.term(c)
			if err != nil {
				return nil, err
			}
			children[i] = rc
		}
		return &domain.Value{Tag: t.Tag, Children: children}, nil

	case domain.Var:
		res := r.s.Lookup(t)
		if !res.Bound() {
			return domain.Var{Index: res.Var + 1}, nil
		}
		if out, ok := r.done[res.Var]; ok {
			return out, nil
		}
		if r.active[res.Var] {
			return nil, &domain.OccursError{Var: domain.Var{Index: res.Var + 1}}
		}

		r.active[res.Var] = true
		out, err := r.term(res.Value)
		delete(r.active, res.Var)
		if err != nil {
			return nil, err
		}
		r.done[res.Var] = out
		return out, nil

	default:
		return nil, fmt.Errorf("resolve: unexpected term %T", t)
	}
}
