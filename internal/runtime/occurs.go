package runtime

import (
	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/subst"
)

// occurs reports whether the class with representative x is reachable from v,
// following the bindings of every class v mentions. Each class is expanded once.
func occurs(s *subst.Substitution, x int, v *domain.Value) bool {
	visited := make(map[int]bool)
	stack := []domain.Term{v}

	for len(stack) > 0 {
		n := len(stack) - 1
		t := stack[n]
		stack = stack[:n]

		switch t := t.(type) {
		case *domain.Value:
			stack = append(stack, t.Children...)
		case domain.Var:
			r := s.LookupIndex(t.Index - 1)
			if r.Var == x {
				return true
			}
			if visited[r.Var] {
				continue
			}
			visited[r.Var] = true
			if r.Bound() {
				stack = append(stack, r.Value)
			}
		}
	}

	return false
}
