package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/subst"
)

type pair struct {
	left, right domain.Term
}

// unifier holds the state of one unification.
type unifier struct {
	ctx         context.Context
	s           *subst.Substitution
	occursCheck bool
	maxSteps    int
	steps       int
}

// run drains a LIFO worklist seeded with (a, b).
// Each pair is dereferenced through the substitution first, so the four cases below
// only ever see values or unbound representatives.
func (u *unifier) run(a, b domain.Term) error {
	work := []pair{{a, b}}

	for len(work) > 0 {
		if u.steps%ctxCheckInterval == 0 {
			if err := u.ctx.Err(); err != nil {
				return fmt.Errorf("unification interrupted after %d steps: %w", u.steps, err)
			}
		}
		if u.maxSteps > 0 && u.steps >= u.maxSteps {
			return fmt.Errorf("%w: %d", domain.ErrStepLimit, u.maxSteps)
		}
		u.steps++

		n := len(work) - 1
		p := work[n]
		work = work[:n]

		l, r := u.s.Lookup(p.left), u.s.Lookup(p.right)

		switch {
		case l.Bound() && r.Bound():
			if l.Value == r.Value {
				continue
			}
			if l.Value.Tag != r.Value.Tag || l.Value.Arity() != r.Value.Arity() {
				return &domain.MismatchError{Left: l.Value, Right: r.Value}
			}
			for i := range l.Value.Children {
				work = append(work, pair{l.Value.Children[i], r.Value.Children[i]})
			}

		case l.Bound():
			if err := u.bind(r.Var, l.Value); err != nil {
				return err
			}

		case r.Bound():
			if err := u.bind(l.Var, r.Value); err != nil {
				return err
			}

		default:
			u.s.Union(l.Var, r.Var)
		}
	}

	return nil
}

// bind binds the unbound representative x to v, after the occurs check when enabled.
func (u *unifier) bind(x int, v *domain.Value) error {
	if u.occursCheck && occurs(u.s, x, v) {
		return &domain.OccursError{Var: domain.NewVar(x + 1), Term: v}
	}
	u.s.Bind(x, v)
	return nil
}
