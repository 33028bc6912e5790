package language

import (
	"fmt"
	"strconv"

	"github.com/aretw0/unify/pkg/domain"
)

// Validate checks every node of t against l.
// Returns nil or an *AggregateError listing all failures, in pre-order.
func (l *Language) Validate(t domain.Term) error {
	var errs []error
	l.validate(t, "root", &errs)

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// ValidatePair validates both sides of a problem, prefixing paths with left and right.
func (l *Language) ValidatePair(left, right domain.Term) error {
	var errs []error
	l.validate(left, "left", &errs)
	l.validate(right, "right", &errs)

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func (l *Language) validate(t domain.Term, path string, errs *[]error) {
	switch t := t.(type) {
	case *domain.Value:
		if want := l.Arity(t.Tag); want < 0 {
			*errs = append(*errs, &ValidationError{
				Path:   path,
				Symbol: t.Tag,
				Reason: "unknown symbol",
			})
		} else if want != t.Arity() {
			*errs = append(*errs, &ValidationError{
				Path:   path,
				Symbol: t.Tag,
				Reason: fmt.Sprintf("arity mismatch: declared %d, got %d", want, t.Arity()),
			})
		}
		for i, c := range t.Children {
			l.validate(c, path+"."+strconv.Itoa(i), errs)
		}

	case domain.Var:
		if t.Index < 1 {
			*errs = append(*errs, &ValidationError{
				Path:   path,
				Symbol: t.String(),
				Reason: "variable index must be positive",
			})
		}

	default:
		*errs = append(*errs, &ValidationError{
			Path:   path,
			Symbol: fmt.Sprintf("%T", t),
			Reason: "not a term",
		})
	}
}
