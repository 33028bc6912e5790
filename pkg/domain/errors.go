package domain

import (
	"errors"
	"fmt"
)

// ErrAtomComparison is returned when two value nodes disagree in tag or arity.
var ErrAtomComparison = errors.New("atom comparison failed")

// ErrOccursCheck is returned when binding a variable would create an infinite term.
var ErrOccursCheck = errors.New("occurs check failed")

// ErrStepLimit is returned when a unification exceeds the configured step budget.
var ErrStepLimit = errors.New("step limit exceeded")

// ErrSyntax is wrapped by term parsing errors.
var ErrSyntax = errors.New("syntax error")

// ErrValidation is wrapped by language validation errors.
var ErrValidation = errors.New("validation failed")

// ErrProblemNotFound is returned when a problem ID cannot be found in a loader.
var ErrProblemNotFound = errors.New("problem not found")

// ErrSolutionNotFound is returned when a solution ID cannot be found in the store.
var ErrSolutionNotFound = errors.New("solution not found")

// MismatchError describes the value pair that stopped a unification.
type MismatchError struct {
	Left  *Value
	Right *Value
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("cannot unify %s/%d with %s/%d",
		e.Left.Tag, e.Left.Arity(), e.Right.Tag, e.Right.Arity())
}

func (e *MismatchError) Unwrap() error { return ErrAtomComparison }

// OccursError describes a variable that would have been bound to a term containing itself.
type OccursError struct {
	Var  Var
	Term Term
}

func (e *OccursError) Error() string {
	if e.Term == nil {
		return fmt.Sprintf("variable %s is part of a cyclic binding", e.Var)
	}
	return fmt.Sprintf("variable %s occurs in %s", e.Var, e.Term)
}

func (e *OccursError) Unwrap() error { return ErrOccursCheck }

// Error kinds reported by ErrorKind.
const (
	KindAtomComparison = "atom_comparison"
	KindOccursCheck    = "occurs_check"
	KindStepLimit      = "step_limit"
	KindSyntax         = "syntax"
	KindValidation     = "validation"
	KindInternal       = "internal"
)

// ErrorKind classifies err for reports and API responses.
// It returns "" for a nil error.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAtomComparison):
		return KindAtomComparison
	case errors.Is(err, ErrOccursCheck):
		return KindOccursCheck
	case errors.Is(err, ErrStepLimit):
		return KindStepLimit
	case errors.Is(err, ErrSyntax):
		return KindSyntax
	case errors.Is(err, ErrValidation):
		return KindValidation
	default:
		return KindInternal
	}
}

// IsUnificationFailure reports whether err means the terms do not unify,
// as opposed to a malformed input or an infrastructure error.
func IsUnificationFailure(err error) bool {
	return errors.Is(err, ErrAtomComparison) || errors.Is(err, ErrOccursCheck)
}
