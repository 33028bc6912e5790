package language

import (
	"errors"
	"fmt"

	"github.com/aretw0/unify/pkg/domain"
)

// ValidationError represents a single node that does not conform to the language.
type ValidationError struct {
	Path   string // Position of the node, e.g. "d.1.c.0"
	Symbol string // Offending tag or variable
	Reason string // Human-readable reason for failure
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Symbol, e.Reason)
	}
	return fmt.Sprintf("%s at %s: %s", e.Symbol, e.Path, e.Reason)
}

func (e *ValidationError) Unwrap() error { return domain.ErrValidation }

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

func (e *AggregateError) Unwrap() error { return domain.ErrValidation }

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
