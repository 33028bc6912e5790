package syntax

import (
	"fmt"

	"github.com/aretw0/unify/pkg/domain"
)

// Error is a parse failure at a byte offset of the input.
type Error struct {
	Pos int
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

func (e *Error) Unwrap() error { return domain.ErrSyntax }

func errorf(pos int, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
