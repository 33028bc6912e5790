package runner

import (
	"context"
	"errors"
	"io"

	"github.com/aretw0/unify/pkg/domain"
)

// Run solves problems read from handler until the input ends or ctx is done.
// Malformed lines and unsolvable problems are reported through the handler and do not
// stop the session.
func (r *Runner) Run(ctx context.Context, handler IOHandler) error {
	signals := NewSignalManager(ctx)
	defer signals.Stop()

	for {
		ctx := signals.Context()

		p, err := handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			signals.CheckRace()
			if signals.Context().Err() != nil {
				return nil
			}
			if errors.Is(err, domain.ErrSyntax) || errors.Is(err, ErrInputTooLarge) || errors.Is(err, ErrInvalidUTF8) {
				if oerr := handler.Output(ctx, nil, err); oerr != nil {
					return oerr
				}
				continue
			}
			return err
		}
		if p == nil {
			continue
		}

		solution, err := r.Solve(ctx, p)
		if ctx.Err() != nil {
			return nil
		}
		if err := handler.Output(ctx, solution, err); err != nil {
			return err
		}
	}
}
