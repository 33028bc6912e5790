package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/unify"
	"github.com/aretw0/unify/internal/presentation/tui"
	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/runner"
)

// ErrNotUnified is returned by RunSolve when the two terms do not unify.
var ErrNotUnified = errors.New("terms do not unify")

// SolveOptions configures RunSolve.
type SolveOptions struct {
	Options
	Left, Right string
	Language    []string
	Out         io.Writer
}

// RunSolve unifies one pair of terms and prints the solution.
func RunSolve(ctx context.Context, opts SolveOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	printer, err := newPrinter(opts.Options, opts.Out)
	if err != nil {
		return err
	}

	r, closeStore, err := CreateRunner(ctx, opts.Options)
	if err != nil {
		return err
	}
	defer closeStore()

	solution, err := r.Solve(ctx, &domain.Problem{
		Left:     opts.Left,
		Right:    opts.Right,
		Language: opts.Language,
	})
	if err != nil {
		return err
	}
	if err := printer.PrintSolution(solution); err != nil {
		return err
	}
	if !solution.Unified {
		return ErrNotUnified
	}
	return nil
}

// SessionOptions configures RunSession.
type SessionOptions struct {
	Options
	// JSON reads JSON lines and writes one JSON object per answer.
	JSON bool
	In   io.Reader
	Out  io.Writer
}

// RunSession reads problems line by line and answers each one until the input ends
// or ctx is done. On a terminal it shows the banner and a prompt.
func RunSession(ctx context.Context, opts SessionOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	r, closeStore, err := CreateRunner(ctx, opts.Options)
	if err != nil {
		return err
	}
	defer closeStore()

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(opts.In, opts.Out)
	} else {
		var handlerOpts []runner.TextHandlerOption
		if f, ok := opts.In.(*os.File); ok && tui.IsTerminal(f) {
			tui.PrintBanner(opts.Out, unify.Version)
			printSystemMessage(opts.Out, "Enter 'left = right', Ctrl+D to quit.")
			handlerOpts = append(handlerOpts, runner.WithPrompt("> "))
			if render, err := tui.NewRenderer(); err == nil {
				handlerOpts = append(handlerOpts, runner.WithTextHandlerRenderer(render))
			}
		}
		handler = runner.NewTextHandler(opts.In, opts.Out, handlerOpts...)
	}

	r.Logger.Info("Session started", "json", opts.JSON)
	err = handleExecutionError(r.Run(ctx, handler))
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	r.Logger.Info("Session finished")
	return nil
}
