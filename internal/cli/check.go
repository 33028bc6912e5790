package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aretw0/unify/internal/presentation/tui"
	"github.com/aretw0/unify/pkg/runner"
)

// ErrCheckFailed is returned when a problem does not meet its expectation.
var ErrCheckFailed = errors.New("check failed")

// debounce groups the burst of events an editor save produces.
const debounce = 100 * time.Millisecond

// CheckOptions configures RunCheck.
type CheckOptions struct {
	Options
	Path  string
	Watch bool
	Out   io.Writer
}

// RunCheck solves every problem at opts.Path and prints a report.
// With Watch it re-checks on every change until ctx is done.
func RunCheck(ctx context.Context, opts CheckOptions) error {
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

	if !opts.Watch {
		return checkOnce(ctx, r, printer, opts)
	}
	return handleExecutionError(runWatch(ctx, r, printer, opts))
}

func checkOnce(ctx context.Context, r *runner.Runner, printer *runner.Printer, opts CheckOptions) error {
	loader, err := LoadProblems(opts.Path, opts.Source)
	if err != nil {
		return err
	}

	report, err := r.Check(ctx, loader)
	if err != nil {
		return err
	}
	if err := printer.PrintReport(report); err != nil {
		return err
	}

	r.Logger.Info("Check finished", "path", opts.Path, "problems", len(report.Results), "failed", len(report.Failed()))
	if len(report.Failed()) > 0 {
		return fmt.Errorf("%w: %s", ErrCheckFailed, report.Summary())
	}
	return nil
}

func runWatch(ctx context.Context, r *runner.Runner, printer *runner.Printer, opts CheckOptions) error {
	events, err := WatchProblems(ctx, opts.Path)
	if err != nil {
		return err
	}

	r.Logger.Info("Starting Watcher", "path", opts.Path)
	printSystemMessage(opts.Out, "Watching '%s' for changes.", opts.Path)

	for {
		if err := checkOnce(ctx, r, printer, opts); err != nil && !errors.Is(err, ErrCheckFailed) {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// A broken file is reported and fixed on the next save.
			r.Logger.Error("Check failed", "err", err)
			fmt.Fprintf(opts.Out, "Error: %v\n", err)
		}
		printSystemMessage(opts.Out, "Waiting for changes...")

		select {
		case <-ctx.Done():
			r.Logger.Info("Stopping watcher")
			return ctx.Err()
		case id, ok := <-events:
			if !ok {
				return nil
			}
			printSystemMessage(opts.Out, "Change detected in '%s'.", id)
			drain(ctx, events)
		}
	}
}

// drain discards events until the watcher has been quiet for the debounce period.
func drain(ctx context.Context, events <-chan string) {
	timer := time.NewTimer(debounce)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			timer.Reset(debounce)
		}
	}
}

// newPrinter builds a printer for opts.Format. Markdown sent to a terminal is
// rendered with glamour.
func newPrinter(opts Options, w io.Writer) (*runner.Printer, error) {
	format, err := runner.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	p := &runner.Printer{Writer: w, Format: format}
	if f, ok := w.(*os.File); ok && format == runner.FormatMarkdown && tui.IsTerminal(f) {
		if render, err := tui.NewRenderer(); err == nil {
			p.Renderer = render
		}
	}
	return p, nil
}
