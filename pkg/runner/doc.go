/*
Package runner solves problems and problem sets and reports the outcome.

It is the bridge between the unification engine and the outside world: it parses term
text, checks it against a problem's language, unifies both sides, renders the bindings
with the source variable names and persists the resulting Solution.

# Key Components

  - Runner: solves a single problem (Solve), a whole set (Check) or an interactive
    session of "left = right" lines (Run).
  - Report: the outcome of Check, rendered as text, markdown or JSON.
  - IOHandler: decouples how Run receives problems (TextHandler, JSONHandler).

# Usage

	r := runner.NewRunner(
		runner.WithEngine(unify.New()),
		runner.WithStore(store),
	)

	report, err := r.Check(ctx, loader)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(runner.RenderText(report))
*/
package runner
