package main

import (
	"github.com/aretw0/unify/internal/cli"
	"github.com/aretw0/unify/pkg/runner"
	"github.com/spf13/cobra"
)

var (
	solveJSON     bool
	solveLanguage []string
)

var solveCmd = &cobra.Command{
	Use:   "solve [left right | \"left = right\"]",
	Short: "Unify two terms, or every line read from Stdin",
	Example: `  unify solve "d(c(1), 2, 1)" "d(3, 1, a)"
  unify solve "f(X, b) = f(a, Y)"
  echo '{"left": "f(X)", "right": "f(a)"}' | unify solve --json`,
	Args: cobra.MaximumNArgs(2),
	RunE: runSolve,
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx := cli.NewSignalContext(cmd.Context())
	defer ctx.Cancel()

	if len(args) == 0 {
		return cli.RunSession(ctx, cli.SessionOptions{
			Options: opts,
			JSON:    solveJSON,
			In:      cmd.InOrStdin(),
			Out:     cmd.OutOrStdout(),
		})
	}

	solve := cli.SolveOptions{
		Options:  opts,
		Language: solveLanguage,
		Out:      cmd.OutOrStdout(),
	}
	if len(args) == 1 {
		p, err := runner.ParseLine(args[0])
		if err != nil {
			return err
		}
		solve.Left, solve.Right = p.Left, p.Right
	} else {
		solve.Left, solve.Right = args[0], args[1]
	}
	return cli.RunSolve(ctx, solve)
}

func init() {
	rootCmd.AddCommand(solveCmd)

	// Solve is the default command.
	rootCmd.Args = solveCmd.Args
	rootCmd.RunE = runSolve

	for _, c := range []*cobra.Command{rootCmd, solveCmd} {
		c.Flags().BoolVar(&solveJSON, "json", false, "Read and write JSON lines on Stdin/Stdout")
		c.Flags().StringSliceVarP(&solveLanguage, "language", "l", nil, "Allowed symbols as name/arity, e.g. -l f/2,a/0")
	}
}
