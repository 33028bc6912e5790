package main

import (
	"github.com/aretw0/unify/internal/cli"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Solve a set of problems and verify their expectations",
	Long: `Check solves every problem of a YAML or JSON problem file, a directory of them,
or a directory of markdown problem documents, and prints a report.
It exits with status 1 when a problem does not meet its expectation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}
		watch, _ := cmd.Flags().GetBool("watch")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.RunCheck(ctx, cli.CheckOptions{
			Options: opts,
			Path:    path,
			Watch:   watch,
			Out:     cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolP("watch", "w", false, "Re-check whenever a problem file changes")
}
