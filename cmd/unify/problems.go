package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/unify/internal/cli"
	"github.com/aretw0/unify/pkg/domain"
	"github.com/spf13/cobra"
)

var problemsCmd = &cobra.Command{
	Use:   "problems [path]",
	Short: "List the problems found at path",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}

		loader, err := cli.LoadProblems(path, opts.Source)
		if err != nil {
			return err
		}

		ids, err := loader.ListProblems(cmd.Context())
		if err != nil {
			return err
		}
		problems := make([]*domain.Problem, 0, len(ids))
		for _, id := range ids {
			p, err := loader.GetProblem(cmd.Context(), id)
			if err != nil {
				return err
			}
			problems = append(problems, p)
		}

		out := cmd.OutOrStdout()
		if strings.EqualFold(opts.Format, "json") {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(problems)
		}
		for _, p := range problems {
			fmt.Fprintf(out, "%s: %s = %s", p.ID, p.Left, p.Right)
			if p.Expect != domain.ExpectNone {
				fmt.Fprintf(out, " [%s]", p.Expect)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(problemsCmd)
}
