package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/unify"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of unify",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "unify version %s\n", strings.TrimSpace(unify.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
