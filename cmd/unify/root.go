package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/unify/internal/cli"
	"github.com/spf13/cobra"
)

// opts holds the persistent flags shared by every command.
var opts cli.Options

var rootCmd = &cobra.Command{
	Use:   "unify [left right]",
	Short: "Unify is a first-order syntactic unification engine",
	Long: `Unify computes the most general unifier of two first-order terms.

Terms are written as constructors with arguments, d(c(X), Y, a), and variables as
integers, ?N, capitalized names or '_'. Without a subcommand unify solves the pair
given as arguments, or reads "left = right" lines from Stdin.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		opts.ApplyEnv()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// These were already reported on Stdout.
		if !errors.Is(err, cli.ErrCheckFailed) && !errors.Is(err, cli.ErrNotUnified) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&opts.Debug, "debug", false, "Trace every unification on Stderr")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Log level on Stderr: debug, info, warn or error")
	flags.StringVarP(&opts.Format, "format", "f", "text", "Output format: text, markdown or json")

	flags.BoolVar(&opts.NoOccursCheck, "no-occurs-check", false, "Skip the occurs check (cyclic bindings are reported when resolved)")
	flags.IntVar(&opts.MaxSteps, "max-steps", 0, "Abort a unification after this many steps (0 is unlimited)")

	flags.StringVar(&opts.Store, "store", "", "Persist solutions: memory, file, sqlite or redis (env "+cli.EnvStore+")")
	flags.StringVar(&opts.StorePath, "store-path", "", "Directory of the file store or database of the sqlite store")
	flags.StringVar(&opts.RedisAddr, "redis-addr", "", "Address of the redis store (env "+cli.EnvRedisAddr+")")
	flags.IntVar(&opts.CacheSize, "cache-size", 0, "Keep this many solutions in an in-memory LRU in front of the store")
	flags.StringVar(&opts.EncryptionKey, "encryption-key", "", "Hex encoded AES-256 key for stored solutions (env "+cli.EnvEncryptionKey+")")

	flags.StringVar(&opts.Source, "source", cli.SourceAuto, "Problem source: auto, file (YAML/JSON) or loam (markdown)")
}
