package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aretw0/unify/internal/cli"
	"github.com/aretw0/unify/internal/logging"
	"github.com/aretw0/unify/pkg/adapters/mcp"
	"github.com/aretw0/unify/pkg/ports"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [problems]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the unification engine as an MCP Server.
AI agents call the unify, solve_problem and list_problems tools and read the
unify://problems resource.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		// Stdout carries JSON-RPC: everything else goes to Stderr.
		log.SetOutput(os.Stderr)
		logger := logging.New(slog.LevelInfo)
		if opts.Debug {
			logger = logging.New(slog.LevelDebug)
		}
		slog.SetDefault(logger)

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		r, closeStore, err := cli.CreateRunner(sigCtx, opts)
		if err != nil {
			return err
		}
		defer closeStore()

		var loader ports.ProblemLoader
		if len(args) > 0 {
			if loader, err = cli.LoadProblems(args[0], opts.Source); err != nil {
				return err
			}
		}

		srv := mcp.NewServer(r, loader, logger)

		switch transport {
		case "stdio":
			logger.Info("Starting Unify MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				return fmt.Errorf("MCP Server execution failed: %w", err)
			}
		case "sse":
			logger.Info("Starting Unify MCP Server (SSE)", "port", port)
			if err := srv.ServeSSE(sigCtx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("MCP Server execution failed: %w", err)
			}
			logger.Info("MCP Server stopped gracefully")
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
