package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/unify/internal/cli"
	"github.com/aretw0/unify/internal/logging"
	httpAdapter "github.com/aretw0/unify/pkg/adapters/http"
	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/observability"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the unification engine as a JSON API over HTTP.
The OpenAPI document is served at /openapi.yaml and Prometheus metrics at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		problems, _ := cmd.Flags().GetString("problems")
		withMetrics, _ := cmd.Flags().GetBool("metrics")
		audit, _ := cmd.Flags().GetBool("audit")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		var hooks []domain.LifecycleHooks
		var metrics *observability.Metrics
		if withMetrics {
			metrics = observability.NewMetrics()
			hooks = append(hooks, metrics.Hooks())
		}
		if audit {
			hooks = append(hooks, observability.AuditHooks(logging.New(slog.LevelInfo)))
		}

		r, closeStore, err := cli.CreateRunner(sigCtx, opts, hooks...)
		if err != nil {
			return err
		}
		defer closeStore()

		handlerOpts := []httpAdapter.Option{httpAdapter.WithLogger(r.Logger)}
		if metrics != nil {
			handlerOpts = append(handlerOpts, httpAdapter.WithMetrics(metrics.Handler()))
		}
		if problems != "" {
			loader, err := cli.LoadProblems(problems, opts.Source)
			if err != nil {
				return err
			}
			handlerOpts = append(handlerOpts, httpAdapter.WithLoader(loader))
		}

		handler, err := httpAdapter.NewHandler(r, handlerOpts...)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			fmt.Fprintf(cmd.OutOrStdout(), "Starting Unify Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-sigCtx.Done():
			fmt.Fprintf(cmd.OutOrStdout(), "\nStart shutdown... Signal: %v\n", sigCtx.Signal())

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				if cerr := srv.Close(); cerr != nil && !errors.Is(cerr, http.ErrServerClosed) {
					r.Logger.Error("Error killing server", "err", cerr)
				}
				return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Unify Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("problems", "", "Problem file or directory served under /problems")
	serveCmd.Flags().Bool("metrics", true, "Expose Prometheus metrics at /metrics")
	serveCmd.Flags().Bool("audit", false, "Log every unification at info level")
}
