package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/argtree"
	httpAdapter "github.com/aretw0/argtree/internal/adapters/http"
	redisStore "github.com/aretw0/argtree/internal/adapters/redis"
	"github.com/aretw0/argtree/pkg/adapters/memory"
	"github.com/aretw0/argtree/pkg/observability"
	"github.com/aretw0/argtree/pkg/persistence/middleware"
	"github.com/aretw0/argtree/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [schema]",
	Short: "Expose schema matching over HTTP",
	Long: `Starts a JSON API with /dispatch, /schema, /history and /healthz, plus Prometheus
metrics on /metrics. Callbacks are never run; dispatches are only matched and recorded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		s, _, err := loadSchema(cmd, args)
		if err != nil {
			return err
		}
		addr, _ := cmd.Flags().GetString("addr")
		redisAddr, _ := cmd.Flags().GetString("redis")
		ttl, _ := cmd.Flags().GetDuration("history-ttl")
		redact, _ := cmd.Flags().GetStringSlice("redact")

		reg := prometheus.NewRegistry()
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}

		var history ports.HistoryStore = memory.NewStore()
		if redisAddr != "" {
			rs := redisStore.New(redisAddr, os.Getenv("ARGTREE_REDIS_PASSWORD"), 0, redisStore.WithTTL(ttl))
			defer rs.Close()
			history = rs
		}
		if len(redact) > 0 {
			mw, err := middleware.NewRedactMiddleware(redact)
			if err != nil {
				return err
			}
			history = middleware.Chain(history, mw)
		}

		exec := argtree.New(s, argtree.WithLogger(logger), argtree.WithHooks(metrics.Hooks()))
		handler := httpAdapter.NewHandler(&httpAdapter.Server{
			Matcher: exec.Engine(),
			History: history,
			Hooks:   metrics.Hooks(),
			Logger:  logger,
		})
		handler.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting server", "addr", srv.Addr, "schema", s.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving schema %q on %s\n", s.Name, srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("failed to stop server: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for dispatch history (in-memory when empty)")
	serveCmd.Flags().Duration("history-ttl", 0, "Expiration of Redis history records (0 keeps them)")
	serveCmd.Flags().StringSlice("redact", []string{"(?i)password|secret|token"}, "Patterns of argument names masked in history")
}
