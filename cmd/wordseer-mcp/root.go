package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/usestring/wordseer-mcp/internal/config"
	"github.com/usestring/wordseer-mcp/pkg/client"
	"github.com/usestring/wordseer-mcp/pkg/mcpsrv"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wordseer-mcp",
		Short: "WordSeer document search over MCP",
		Long: `Runs an MCP server on stdio exposing WordSeer document search.

Configuration is read from the environment: WORDSEER_API_ROOT,
WORDSEER_INSTANCE, WORDSEER_USER, LOG_LEVEL, LOG_FILE, METRICS_ADDR and
the other settings documented in internal/config.`,
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.AddCommand(newSearchCmd())
	return root
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := cfg.ClientOptions()
	if err != nil {
		return err
	}

	var reg *prometheus.Registry
	if cfg.MetricsAddr != "" {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts = append(opts, client.WithPrometheus(reg))
	}

	c, err := client.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	server, err := mcpsrv.NewServer(c, mcpsrv.WithConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	if reg != nil {
		stop := serveMetrics(cfg.MetricsAddr, reg)
		defer stop()
	}

	slog.Info("starting wordseer MCP server on stdio", slog.String("api_root", c.BaseURL()))
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "error", err)
		return err
	}

	slog.Info("server stopped")
	return nil
}

// serveMetrics exposes reg on addr/metrics until the returned func is called.
func serveMetrics(addr string, reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("serving metrics", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server error", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
