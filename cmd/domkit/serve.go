package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/domkit/internal/server"
)

func serveCmd(a *app) *cobra.Command {
	var (
		port    int
		host    string
		metrics bool
		tracing bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the preview server",
		Long: `Start the preview server.

Routes:
  POST /render   render {"template", "data", "selector", "pretty"}
  GET  /ws       websocket render requests
  GET  /healthz  liveness probe
  GET  /metrics  Prometheus metrics (with --metrics)

Examples:
  domkit serve
  domkit serve --port=8080 --metrics
  domkit serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Apply command-line overrides
			if port > 0 {
				a.cfg.Server.Port = port
			}
			if host != "" {
				a.cfg.Server.Host = host
			}
			if cmd.Flags().Changed("metrics") {
				a.cfg.Server.Metrics = metrics
			}
			if cmd.Flags().Changed("tracing") {
				a.cfg.Server.Tracing = tracing
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			success(out, "Preview server on %s", a.cfg.URL())
			if a.cfg.Server.Metrics {
				info(out, "Metrics on %s/metrics", a.cfg.URL())
			}
			return server.New(a.cfg, server.WithLogger(a.logger)).ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from domkit.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from domkit.json)")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose Prometheus metrics on /metrics")
	cmd.Flags().BoolVar(&tracing, "tracing", false, "Trace requests with OpenTelemetry")

	return cmd
}
