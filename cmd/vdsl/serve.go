package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vango-dev/vdsl/internal/document"
	"github.com/vango-dev/vdsl/pkg/preview"
	"github.com/vango-dev/vdsl/pkg/telemetry"
)

func serveCmd(opts *options) *cobra.Command {
	var (
		port   int
		host   string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the preview server",
		Long: `Start an HTTP server that renders documents on request.

Every document is served at /components/<name>; the index at / links
them all. Render metrics are exposed at /metrics.

Examples:
  vdsl serve
  vdsl serve --port=8080
  vdsl serve --host=0.0.0.0 --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Preview.Port = port
			}
			if host != "" {
				cfg.Preview.Host = host
			}
			if cmd.Flags().Changed("strict") {
				cfg.Strict = strict
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := opts.logger(cmd.ErrOrStderr())
			server := preview.New(document.NewStore(cfg.DocumentsPath()), preview.Config{
				Addr:      cfg.Addr(),
				Title:     cfg.Preview.Title,
				Strict:    cfg.Strict,
				Render:    rendererConfig(cfg),
				Namespace: cfg.Telemetry.Namespace,
				Observer:  telemetry.OpenTelemetry(telemetry.WithTracerName(cfg.Telemetry.Tracer)),
				Logger:    logger,
			})

			success(cmd.ErrOrStderr(), "Serving %s at %s", cfg.DocumentsPath(), cfg.URL())
			return server.Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Answer 503 while elements wait on resources (default from config)")

	return cmd
}
