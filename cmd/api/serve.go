package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"resume-analyzer/internal/bootstrap"
	"resume-analyzer/internal/shared/server"
	"resume-analyzer/internal/shared/telemetry"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg.Port, func(ctx context.Context) (http.Handler, error) {
				app, err := bootstrap.Build(ctx, cfg)
				if err != nil {
					return nil, err
				}
				telemetry.Info("server.configured", map[string]any{
					"env":      cfg.Env,
					"mode":     string(app.Mode),
					"provider": app.Provider.Name(),
				})
				return app.Router, nil
			})
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides PORT)")
	return cmd
}

// serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func serve(ctx context.Context, port string, build func(context.Context) (http.Handler, error)) error {
	handler, err := build(ctx)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              server.Addr(port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		telemetry.Info("server.start", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		telemetry.Info("server.shutdown", map[string]any{"addr": srv.Addr})
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
