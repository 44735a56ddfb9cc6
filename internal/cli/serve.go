package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mbertsch/graphplace/internal/server"
)

// serveCommand creates the serve command for running the HTTP layout service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		noCache  bool
		redisURL string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP service",
		Long: `Run the layout HTTP service.

The service exposes the same pipeline as the layout command:

  POST /v1/layout   compute a layout for a JSON node-link graph
  GET  /healthz     liveness probe

The server shuts down gracefully on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache, redisURL, timeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for the layout cache (default: file cache)")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request layout timeout")

	return cmd
}

// runServe starts the HTTP server and blocks until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool, redisURL string, timeout time.Duration) error {
	runner, err := c.newRunner(ctx, noCache, redisURL)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(runner, c.Logger, timeout).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSuccess("graphplace API listening")
	printKeyValue("Address", addr)
	printKeyValue("Cache", cacheLabel(noCache, redisURL))
	printNewline()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// cacheLabel describes the active cache backend for startup output.
func cacheLabel(noCache bool, redisURL string) string {
	switch {
	case noCache:
		return "disabled"
	case redisURL != "":
		return "redis"
	default:
		dir, err := cacheDir()
		if err != nil {
			return "disabled"
		}
		return dir
	}
}
