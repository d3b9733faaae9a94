package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/regexrail/internal/server"
	"github.com/matzehuels/regexrail/pkg/cache"
	"github.com/matzehuels/regexrail/pkg/config"
	"github.com/matzehuels/regexrail/pkg/observability"
)

// apiScope keeps HTTP cache entries apart from CLI entries in a shared backend.
const apiScope = "api:"

// serveCommand creates the serve command, which runs the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisURL  string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render pipeline over HTTP",
		Long: `Serve the render pipeline over HTTP.

Routes:
  GET  /health
  GET  /render?pattern=...&format=svg
  POST /render   {"pattern": "...", "format": "png", "theme": {...}}
  POST /parse    {"pattern": "..."}
  GET  /metrics

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, redisURL, !noMetrics)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "cache in Redis at this URL (overrides the config backend)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not expose /metrics")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisURL string, metrics bool) error {
	if redisURL != "" {
		c.Config.Cache.Backend = config.BackendRedis
		c.Config.Cache.RedisURL = redisURL
	}
	ch, err := c.newCache(ctx, false)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}

	runner := c.runnerFor(ch, cache.NewScopedKeyer(cache.NewDefaultKeyer(), apiScope))
	defer runner.Close()

	opts := []server.Option{
		server.WithTheme(c.Config.Theme),
		server.WithScale(c.Config.Render.Scale),
		server.WithTimeouts(c.Config.Server.ReadTimeout.Duration, c.Config.Server.WriteTimeout.Duration),
	}
	if metrics {
		reg, err := newMetricsRegistry()
		if err != nil {
			return err
		}
		opts = append(opts, server.WithMetrics(reg))
	}

	prog := newProgress(loggerFromContext(ctx))
	printInfo("Listening on %s (cache: %s)", StyleHighlight.Render(addr), c.Config.Cache.Backend)
	if err := server.New(runner, c.Logger, opts...).Run(ctx, addr); err != nil {
		return err
	}
	prog.done("Server stopped", "addr", addr)
	return nil
}

// newMetricsRegistry creates a registry with the Go runtime collectors and
// installs the Prometheus hooks on it.
func newMetricsRegistry() (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	p, err := observability.NewPrometheus(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	p.Install()
	return reg, nil
}
