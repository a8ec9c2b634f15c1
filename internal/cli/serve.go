package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/taskweave/decyclify/internal/server"
	"github.com/taskweave/decyclify/pkg/cache"
	"github.com/taskweave/decyclify/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	noCache bool   // disable the schedule cache
}

// newServeCmd creates the serve command, which runs the HTTP API until
// interrupted. The cache backend comes from the configuration; server
// cache keys are scoped so CLI and server entries never collide.
func newServeCmd() *cobra.Command {
	cfg := LoadConfigOrDefault()
	opts := serveOpts{addr: cfg.Server.Addr}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the decyclify HTTP API.

Endpoints:
  GET  /healthz       liveness probe
  POST /v1/decyclify  break cycles in a submitted graph
  POST /v1/schedule   compute a schedule for a submitted graph

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c.Context(), cfg, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", opts.addr, "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the schedule cache")

	return cmd
}

func runServe(ctx context.Context, cfg Config, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	backend := newCacheBackend(ctx, cfg, opts.noCache)
	defer backend.Close()

	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "server")
	runner := pipeline.NewRunner(backend, keyer, logger)

	srv := server.New(runner, logger)
	return srv.Run(ctx, opts.addr)
}
