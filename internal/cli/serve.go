package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/zsketch/zsketch/pkg/cache"
	"github.com/zsketch/zsketch/pkg/pipeline"
	"github.com/zsketch/zsketch/pkg/server"
	"github.com/zsketch/zsketch/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	redisURL string // redis cache URL (empty = file cache)
	mongoURI string // mongodb URI for saved circuits (empty = in-memory)
	noCache  bool   // disable the artifact cache
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the zsketch HTTP API server",
		Long: `Run the zsketch HTTP API server.

By default artifacts are cached on disk and saved circuits are kept in
memory. Point --redis and --mongo at shared backends for multi-instance
deployments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "redis URL for the artifact cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "mongodb URI for saved circuits (e.g. mongodb://localhost:27017)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()

	artifactCache, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}

	circuitStore, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer circuitStore.Close(ctx)

	runner := pipeline.NewRunner(artifactCache, c.Logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:   opts.addr,
		Runner: runner,
		Store:  circuitStore,
		Logger: c.Logger,
	})

	return srv.Start(ctx)
}

func (c *CLI) serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisURL != "" {
		c.Logger.Info("using redis cache", "url", opts.redisURL)
		return cache.NewRedisCache(ctx, opts.redisURL)
	}
	return newCache(false)
}

func (c *CLI) serveStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	if opts.mongoURI == "" {
		c.Logger.Warn("no --mongo given, saved circuits are kept in memory")
		return store.NewMemoryStore(), nil
	}
	c.Logger.Info("using mongodb store", "uri", opts.mongoURI)
	return store.NewMongoStore(ctx, opts.mongoURI)
}
