package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skein-dev/skein/pkg/cache"
	"github.com/skein-dev/skein/pkg/config"
	"github.com/skein-dev/skein/pkg/httpapi"
	"github.com/skein-dev/skein/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP layout API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Run the HTTP layout API.

The server exposes POST /api/v1/layout: the dashboard posts a graph with
layout options and receives the positioned graph back. Configuration is
read from --config, then $XDG_CONFIG_HOME/skein/config.toml; every setting
has a working default, so the server runs with no config file at all.

The cache backend is selected in the config file: "file" (default),
"redis", or "none".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), configPath, addr)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, configPath, addr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	logger := loggerFromContext(ctx)

	cch, err := newServerCache(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	runner := pipeline.NewRunner(cch, nil, logger)
	defer runner.Close()

	printKeyValue("Address", cfg.Server.Addr)
	printKeyValue("Cache", cfg.Cache.Backend)
	printNewline()

	server := httpapi.New(cfg.Server.Addr, runner, logger)
	server.SetLayoutDefaults(cfg.Layout.LayoutOptions())
	return server.ListenAndServe(ctx)
}

// newServerCache builds the cache backend named in the config.
func newServerCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case config.BackendFile, "":
		dir := cfg.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
