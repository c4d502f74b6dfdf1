package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/skein-dev/skein/pkg/cache"
	"github.com/skein-dev/skein/pkg/graph"
	"github.com/skein-dev/skein/pkg/layout"
	"github.com/skein-dev/skein/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Close releases the runner's cache backend.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs the complete layout pipeline with caching.
func (r *Runner) Execute(ctx context.Context, g graph.Graph, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Layout.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}
	result.Stats.NodeCount = len(g.Nodes)
	result.Stats.EdgeCount = len(g.Edges)

	// Content hash for cache keys and API responses
	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, fmt.Errorf("hash graph: %w", err)
	}
	result.GraphHash = cache.Hash(graphData)

	layoutStart := time.Now()
	positioned, stats, hit, err := r.LayoutWithCacheInfo(ctx, g, result.GraphHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Graph = positioned
	result.Stats.LevelCount = stats.LevelCount
	result.Stats.ResidualOverlaps = stats.ResidualOverlaps
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"levels", result.Stats.LevelCount,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	return result, nil
}

// LayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g graph.Graph, graphHash string, opts Options) (graph.Graph, Stats, bool, error) {
	cacheKey := r.Keyer.LayoutKey(graphHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := graph.UnmarshalGraph(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, statsFor(cached, 0), true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	observability.Layout().OnLayoutStart(ctx, string(opts.Layout.Strategy), len(g.Nodes))
	start := time.Now()
	res, err := layout.Compute(ctx, g, opts.Layout)
	observability.Layout().OnLayoutComplete(ctx, string(opts.Layout.Strategy), time.Since(start), err)
	if err != nil {
		return graph.Graph{}, Stats{}, false, err
	}

	// Cache the result
	if data, err := graph.MarshalGraph(res.Graph); err == nil {
		if setErr := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); setErr == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return res.Graph, statsFor(res.Graph, res.ResidualOverlaps), false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, g graph.Graph, opts Options) (graph.Graph, error) {
	r.applyLogger(&opts)
	if err := opts.Layout.ValidateAndSetDefaults(); err != nil {
		return graph.Graph{}, fmt.Errorf("invalid options: %w", err)
	}

	data, err := graph.MarshalGraph(g)
	if err != nil {
		return graph.Graph{}, fmt.Errorf("hash graph: %w", err)
	}
	positioned, _, _, err := r.LayoutWithCacheInfo(ctx, g, cache.Hash(data), opts)
	return positioned, err
}

// applyLogger threads the runner's logger into options that lack one.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if opts.Layout.Logger == nil {
		opts.Layout.Logger = opts.Logger
	}
}

// statsFor derives the level and residual stats from a positioned graph.
func statsFor(g graph.Graph, residual int) Stats {
	maxLevel := 0
	for _, n := range g.Nodes {
		if n.Level > maxLevel {
			maxLevel = n.Level
		}
	}
	levels := 0
	if len(g.Nodes) > 0 {
		levels = maxLevel + 1
	}
	return Stats{
		NodeCount:        len(g.Nodes),
		EdgeCount:        len(g.Edges),
		LevelCount:       levels,
		ResidualOverlaps: residual,
	}
}
