// Package pipeline provides the core layout pipeline for Skein.
//
// This package implements the load → layout → export flow shared by the
// CLI and the HTTP API. By centralizing this logic, both entry points get
// identical caching, validation, and logging behavior.
//
// # Architecture
//
// A pipeline run has two stages:
//
//  1. Load: read and validate the input graph (JSON file or in-memory)
//  2. Layout: compute positions and edge handles for the graph
//
// Layout results are cached under a content-derived key (graph hash plus
// layout options), so repeated requests for the same graph are served
// without re-running the O(n²) overlap relaxation.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Layout: layout.Options{Strategy: layout.StrategyHierarchical}}
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	positioned := result.Graph
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/skein-dev/skein/pkg/cache"
	"github.com/skein-dev/skein/pkg/graph"
	"github.com/skein-dev/skein/pkg/layout"
)

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout configures the layout engine.
	Layout layout.Options `json:"layout"`

	// Refresh bypasses the cache and recomputes the layout.
	Refresh bool `json:"refresh,omitempty"`

	// Logger for progress reporting (not serialized).
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph holds the positioned nodes and handle-annotated edges.
	Graph graph.Graph

	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the layout came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount        int
	EdgeCount        int
	LevelCount       int
	ResidualOverlaps int
	LayoutTime       time.Duration
}

// CacheInfo tracks cache hits for the pipeline stages.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
}

// LayoutKeyOpts extracts the cache key options from the layout options.
// Only fields that shape the output participate; the logger does not.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Strategy:      string(o.Layout.Strategy),
		Direction:     string(o.Layout.Direction),
		NodeWidth:     o.Layout.NodeWidth,
		NodeHeight:    o.Layout.NodeHeight,
		NodeSep:       o.Layout.NodeSep,
		RankSep:       o.Layout.RankSep,
		MarginX:       o.Layout.MarginX,
		MarginY:       o.Layout.MarginY,
		Width:         o.Layout.Width,
		Height:        o.Layout.Height,
		Seed:          o.Layout.Seed,
		MaxIterations: o.Layout.MaxIterations,
		Padding:       o.Layout.Padding,
	}
}
