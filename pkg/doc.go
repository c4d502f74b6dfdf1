// Package pkg provides the core libraries for Skein graph layout.
//
// # Overview
//
// Skein computes automatic layouts for knowledge graphs: given nodes and
// directed edges it assigns hierarchy levels, positions every node on a
// canvas, resolves overlaps, and picks the connection handles each edge
// should attach to. The pkg directory is organized into five main areas:
//
//  1. [graph] - Graph types and JSON serialization
//  2. [layout] - Level assignment, positioning strategies, overlap resolution
//  3. [pipeline] - Orchestration (validate → layout → cache)
//  4. [cache] - File, Redis, and null cache backends
//  5. [httpapi] - HTTP layout service
//
// # Architecture
//
// The typical data flow through Skein:
//
//	Graph JSON (nodes + edges)
//	         ↓
//	    [graph] package (parse + validate)
//	         ↓
//	    [layout] package (levels → coordinates → overlaps → handles)
//	         ↓
//	    [pipeline] package (cache by graph hash + options)
//	         ↓
//	    Positioned graph (file output or HTTP response)
//
// # Quick Start
//
// Load a graph and compute a layout:
//
//	import (
//	    "context"
//	    "github.com/skein-dev/skein/pkg/graph"
//	    "github.com/skein-dev/skein/pkg/layout"
//	)
//
//	// 1. Load the graph
//	g, _ := graph.ReadGraphFile("knowledge.json")
//
//	// 2. Compute the layout
//	result, _ := layout.Compute(context.Background(), g, layout.Options{
//	    Strategy:  layout.StrategyHierarchical,
//	    Direction: layout.DirectionTB,
//	})
//
//	// 3. Write the positioned graph
//	graph.WriteGraphFile(result.Graph, "knowledge.layout.json")
//
// # Main Packages
//
// ## Domain Logic
//
// [graph] - Node, Edge, and Graph types with JSON node-link serialization,
// validation, and traversal helpers (children, parents, roots).
//
// [layout] - The layout engine. Level assignment via breadth-first
// propagation, two positioning strategies (hierarchical and Graphviz-backed
// layered), iterative overlap resolution, and edge handle selection.
// [layout.Compute] runs the complete pipeline for one graph.
//
// ## Infrastructure
//
// [pipeline] - Orchestrates layout runs and caches positioned graphs keyed
// by content hash and layout options. Used by both the CLI and the HTTP
// service so behavior stays consistent across entry points.
//
// [cache] - Cache backends behind a single interface: FileCache for the CLI
// (filesystem), RedisCache for the service, NullCache for tests and
// cache-disabled runs.
//
// [httpapi] - chi-based HTTP service exposing the layout pipeline with
// request IDs, structured logging, and coded error responses.
//
// [config] - TOML configuration for the service (address, cache backend,
// layout defaults).
//
// [errors] - Coded errors that separate machine-readable codes from
// user-facing messages.
//
// [observability] - Pluggable instrumentation hooks for layout runs, cache
// traffic, and HTTP requests. All hooks default to no-ops.
//
// # Common Workflows
//
// Run a layout through the caching pipeline:
//
//	runner := pipeline.NewRunner(cch, nil, logger)
//	result, _ := runner.Execute(ctx, g, pipeline.Options{})
//
// Use the layered strategy with a fixed seed:
//
//	result, _ := layout.Compute(ctx, g, layout.Options{
//	    Strategy: layout.StrategyLayered,
//	    Seed:     42,
//	})
//
// Serve layouts over HTTP:
//
//	srv := httpapi.New(":8080", runner, logger)
//	srv.ListenAndServe(ctx)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/layout/...     # Specific package
//	go test -run Example         # Examples only
//
// [graph]: https://pkg.go.dev/github.com/skein-dev/skein/pkg/graph
// [layout]: https://pkg.go.dev/github.com/skein-dev/skein/pkg/layout
// [pipeline]: https://pkg.go.dev/github.com/skein-dev/skein/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/skein-dev/skein/pkg/cache
// [httpapi]: https://pkg.go.dev/github.com/skein-dev/skein/pkg/httpapi
// [config]: https://pkg.go.dev/github.com/skein-dev/skein/pkg/config
// [errors]: https://pkg.go.dev/github.com/skein-dev/skein/pkg/errors
// [observability]: https://pkg.go.dev/github.com/skein-dev/skein/pkg/observability
package pkg
