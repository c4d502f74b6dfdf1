package layout

import (
	"context"
	"math/rand/v2"

	"github.com/skein-dev/skein/pkg/errors"
	"github.com/skein-dev/skein/pkg/graph"
)

// Result is the outcome of a layout pass.
type Result struct {
	// Graph holds the positioned nodes and handle-annotated edges.
	Graph graph.Graph

	// Levels is the level assignment used for the pass, keyed by node ID.
	Levels map[string]int

	// ResidualOverlaps is the number of node pairs still intersecting
	// when the overlap resolver hit its budget. Zero on full convergence.
	ResidualOverlaps int
}

// Compute runs the full layout pipeline: level assignment, base
// coordinates, overlap resolution, and edge handle assignment.
//
// The input graph is never mutated; the result holds fresh collections.
// An empty node list is returned unchanged with the edges passed through.
// Residual overlap after the iteration budget is a soft condition: it is
// logged on opts.Logger and reported in the result, never an error.
//
// The context is consulted by the layered strategy (which shells into the
// Graphviz engine); the hierarchical strategy is pure computation.
func Compute(ctx context.Context, g graph.Graph, opts Options) (Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Result{}, err
	}
	if err := g.Validate(); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInvalidGraph, err, "invalid graph")
	}

	if len(g.Nodes) == 0 {
		out := g.Clone()
		if out.Nodes == nil {
			out.Nodes = []graph.Node{}
		}
		if out.Edges == nil {
			out.Edges = []graph.Edge{}
		}
		return Result{Graph: out, Levels: map[string]int{}}, nil
	}

	// Work on a clone so the caller's collections are never aliased.
	work := g.Clone()
	levels := AssignLevels(work)
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef))

	var nodes []graph.Node
	switch opts.Strategy {
	case StrategyLayered:
		var err error
		nodes, err = layeredPositions(ctx, work, levels, opts)
		if err != nil {
			return Result{}, err
		}
	default:
		nodes = hierarchicalPositions(work, levels, opts, rng)
	}

	nodes, residual := resolveOverlaps(nodes, opts, rng)
	if residual > 0 {
		opts.Logger.Warn("layout finished with residual overlaps",
			"pairs", residual,
			"nodes", len(nodes),
			"iterations", opts.MaxIterations)
	}

	edges := ResolveHandles(nodes, work.Edges)

	return Result{
		Graph:            graph.Graph{Nodes: nodes, Edges: edges},
		Levels:           levels,
		ResidualOverlaps: residual,
	}, nil
}
