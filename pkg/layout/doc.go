// Package layout computes 2D positions and edge connection sides for
// knowledge graphs.
//
// Given an arbitrary set of nodes and directed edges, the engine arranges
// nodes by hierarchical depth, displaces overlapping bounding boxes until
// they separate, and assigns each edge the node sides it should visually
// attach to. The entry point is [Compute].
//
// # Pipeline
//
// A layout pass runs four stages in sequence:
//
//  1. Level assignment: longest-path depth from the root nodes ([AssignLevels])
//  2. Base coordinates: one of two strategies (see below)
//  3. Overlap resolution: iterative pairwise relaxation until boxes separate
//  4. Edge handles: connection sides from endpoint geometry ([ResolveHandles])
//
// # Strategies
//
// Two base-coordinate strategies are supported and intentionally kept
// distinct; callers should not expect identical results across them:
//
//   - [StrategyHierarchical]: custom per-level horizontal distribution
//     anchored to parent positions, computed entirely in-process
//   - [StrategyLayered]: rank and in-rank order delegated to Graphviz's
//     dot engine via goccy/go-graphviz
//
// # Determinism and purity
//
// All randomness (symmetry-breaking jitter, deadlock separation) flows from
// a single seedable generator in [Options], so identical input and seed
// produce identical output. The engine never mutates its input: callers get
// fresh node and edge collections each call and no state is held between
// calls.
//
// # Cost
//
// Overlap resolution is an O(n²) pairwise scan per iteration. This is fine
// for the expected graph sizes (tens to low hundreds of nodes); beyond that
// the caller should budget the call off its latency-sensitive path. The
// relaxation is physically inspired and not provably convergent, so an
// iteration cap bounds the cost and a small residual overlap count is
// accepted rather than treated as a failure.
package layout
