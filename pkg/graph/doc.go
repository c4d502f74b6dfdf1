// Package graph provides the serialization types for knowledge graphs.
//
// This package defines the canonical wire format for Skein's graph data,
// used for JSON files, API requests and responses, and cache payloads.
//
// # Core Types
//
//   - [Graph]: node-link container passed into and out of the layout engine
//   - [Node]: positioned, sized entity tagged with a hierarchical level
//   - [Edge]: directed connection annotated with the sides it attaches to
//   - [Handle]: the side of a node box an edge connects to
//
// # Serialization
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [{"id": "root"}, {"id": "concept-a"}],
//	  "edges": [{"source": "root", "target": "concept-a"}]
//	}
//
// After layout, nodes additionally carry x/y/level and edges carry
// source_handle/target_handle. Round-trip fidelity is preserved: import →
// layout → export → re-import produces an equivalent graph.
//
// The layout engine itself lives in pkg/layout; this package holds no
// positioning logic beyond basic geometry accessors.
package graph
