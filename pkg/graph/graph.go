package graph

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.Validate] when a node has an
	// empty ID. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.Validate] when two nodes share
	// an ID. Node IDs must be unique within a single layout call.
	ErrDuplicateNodeID = errors.New("duplicate node ID")
)

// Handle identifies the side of a node's bounding box where an edge attaches.
type Handle string

// Handle values for the four sides of a node box.
const (
	HandleTop    Handle = "top"
	HandleBottom Handle = "bottom"
	HandleLeft   Handle = "left"
	HandleRight  Handle = "right"
)

// Node is a positioned, sized entity in the knowledge graph.
//
// X and Y denote the top-left corner of the node's bounding box in screen
// coordinates (y grows downward). Level is the hierarchical depth assigned
// by the layout engine: longest-path distance from a root node. Meta carries
// arbitrary payload fields the layout engine never touches.
type Node struct {
	ID     string         `json:"id"`
	Label  string         `json:"label,omitempty"`
	Level  int            `json:"level,omitempty"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Width  float64        `json:"width,omitempty"`
	Height float64        `json:"height,omitempty"`
	Meta   map[string]any `json:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// CenterX returns the horizontal center of the node's bounding box.
func (n Node) CenterX() float64 { return n.X + n.Width/2 }

// CenterY returns the vertical center of the node's bounding box.
func (n Node) CenterY() float64 { return n.Y + n.Height/2 }

// Edge is a directed connection between two nodes.
//
// SourceHandle and TargetHandle are assigned by the layout engine based on
// the relative geometry of the endpoints. Strength is an optional positive
// weight influencing visual emphasis, never position. Edges whose Source or
// Target does not reference an existing node are tolerated and passed
// through layout unmodified.
type Edge struct {
	ID           string         `json:"id,omitempty"`
	Source       string         `json:"source"`
	Target       string         `json:"target"`
	SourceHandle Handle         `json:"source_handle,omitempty"`
	TargetHandle Handle         `json:"target_handle,omitempty"`
	Label        string         `json:"label,omitempty"`
	Strength     float64        `json:"strength,omitempty"`
	Meta         map[string]any `json:"meta,omitempty"`
}

// Graph is the node-link container handed to and returned by the layout
// engine. The zero value is a valid empty graph.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Validate checks structural integrity: every node has a non-empty, unique
// ID. Edges referencing unknown nodes are permitted (they pass through
// layout untouched), so Validate does not reject them.
func (g Graph) Validate() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return ErrInvalidNodeID
		}
		if _, dup := seen[n.ID]; dup {
			return ErrDuplicateNodeID
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy of the graph. Node and edge Meta maps are
// cloned one level deep, which is sufficient to keep the layout engine from
// aliasing caller-owned collections.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: slices.Clone(g.Nodes),
		Edges: slices.Clone(g.Edges),
	}
	for i := range out.Nodes {
		out.Nodes[i].Meta = maps.Clone(out.Nodes[i].Meta)
	}
	for i := range out.Edges {
		out.Edges[i].Meta = maps.Clone(out.Edges[i].Meta)
	}
	return out
}

// NodeIndex maps each node ID to its position in the Nodes slice.
func (g Graph) NodeIndex() map[string]int {
	m := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		m[n.ID] = i
	}
	return m
}

// Children builds a parent → child-IDs adjacency map from the edges.
// Edges referencing unknown nodes are skipped.
func (g Graph) Children() map[string][]string {
	idx := g.NodeIndex()
	out := make(map[string][]string)
	for _, e := range g.Edges {
		if _, okS := idx[e.Source]; !okS {
			continue
		}
		if _, okT := idx[e.Target]; !okT {
			continue
		}
		out[e.Source] = append(out[e.Source], e.Target)
	}
	return out
}

// Parents builds a child → parent-IDs adjacency map from the edges.
// Edges referencing unknown nodes are skipped.
func (g Graph) Parents() map[string][]string {
	idx := g.NodeIndex()
	out := make(map[string][]string)
	for _, e := range g.Edges {
		if _, okS := idx[e.Source]; !okS {
			continue
		}
		if _, okT := idx[e.Target]; !okT {
			continue
		}
		out[e.Target] = append(out[e.Target], e.Source)
	}
	return out
}

// Roots returns the IDs of nodes with no incoming edge, in input order.
// If the graph has nodes but every one of them has an incoming edge, the
// first node in input order is treated as the sole root.
func (g Graph) Roots() []string {
	if len(g.Nodes) == 0 {
		return nil
	}
	parents := g.Parents()
	var roots []string
	for _, n := range g.Nodes {
		if len(parents[n.ID]) == 0 {
			roots = append(roots, n.ID)
		}
	}
	if len(roots) == 0 {
		roots = []string{g.Nodes[0].ID}
	}
	return roots
}
