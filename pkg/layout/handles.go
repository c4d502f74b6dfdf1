package layout

import (
	"math"
	"slices"

	"github.com/skein-dev/skein/pkg/graph"
)

// ResolveHandles assigns each edge the node sides it should attach to,
// based on the relative geometry of its resolved endpoints.
//
// Horizontally dominant pairs connect Right→Left (or Left→Right when the
// target sits to the left); vertically dominant pairs connect Bottom→Top
// (or Top→Bottom when the target sits above). When the source's level is
// strictly smaller than the target's - a parent→child edge - the handles
// are forced to Bottom→Top regardless of geometry, so hierarchical edges
// always read top-down.
//
// Edges whose source or target node cannot be found are returned unchanged.
// The input slice is not modified.
func ResolveHandles(nodes []graph.Node, edges []graph.Edge) []graph.Edge {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}

	out := slices.Clone(edges)
	for i := range out {
		e := &out[i]
		si, okS := index[e.Source]
		ti, okT := index[e.Target]
		if !okS || !okT {
			continue
		}
		src, dst := &nodes[si], &nodes[ti]

		if src.Level < dst.Level {
			e.SourceHandle = graph.HandleBottom
			e.TargetHandle = graph.HandleTop
			continue
		}

		dx := dst.CenterX() - src.CenterX()
		dy := dst.CenterY() - src.CenterY()

		if math.Abs(dx) >= math.Abs(dy) {
			if dx >= 0 {
				e.SourceHandle = graph.HandleRight
				e.TargetHandle = graph.HandleLeft
			} else {
				e.SourceHandle = graph.HandleLeft
				e.TargetHandle = graph.HandleRight
			}
			continue
		}

		if dy >= 0 {
			e.SourceHandle = graph.HandleBottom
			e.TargetHandle = graph.HandleTop
		} else {
			e.SourceHandle = graph.HandleTop
			e.TargetHandle = graph.HandleBottom
		}
	}
	return out
}
