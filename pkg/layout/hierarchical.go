package layout

import (
	"math/rand/v2"

	"github.com/skein-dev/skein/pkg/graph"
)

// Vertical spacing bounds for the hierarchical strategy. The spacing is
// derived from the viewport height but kept inside this band so shallow
// graphs don't stretch and deep graphs don't collapse.
const (
	minLevelSpacing = 180.0
	maxLevelSpacing = 300.0

	// parentPull is the blend weight toward the mean x of a node's
	// parents; the remainder stays with the even per-level distribution.
	parentPull = 0.6

	// jitterRange is the span of the symmetry-breaking random offset, in
	// pixels, centered on zero.
	jitterRange = 16.0
)

// hierarchicalPositions implements the hierarchical base-coordinate
// strategy: y from the level, x from an even per-level spread nudged toward
// the mean x of the node's parents so subtrees cluster visually. Levels are
// processed top-down, so a child's parents are already final when the child
// is placed.
//
// Positions are computed in TB orientation and remapped for the other
// directions afterwards. The input slice is not modified.
func hierarchicalPositions(g graph.Graph, levels map[string]int, opts Options, rng *rand.Rand) []graph.Node {
	nodes := make([]graph.Node, len(g.Nodes))
	copy(nodes, g.Nodes)

	maxLevel := 0
	for i := range nodes {
		lvl := levels[nodes[i].ID]
		nodes[i].Level = lvl
		if nodes[i].Width <= 0 {
			nodes[i].Width = opts.NodeWidth
		}
		if nodes[i].Height <= 0 {
			nodes[i].Height = opts.NodeHeight
		}
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}

	spacing := opts.Height / float64(maxLevel+1)
	spacing = min(max(spacing, minLevelSpacing), maxLevelSpacing)

	// Group node indices by level, preserving input order within a level.
	byLevel := make([][]int, maxLevel+1)
	for i := range nodes {
		lvl := nodes[i].Level
		byLevel[lvl] = append(byLevel[lvl], i)
	}

	parents := g.Parents()
	placed := make(map[string]int, len(nodes)) // id -> index, once positioned

	for lvl, row := range byLevel {
		if len(row) == 0 {
			continue
		}

		rowWidth := max(opts.Width, float64(len(row))*(opts.NodeWidth+opts.NodeSep))
		slot := rowWidth / float64(len(row))

		for i, idx := range row {
			n := &nodes[idx]
			center := opts.MarginX + (float64(i)+0.5)*slot

			// Pull toward the mean center of already-placed parents so the
			// subtree sits under them.
			if mean, ok := parentMeanX(nodes, placed, parents[n.ID]); ok {
				center = (1-parentPull)*center + parentPull*mean
			}
			center += (rng.Float64() - 0.5) * jitterRange

			n.X = center - n.Width/2
			n.Y = opts.MarginY + float64(lvl)*spacing
			placed[n.ID] = idx
		}
	}

	remapDirection(nodes, opts.Direction)
	return nodes
}

// parentMeanX returns the mean horizontal center of the placed parents.
// The second return is false when no parent has been positioned yet.
func parentMeanX(nodes []graph.Node, placed map[string]int, parentIDs []string) (float64, bool) {
	var sum float64
	var count int
	for _, pid := range parentIDs {
		idx, ok := placed[pid]
		if !ok {
			continue
		}
		sum += nodes[idx].CenterX()
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// remapDirection converts TB-oriented positions into the requested flow
// direction by swapping or mirroring axes. TB input is returned as-is.
func remapDirection(nodes []graph.Node, dir Direction) {
	if dir == DirectionTB || dir == "" {
		return
	}

	var maxX, maxY float64
	for i := range nodes {
		maxX = max(maxX, nodes[i].X+nodes[i].Width)
		maxY = max(maxY, nodes[i].Y+nodes[i].Height)
	}

	for i := range nodes {
		n := &nodes[i]
		switch dir {
		case DirectionBT:
			n.Y = maxY - n.Y - n.Height
		case DirectionLR:
			n.X, n.Y = n.Y, n.X
		case DirectionRL:
			n.X, n.Y = maxY-n.Y-n.Height, n.X
		}
	}
}
