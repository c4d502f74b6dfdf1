package layout

import (
	"github.com/skein-dev/skein/pkg/graph"
)

// AssignLevels computes each node's hierarchical depth: the longest-path
// distance from any root node (a node with no incoming edge, or the first
// node in input order when none exists).
//
// A child's level is one plus the maximum level among its parents, so a
// node with parents at levels 1 and 2 lands at level 3. Nodes never
// reached from a root stay at level 0.
//
// The propagation is an iterative worklist relaxation with a per-node bump
// cap, so cyclic input terminates gracefully: a node on a cycle keeps the
// last level it stabilized at instead of recursing forever.
func AssignLevels(g graph.Graph) map[string]int {
	levels := make(map[string]int, len(g.Nodes))
	for _, n := range g.Nodes {
		levels[n.ID] = 0
	}
	if len(g.Nodes) == 0 {
		return levels
	}

	children := g.Children()
	roots := g.Roots()

	// In a DAG a node's level can increase at most once per distinct path
	// length, bounded by the node count. The cap only bites on cycles.
	maxBumps := len(g.Nodes)
	bumps := make(map[string]int, len(g.Nodes))

	queue := make([]string, 0, len(g.Nodes))
	queue = append(queue, roots...)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		next := levels[id] + 1
		for _, child := range children[id] {
			if levels[child] >= next {
				continue
			}
			if bumps[child] >= maxBumps {
				continue
			}
			levels[child] = next
			bumps[child]++
			queue = append(queue, child)
		}
	}

	return levels
}
