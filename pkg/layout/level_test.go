package layout

import (
	"testing"

	"github.com/skein-dev/skein/pkg/graph"
)

func nodesFor(ids ...string) []graph.Node {
	out := make([]graph.Node, len(ids))
	for i, id := range ids {
		out[i] = graph.Node{ID: id}
	}
	return out
}

func edge(src, dst string) graph.Edge {
	return graph.Edge{Source: src, Target: dst}
}

func TestAssignLevels_Chain(t *testing.T) {
	g := graph.Graph{
		Nodes: nodesFor("root", "a", "b"),
		Edges: []graph.Edge{edge("root", "a"), edge("a", "b")},
	}

	levels := AssignLevels(g)

	want := map[string]int{"root": 0, "a": 1, "b": 2}
	for id, lvl := range want {
		if levels[id] != lvl {
			t.Errorf("level[%s] = %d, want %d", id, levels[id], lvl)
		}
	}
}

func TestAssignLevels_MultiParentTakesMax(t *testing.T) {
	// d has parents at levels 1 and 2, so it lands at 3.
	g := graph.Graph{
		Nodes: nodesFor("r", "a", "b", "c", "d"),
		Edges: []graph.Edge{
			edge("r", "a"),
			edge("a", "b"),
			edge("r", "c"),
			edge("b", "d"),
			edge("c", "d"),
		},
	}

	levels := AssignLevels(g)

	if levels["b"] != 2 {
		t.Errorf("level[b] = %d, want 2", levels["b"])
	}
	if levels["c"] != 1 {
		t.Errorf("level[c] = %d, want 1", levels["c"])
	}
	if levels["d"] != 3 {
		t.Errorf("level[d] = %d, want 3 (one past the deepest parent)", levels["d"])
	}
}

func TestAssignLevels_MultipleRoots(t *testing.T) {
	g := graph.Graph{
		Nodes: nodesFor("r1", "r2", "shared"),
		Edges: []graph.Edge{edge("r1", "shared"), edge("r2", "shared")},
	}

	levels := AssignLevels(g)

	if levels["r1"] != 0 || levels["r2"] != 0 {
		t.Errorf("roots should stay at level 0, got r1=%d r2=%d", levels["r1"], levels["r2"])
	}
	if levels["shared"] != 1 {
		t.Errorf("level[shared] = %d, want 1", levels["shared"])
	}
}

func TestAssignLevels_DisconnectedNodeStaysZero(t *testing.T) {
	g := graph.Graph{
		Nodes: nodesFor("root", "child", "island"),
		Edges: []graph.Edge{edge("root", "child")},
	}

	levels := AssignLevels(g)

	if levels["island"] != 0 {
		t.Errorf("level[island] = %d, want 0", levels["island"])
	}
}

func TestAssignLevels_CycleTerminates(t *testing.T) {
	// a→b→c→a with an entry edge from root. The worklist must stop
	// instead of bumping levels forever around the cycle.
	g := graph.Graph{
		Nodes: nodesFor("root", "a", "b", "c"),
		Edges: []graph.Edge{
			edge("root", "a"),
			edge("a", "b"),
			edge("b", "c"),
			edge("c", "a"),
		},
	}

	levels := AssignLevels(g)

	if levels["root"] != 0 {
		t.Errorf("level[root] = %d, want 0", levels["root"])
	}
	for _, id := range []string{"a", "b", "c"} {
		if levels[id] < 1 {
			t.Errorf("level[%s] = %d, want >= 1", id, levels[id])
		}
		// Each node is bumped at most len(nodes) times, so levels stay
		// bounded even though the cycle keeps requesting increases.
		if levels[id] > len(g.Nodes)*len(g.Nodes) {
			t.Errorf("level[%s] = %d, runaway propagation", id, levels[id])
		}
	}
}

func TestAssignLevels_PureCycleUsesFirstNodeAsRoot(t *testing.T) {
	// No node is edge-free, so the first node in input order anchors
	// the traversal at level 0 initially.
	g := graph.Graph{
		Nodes: nodesFor("a", "b"),
		Edges: []graph.Edge{edge("a", "b"), edge("b", "a")},
	}

	levels := AssignLevels(g)

	if len(levels) != 2 {
		t.Fatalf("expected 2 level entries, got %d", len(levels))
	}
	for id, lvl := range levels {
		if lvl < 0 || lvl > len(g.Nodes)*len(g.Nodes) {
			t.Errorf("level[%s] = %d out of bounds", id, lvl)
		}
	}
}

func TestAssignLevels_Empty(t *testing.T) {
	levels := AssignLevels(graph.Graph{})
	if len(levels) != 0 {
		t.Errorf("expected empty level map, got %v", levels)
	}
}
