package layout

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/skein-dev/skein/pkg/errors"
	"github.com/skein-dev/skein/pkg/graph"
)

// treeGraph builds a binary-ish tree with n nodes: node i's parent is
// node (i-1)/2. Deterministic and acyclic.
func treeGraph(n int) graph.Graph {
	g := graph.Graph{}
	for i := 0; i < n; i++ {
		g.Nodes = append(g.Nodes, graph.Node{ID: fmt.Sprintf("n%d", i)})
		if i > 0 {
			g.Edges = append(g.Edges, graph.Edge{
				Source: fmt.Sprintf("n%d", (i-1)/2),
				Target: fmt.Sprintf("n%d", i),
			})
		}
	}
	return g
}

func TestCompute_EmptyGraph(t *testing.T) {
	res, err := Compute(context.Background(), graph.Graph{}, Options{})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if res.Graph.Nodes == nil || res.Graph.Edges == nil {
		t.Error("empty result should carry non-nil slices")
	}
	if len(res.Graph.Nodes) != 0 || len(res.Graph.Edges) != 0 {
		t.Error("empty input should produce empty output")
	}
	if res.Levels == nil || len(res.Levels) != 0 {
		t.Errorf("Levels = %v, want empty map", res.Levels)
	}
}

// randomDAG builds a pseudo-random acyclic graph: every node past the
// first gets one or two parents among the earlier nodes. Deterministic
// for a given seed.
func randomDAG(n int, seed uint64) graph.Graph {
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	g := graph.Graph{}
	for i := 0; i < n; i++ {
		g.Nodes = append(g.Nodes, graph.Node{ID: fmt.Sprintf("n%d", i)})
		if i == 0 {
			continue
		}
		parents := 1 + rng.IntN(2)
		for p := 0; p < parents && p < i; p++ {
			g.Edges = append(g.Edges, graph.Edge{
				Source: fmt.Sprintf("n%d", rng.IntN(i)),
				Target: fmt.Sprintf("n%d", i),
			})
		}
	}
	return g
}

func TestCompute_RandomDAGConverges(t *testing.T) {
	g := randomDAG(50, 7)

	res, err := Compute(context.Background(), g, Options{})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	// The reported residual must describe the returned positions, not an
	// intermediate state of the resolver.
	recount := Options{}
	if err := recount.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if got := countOverlaps(res.Graph.Nodes, recount); got != res.ResidualOverlaps {
		t.Errorf("ResidualOverlaps = %d, but output has %d overlapping pairs",
			res.ResidualOverlaps, got)
	}

	if bound := residualBound(len(g.Nodes)); res.ResidualOverlaps > bound {
		t.Errorf("ResidualOverlaps = %d, want at most %d for 50 nodes",
			res.ResidualOverlaps, bound)
	}
}

func TestCompute_FullPipeline(t *testing.T) {
	g := treeGraph(15)

	res, err := Compute(context.Background(), g, Options{})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if len(res.Graph.Nodes) != 15 || len(res.Graph.Edges) != 14 {
		t.Fatalf("result size mismatch: %d nodes, %d edges",
			len(res.Graph.Nodes), len(res.Graph.Edges))
	}

	if res.ResidualOverlaps != 0 {
		t.Errorf("ResidualOverlaps = %d, want 0 for a small tree", res.ResidualOverlaps)
	}

	opts := testOptions(t)
	if got := countOverlaps(res.Graph.Nodes, opts); got != 0 {
		t.Errorf("output has %d overlapping pairs", got)
	}

	for _, n := range res.Graph.Nodes {
		if n.Width <= 0 || n.Height <= 0 {
			t.Errorf("node %s missing size: %fx%f", n.ID, n.Width, n.Height)
		}
		if lvl, ok := res.Levels[n.ID]; !ok || n.Level != lvl {
			t.Errorf("node %s level %d disagrees with Levels[%s]=%d", n.ID, n.Level, n.ID, lvl)
		}
	}

	// Every tree edge goes one level down, so all handles read top-down.
	for _, e := range res.Graph.Edges {
		if e.SourceHandle != graph.HandleBottom || e.TargetHandle != graph.HandleTop {
			t.Errorf("edge %s→%s handles %s→%s, want bottom→top",
				e.Source, e.Target, e.SourceHandle, e.TargetHandle)
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	g := treeGraph(12)

	res1, err := Compute(context.Background(), g, Options{Seed: 99})
	if err != nil {
		t.Fatalf("first Compute() error: %v", err)
	}
	res2, err := Compute(context.Background(), g, Options{Seed: 99})
	if err != nil {
		t.Fatalf("second Compute() error: %v", err)
	}

	for i := range res1.Graph.Nodes {
		a, b := res1.Graph.Nodes[i], res2.Graph.Nodes[i]
		if a.X != b.X || a.Y != b.Y {
			t.Errorf("node %s differs across identical runs: (%f,%f) vs (%f,%f)",
				a.ID, a.X, a.Y, b.X, b.Y)
		}
	}
}

func TestCompute_SeedChangesJitter(t *testing.T) {
	g := treeGraph(12)

	res1, err := Compute(context.Background(), g, Options{Seed: 1})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	res2, err := Compute(context.Background(), g, Options{Seed: 2})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	same := true
	for i := range res1.Graph.Nodes {
		if res1.Graph.Nodes[i].X != res2.Graph.Nodes[i].X {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical positions")
	}
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	g := treeGraph(6)
	g.Nodes[0].Meta = map[string]any{"kind": "concept"}

	if _, err := Compute(context.Background(), g, Options{}); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	for _, n := range g.Nodes {
		if n.X != 0 || n.Y != 0 || n.Level != 0 {
			t.Errorf("input node %s was positioned in place: %+v", n.ID, n)
		}
	}
	for _, e := range g.Edges {
		if e.SourceHandle != "" || e.TargetHandle != "" {
			t.Errorf("input edge %s→%s got handles assigned", e.Source, e.Target)
		}
	}
}

func TestCompute_DanglingEdgesTolerated(t *testing.T) {
	g := treeGraph(4)
	g.Edges = append(g.Edges, graph.Edge{Source: "n0", Target: "missing"})

	res, err := Compute(context.Background(), g, Options{})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if len(res.Graph.Edges) != len(g.Edges) {
		t.Errorf("dangling edge dropped: %d edges, want %d",
			len(res.Graph.Edges), len(g.Edges))
	}
}

func TestCompute_InvalidInputs(t *testing.T) {
	tests := []struct {
		name     string
		g        graph.Graph
		opts     Options
		wantCode errors.Code
	}{
		{
			name:     "duplicate node IDs",
			g:        graph.Graph{Nodes: []graph.Node{{ID: "a"}, {ID: "a"}}},
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name:     "empty node ID",
			g:        graph.Graph{Nodes: []graph.Node{{ID: ""}}},
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name:     "invalid direction",
			g:        treeGraph(2),
			opts:     Options{Direction: "NE"},
			wantCode: errors.ErrCodeInvalidDirection,
		},
		{
			name:     "invalid strategy",
			g:        treeGraph(2),
			opts:     Options{Strategy: "organic"},
			wantCode: errors.ErrCodeInvalidStrategy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(context.Background(), tt.g, tt.opts)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("error code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestCompute_CycleDoesNotHang(t *testing.T) {
	g := graph.Graph{
		Nodes: nodesFor("a", "b", "c"),
		Edges: []graph.Edge{edge("a", "b"), edge("b", "c"), edge("c", "a")},
	}

	res, err := Compute(context.Background(), g, Options{})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if len(res.Graph.Nodes) != 3 {
		t.Errorf("expected 3 positioned nodes, got %d", len(res.Graph.Nodes))
	}
}
