package graph

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestMarshalUnmarshalGraph(t *testing.T) {
	g := Graph{
		Nodes: []Node{
			{ID: "a", Label: "Alpha", X: 10, Y: 20, Width: 100, Height: 50},
			{ID: "b", Meta: map[string]any{"kind": "note"}},
		},
		Edges: []Edge{
			{Source: "a", Target: "b", SourceHandle: HandleBottom, TargetHandle: HandleTop},
		},
	}

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph() error: %v", err)
	}

	// Handle fields use snake_case on the wire.
	if !strings.Contains(string(data), `"source_handle": "bottom"`) {
		t.Errorf("marshaled JSON missing source_handle:\n%s", data)
	}

	back, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph() error: %v", err)
	}

	if len(back.Nodes) != 2 || len(back.Edges) != 1 {
		t.Fatalf("round trip lost elements: %d nodes, %d edges", len(back.Nodes), len(back.Edges))
	}
	if back.Nodes[0].X != 10 || back.Nodes[0].Label != "Alpha" {
		t.Errorf("node fields lost in round trip: %+v", back.Nodes[0])
	}
	if back.Edges[0].TargetHandle != HandleTop {
		t.Errorf("edge handle lost in round trip: %+v", back.Edges[0])
	}
	if back.Nodes[1].Meta["kind"] != "note" {
		t.Errorf("meta lost in round trip: %+v", back.Nodes[1].Meta)
	}
}

func TestUnmarshalGraph_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed JSON", `{"nodes": [}`},
		{"duplicate IDs", `{"nodes": [{"id": "a"}, {"id": "a"}]}`},
		{"empty ID", `{"nodes": [{"id": ""}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalGraph([]byte(tt.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestReadWriteGraphFile(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{{Source: "a", Target: "b"}},
	}

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile() error: %v", err)
	}

	back, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile() error: %v", err)
	}
	if len(back.Nodes) != 2 || len(back.Edges) != 1 {
		t.Errorf("file round trip lost elements: %d nodes, %d edges",
			len(back.Nodes), len(back.Edges))
	}
}

func TestReadGraphFile_Missing(t *testing.T) {
	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
