package graph

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestGraphJSON_RoundTrip(t *testing.T) {
	g, err := ParseEdgeList([]string{"b a", "a c", "c b"})
	if err != nil {
		t.Fatalf("ParseEdgeList() error: %v", err)
	}

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph() error: %v", err)
	}
	back, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph() error: %v", err)
	}

	// Stable order survives the round trip, which keeps matrix indices valid.
	if got, want := back.Nodes(), g.Nodes(); !slices.Equal(got, want) {
		t.Errorf("Nodes() = %v, want %v", got, want)
	}
	if got, want := back.Edges(), g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestReadGraph_Format(t *testing.T) {
	in := `{"nodes":[{"id":"x"},{"id":"y"}],"edges":[{"from":"x","to":"y"}]}`
	g, err := ReadGraph(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadGraph() error: %v", err)
	}

	if got := g.Nodes(); !slices.Equal(got, []string{"x", "y"}) {
		t.Errorf("Nodes() = %v, want [x y]", got)
	}
	if !g.HasEdge("x", "y") {
		t.Error("HasEdge(x, y) = false, want true")
	}
}

func TestReadGraph_Invalid(t *testing.T) {
	if _, err := ReadGraph(strings.NewReader("not json")); err == nil {
		t.Error("ReadGraph() expected error for invalid JSON")
	}
}

func TestGraphFile_RoundTrip(t *testing.T) {
	g, err := ParseEdgeList([]string{"a b", "b c"})
	if err != nil {
		t.Fatalf("ParseEdgeList() error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile() error: %v", err)
	}

	back, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile() error: %v", err)
	}
	if got, want := back.Nodes(), g.Nodes(); !slices.Equal(got, want) {
		t.Errorf("Nodes() = %v, want %v", got, want)
	}
}

func TestFromWire_EmptyNodeID(t *testing.T) {
	wg := WireGraph{Nodes: []WireNode{{ID: ""}}}
	if _, err := FromWire(wg); err == nil {
		t.Error("FromWire() expected error for empty node ID")
	}
}
