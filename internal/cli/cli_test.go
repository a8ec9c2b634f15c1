package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/taskweave/decyclify/pkg/graph"
	"github.com/taskweave/decyclify/pkg/schedule"
)

func TestReadEdgeLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.txt")
	if err := os.WriteFile(path, []byte("a b\n\nb c\n"), 0o644); err != nil {
		t.Fatalf("write edges: %v", err)
	}

	lines, err := readEdgeLines(path)
	if err != nil {
		t.Fatalf("readEdgeLines() error: %v", err)
	}

	want := []string{"a b", "", "b c"}
	if !slices.Equal(lines, want) {
		t.Errorf("readEdgeLines() = %v, want %v", lines, want)
	}
}

func TestReadEdgeLines_MissingFile(t *testing.T) {
	if _, err := readEdgeLines(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("readEdgeLines() expected error for missing file")
	}
}

func TestLoadGraph_EdgeList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.txt")
	if err := os.WriteFile(path, []byte("a b\nb c\n"), 0o644); err != nil {
		t.Fatalf("write edges: %v", err)
	}

	g, err := loadGraph(path)
	if err != nil {
		t.Fatalf("loadGraph() error: %v", err)
	}
	if got := g.Nodes(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Nodes() = %v, want [a b c]", got)
	}
}

func TestLoadGraph_JSON(t *testing.T) {
	g, err := graph.ParseEdgeList([]string{"x y"})
	if err != nil {
		t.Fatalf("ParseEdgeList() error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := graph.WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile() error: %v", err)
	}

	back, err := loadGraph(path)
	if err != nil {
		t.Fatalf("loadGraph() error: %v", err)
	}
	if !back.HasEdge("x", "y") {
		t.Error("loadGraph() lost edge x→y")
	}
}

func TestFormatBatch(t *testing.T) {
	if got := formatBatch(schedule.Batch{"a.0", "b.0"}); got != "[a.0, b.0]" {
		t.Errorf("formatBatch() = %q, want %q", got, "[a.0, b.0]")
	}
	if got := formatBatch(schedule.Batch{}); got != "[]" {
		t.Errorf("formatBatch() = %q, want %q", got, "[]")
	}
}

func TestCollectBatches_UnsupportedMode(t *testing.T) {
	g, err := graph.ParseEdgeList([]string{"a b"})
	if err != nil {
		t.Fatalf("ParseEdgeList() error: %v", err)
	}
	if _, err := collectBatches(g, nil, "banana", 1); err == nil {
		t.Error("collectBatches() expected error for unsupported mode")
	}
}

func TestCollectBatches_TasksGating(t *testing.T) {
	g, err := graph.ParseEdgeList([]string{"a b", "a e", "b c", "c b", "c d"})
	if err != nil {
		t.Fatalf("ParseEdgeList() error: %v", err)
	}
	acyclic, removed, err := decyclifyGraph(g, "")
	if err != nil {
		t.Fatalf("decyclifyGraph() error: %v", err)
	}

	batches, err := collectBatches(acyclic, removed, "tasks", 2)
	if err != nil {
		t.Fatalf("collectBatches() error: %v", err)
	}

	// b.1 is gated by the removed edge c→b and releases alongside c.0;
	// losing the removed edges would let e.1 ride along in that batch.
	want := []schedule.Batch{
		{"a.0"},
		{"b.0", "e.0", "a.1"},
		{"c.0", "b.1"},
		{"d.0", "c.1"},
		{"d.1"},
	}
	if len(batches) != len(want) {
		t.Fatalf("collectBatches() = %v, want %v", batches, want)
	}
	for i := range want {
		if !slices.Equal(batches[i], want[i]) {
			t.Errorf("batch %d = %v, want %v", i, batches[i], want[i])
		}
	}
}
