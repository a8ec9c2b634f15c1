package graph

import (
	"errors"
	"slices"
	"testing"
)

func TestParseEdgeList(t *testing.T) {
	g, err := ParseEdgeList([]string{"a b", "a e", "b c", "c b", "c d"})
	if err != nil {
		t.Fatalf("ParseEdgeList() error: %v", err)
	}

	wantNodes := []string{"a", "b", "e", "c", "d"}
	if got := g.Nodes(); !slices.Equal(got, wantNodes) {
		t.Errorf("Nodes() = %v, want %v", got, wantNodes)
	}
	if g.EdgeCount() != 5 {
		t.Errorf("EdgeCount() = %d, want 5", g.EdgeCount())
	}
}

func TestParseEdgeList_Whitespace(t *testing.T) {
	g, err := ParseEdgeList([]string{"  a \t b  ", "", "   ", "b\tc"})
	if err != nil {
		t.Fatalf("ParseEdgeList() error: %v", err)
	}

	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3", g.Len())
	}
	if !g.HasEdge("a", "b") || !g.HasEdge("b", "c") {
		t.Error("expected edges a→b and b→c")
	}
}

func TestParseEdgeList_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"single token", []string{"a"}},
		{"three tokens", []string{"a b c"}},
		{"valid then broken", []string{"a b", "oops"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseEdgeList(tt.lines); !errors.Is(err, ErrMalformedEdge) {
				t.Errorf("ParseEdgeList(%v) error = %v, want ErrMalformedEdge", tt.lines, err)
			}
		})
	}
}

func TestParseEdgeList_Empty(t *testing.T) {
	g, err := ParseEdgeList(nil)
	if err != nil {
		t.Fatalf("ParseEdgeList(nil) error: %v", err)
	}
	if g.Len() != 0 {
		t.Errorf("Len() = %d, want 0", g.Len())
	}
}
