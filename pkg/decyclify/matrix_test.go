package decyclify

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/taskweave/decyclify/pkg/graph"
)

func TestIntraIteration(t *testing.T) {
	// Acyclic remainder of the a→b→c→b cycle graph.
	g := buildGraph(t, []string{"a b", "a e", "b c", "c d"})

	m, err := IntraIteration(g)
	if err != nil {
		t.Fatalf("IntraIteration() error: %v", err)
	}

	// Rows are downstream nodes, columns upstream: cell (i, j) set means
	// node i fires after node j. Order is a, b, e, c, d.
	want := Matrix{
		{0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0},
		{1, 0, 0, 0, 0},
		{0, 1, 0, 0, 0},
		{0, 0, 0, 1, 0},
	}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("IntraIteration() = %v, want %v", m, want)
	}
}

func TestIntraIteration_Dimension(t *testing.T) {
	g := buildGraph(t, []string{"a b", "c d", "e f"})

	m, err := IntraIteration(g)
	if err != nil {
		t.Fatalf("IntraIteration() error: %v", err)
	}
	if got, want := m.Dim(), g.Len(); got != want {
		t.Errorf("Dim() = %d, want %d", got, want)
	}
	for i, row := range m {
		if len(row) != g.Len() {
			t.Errorf("len(row %d) = %d, want %d", i, len(row), g.Len())
		}
	}
}

func TestIntraIteration_EmptyGraph(t *testing.T) {
	m, err := IntraIteration(graph.New())
	if err != nil {
		t.Fatalf("IntraIteration() error: %v", err)
	}
	if m.Dim() != 0 {
		t.Errorf("Dim() = %d, want 0", m.Dim())
	}
}

func TestIntraIteration_NilGraph(t *testing.T) {
	if _, err := IntraIteration(nil); !errors.Is(err, ErrNilGraph) {
		t.Errorf("IntraIteration(nil) error = %v, want ErrNilGraph", err)
	}
}

func TestInterIteration(t *testing.T) {
	nodes := []string{"a", "b", "e", "c", "d"}
	removed := []graph.Edge{{From: "c", To: "b"}}

	m, err := InterIteration(nodes, removed)
	if err != nil {
		t.Fatalf("InterIteration() error: %v", err)
	}

	// Removed edge c→b: b in cycle N waits on c from cycle N-1, so the
	// cell at (row=index(b), col=index(c)) is set.
	want := Matrix{
		{0, 0, 0, 0, 0},
		{0, 0, 0, 1, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("InterIteration() = %v, want %v", m, want)
	}
}

func TestInterIteration_NoRemovedEdges(t *testing.T) {
	m, err := InterIteration([]string{"a", "b"}, nil)
	if err != nil {
		t.Fatalf("InterIteration() error: %v", err)
	}
	if m.Dim() != 0 {
		t.Errorf("Dim() = %d, want 0 for no removed edges", m.Dim())
	}
}

func TestInterIteration_EmptyNodes(t *testing.T) {
	m, err := InterIteration(nil, []graph.Edge{{From: "a", To: "b"}})
	if err != nil {
		t.Fatalf("InterIteration() error: %v", err)
	}
	if m.Dim() != 0 {
		t.Errorf("Dim() = %d, want 0 for empty node list", m.Dim())
	}
}

func TestInterIteration_UnknownNode(t *testing.T) {
	nodes := []string{"a", "b"}
	removed := []graph.Edge{{From: "z", To: "a"}}

	if _, err := InterIteration(nodes, removed); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("InterIteration() error = %v, want ErrUnknownNode", err)
	}
}

func TestMatrices_Complementary(t *testing.T) {
	// Every input edge lands in exactly one matrix: kept edges in the
	// intra matrix, removed back-edges in the inter matrix.
	g := buildGraph(t, []string{"a b", "a e", "b c", "c b", "c d"})

	acyclic, removed, err := Decyclify(g)
	if err != nil {
		t.Fatalf("Decyclify() error: %v", err)
	}
	intra, err := IntraIteration(acyclic)
	if err != nil {
		t.Fatalf("IntraIteration() error: %v", err)
	}
	inter, err := InterIteration(acyclic.Nodes(), removed)
	if err != nil {
		t.Fatalf("InterIteration() error: %v", err)
	}

	count := func(m Matrix) int {
		n := 0
		for _, row := range m {
			for _, v := range row {
				n += v
			}
		}
		return n
	}
	if got, want := count(intra)+count(inter), g.EdgeCount(); got != want {
		t.Errorf("set cells across both matrices = %d, want %d", got, want)
	}
}

func TestMatrix_RowColumn(t *testing.T) {
	m := Matrix{
		{0, 1, 0},
		{1, 0, 1},
		{0, 0, 0},
	}

	if got := m.Row(1); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("Row(1) = %v, want [0 2]", got)
	}
	if got := m.Column(0); !slices.Equal(got, []int{1}) {
		t.Errorf("Column(0) = %v, want [1]", got)
	}
	if got := m.Column(2); !slices.Equal(got, []int{1}) {
		t.Errorf("Column(2) = %v, want [1]", got)
	}
}
