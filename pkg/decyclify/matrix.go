package decyclify

import (
	"errors"
	"fmt"

	"github.com/taskweave/decyclify/pkg/graph"
)

// ErrUnknownNode is returned by [InterIteration] when a removed edge
// references a node that is not in the node list. This indicates the edge
// list and node list come from different graph snapshots.
var ErrUnknownNode = errors.New("unknown node")

// Matrix is a square boolean dependency matrix represented as nested 0/1
// integers, indexed by each node's stable index. The documented convention
// is row = downstream, column = upstream: cell (i, j) set means node i
// depends on node j.
type Matrix [][]int

// NewMatrix allocates an n×n zero matrix.
func NewMatrix(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]int, n)
	}
	return m
}

// Dim returns the matrix dimension.
func (m Matrix) Dim() int { return len(m) }

// Column reports the row indices with a set cell in column j.
func (m Matrix) Column(j int) []int {
	var rows []int
	for i := range m {
		if m[i][j] == 1 {
			rows = append(rows, i)
		}
	}
	return rows
}

// Row returns the column indices with a set cell in row i.
func (m Matrix) Row(i int) []int {
	var cols []int
	for j := range m[i] {
		if m[i][j] == 1 {
			cols = append(cols, j)
		}
	}
	return cols
}

// IntraIteration builds the intra-iteration dependency matrix of an acyclic
// graph: cell (row=i, col=j) is set when node i appears in the successor set
// of node j, i.e. node i fires once node j has fired within the same cycle.
// The diagonal is always zero for acyclic input (a self-loop would have been
// removed by decyclification).
//
// Returns an empty matrix for a graph with zero nodes, and ErrNilGraph for
// a nil graph. The pair scan is O(n²), fine for task-dependency graphs.
func IntraIteration(g *graph.Digraph) (Matrix, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	nodes := g.Nodes()
	m := NewMatrix(len(nodes))
	for j, upstream := range nodes {
		for _, succ := range g.Successors(upstream) {
			i, ok := g.Index(succ)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownNode, succ)
			}
			m[i][j] = 1
		}
	}
	return m, nil
}

// InterIteration builds the inter-iteration dependency matrix from the node
// list and the removed back-edges: cell (row=index(target),
// col=index(source)) set means target in cycle N depends on source having
// completed in cycle N-1.
//
// Returns an empty matrix immediately when either the node list or the
// removed-edge list is empty, and ErrUnknownNode when a removed edge
// references a node absent from the list.
func InterIteration(nodes []string, removed []graph.Edge) (Matrix, error) {
	if len(nodes) == 0 || len(removed) == 0 {
		return Matrix{}, nil
	}
	index := make(map[string]int, len(nodes))
	for i, id := range nodes {
		index[id] = i
	}
	m := NewMatrix(len(nodes))
	for _, e := range removed {
		src, ok := index[e.From]
		if !ok {
			return nil, fmt.Errorf("%w: removed edge source %q", ErrUnknownNode, e.From)
		}
		dst, ok := index[e.To]
		if !ok {
			return nil, fmt.Errorf("%w: removed edge target %q", ErrUnknownNode, e.To)
		}
		m[dst][src] = 1
	}
	return m, nil
}
