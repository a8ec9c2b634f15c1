package graph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Digraph.AddNode] and [Digraph.AddEdge]
	// when a node ID is empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrEdgeNotFound is returned by [Digraph.RemoveEdge] when the edge does
	// not exist in the graph.
	ErrEdgeNotFound = errors.New("edge not found")
)

// Edge represents a directed connection between two nodes.
type Edge struct {
	From string // Source node ID
	To   string // Target node ID
}

// Digraph is a directed graph with deterministic iteration order.
// Nodes are kept in first-appearance order, and that order defines the
// stable index used by matrix construction: the first node added (directly
// or as an edge endpoint) has index 0, the second index 1, and so on.
//
// Edges are sets, not multisets: adding the same edge twice is a no-op.
// The zero value is not usable - use New to create a valid Digraph.
// Digraph is not safe for concurrent use without external synchronization.
type Digraph struct {
	order []string
	index map[string]int
	succ  map[string][]string // nodeID -> successor IDs, insertion order
	pred  map[string][]string // nodeID -> predecessor IDs, insertion order
	edges []Edge              // insertion order
}

// New creates an empty Digraph.
func New() *Digraph {
	return &Digraph{
		index: make(map[string]int),
		succ:  make(map[string][]string),
		pred:  make(map[string][]string),
	}
}

// AddNode adds a node to the graph, assigning it the next stable index.
// Adding a node that already exists is a no-op. Returns ErrInvalidNodeID
// if the ID is empty.
func (g *Digraph) AddNode(id string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.index[id]; exists {
		return nil
	}
	g.index[id] = len(g.order)
	g.order = append(g.order, id)
	return nil
}

// AddEdge adds a directed edge from source to target, creating either
// endpoint if it does not exist yet. Duplicate edges are idempotent.
// Returns ErrInvalidNodeID if either ID is empty.
func (g *Digraph) AddEdge(from, to string) error {
	if err := g.AddNode(from); err != nil {
		return err
	}
	if err := g.AddNode(to); err != nil {
		return err
	}
	if g.HasEdge(from, to) {
		return nil
	}
	g.succ[from] = append(g.succ[from], to)
	g.pred[to] = append(g.pred[to], from)
	g.edges = append(g.edges, Edge{From: from, To: to})
	return nil
}

// HasEdge reports whether the edge from→to exists.
func (g *Digraph) HasEdge(from, to string) bool {
	return slices.Contains(g.succ[from], to)
}

// HasNode reports whether the node exists in the graph.
func (g *Digraph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// RemoveEdge removes the edge from→to.
// Returns ErrEdgeNotFound if the edge does not exist. Node order and
// stable indices are unaffected by edge removal.
func (g *Digraph) RemoveEdge(from, to string) error {
	if !g.HasEdge(from, to) {
		return ErrEdgeNotFound
	}
	g.succ[from] = slices.DeleteFunc(g.succ[from], func(s string) bool { return s == to })
	g.pred[to] = slices.DeleteFunc(g.pred[to], func(s string) bool { return s == from })
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool { return e.From == from && e.To == to })
	return nil
}

// Nodes returns all node IDs in stable (first-appearance) order.
// The returned slice is a copy and can be modified freely.
func (g *Digraph) Nodes() []string { return slices.Clone(g.order) }

// Index returns the stable index of the node and true, or 0 and false
// if the node does not exist.
func (g *Digraph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Successors returns the IDs this node has edges to, in edge insertion order.
// The returned slice is a copy; mutating the graph does not invalidate it.
func (g *Digraph) Successors(id string) []string { return slices.Clone(g.succ[id]) }

// Predecessors returns the IDs that have edges to this node, in edge
// insertion order. The returned slice is a copy.
func (g *Digraph) Predecessors(id string) []string { return slices.Clone(g.pred[id]) }

// Edges returns a copy of all edges in insertion order.
func (g *Digraph) Edges() []Edge { return slices.Clone(g.edges) }

// Len returns the number of nodes in the graph.
func (g *Digraph) Len() int { return len(g.order) }

// EdgeCount returns the number of edges in the graph.
func (g *Digraph) EdgeCount() int { return len(g.edges) }

// Clone returns an independent copy of the graph with identical node order
// and edges. Mutations on the copy never affect the original.
func (g *Digraph) Clone() *Digraph {
	c := New()
	c.order = slices.Clone(g.order)
	for id, i := range g.index {
		c.index[id] = i
	}
	for id, s := range g.succ {
		c.succ[id] = slices.Clone(s)
	}
	for id, p := range g.pred {
		c.pred[id] = slices.Clone(p)
	}
	c.edges = slices.Clone(g.edges)
	return c
}
