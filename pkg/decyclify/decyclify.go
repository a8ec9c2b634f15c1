package decyclify

import (
	"errors"
	"fmt"

	"github.com/taskweave/decyclify/pkg/graph"
)

var (
	// ErrNilGraph is returned when a nil graph is passed where one is required.
	ErrNilGraph = errors.New("graph must not be nil")

	// ErrUnknownStart is returned by [DecyclifyFrom] when the start node does
	// not exist in the graph.
	ErrUnknownStart = errors.New("unknown start node")
)

// nodeColor tracks traversal state during a single decyclify call.
// Colors are transient: they live in a map scoped to the call and are never
// attached to the graph itself.
type nodeColor uint8

const (
	unvisited nodeColor = iota
	inProgress
	done
)

// Decyclify converts a directed cyclic graph into an acyclic graph plus the
// ordered list of removed back-edges. Traversal starts at the first node in
// stable order. The input graph is never mutated; the returned graph is an
// independent copy with the back-edges deleted.
//
// An empty graph returns an empty copy and no removed edges. Returns
// ErrNilGraph for a nil graph.
func Decyclify(g *graph.Digraph) (*graph.Digraph, []graph.Edge, error) {
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if g.Len() == 0 {
		return g.Clone(), nil, nil
	}
	return DecyclifyFrom(g, g.Nodes()[0])
}

// DecyclifyFrom is [Decyclify] with an explicit start node.
// Returns ErrUnknownStart if the node is not in the graph.
func DecyclifyFrom(g *graph.Digraph, start string) (*graph.Digraph, []graph.Edge, error) {
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if g.Len() == 0 {
		return g.Clone(), nil, nil
	}
	if !g.HasNode(start) {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStart, start)
	}

	d := &decyclifier{
		work:  g.Clone(),
		color: make(map[string]nodeColor, g.Len()),
	}
	d.visit(start)

	// Edges crossing from a still-unreached component into the finished
	// traversal frontier are dropped outright. The traversal never validated
	// them as acyclic, so they carry no ordering information either matrix
	// could record.
	for _, e := range d.work.Edges() {
		if d.color[e.From] == unvisited && d.color[e.To] == done {
			if err := d.work.RemoveEdge(e.From, e.To); err != nil {
				return nil, nil, fmt.Errorf("drop cross edge %s→%s: %w", e.From, e.To, err)
			}
		}
	}

	// Disconnected or unreached components get their own traversals,
	// accumulating into the same removed-edge list.
	for _, id := range d.work.Nodes() {
		if d.color[id] == unvisited {
			d.visit(id)
		}
	}

	return d.work, d.removed, nil
}

// DecyclifyEdgeList parses "source target" lines and decyclifies the result,
// starting from the first node to appear. This is the convenience entry
// point for edge-list input.
func DecyclifyEdgeList(lines []string) (*graph.Digraph, []graph.Edge, error) {
	g, err := graph.ParseEdgeList(lines)
	if err != nil {
		return nil, nil, err
	}
	return Decyclify(g)
}

type decyclifier struct {
	work    *graph.Digraph
	color   map[string]nodeColor
	removed []graph.Edge
}

// frame is one level of the depth-first traversal. The successor list is a
// snapshot taken when the node is first entered, so edge removals during
// the walk cannot disturb iteration.
type frame struct {
	node string
	succ []string
	next int
}

// visit runs depth-first edge classification from start using an explicit
// stack, so recursion depth never limits graph size. Discovery order matches
// the recursive formulation exactly: successors are expanded in the graph's
// stable adjacency order.
func (d *decyclifier) visit(start string) {
	d.color[start] = inProgress
	stack := []*frame{{node: start, succ: d.work.Successors(start)}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next >= len(f.succ) {
			d.color[f.node] = done
			stack = stack[:len(stack)-1]
			continue
		}
		child := f.succ[f.next]
		f.next++

		switch d.color[child] {
		case unvisited:
			d.color[child] = inProgress
			stack = append(stack, &frame{node: child, succ: d.work.Successors(child)})
		case inProgress:
			// Back-edge: the child is still on the traversal path.
			d.removed = append(d.removed, graph.Edge{From: f.node, To: child})
			// Removal cannot fail: the snapshot guarantees the edge exists
			// and back-edges are recorded at most once per edge.
			_ = d.work.RemoveEdge(f.node, child)
		}
	}
}
