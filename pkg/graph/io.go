package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Wire Format
// =============================================================================

// WireGraph is the canonical serialization format for directed graphs.
// Used for CLI output, API responses, and cache entries.
//
// The format is human-readable and round-trip safe: node order in the
// nodes array is the graph's stable order, so import → export → re-import
// preserves matrix indexing.
type WireGraph struct {
	Nodes []WireNode `json:"nodes"`
	Edges []WireEdge `json:"edges"`
}

// WireNode is the serialized form of a node.
type WireNode struct {
	ID string `json:"id"`
}

// WireEdge is the serialized form of a directed edge.
type WireEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// =============================================================================
// Digraph ↔ Wire Conversion
// =============================================================================

// ToWire converts a Digraph to its serialization format.
// Nodes appear in stable order, edges in insertion order.
func ToWire(g *Digraph) WireGraph {
	out := WireGraph{
		Nodes: make([]WireNode, 0, g.Len()),
		Edges: make([]WireEdge, 0, g.EdgeCount()),
	}
	for _, id := range g.Nodes() {
		out.Nodes = append(out.Nodes, WireNode{ID: id})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, WireEdge{From: e.From, To: e.To})
	}
	return out
}

// FromWire converts a WireGraph back to a Digraph.
// Node order in the nodes array becomes the stable order. Returns an error
// if a node ID is empty or an edge references an endpoint that would be
// created out of declared order.
func FromWire(wg WireGraph) (*Digraph, error) {
	g := New()
	for _, n := range wg.Nodes {
		if err := g.AddNode(n.ID); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, e := range wg.Edges {
		if err := g.AddEdge(e.From, e.To); err != nil {
			return nil, fmt.Errorf("edge %s→%s: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// =============================================================================
// Readers / Writers
// =============================================================================

// WriteGraph writes a Digraph as indented JSON to w.
func WriteGraph(g *Digraph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToWire(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadGraph decodes a JSON graph from r into a Digraph.
func ReadGraph(r io.Reader) (*Digraph, error) {
	var wg WireGraph
	if err := json.NewDecoder(r).Decode(&wg); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return FromWire(wg)
}

// WriteGraphFile writes a Digraph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *Digraph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraphFile reads a JSON file and returns the decoded Digraph.
func ReadGraphFile(path string) (*Digraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// MarshalGraph converts a Digraph to JSON bytes.
func MarshalGraph(g *Digraph) ([]byte, error) {
	return json.Marshal(ToWire(g))
}

// UnmarshalGraph decodes JSON bytes into a Digraph.
func UnmarshalGraph(data []byte) (*Digraph, error) {
	var wg WireGraph
	if err := json.Unmarshal(data, &wg); err != nil {
		return nil, err
	}
	return FromWire(wg)
}
