// Package graph provides the directed graph model used by the decyclify
// engine.
//
// A [Digraph] is a set of opaque string-labelled nodes and directed edges
// with adjacency queryable in both directions. Unlike map-backed graphs,
// iteration order is deterministic: [Digraph.Nodes] returns nodes in the
// order they first appeared, and that order fixes the stable index every
// matrix built from the same graph snapshot shares.
//
// # Construction
//
// Graphs are built from explicit calls or from edge-list text:
//
//	g := graph.New()
//	g.AddEdge("a", "b")
//	g.AddEdge("b", "c")
//
//	g, err := graph.ParseEdgeList([]string{"a b", "b c", "c b"})
//
// # Serialization
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [{"id": "a"}, {"id": "b"}],
//	  "edges": [{"from": "a", "to": "b"}]
//	}
//
// Node order in the nodes array carries the stable order, so round trips
// preserve matrix indexing.
//
// # Concurrency
//
// A Digraph is safe for concurrent reads but not concurrent writes.
package graph
