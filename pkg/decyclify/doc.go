// Package decyclify converts directed cyclic graphs of repeating task
// dependencies into acyclic graphs plus an explicit record of the removed
// back-edges, and derives the two dependency matrices that drive cycle-aware
// scheduling.
//
// # Algorithm
//
// [Decyclify] runs classic depth-first edge classification: an edge pointing
// at a node still on the traversal path is a back-edge, the signature of a
// cycle. Back-edges are deleted from a working copy in discovery order and
// returned alongside the acyclic result. Edges from unreached nodes into the
// finished frontier are dropped, then remaining components are traversed
// until every node is done.
//
// # Matrices
//
// [IntraIteration] records dependencies within one replay cycle;
// [InterIteration] records dependencies across consecutive cycles, one per
// removed back-edge. Every original edge lands in exactly one of the two:
// intra if retained, inter if removed.
//
//	g, _ := graph.ParseEdgeList([]string{"a b", "b c", "c b", "c d"})
//	acyclic, removed, _ := decyclify.DecyclifyFrom(g, "a")
//	intra, _ := decyclify.IntraIteration(acyclic)
//	inter, _ := decyclify.InterIteration(acyclic.Nodes(), removed)
package decyclify
