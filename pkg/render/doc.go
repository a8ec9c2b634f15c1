// Package render exports decyclified graphs as Graphviz DOT and renders
// them to SVG or PNG.
//
// Removed back-edges are included in the diagram as dashed red edges with
// constraint=false: they show where cycles were broken without affecting
// the acyclic layout's ranking.
package render
