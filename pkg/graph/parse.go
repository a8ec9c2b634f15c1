package graph

import (
	"fmt"
	"strings"
)

// ErrMalformedEdge is returned by [ParseEdgeList] when a line does not
// consist of exactly two whitespace-separated node tokens.
var ErrMalformedEdge = fmt.Errorf("malformed edge")

// ParseEdgeList builds a Digraph from a sequence of "source target" lines.
//
// Each line must contain exactly two whitespace-separated tokens; any
// amount of spaces or tabs may separate them, and surrounding whitespace
// is ignored. Blank lines are skipped. Node order follows first appearance
// across the lines, which fixes the stable index used by the matrices.
//
// Returns ErrMalformedEdge (wrapped with the offending line) for input
// that does not parse.
func ParseEdgeList(lines []string) (*Digraph, error) {
	g := New()
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %q (want \"source target\")", ErrMalformedEdge, line)
		}
		if err := g.AddEdge(fields[0], fields[1]); err != nil {
			return nil, fmt.Errorf("edge %q: %w", line, err)
		}
	}
	return g, nil
}
