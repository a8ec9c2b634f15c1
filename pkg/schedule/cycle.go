package schedule

import (
	"fmt"

	"github.com/taskweave/decyclify/pkg/decyclify"
	"github.com/taskweave/decyclify/pkg/graph"
)

// CycleIterator replays a single acyclic graph's nodes in dependency order
// across a fixed number of cycles, finishing each cycle completely before
// the next one starts.
//
// The graph is expected to be acyclic already (typically the output of
// [decyclify.Decyclify]); inter-iteration dependencies are ignored here -
// use [TasksIterator] for overlapped cycles.
type CycleIterator struct {
	nodes  []string
	scan   columnScan
	cycle  int
	cycles int
}

// NewCycleIterator creates an iterator over cycles repetitions of the
// graph's dependency order.
//
// Returns ErrNilGraph for a nil graph, ErrEmptyGraph for a graph without
// nodes, and ErrInvalidCycleCount when cycles < 1.
func NewCycleIterator(g *graph.Digraph, cycles int) (*CycleIterator, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if g.Len() == 0 {
		return nil, ErrEmptyGraph
	}
	if cycles < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidCycleCount, cycles)
	}
	intra, err := decyclify.IntraIteration(g)
	if err != nil {
		return nil, err
	}
	return &CycleIterator{
		nodes:  g.Nodes(),
		scan:   newColumnScan(intra),
		cycles: cycles,
	}, nil
}

// Next returns the next ready batch, tagged with the current cycle number,
// or (nil, false) once the cycle bound is reached. Each cycle yields the
// same batches; only the tag changes.
func (it *CycleIterator) Next() (Batch, bool) {
	for it.cycle < it.cycles {
		rows, ok := it.scan.next()
		if !ok {
			it.cycle++
			it.scan.reset()
			continue
		}
		batch := make(Batch, 0, len(rows))
		for _, i := range rows {
			batch = append(batch, label(it.nodes[i], it.cycle))
		}
		return batch, true
	}
	return nil, false
}

// Collect drains the iterator and returns all remaining batches.
// Useful for tests and for callers that do not need lazy stepping.
func (it *CycleIterator) Collect() []Batch {
	var out []Batch
	for {
		b, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, b)
	}
}
