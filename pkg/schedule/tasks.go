package schedule

import (
	"fmt"

	"github.com/taskweave/decyclify/pkg/decyclify"
	"github.com/taskweave/decyclify/pkg/graph"
)

// cycleState is one repetition of the task graph inside a [TasksIterator].
//
// A cycle is Active while it still has unreleased nodes and Exhausted once
// its column scan is spent; exhausted cycles leave the active chain and are
// never consulted again, except as the "previous cycle" of their successor,
// where their released set remains visible.
type cycleState struct {
	number   int
	scan     columnScan
	released []bool // per node index, released within this cycle
	batches  int    // batches emitted so far
	done     bool
}

// fire marks the batch released and advances the scan past it.
func (c *cycleState) fire(rows []int) {
	c.scan.next()
	for _, i := range rows {
		c.released[i] = true
	}
	c.batches++
}

// TasksIterator drives multiple cycles of the same task graph concurrently
// in a single-threaded cooperative sense: a later cycle starts releasing
// nodes while earlier cycles are still in flight, subject to the
// inter-iteration dependencies recorded by decyclification.
//
// [NewTasksIterator] decyclifies the graph internally (starting from the
// first node in stable order) and builds both dependency matrices.
// [NewDecyclifiedTasksIterator] takes a precomputed acyclic graph and its
// removed edges instead; a second decyclification of an already-acyclic
// graph would find no back-edges and lose the inter-iteration gating.
type TasksIterator struct {
	nodes   []string
	intra   decyclify.Matrix
	inter   decyclify.Matrix
	cycles  []*cycleState
	active  []int // indices into cycles, ascending, still Active
	stopped bool
}

// NewTasksIterator creates an iterator over cycles overlapped repetitions
// of the graph.
//
// Returns ErrNilGraph for a nil graph, ErrEmptyGraph for a graph without
// nodes, and ErrInvalidCycleCount when cycles < 1.
func NewTasksIterator(g *graph.Digraph, cycles int) (*TasksIterator, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	acyclic, removed, err := decyclify.Decyclify(g)
	if err != nil {
		return nil, err
	}
	return NewDecyclifiedTasksIterator(acyclic, removed, cycles)
}

// NewDecyclifiedTasksIterator builds the iterator from a graph that has
// already been decyclified, together with the back-edges removed from it.
// Callers that run decyclification themselves, to report the removed edges
// or to traverse from a chosen start node, use this to keep the
// inter-iteration dependencies those edges carry.
//
// Returns ErrNilGraph for a nil graph, ErrEmptyGraph for a graph without
// nodes, and ErrInvalidCycleCount when cycles < 1.
func NewDecyclifiedTasksIterator(acyclic *graph.Digraph, removed []graph.Edge, cycles int) (*TasksIterator, error) {
	if acyclic == nil {
		return nil, ErrNilGraph
	}
	if acyclic.Len() == 0 {
		return nil, ErrEmptyGraph
	}
	if cycles < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidCycleCount, cycles)
	}

	intra, err := decyclify.IntraIteration(acyclic)
	if err != nil {
		return nil, err
	}
	inter, err := decyclify.InterIteration(acyclic.Nodes(), removed)
	if err != nil {
		return nil, err
	}

	t := &TasksIterator{
		nodes: acyclic.Nodes(),
		intra: intra,
		inter: inter,
	}
	for n := 0; n < cycles; n++ {
		t.cycles = append(t.cycles, &cycleState{
			number:   n,
			scan:     newColumnScan(intra),
			released: make([]bool, len(t.nodes)),
		})
		t.active = append(t.active, n)
	}
	return t, nil
}

// triggers returns the inter-iteration trigger indices for a node: the
// upstream nodes whose completion in the previous cycle gates its release.
func (t *TasksIterator) triggers(node int) []int {
	if t.inter.Dim() == 0 {
		return nil
	}
	return t.inter.Row(node)
}

// Next advances every active cycle by at most one batch and returns the
// union of all nodes released this step, tagged with their owning cycle's
// number. Iteration ends - (nil, false) - when no active cycles remain or
// a step releases nothing at all.
//
// Cycles are processed in cycle-number order. The earliest active cycle
// releases its next batch unconditionally; once its scan is spent it drops
// out of the active set silently. Every later cycle peeks its next batch
// and gates it against the previous cycle:
//
//   - a batch containing inter-dependent nodes fires only when each trigger
//     has been released by the previous cycle, the earlier cycle's releases
//     from this same step included; only the inter-dependent nodes are
//     emitted, the scan advancing past the rest of the batch;
//   - a batch with no inter-dependent nodes fires once the previous cycle
//     was strictly ahead in emitted batches at the start of the step, or
//     has exhausted.
func (t *TasksIterator) Next() (Batch, bool) {
	if t.stopped || len(t.active) == 0 {
		t.stopped = true
		return nil, false
	}

	// Pacing gates compare against batch counts as of the step start;
	// inter-iteration gates see same-step releases.
	startBatches := make([]int, len(t.cycles))
	for i, c := range t.cycles {
		startBatches[i] = c.batches
	}

	var out Batch
	var stillActive []int
	for pos, ci := range t.active {
		c := t.cycles[ci]
		rows, ok := c.scan.peek()
		if !ok {
			c.done = true
			continue
		}

		if pos == 0 {
			c.fire(rows)
			out = append(out, t.tag(rows, c)...)
			stillActive = append(stillActive, ci)
			continue
		}

		prev := t.cycles[c.number-1]
		if interRows := t.interDependent(rows); len(interRows) > 0 {
			if t.triggersReleased(interRows, prev) {
				c.fire(rows)
				out = append(out, t.tag(interRows, c)...)
			}
		} else if startBatches[prev.number] > c.batches || prev.done {
			c.fire(rows)
			out = append(out, t.tag(rows, c)...)
		}
		stillActive = append(stillActive, ci)
	}
	t.active = stillActive

	if len(out) == 0 {
		t.stopped = true
		return nil, false
	}
	return out, true
}

// Collect drains the iterator and returns all remaining batches.
func (t *TasksIterator) Collect() []Batch {
	var out []Batch
	for {
		b, ok := t.Next()
		if !ok {
			return out
		}
		out = append(out, b)
	}
}

// interDependent filters a batch down to the nodes with at least one
// inter-iteration trigger.
func (t *TasksIterator) interDependent(rows []int) []int {
	var out []int
	for _, i := range rows {
		if len(t.triggers(i)) > 0 {
			out = append(out, i)
		}
	}
	return out
}

// triggersReleased reports whether every trigger of every node in rows has
// been released by the given cycle.
func (t *TasksIterator) triggersReleased(rows []int, prev *cycleState) bool {
	for _, i := range rows {
		for _, j := range t.triggers(i) {
			if !prev.released[j] {
				return false
			}
		}
	}
	return true
}

func (t *TasksIterator) tag(rows []int, c *cycleState) Batch {
	batch := make(Batch, 0, len(rows))
	for _, i := range rows {
		batch = append(batch, label(t.nodes[i], c.number))
	}
	return batch
}
