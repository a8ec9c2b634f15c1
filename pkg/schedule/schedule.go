package schedule

import (
	"errors"
	"fmt"

	"github.com/taskweave/decyclify/pkg/decyclify"
)

var (
	// ErrNilGraph is returned when a nil graph is passed to an iterator
	// constructor.
	ErrNilGraph = errors.New("graph must not be nil")

	// ErrEmptyGraph is returned when the graph has no nodes. There is
	// nothing to schedule.
	ErrEmptyGraph = errors.New("graph must not be empty")

	// ErrInvalidCycleCount is returned when the requested cycle count is
	// less than 1.
	ErrInvalidCycleCount = errors.New("cycle count must be at least 1")
)

// Batch is the set of node labels released at one iteration step.
// Each label is the node identifier suffixed with its cycle number,
// e.g. "b.0" or "a.1".
type Batch []string

// label tags a node with the cycle it was released in.
func label(node string, cycle int) string {
	return fmt.Sprintf("%s.%d", node, cycle)
}

// columnScan walks the intra-iteration matrix one column batch at a time
// for a single replay of the graph.
//
// The first batch is always the index-0 node, mirroring the decyclify start
// node convention (the graph is assumed to have a single source). Subsequent
// batches are the set rows of successive columns: the nodes that become
// ready once the column's node has fired. All-zero columns are skipped
// without emitting.
type columnScan struct {
	intra decyclify.Matrix
	col   int // -1 means the root batch has not been emitted yet
}

func newColumnScan(intra decyclify.Matrix) columnScan {
	return columnScan{intra: intra, col: -1}
}

// next pops the next batch of node indices, or reports exhaustion when the
// matrix width is spent.
func (s *columnScan) next() ([]int, bool) {
	n := s.intra.Dim()
	if n == 0 {
		return nil, false
	}
	if s.col == -1 {
		s.col = 0
		return []int{0}, true
	}
	for s.col < n {
		rows := s.intra.Column(s.col)
		s.col++
		if len(rows) > 0 {
			return rows, true
		}
	}
	return nil, false
}

// peek returns what next would, without advancing. The receiver is a copy,
// so the scan position is untouched.
func (s columnScan) peek() ([]int, bool) {
	return s.next()
}

// reset rewinds the scan for another replay.
func (s *columnScan) reset() {
	s.col = -1
}
