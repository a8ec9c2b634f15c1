// Package pipeline provides the parse → decyclify → schedule pipeline.
//
// This package implements the complete flow from raw edge-list input to
// scheduled batches, usable by the CLI and the HTTP server alike. By
// centralizing this logic we ensure consistent validation, caching, and
// logging across all entry points.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Edges:  []string{"a b", "b c", "c b", "c d"},
//	    Mode:   pipeline.ModeTasks,
//	    Cycles: 2,
//	})
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/taskweave/decyclify/pkg/decyclify"
	"github.com/taskweave/decyclify/pkg/graph"
	"github.com/taskweave/decyclify/pkg/schedule"
)

// Iterator modes.
const (
	// ModeCycle finishes each cycle before starting the next.
	ModeCycle = "cycle"
	// ModeTasks overlaps cycles, releasing later-cycle nodes as soon as
	// their inter-iteration dependencies allow.
	ModeTasks = "tasks"
)

// DefaultCycles is the cycle count used when none is given.
const DefaultCycles = 1

// ValidModes is the set of supported iterator modes.
var ValidModes = map[string]bool{
	ModeCycle: true,
	ModeTasks: true,
}

// ErrNoInput is returned when neither a graph nor an edge list is supplied.
var ErrNoInput = errors.New("either Graph or Edges must be provided")

// ErrInvalidMode is returned for an unrecognized iterator mode.
var ErrInvalidMode = errors.New("invalid mode")

// Options configures a pipeline run.
type Options struct {
	// Edges is the raw "source target" edge-list input.
	// Ignored when Graph is set.
	Edges []string

	// Graph is a pre-built input graph. Takes precedence over Edges.
	Graph *graph.Digraph

	// Start overrides the decyclification start node.
	// Defaults to the first node in stable order.
	Start string

	// Mode selects the iterator: ModeCycle or ModeTasks.
	Mode string

	// Cycles is the number of repetitions to schedule. Defaults to 1.
	Cycles int

	// Refresh bypasses the cache for this run.
	Refresh bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Validation failures name the offending field and value.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Graph == nil && len(o.Edges) == 0 {
		return ErrNoInput
	}
	if o.Mode == "" {
		o.Mode = ModeTasks
	}
	if !ValidModes[o.Mode] {
		return fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidMode, o.Mode, ModeCycle, ModeTasks)
	}
	if o.Cycles == 0 {
		o.Cycles = DefaultCycles
	}
	if o.Cycles < 1 {
		return fmt.Errorf("%w, got %d", schedule.ErrInvalidCycleCount, o.Cycles)
	}
	return nil
}

// Stats captures timing and size information for a pipeline run.
type Stats struct {
	NodeCount     int           `json:"node_count"`
	EdgeCount     int           `json:"edge_count"`
	RemovedCount  int           `json:"removed_count"`
	DecyclifyTime time.Duration `json:"decyclify_time"`
	ScheduleTime  time.Duration `json:"schedule_time"`
}

// Result is the outcome of a pipeline run.
type Result struct {
	// Graph is the acyclic graph after decyclification.
	Graph *graph.Digraph

	// Removed is the ordered list of removed back-edges.
	Removed []graph.Edge

	// Intra is the intra-iteration dependency matrix.
	Intra decyclify.Matrix

	// Inter is the inter-iteration dependency matrix.
	Inter decyclify.Matrix

	// Batches is the full schedule produced by the selected iterator.
	Batches []schedule.Batch

	// GraphHash identifies the input graph snapshot for cache keys.
	GraphHash string

	// Stats carries timings and counts. Zero for cache hits.
	Stats Stats

	// CacheHit reports whether the result came from the cache.
	CacheHit bool
}
