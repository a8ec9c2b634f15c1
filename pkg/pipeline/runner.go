package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/taskweave/decyclify/pkg/cache"
	"github.com/taskweave/decyclify/pkg/decyclify"
	"github.com/taskweave/decyclify/pkg/graph"
	"github.com/taskweave/decyclify/pkg/observability"
	"github.com/taskweave/decyclify/pkg/schedule"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → decyclify → schedule pipeline with
// caching. Validation failures surface before any work happens.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	g := opts.Graph
	if g == nil {
		parsed, err := graph.ParseEdgeList(opts.Edges)
		if err != nil {
			return nil, fmt.Errorf("parse edges: %w", err)
		}
		g = parsed
	}

	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, fmt.Errorf("marshal graph: %w", err)
	}
	graphHash := cache.Hash(graphData)
	key := r.Keyer.ScheduleKey(graphHash+":"+opts.Start, opts.Mode, opts.Cycles)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if res, err := parseResult(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "schedule")
				res.GraphHash = graphHash
				res.CacheHit = true
				r.Logger.Debug("schedule cache hit", "key", key)
				return res, nil
			}
			// Undecodable entry, recompute below.
		}
		observability.Cache().OnCacheMiss(ctx, "schedule")
	}

	res, err := r.run(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	res.GraphHash = graphHash

	if data, err := exportResult(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLSchedule); err == nil {
			observability.Cache().OnCacheSet(ctx, "schedule", len(data))
		}
	}

	return res, nil
}

// run computes a Result without consulting the cache.
func (r *Runner) run(ctx context.Context, g *graph.Digraph, opts Options) (*Result, error) {
	res := &Result{}

	observability.Pipeline().OnDecyclifyStart(ctx, g.Len(), g.EdgeCount())
	decyclifyStart := time.Now()

	acyclic, removed, err := r.decyclify(g, opts.Start)
	observability.Pipeline().OnDecyclifyComplete(ctx, len(removed), time.Since(decyclifyStart), err)
	if err != nil {
		return nil, fmt.Errorf("decyclify: %w", err)
	}
	res.Graph = acyclic
	res.Removed = removed
	res.Stats.NodeCount = acyclic.Len()
	res.Stats.EdgeCount = acyclic.EdgeCount()
	res.Stats.RemovedCount = len(removed)
	res.Stats.DecyclifyTime = time.Since(decyclifyStart)

	r.Logger.Info("decyclified graph",
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"removed", res.Stats.RemovedCount,
		"duration", res.Stats.DecyclifyTime)

	if res.Intra, err = decyclify.IntraIteration(acyclic); err != nil {
		return nil, fmt.Errorf("intra matrix: %w", err)
	}
	if res.Inter, err = decyclify.InterIteration(acyclic.Nodes(), removed); err != nil {
		return nil, fmt.Errorf("inter matrix: %w", err)
	}

	observability.Pipeline().OnScheduleStart(ctx, opts.Mode, opts.Cycles)
	scheduleStart := time.Now()
	batches, err := r.schedule(acyclic, removed, opts)
	observability.Pipeline().OnScheduleComplete(ctx, opts.Mode, len(batches), time.Since(scheduleStart), err)
	if err != nil {
		return nil, fmt.Errorf("schedule: %w", err)
	}
	res.Batches = batches
	res.Stats.ScheduleTime = time.Since(scheduleStart)

	r.Logger.Info("computed schedule",
		"mode", opts.Mode,
		"cycles", opts.Cycles,
		"batches", len(batches),
		"duration", res.Stats.ScheduleTime)

	return res, nil
}

func (r *Runner) decyclify(g *graph.Digraph, start string) (*graph.Digraph, []graph.Edge, error) {
	if start != "" {
		return decyclify.DecyclifyFrom(g, start)
	}
	return decyclify.Decyclify(g)
}

func (r *Runner) schedule(acyclic *graph.Digraph, removed []graph.Edge, opts Options) ([]schedule.Batch, error) {
	switch opts.Mode {
	case ModeCycle:
		it, err := schedule.NewCycleIterator(acyclic, opts.Cycles)
		if err != nil {
			return nil, err
		}
		return it.Collect(), nil
	default:
		// The removed edges must travel with the acyclic graph: tasks mode
		// gates later cycles on them, and they also reflect opts.Start.
		it, err := schedule.NewDecyclifiedTasksIterator(acyclic, removed, opts.Cycles)
		if err != nil {
			return nil, err
		}
		return it.Collect(), nil
	}
}

// =============================================================================
// Cache Serialization
// =============================================================================

// wireResult is the cache entry format for a pipeline Result.
type wireResult struct {
	Graph   graph.WireGraph  `json:"graph"`
	Removed []graph.WireEdge `json:"removed"`
	Intra   [][]int          `json:"intra"`
	Inter   [][]int          `json:"inter"`
	Batches [][]string       `json:"batches"`
}

func exportResult(res *Result) ([]byte, error) {
	w := wireResult{
		Graph:   graph.ToWire(res.Graph),
		Removed: make([]graph.WireEdge, 0, len(res.Removed)),
		Intra:   res.Intra,
		Inter:   res.Inter,
		Batches: make([][]string, 0, len(res.Batches)),
	}
	for _, e := range res.Removed {
		w.Removed = append(w.Removed, graph.WireEdge{From: e.From, To: e.To})
	}
	for _, b := range res.Batches {
		w.Batches = append(w.Batches, b)
	}
	return json.Marshal(w)
}

func parseResult(data []byte) (*Result, error) {
	var w wireResult
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	g, err := graph.FromWire(w.Graph)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Graph: g,
		Intra: w.Intra,
		Inter: w.Inter,
	}
	for _, e := range w.Removed {
		res.Removed = append(res.Removed, graph.Edge{From: e.From, To: e.To})
	}
	for _, b := range w.Batches {
		res.Batches = append(res.Batches, schedule.Batch(b))
	}
	return res, nil
}
