package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskweave/decyclify/pkg/pipeline"
)

// scheduleOpts holds the command-line flags for the schedule command.
type scheduleOpts struct {
	start   string // override traversal start node
	mode    string // iterator mode: cycle or tasks
	cycles  int    // number of repetitions
	noCache bool   // disable the schedule cache
	refresh bool   // bypass the cache for this run
}

// newScheduleCmd creates the schedule command. It runs the full pipeline:
// parse, decyclify, build matrices, and iterate the schedule for the
// requested number of cycles.
//
// Default options come from the config file when present:
//   - mode: tasks (overlap cycles where dependencies allow)
//   - cycles: 1
func newScheduleCmd() *cobra.Command {
	cfg := LoadConfigOrDefault()
	opts := scheduleOpts{mode: cfg.Mode, cycles: cfg.Cycles}

	cmd := &cobra.Command{
		Use:   "schedule <edge-list-file>",
		Short: "Compute ready batches across repeated cycles",
		Long: `Compute the batches in which tasks become ready to run.

In cycle mode each cycle finishes before the next begins. In tasks mode
later cycles start as soon as the removed back-edge dependencies allow,
overlapping work across cycles.

Examples:
  decyclify schedule edges.txt
  decyclify schedule edges.txt --cycles 3 --mode cycle`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runSchedule(c.Context(), cfg, &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.start, "start", "s", "", "traversal start node (defaults to the first node)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", opts.mode, "iterator mode: cycle or tasks")
	cmd.Flags().IntVarP(&opts.cycles, "cycles", "n", opts.cycles, "number of cycles to schedule")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the schedule cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache for this run")

	return cmd
}

func runSchedule(ctx context.Context, cfg Config, opts *scheduleOpts, path string) error {
	lines, err := readEdgeLines(path)
	if err != nil {
		return err
	}

	runner := newRunner(ctx, cfg, opts.noCache)
	defer runner.Cache.Close()

	res, err := runner.Execute(ctx, pipeline.Options{
		Edges:   lines,
		Start:   opts.start,
		Mode:    opts.mode,
		Cycles:  opts.cycles,
		Refresh: opts.refresh,
	})
	if err != nil {
		return err
	}

	printSuccess("Scheduled %d batches over %d cycles", len(res.Batches), opts.cycles)
	printBatches(res.Batches)
	if len(res.Removed) > 0 {
		printInfo("Back-edges carried between cycles:")
		printRemovedEdges(res.Removed)
	}
	printStats(res.Graph.Len(), res.Graph.EdgeCount(), len(res.Removed), res.CacheHit)

	if !res.CacheHit {
		printDetail("decyclify %s, schedule %s",
			res.Stats.DecyclifyTime.Round(time.Microsecond),
			res.Stats.ScheduleTime.Round(time.Microsecond))
	}
	return nil
}
