package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskweave/decyclify/pkg/graph"
)

// decyclifyOpts holds the command-line flags for the decyclify command.
type decyclifyOpts struct {
	start  string // override traversal start node
	output string // output file for the acyclic graph (JSON)
}

// newDecyclifyCmd creates the decyclify command. It reads a graph from an
// edge-list file (or stdin with "-"), removes the back-edges that close
// cycles, and reports them. With --output the resulting acyclic graph is
// written as JSON for use by other commands.
func newDecyclifyCmd() *cobra.Command {
	var opts decyclifyOpts

	cmd := &cobra.Command{
		Use:   "decyclify <edge-list-file>",
		Short: "Break cycles in a task graph",
		Long: `Break cycles in a directed task graph.

The input is an edge list, one "source target" pair per line, or a JSON
graph written by a previous run. Edges that close a cycle are removed in
traversal order and reported; the remaining graph is acyclic.

Examples:
  decyclify decyclify edges.txt
  cat edges.txt | decyclify decyclify -
  decyclify decyclify edges.txt --start c -o acyclic.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runDecyclify(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.start, "start", "s", "", "traversal start node (defaults to the first node)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the acyclic graph as JSON")

	return cmd
}

func runDecyclify(ctx context.Context, opts *decyclifyOpts, path string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	g, err := loadGraph(path)
	if err != nil {
		return err
	}
	logger.Debug("graph loaded", "nodes", g.Len(), "edges", g.EdgeCount())

	acyclic, removed, err := decyclifyGraph(g, opts.start)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Removed %d back-edges", len(removed)))

	if len(removed) == 0 {
		printSuccess("Graph is already acyclic")
	} else {
		printSuccess("Removed %d back-edges", len(removed))
		printRemovedEdges(removed)
	}
	printStats(acyclic.Len(), acyclic.EdgeCount(), len(removed), false)

	if opts.output != "" {
		if err := graph.WriteGraphFile(acyclic, opts.output); err != nil {
			return fmt.Errorf("write %s: %w", opts.output, err)
		}
		printFile(opts.output)
	}
	return nil
}
