package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/taskweave/decyclify/pkg/decyclify"
)

// matrixOpts holds the command-line flags for the matrix command.
type matrixOpts struct {
	start string // override traversal start node
	intra bool   // print only the intra-iteration matrix
	inter bool   // print only the inter-iteration matrix
}

// newMatrixCmd creates the matrix command. It decyclifies the input graph
// and prints the intra-iteration matrix of the acyclic graph and the
// inter-iteration matrix built from the removed edges.
func newMatrixCmd() *cobra.Command {
	var opts matrixOpts

	cmd := &cobra.Command{
		Use:   "matrix <edge-list-file>",
		Short: "Print the dependency matrices of a task graph",
		Long: `Print the dependency matrices of a task graph.

The intra-iteration matrix encodes dependencies between tasks within one
cycle: cell (i, j) is 1 when node i depends on node j. The inter-iteration
matrix encodes the removed back-edges, which carry dependencies from one
cycle into the next.

Examples:
  decyclify matrix edges.txt
  decyclify matrix edges.txt --inter`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runMatrix(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.start, "start", "s", "", "traversal start node (defaults to the first node)")
	cmd.Flags().BoolVar(&opts.intra, "intra", false, "print only the intra-iteration matrix")
	cmd.Flags().BoolVar(&opts.inter, "inter", false, "print only the inter-iteration matrix")

	return cmd
}

func runMatrix(ctx context.Context, opts *matrixOpts, path string) error {
	logger := loggerFromContext(ctx)

	g, err := loadGraph(path)
	if err != nil {
		return err
	}

	acyclic, removed, err := decyclifyGraph(g, opts.start)
	if err != nil {
		return err
	}
	logger.Debug("decyclified", "removed", len(removed))

	both := opts.intra == opts.inter

	if both || opts.intra {
		intra, err := decyclify.IntraIteration(acyclic)
		if err != nil {
			return err
		}
		printMatrix("Intra-iteration", acyclic.Nodes(), intra)
	}
	if both || opts.inter {
		inter, err := decyclify.InterIteration(acyclic.Nodes(), removed)
		if err != nil {
			return err
		}
		printMatrix("Inter-iteration", acyclic.Nodes(), inter)
	}
	return nil
}
