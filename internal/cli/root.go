package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/taskweave/decyclify/pkg/buildinfo"
)

// Execute runs the decyclify CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext. Cancelling ctx aborts the running command; main wires
// it to SIGINT and SIGTERM.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "decyclify",
		Short:        "Decyclify breaks cycles in repeating task graphs",
		Long:         `Decyclify converts a directed cyclic graph of repeating task dependencies into an acyclic graph plus an explicit record of the removed back-edges, and uses that decomposition to schedule tasks across repeated cycles.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newDecyclifyCmd())
	root.AddCommand(newMatrixCmd())
	root.AddCommand(newScheduleCmd())
	root.AddCommand(newPlayCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
