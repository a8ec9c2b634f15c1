package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/taskweave/decyclify/pkg/graph"
	"github.com/taskweave/decyclify/pkg/schedule"
)

// playOpts holds the command-line flags for the play command.
type playOpts struct {
	start  string // override traversal start node
	mode   string // iterator mode: cycle or tasks
	cycles int    // number of repetitions
}

// newPlayCmd creates the play command, an interactive stepper through a
// schedule. Each step reveals the next batch of ready tasks, which makes
// the overlap between cycles in tasks mode easy to see.
func newPlayCmd() *cobra.Command {
	cfg := LoadConfigOrDefault()
	opts := playOpts{mode: cfg.Mode, cycles: cfg.Cycles}

	cmd := &cobra.Command{
		Use:   "play <edge-list-file>",
		Short: "Step through a schedule interactively",
		Long: `Step through a schedule one batch at a time.

Keys:
  space, enter, →   next batch
  ←, backspace      previous batch
  r                 restart
  q, esc            quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runPlay(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.start, "start", "s", "", "traversal start node (defaults to the first node)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", opts.mode, "iterator mode: cycle or tasks")
	cmd.Flags().IntVarP(&opts.cycles, "cycles", "n", opts.cycles, "number of cycles to schedule")

	return cmd
}

func runPlay(ctx context.Context, opts *playOpts, path string) error {
	g, err := loadGraph(path)
	if err != nil {
		return err
	}

	acyclic, removed, err := decyclifyGraph(g, opts.start)
	if err != nil {
		return err
	}

	batches, err := collectBatches(acyclic, removed, opts.mode, opts.cycles)
	if err != nil {
		return err
	}

	model := newPlayModel(removed, batches, opts.mode, opts.cycles)
	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

// collectBatches runs the selected iterator to completion. Tasks mode needs
// the removed back-edges alongside the acyclic graph, or later cycles would
// run ungated.
func collectBatches(acyclic *graph.Digraph, removed []graph.Edge, mode string, cycles int) ([]schedule.Batch, error) {
	switch mode {
	case "cycle":
		it, err := schedule.NewCycleIterator(acyclic, cycles)
		if err != nil {
			return nil, err
		}
		return it.Collect(), nil
	case "tasks":
		it, err := schedule.NewDecyclifiedTasksIterator(acyclic, removed, cycles)
		if err != nil {
			return nil, err
		}
		return it.Collect(), nil
	default:
		return nil, fmt.Errorf("unsupported mode %q (want cycle or tasks)", mode)
	}
}

// =============================================================================
// playModel - Interactive schedule stepper
// =============================================================================

// playModel is the bubbletea model for stepping through a schedule.
// step counts revealed batches, so step 0 shows nothing and step
// len(batches) shows the complete schedule.
type playModel struct {
	removed []graph.Edge
	batches []schedule.Batch
	mode    string
	cycles  int
	step    int
}

func newPlayModel(removed []graph.Edge, batches []schedule.Batch, mode string, cycles int) playModel {
	return playModel{
		removed: removed,
		batches: batches,
		mode:    mode,
		cycles:  cycles,
	}
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "enter", "right", "l":
			if m.step < len(m.batches) {
				m.step++
			}
		case "left", "backspace", "h":
			if m.step > 0 {
				m.step--
			}
		case "r":
			m.step = 0
		}
	}
	return m, nil
}

func (m playModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Schedule Playback"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s mode · %d cycles · step %d/%d", m.mode, m.cycles, m.step, len(m.batches))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("space next  ← back  r restart  q quit"))
	b.WriteString("\n\n")

	for i := 0; i < m.step; i++ {
		line := formatBatch(m.batches[i])
		if i == m.step-1 {
			b.WriteString("  " + StyleHighlight.Render("▸ "+line))
		} else {
			b.WriteString("  " + StyleValue.Render("  "+line))
		}
		b.WriteString("\n")
	}

	if m.step == len(m.batches) {
		b.WriteString("\n" + styleIconSuccess.Render(iconSuccess) + " " + StyleDim.Render("schedule complete"))
	}

	if len(m.removed) > 0 {
		b.WriteString("\n\n")
		b.WriteString(StyleDim.Render("back-edges carried between cycles:"))
		b.WriteString("\n")
		for _, e := range m.removed {
			b.WriteString("  " + styleRemoved.Render(formatEdge(e.From, e.To)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
