package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskweave/decyclify/pkg/decyclify"
	"github.com/taskweave/decyclify/pkg/graph"
	"github.com/taskweave/decyclify/pkg/schedule"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleRemoved   = lipgloss.NewStyle().Foreground(colorRed)
	styleMatrixOne = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printStats prints graph statistics on a single line.
func printStats(nodeCount, edgeCount, removedCount int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d nodes", nodeCount),
		fmt.Sprintf("%d edges", edgeCount),
		fmt.Sprintf("%d removed", removedCount),
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	line += StyleDim.Render(" · ") + statusStyle.Render(status)
	fmt.Println(line)
}

// =============================================================================
// Edges & Batches
// =============================================================================

// formatEdge renders an edge as "source → target".
func formatEdge(source, target string) string {
	return source + " " + iconArrow + " " + target
}

// printRemovedEdges lists the removed back-edges, one per line.
func printRemovedEdges(edges []graph.Edge) {
	for _, e := range edges {
		fmt.Println("  " + styleRemoved.Render(formatEdge(e.From, e.To)))
	}
}

// formatBatch renders a batch as "[a.0, b.0]".
func formatBatch(b schedule.Batch) string {
	return "[" + strings.Join(b, ", ") + "]"
}

// printBatches prints the schedule, one step per line.
func printBatches(batches []schedule.Batch) {
	width := len(fmt.Sprint(len(batches)))
	for i, b := range batches {
		step := fmt.Sprintf("%*d", width, i+1)
		fmt.Println("  " + StyleDim.Render("step "+step) + "  " + StyleValue.Render(formatBatch(b)))
	}
}

// =============================================================================
// Matrix Display
// =============================================================================

// formatMatrix renders a dependency matrix with node labels on both axes.
// Rows are downstream nodes, columns upstream nodes. An empty matrix renders
// as a single dim line.
func formatMatrix(nodes []string, m decyclify.Matrix) string {
	if m.Dim() == 0 {
		return StyleDim.Render("  (empty)")
	}

	width := 1
	for _, n := range nodes {
		if len(n) > width {
			width = len(n)
		}
	}

	var sb strings.Builder

	// Pad before styling: ANSI escape codes would otherwise count
	// toward the field width and break column alignment.
	pad := func(s string) string { return fmt.Sprintf("%*s", width, s) }

	// Header row with upstream node labels.
	sb.WriteString(strings.Repeat(" ", width+2))
	for _, n := range nodes {
		sb.WriteString(" " + StyleDim.Render(pad(n)))
	}
	sb.WriteString("\n")

	for i, row := range m {
		sb.WriteString("  " + StyleDim.Render(pad(nodes[i])))
		for _, v := range row {
			cell := pad(fmt.Sprint(v))
			if v != 0 {
				cell = styleMatrixOne.Render(cell)
			} else {
				cell = StyleDim.Render(cell)
			}
			sb.WriteString(" " + cell)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// printMatrix prints a titled matrix block.
func printMatrix(title string, nodes []string, m decyclify.Matrix) {
	fmt.Println(StyleTitle.Render(title))
	fmt.Println(formatMatrix(nodes, m))
}
