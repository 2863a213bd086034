package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/pagevault/pagevault/internal/batch"
)

func init() {
	// Monochrome terminals get plain output without needing NO_COLOR.
	if termenv.EnvColorProfile() == termenv.Ascii {
		DisableColor()
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	arrowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))

	// Outcome colors for batch run rows.
	statusStyles = map[batch.Status]lipgloss.Style{
		batch.StatusArchived: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		batch.StatusSkipped:  lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		batch.StatusFailed:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		batch.StatusRetrying: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	}
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	arrowStyle = lipgloss.NewStyle()
	statusStyles = map[batch.Status]lipgloss.Style{}
}

// RenameTable renders planned renames as an old -> new listing.
func RenameTable(w io.Writer, ops []batch.RenameOp) {
	if len(ops) == 0 {
		fmt.Fprintln(os.Stderr, "Nothing to rename.")
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%d rename(s) planned", len(ops))))
	for _, op := range ops {
		fmt.Fprintf(w, "  %s\n  %s %s\n", dimStyle.Render(op.OldName), arrowStyle.Render("->"), op.NewName)
	}
}

// ResultLine renders one batch event as a progress row.
func ResultLine(w io.Writer, ev batch.Event) {
	status := string(ev.Status)
	if st, ok := statusStyles[ev.Status]; ok {
		status = st.Render(status)
	}
	line := fmt.Sprintf("[%d/%d] %s %s", ev.Index, ev.Total, padRight(status, 10), ev.URL)
	if ev.File != "" {
		line += " " + arrowStyle.Render("->") + " " + ev.File
	}
	if ev.Message != "" {
		line += " " + dimStyle.Render("("+ev.Message+")")
	}
	fmt.Fprintln(w, line)
}

// SummaryTable renders the totals of a batch run.
func SummaryTable(w io.Writer, sum batch.Summary) {
	fmt.Fprintln(w, headerStyle.Render("Batch complete"))
	fmt.Fprintf(w, "  %-10s %d\n", "total:", sum.Total)
	fmt.Fprintf(w, "  %-10s %d\n", "archived:", sum.Archived)
	fmt.Fprintf(w, "  %-10s %d\n", "skipped:", sum.Skipped)
	if sum.Failed > 0 {
		failed := statusStyles[batch.StatusFailed].Render(fmt.Sprintf("%d", sum.Failed))
		fmt.Fprintf(w, "  %-10s %s\n", "failed:", failed)
	} else {
		fmt.Fprintf(w, "  %-10s %d\n", "failed:", sum.Failed)
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}
