package output

import (
	"fmt"
	"io"
	"os"

	"github.com/pagevault/pagevault/internal/batch"
)

// RenameCompact renders planned renames one per line.
func RenameCompact(w io.Writer, ops []batch.RenameOp) {
	if len(ops) == 0 {
		fmt.Fprintln(os.Stderr, "Nothing to rename.")
		return
	}
	for _, op := range ops {
		fmt.Fprintf(w, "%s -> %s\n", op.OldName, op.NewName)
	}
}

// EventCompact renders one batch event as a single unstyled line.
func EventCompact(w io.Writer, ev batch.Event) {
	line := fmt.Sprintf("%d/%d %s %s", ev.Index, ev.Total, ev.Status, ev.URL)
	if ev.File != "" {
		line += " -> " + ev.File
	}
	if ev.Message != "" {
		line += " (" + ev.Message + ")"
	}
	fmt.Fprintln(w, line)
}

// SummaryCompact renders batch totals on one line.
func SummaryCompact(w io.Writer, sum batch.Summary) {
	fmt.Fprintf(w, "total=%d archived=%d skipped=%d failed=%d\n",
		sum.Total, sum.Archived, sum.Skipped, sum.Failed)
}
