package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pagevault/pagevault/internal/filename"
)

// RenameOp is one planned rename inside the archive directory.
type RenameOp struct {
	Dir     string `json:"-"`
	OldName string `json:"old"`
	NewName string `json:"new"`
}

// PlanRenames computes the renames that bring existing archive files onto
// synthesized names. keep lists files that stay untouched (they seed the
// registry so new names cannot collide with them); candidates are processed
// in order. Files whose synthesized name equals their current name produce
// no op.
func PlanRenames(eng *filename.Engine, candidates, keep []Archive, ext string) []RenameOp {
	reg := filename.NewRegistry()
	for _, a := range keep {
		reg.Add(a.Stem)
	}

	var ops []RenameOp
	for _, a := range candidates {
		title := TitleFromStem(a.Stem)
		sourceURL := URLFromStem(a.Stem)
		stem := eng.Stem(title, sourceURL, reg)
		if stem == a.Stem {
			continue
		}
		ops = append(ops, RenameOp{
			Dir:     a.Dir,
			OldName: a.Name,
			NewName: stem + ext,
		})
	}
	return ops
}

// Apply executes the planned renames. It stops renaming a file whose target
// already exists on disk (the plan is stale) and reports it as an error, but
// carries on with the remaining ops. Each applied op is reported through
// onApplied, when non-nil.
func Apply(ops []RenameOp, onApplied func(RenameOp)) (applied int, errs []error) {
	for _, op := range ops {
		src := filepath.Join(op.Dir, op.OldName)
		dst := filepath.Join(op.Dir, op.NewName)
		if _, err := os.Stat(dst); err == nil {
			errs = append(errs, fmt.Errorf("renaming %s: target %s already exists", op.OldName, op.NewName))
			continue
		}
		if err := os.Rename(src, dst); err != nil {
			errs = append(errs, fmt.Errorf("renaming %s: %w", op.OldName, err))
			continue
		}
		applied++
		if onApplied != nil {
			onApplied(op)
		}
	}
	return applied, errs
}
