// Package monitor watches an incoming directory for freshly captured pages
// and files them into the archive under synthesized names.
package monitor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pagevault/pagevault/internal/activity"
	"github.com/pagevault/pagevault/internal/batch"
	"github.com/pagevault/pagevault/internal/capture"
	"github.com/pagevault/pagevault/internal/filename"
	"github.com/pagevault/pagevault/internal/watcher"
)

// titleReadLimit bounds how much of a capture is read when extracting its
// title. The <title> tag sits in the head, so the first chunk is enough.
const titleReadLimit = 64 * 1024

// Monitor files captures from an incoming directory into the archive.
type Monitor struct {
	Engine      *filename.Engine
	ArchiveDir  string
	IncomingDir string
	Ext         string
	OnMoved     func(oldPath, newName string) // optional
}

// Sweep processes every capture currently in the incoming directory and
// returns the number of files moved. Files that cannot be moved are left in
// place; their errors are aggregated.
func (m *Monitor) Sweep() (int, error) {
	files, err := batch.Scan(m.IncomingDir, m.Ext)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, nil
	}
	reg, err := batch.LoadRegistry(m.ArchiveDir, m.Ext)
	if err != nil {
		return 0, err
	}

	moved := 0
	var firstErr error
	for _, f := range files {
		name, err := m.fileOne(f, reg)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		moved++
		activity.Record(m.ArchiveDir, activity.ActionRenamed, "", name, "filed from "+f.Name)
		if m.OnMoved != nil {
			m.OnMoved(f.Path(), name)
		}
	}
	return moved, firstErr
}

// fileOne derives a name for one incoming capture and moves it into the
// archive. The page title is preferred; the existing filename is the
// fallback when the markup carries none.
func (m *Monitor) fileOne(f batch.Archive, reg *filename.Registry) (string, error) {
	title := capture.TitleOrFallback(readHead(f.Path()), batch.TitleFromStem(f.Stem))
	stem := m.Engine.Stem(title, batch.URLFromStem(f.Stem), reg)
	name := stem + m.Ext

	dst := filepath.Join(m.ArchiveDir, name)
	if _, err := os.Stat(dst); err == nil {
		return "", fmt.Errorf("filing %s: target %s already exists", f.Name, name)
	}
	if err := os.Rename(f.Path(), dst); err != nil {
		return "", fmt.Errorf("filing %s: %w", f.Name, err)
	}
	return name, nil
}

// readHead returns up to titleReadLimit bytes of the file, or nil when it
// cannot be read.
func readHead(path string) []byte {
	f, err := os.Open(path) //nolint:gosec // path from scanned incoming dir
	if err != nil {
		return nil
	}
	defer f.Close()
	head, err := io.ReadAll(io.LimitReader(f, titleReadLimit))
	if err != nil {
		return nil
	}
	return head
}

// Run sweeps once, then watches the incoming directory and sweeps on every
// (debounced) change until the context is canceled. Sweep errors are passed
// to errFn, when non-nil.
func (m *Monitor) Run(ctx context.Context, errFn func(error)) error {
	report := func(err error) {
		if err != nil && errFn != nil {
			errFn(err)
		}
	}

	_, err := m.Sweep()
	report(err)

	w, err := watcher.New(m.IncomingDir, func() {
		_, serr := m.Sweep()
		report(serr)
	})
	if err != nil {
		return fmt.Errorf("watching %s: %w", m.IncomingDir, err)
	}
	defer w.Close()

	w.Run(ctx, errFn)
	return nil
}
