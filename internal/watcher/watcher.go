// Package watcher signals when the contents of a watched directory settle
// after a change.
package watcher

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long the directory must stay quiet before the callback
// fires. Captures arrive as bursts of create/write events; the delay folds
// each burst into one notification.
const settleDelay = 100 * time.Millisecond

// relevantOps are the event kinds that change the set of files to sweep.
const relevantOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher invokes a callback after changes to a single directory settle.
type Watcher struct {
	fsw      *fsnotify.Watcher
	onChange func()

	mu    sync.Mutex
	timer *time.Timer
}

// New watches dir. onChange runs on a timer goroutine after each settled
// burst of changes.
func New(dir string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return &Watcher{fsw: fsw, onChange: onChange}, nil
}

// Run blocks, dispatching settled-change notifications until ctx is canceled
// or the watcher is closed. Errors from the underlying filesystem watcher go
// to errFn when non-nil.
func (w *Watcher) Run(ctx context.Context, errFn func(error)) {
	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&relevantOps != 0 {
				w.resetTimer()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if errFn != nil {
				errFn(err)
			}
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) resetTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(settleDelay, w.onChange)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
