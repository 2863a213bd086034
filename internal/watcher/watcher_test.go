package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherFiresAfterChange(t *testing.T) {
	dir := t.TempDir()
	fired := make(chan struct{}, 1)
	w, err := New(dir, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, nil)

	if err := os.WriteFile(filepath.Join(dir, "capture.html"), []byte("<html></html>"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("callback never fired after a write")
	}
}

func TestWatcherMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "absent"), func() {}); err == nil {
		t.Fatal("New on a missing directory: expected an error")
	}
}
