package vfs

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatchOpString(t *testing.T) {
	tests := []struct {
		op       WatchOp
		expected string
	}{
		{0, "NONE"},
		{OpWrite, "WRITE"},
		{OpCreate | OpWrite, "CREATE|WRITE"},
		{OpRemove | OpChmod, "REMOVE|CHMOD"},
	}

	for i, tt := range tests {
		if got := tt.op.String(); got != tt.expected {
			t.Fatalf("tests[%d] - expected=%q, got=%q", i, tt.expected, got)
		}
	}
}

func touch(t *testing.T, p string, at time.Time) {
	t.Helper()
	if err := os.WriteFile(p, []byte("val x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(p, at, at); err != nil {
		t.Fatal(err)
	}
}

// waitFor reads events until one matches path and op.
func waitFor(t *testing.T, w Watcher, path string, op WatchOp) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-w.Events():
			if ev.Path == path && ev.Op&op != 0 {
				return
			}
		case <-deadline:
			t.Fatalf("timeout waiting for %s on %s", op, path)
		}
	}
}

func TestPollingWatcher(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.ng")
	touch(t, p, time.Now().Add(-time.Hour))

	w := NewPollingWatcher(20 * time.Millisecond)
	defer w.Close()
	if err := w.Add(dir); err != nil {
		t.Fatal(err)
	}

	touch(t, p, time.Now())
	waitFor(t, w, p, OpWrite)

	q := filepath.Join(dir, "b.ng")
	touch(t, q, time.Now())
	waitFor(t, w, q, OpCreate)

	if err := os.Remove(q); err != nil {
		t.Fatal(err)
	}
	waitFor(t, w, q, OpRemove)
}

func TestPollingWatcherMissingPath(t *testing.T) {
	w := NewPollingWatcher(0)
	defer w.Close()
	if err := w.Add(filepath.Join(t.TempDir(), "none")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got=%v", err)
	}
}

func TestWatcher_FSNotify(t *testing.T) {
	fw, err := NewFSWatcher()
	if err != nil {
		t.Skip("fsnotify unsupported on this platform")
	}
	dir := t.TempDir()
	if err := fw.Add(dir); err != nil {
		fw.Close()
		t.Skip("fsnotify add failed; skipping")
	}
	defer fw.Close()

	p := filepath.Join(dir, "c.ng")
	touch(t, p, time.Now())
	waitFor(t, fw, p, OpCreate|OpWrite)
}

func runWatchFile(t *testing.T, w Watcher) {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "main.ng")
	touch(t, p, time.Now().Add(-time.Hour))

	var calls atomic.Int32
	fired := make(chan struct{}, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- WatchFile(ctx, w, p, 150*time.Millisecond, func(Event) {
			calls.Add(1)
			fired <- struct{}{}
		})
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	touch(t, filepath.Join(dir, "other.ng"), time.Now())
	for i := 0; i < 3; i++ {
		touch(t, p, time.Now().Add(time.Duration(i+1)*time.Second))
		time.Sleep(30 * time.Millisecond)
	}

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		cancel()
		t.Fatal("timeout waiting for debounced callback")
	}
	time.Sleep(300 * time.Millisecond)
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("WatchFile returned %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("burst should fire once, got=%d", got)
	}
}

func TestWatchFilePolling(t *testing.T) {
	runWatchFile(t, NewPollingWatcher(20*time.Millisecond))
}

func TestWatchFileFSNotify(t *testing.T) {
	fw, err := NewFSWatcher()
	if err != nil {
		t.Skip("fsnotify unsupported on this platform")
	}
	runWatchFile(t, fw)
}
