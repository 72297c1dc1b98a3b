package vfs

import (
	"context"
	"path/filepath"
	"time"
)

// WatchFile calls fn once per debounced burst of create or write events on
// path until ctx is done. The parent directory is watched so editors that
// replace the file on save are still observed. A nil w means NewWatcher.
func WatchFile(ctx context.Context, w Watcher, path string, debounce time.Duration, fn func(Event)) error {
	if w == nil {
		w = NewWatcher(debounce)
	}
	defer w.Close()

	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending Event
	)
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	defer stopTimer()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return err
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Path) != path || ev.Op&(OpCreate|OpWrite) == 0 {
				continue
			}
			pending = ev
			if debounce <= 0 {
				fn(pending)
				continue
			}
			stopTimer()
			timer = time.NewTimer(debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			fn(pending)
		}
	}
}
