package vfs

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// PollingWatcher is a polling-based watcher portable across OSes. A watched
// directory reports changes of its direct entries.
type PollingWatcher struct {
	interval time.Duration
	evCh     chan Event
	erCh     chan error

	mu    sync.Mutex
	stops map[string]chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

// NewPollingWatcher polls every interval; a non-positive interval means 250ms.
func NewPollingWatcher(interval time.Duration) *PollingWatcher {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return &PollingWatcher{
		interval: interval,
		evCh:     make(chan Event, 64),
		erCh:     make(chan error, 1),
		stops:    make(map[string]chan struct{}),
	}
}

func (w *PollingWatcher) Events() <-chan Event { return w.evCh }
func (w *PollingWatcher) Errors() <-chan error { return w.erCh }

// Add starts polling name.
func (w *PollingWatcher) Add(name string) error {
	name = filepath.Clean(name)
	initial, err := snapshot(name)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.stops[name]; ok {
		return nil
	}
	stop := make(chan struct{})
	w.stops[name] = stop
	w.wg.Add(1)
	go w.poll(name, initial, stop)
	return nil
}

// Remove stops polling name.
func (w *PollingWatcher) Remove(name string) error {
	name = filepath.Clean(name)
	w.mu.Lock()
	defer w.mu.Unlock()
	if stop, ok := w.stops[name]; ok {
		close(stop)
		delete(w.stops, name)
	}
	return nil
}

func (w *PollingWatcher) Close() error {
	w.once.Do(func() {
		w.mu.Lock()
		for name, stop := range w.stops {
			close(stop)
			delete(w.stops, name)
		}
		w.mu.Unlock()
		w.wg.Wait()
		close(w.evCh)
		close(w.erCh)
	})
	return nil
}

// snapshot maps every file under watch to its modification time.
func snapshot(name string) (map[string]time.Time, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, err
	}
	files := map[string]time.Time{name: info.ModTime()}
	if !info.IsDir() {
		return files, nil
	}
	entries, err := os.ReadDir(name)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if fi, err := e.Info(); err == nil {
			files[filepath.Join(name, e.Name())] = fi.ModTime()
		}
	}
	return files, nil
}

func (w *PollingWatcher) poll(name string, last map[string]time.Time, stop chan struct{}) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		cur, err := snapshot(name)
		if err != nil {
			if os.IsNotExist(err) {
				cur = map[string]time.Time{}
			} else {
				select {
				case w.erCh <- err:
				default:
				}
				continue
			}
		}
		for path, mod := range cur {
			prev, seen := last[path]
			switch {
			case !seen:
				w.emit(Event{Path: path, Op: OpCreate, Time: time.Now()}, stop)
			case mod.After(prev):
				w.emit(Event{Path: path, Op: OpWrite, Time: time.Now()}, stop)
			}
		}
		for path := range last {
			if _, ok := cur[path]; !ok {
				w.emit(Event{Path: path, Op: OpRemove, Time: time.Now()}, stop)
			}
		}
		last = cur
	}
}

func (w *PollingWatcher) emit(ev Event, stop chan struct{}) {
	select {
	case w.evCh <- ev:
	case <-stop:
	}
}
