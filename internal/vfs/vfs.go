// Package vfs watches source files for changes.
package vfs

import (
	"strings"
	"time"
)

// WatchOp indicates a change operation in the filesystem.
type WatchOp uint32

const (
	OpCreate WatchOp = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

func (op WatchOp) String() string {
	var parts []string
	for _, f := range []struct {
		op   WatchOp
		name string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
		{OpChmod, "CHMOD"},
	} {
		if op&f.op != 0 {
			parts = append(parts, f.name)
		}
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// Event describes a filesystem change event.
type Event struct {
	Path string
	Op   WatchOp
	Time time.Time
}

// Watcher provides a platform-independent file watching API. Events and
// Errors are closed by Close.
type Watcher interface {
	Events() <-chan Event
	Errors() <-chan error
	Add(name string) error
	Remove(name string) error
	Close() error
}

// NewWatcher returns an OS-native watcher, or a polling watcher when the
// platform offers no notifications.
func NewWatcher(pollInterval time.Duration) Watcher {
	if w, err := NewFSWatcher(); err == nil {
		return w
	}
	return NewPollingWatcher(pollInterval)
}
