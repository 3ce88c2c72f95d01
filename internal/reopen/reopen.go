// Package reopen provides a file writer that survives external log
// rotation. Rotation itself stays with whatever tool the operator uses
// (logrotate, copytruncate excluded); we only notice the path going
// away and start a fresh file there.
package reopen

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

const fileMode = 0o644

// Writer appends to a file and reopens it when the path is renamed or
// removed underneath us. Safe for concurrent writes.
type Writer struct {
	path string

	mu sync.Mutex
	f  *os.File

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Open creates (or appends to) the file at path and starts watching
// its directory for rotation events.
func Open(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileMode)
	if err != nil {
		return nil, err
	}

	w := &Writer{path: path, f: f, done: make(chan struct{})}

	// Watch the parent directory: watching the file itself would lose
	// the watch on the first rename.
	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		err = watcher.Add(filepath.Dir(path))
	}
	if err != nil {
		// Degrade to a plain file writer. Rotation just won't be
		// followed, which beats refusing to log at all.
		if watcher != nil {
			_ = watcher.Close()
		}
		close(w.done)
		return w, nil
	}

	w.watcher = watcher
	go w.watch()
	return w, nil
}

func (w *Writer) watch() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
				w.reopen()
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Writer) reopen() {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lloggs: reopening log file %q: %v\n", w.path, err)
		return
	}
	w.mu.Lock()
	old := w.f
	w.f = f
	w.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
}

func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return 0, os.ErrClosed
	}
	return w.f.Write(p)
}

// Close stops the rotation watcher and closes the file.
func (w *Writer) Close() error {
	if w.watcher != nil {
		_ = w.watcher.Close()
		<-w.done
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	err := w.f.Close()
	w.f = nil
	return err
}
