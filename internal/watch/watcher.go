// # internal/watch/watcher.go
package watch

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"bundlelens/internal/observability"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-triggers analysis when the stats document is rewritten.
// The parent directory is watched rather than the file itself because
// most build tools replace the file via rename, which would drop an
// inode-level watch.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	target    string
	debounce  time.Duration
	onChange  func()

	pendingMu sync.Mutex
	timer     *time.Timer
}

func NewWatcher(statsPath string, debounce time.Duration, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(statsPath)
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsw,
		target:    abs,
		debounce:  debounce,
		onChange:  onChange,
	}, nil
}

func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(filepath.Dir(w.target)); err != nil {
		return err
	}

	go w.run()
	return nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if !w.matches(event.Name) {
				continue
			}

			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create ||
				event.Op&fsnotify.Rename == fsnotify.Rename {
				observability.WatchEventsTotal.Inc()
				w.schedule()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) matches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == w.target
}

func (w *Watcher) schedule() {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(w.debounce, w.onChange)
}

func (w *Watcher) Close() error {
	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pendingMu.Unlock()
	return w.fsWatcher.Close()
}
