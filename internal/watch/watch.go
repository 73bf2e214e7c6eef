// Package watch reruns a callback whenever a file changes, with rapid
// successive writes collapsed into one run.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period after the last write before the
// callback runs.
const DefaultDebounce = 300 * time.Millisecond

// Callback is invoked after a change settles.
type Callback func(ctx context.Context) error

// Watcher watches one file. The parent directory is watched so that editors
// which replace the file instead of writing it in place are noticed too.
type Watcher struct {
	path     string
	debounce time.Duration
	callback Callback
	log      *zap.Logger

	mu    sync.Mutex
	timer *time.Timer

	// runMu serializes callback runs: a timer that fires while a rebuild
	// is still going waits for it.
	runMu sync.Mutex
}

// New creates a watcher for path. A zero debounce uses DefaultDebounce; a nil
// logger logs nothing.
func New(path string, debounce time.Duration, callback Callback, log *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "resolve watched path")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{path: abs, debounce: debounce, callback: callback, log: log}, nil
}

// Run blocks until ctx is done or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create fsnotify watcher")
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return errors.Wrapf(err, "watch %s", filepath.Dir(w.path))
	}
	w.log.Info("watching", zap.String("file", w.path))

	defer w.stop()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("change detected", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			w.schedule(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

// schedule debounces rapid changes into a single callback run.
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.run(ctx) })
}

func (w *Watcher) run(ctx context.Context) {
	w.runMu.Lock()
	defer w.runMu.Unlock()
	if ctx.Err() != nil {
		return
	}
	if err := w.callback(ctx); err != nil {
		w.log.Warn("rebuild failed", zap.Error(err))
	}
}

// stop cancels a pending run and waits for a running one to return.
func (w *Watcher) stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	w.runMu.Lock()
	defer w.runMu.Unlock()
}
