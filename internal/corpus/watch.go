package corpus

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jonathan/skillmatch/internal/logging"
)

// DefaultDebounce coalesces the burst of events an editor or atomic rename produces.
const DefaultDebounce = 500 * time.Millisecond

// Reloader is the part of Store the watcher drives.
type Reloader interface {
	Reload(ctx context.Context) (*Snapshot, error)
}

// Watcher reloads a Store when its corpus file changes on disk.
type Watcher struct {
	path     string
	store    Reloader
	debounce time.Duration
	logger   logging.Logger
}

// NewWatcher creates a Watcher for path. A zero debounce uses DefaultDebounce.
func NewWatcher(path string, store Reloader, debounce time.Duration, logger logging.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Watcher{path: path, store: store, debounce: debounce, logger: logger}
}

// Run watches until ctx is cancelled. The parent directory is watched so that
// replace-by-rename writes are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Info("watching corpus file", logging.Fields{"path": w.path, "debounce": w.debounce.String()})

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("corpus watcher error", nil)

		case <-timer.C:
			if _, err := w.store.Reload(ctx); err != nil {
				w.logger.WithError(err).Warn("corpus reload rejected, keeping previous snapshot", logging.Fields{"path": w.path})
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) &&
		filepath.Base(event.Name) != filepath.Base(w.path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
