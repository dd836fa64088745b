package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the store when the dataset file changes. The parent
// directory is watched so atomic rename-into-place writes are seen.
type Watcher struct {
	path     string
	store    *Store
	log      *zap.Logger
	debounce time.Duration
	fw       *fsnotify.Watcher
}

// NewWatcher starts watching the directory holding path.
func NewWatcher(path string, store *Store, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{path: abs, store: store, log: log, debounce: 250 * time.Millisecond, fw: fw}, nil
}

// Run processes events until ctx is cancelled, then closes the watcher.
// Bursts of events are coalesced into one reload.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fw.Close()
	var (
		timer   *time.Timer
		trigger <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("dataset changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			trigger = timer.C
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))
		case <-trigger:
			trigger = nil
			w.reload(ctx)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) reload(ctx context.Context) {
	start := time.Now()
	if err := w.store.Reload(ctx); err != nil {
		w.log.Warn("dataset reload failed; keeping previous snapshot", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.log.Info("dataset reloaded",
		zap.String("path", w.path),
		zap.Int("rows", w.store.Current().Len()),
		zap.Duration("elapsed", time.Since(start)))
}
