// internal/watch/watcher.go
// Package watch re-runs an action whenever the metrics artifact changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ArtifactWatcher monitors one file and calls OnChange after a quiet period.
type ArtifactWatcher struct {
	path     string
	onChange func()
	debounce time.Duration

	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	stopOnce sync.Once
	stopChan chan struct{}
	trigger  chan struct{}
}

// New creates a watcher for path. The parent directory must exist.
func New(path string, debounce time.Duration, onChange func()) (*ArtifactWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve artifact path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &ArtifactWatcher{
		path:     absPath,
		onChange: onChange,
		debounce: debounce,
		watcher:  w,
		stopChan: make(chan struct{}),
		trigger:  make(chan struct{}, 1),
	}, nil
}

// Start watches the artifact's directory so that the file may be created,
// replaced or removed while the watcher runs.
func (aw *ArtifactWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(aw.path)
	if err := aw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	slog.Info("Watching metrics artifact", "path", aw.path)

	go aw.watchLoop(ctx)
	go aw.fireLoop(ctx)
	return nil
}

// Stop releases the underlying watcher. It is safe to call more than once.
func (aw *ArtifactWatcher) Stop() error {
	var err error
	aw.stopOnce.Do(func() {
		close(aw.stopChan)
		err = aw.watcher.Close()
	})
	return err
}

func (aw *ArtifactWatcher) watchLoop(ctx context.Context) {
	name := filepath.Base(aw.path)
	for {
		select {
		case <-ctx.Done():
			return
		case <-aw.stopChan:
			return
		case event, ok := <-aw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op.Has(fsnotify.Chmod) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			slog.Debug("Artifact change detected", "file", event.Name, "op", event.Op.String())
			select {
			case aw.trigger <- struct{}{}:
			default:
			}
		case err, ok := <-aw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Artifact watcher error", "error", err)
		}
	}
}

func (aw *ArtifactWatcher) fireLoop(ctx context.Context) {
	var timer *time.Timer
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	for {
		select {
		case <-ctx.Done():
			stop()
			return
		case <-aw.stopChan:
			stop()
			return
		case <-aw.trigger:
			stop()
			timer = time.AfterFunc(aw.debounce, aw.fire)
		}
	}
}

func (aw *ArtifactWatcher) fire() {
	aw.mu.Lock()
	defer aw.mu.Unlock()
	select {
	case <-aw.stopChan:
		return
	default:
	}
	if aw.onChange != nil {
		aw.onChange()
	}
}
