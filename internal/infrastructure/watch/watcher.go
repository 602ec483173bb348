package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// defaultDebounce coalesces the burst of events a single save produces
const defaultDebounce = 200 * time.Millisecond

// File watches a single file for writes and re-creations
type File struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger
}

// NewFile creates a watcher for path
func NewFile(path string, logger *zap.Logger) *File {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &File{path: path, debounce: defaultDebounce, logger: logger}
}

// Run calls onChange after the file is written or re-created, until ctx is
// cancelled. The parent directory is watched so atomic saves (write to a
// temporary file, rename over the original) and files that do not exist yet
// are picked up.
func (f *File) Run(ctx context.Context, onChange func(context.Context)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target := filepath.Clean(f.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	f.logger.Info("watching for changes", zap.String("path", target))

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			f.logger.Debug("file event", zap.String("path", target), zap.Stringer("op", event.Op))
			if timer == nil {
				timer = time.NewTimer(f.debounce)
			} else {
				timer.Reset(f.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			f.logger.Info("file changed", zap.String("path", target))
			onChange(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.logger.Error("watcher error", zap.Error(err))
		}
	}
}
