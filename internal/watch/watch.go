// Package watch rebuilds an artifact whenever its terminfo source changes.
package watch

import (
	"context"
	"crypto/sha256"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/internal/logging"
)

// DefaultDebounce is used when a Watcher is given no delay.
const DefaultDebounce = 200 * time.Millisecond

// BuildFunc performs one rebuild.
type BuildFunc func(ctx context.Context) error

// Watcher runs a BuildFunc for every debounced change of one file.
type Watcher struct {
	path     string
	debounce time.Duration
	build    BuildFunc
	logger   *slog.Logger

	// lastHash is the content hash of the last attempted build.
	lastHash [sha256.Size]byte
}

// New creates a watcher for path. A non-positive debounce selects
// DefaultDebounce.
func New(path string, debounce time.Duration, build BuildFunc) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", path)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{path: abs, debounce: debounce, build: build}, nil
}

// Run builds once, then rebuilds after each burst of changes to the file
// until ctx is cancelled. Build failures are logged and do not stop the
// loop; the previous artifact stays in place. Run returns nil on
// cancellation and an error only if watching itself fails.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger = logging.FromContext(ctx)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer fsw.Close()

	// Editors often replace files by rename, which drops a watch on the
	// file itself. Watching the directory survives that.
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return errors.Wrapf(err, "watching %s", dir)
	}
	w.logger.Info("watching source", "path", w.path, "debounce", w.debounce)

	w.rebuild(ctx)

	// pending fires once the source has been quiet for the debounce delay.
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopped watching", "path", w.path)
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("source changed", "op", event.Op.String())
			pending = time.After(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-pending:
			pending = nil
			w.rebuild(ctx)
		}
	}
}

// rebuild runs the build unless the file content is unchanged since the
// last attempt.
func (w *Watcher) rebuild(ctx context.Context) {
	content, err := os.ReadFile(w.path)
	if err != nil {
		// A rename in progress; the Create that follows triggers another attempt.
		w.logger.Warn("reading source", "path", w.path, "error", err)
		return
	}

	sum := sha256.Sum256(content)
	if sum == w.lastHash {
		w.logger.Debug("source content unchanged, skipping rebuild")
		return
	}
	w.lastHash = sum

	start := time.Now()
	if err := w.build(ctx); err != nil {
		w.logger.Error("rebuild failed, keeping previous artifact", "error", err)
		return
	}
	w.logger.Info("rebuilt", "took", time.Since(start).Round(time.Millisecond))
}
