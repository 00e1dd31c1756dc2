// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package watch regenerates documentation when metadata sources change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"grimm.is/compdoc/internal/errors"
	"grimm.is/compdoc/internal/logging"
)

// DefaultDebounce is how long changes are collected before a rebuild.
const DefaultDebounce = 200 * time.Millisecond

// Config configures a watcher.
type Config struct {
	// Roots are source directories or files. Files are watched through
	// their parent directory.
	Roots []string

	// Debounce is how long to wait for more changes before calling back.
	Debounce time.Duration

	// Filter reports whether a changed path is relevant. Nil accepts
	// metadata files: *.hcl, non-test *.go and *.properties.
	Filter func(path string) bool

	Logger *logging.Logger
}

// ChangeFunc handles a batch of changed paths. Calls never overlap.
type ChangeFunc func(ctx context.Context, changed []string) error

// Watcher watches metadata sources and reports debounced change batches.
type Watcher struct {
	config  Config
	watcher *fsnotify.Watcher
	logger  *logging.Logger

	// Debouncing: collect changes before processing
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op
}

// New creates a watcher on the configured roots.
func New(config Config) (*Watcher, error) {
	if len(config.Roots) == 0 {
		return nil, errors.New(errors.KindValidation, "nothing to watch")
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if config.Filter == nil {
		config.Filter = IsMetadataFile
	}

	logger := config.Logger
	if logger == nil {
		logger = logging.WithComponent("watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.KindInternal, "failed to create file watcher")
	}

	w := &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		pending: make(map[string]fsnotify.Op),
	}

	for _, root := range config.Roots {
		if err := w.addRoot(root); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// IsMetadataFile reports whether path is a descriptor or message bundle.
func IsMetadataFile(path string) bool {
	switch filepath.Ext(path) {
	case ".hcl", ".properties":
		return true
	case ".go":
		return !strings.HasSuffix(path, "_test.go")
	}
	return false
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run calls fn for every debounced batch of changes until ctx is done.
// Errors returned by fn are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, fn ChangeFunc) error {
	ticker := time.NewTicker(w.config.Debounce)
	defer ticker.Stop()

	w.logger.Info("Watching for changes", "roots", strings.Join(w.config.Roots, ","), "debounce", w.config.Debounce.String())

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			changed := w.takePending()
			if len(changed) == 0 {
				continue
			}
			w.logger.Info("Sources changed", "files", len(changed))
			if err := fn(ctx, changed); err != nil {
				w.logger.WithError(err).Error("Regeneration failed")
			}
		}
	}
}

func (w *Watcher) addRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.WithSource(errors.Wrap(err, errors.KindInput, "cannot watch source"), root)
	}
	if !info.IsDir() {
		return w.watcher.Add(filepath.Dir(root))
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}
		return nil
	})
}

// handleFSEvent records a single fsnotify event.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !strings.HasPrefix(filepath.Base(path), ".") {
				if err := w.watcher.Add(path); err != nil {
					w.logger.Warn("Failed to watch new directory", "path", path, "error", err)
				}
			}
			return
		}
	}

	if !w.config.Filter(path) {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("File change detected", "path", path, "op", event.Op.String())
}

// takePending returns and clears the accumulated changes, sorted.
func (w *Watcher) takePending() []string {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if len(w.pending) == 0 {
		return nil
	}
	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	w.pending = make(map[string]fsnotify.Op)

	sort.Strings(changed)
	return changed
}
