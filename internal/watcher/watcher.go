// Package watcher drives incremental re-scans: it watches a documentation
// tree with fsnotify and delivers debounced batches of changed file paths.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/docsentry/docsentry/internal/logging"
)

// FileFilter decides whether a changed path is interesting.
type FileFilter func(path string) bool

// ChangeHandler receives one debounced batch of changed paths.
type ChangeHandler func(paths []string)

// FileWatcher watches a directory tree and debounces rapid change bursts
// (editors typically emit several events per save) into single batches.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	delay   time.Duration
	filter  FileFilter
	handler ChangeHandler
	logger  logging.Logger

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
}

// New creates a watcher with the given debounce delay.
func New(delay time.Duration, filter FileFilter, handler ChangeHandler, logger logging.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &FileWatcher{
		watcher: w,
		delay:   delay,
		filter:  filter,
		handler: handler,
		logger:  logger.WithComponent("watcher"),
		pending: make(map[string]struct{}),
	}, nil
}

// AddRecursive watches root and every subdirectory. Directories that
// cannot be read are skipped.
func (fw *FileWatcher) AddRecursive(ctx context.Context, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fw.logger.Warn(ctx, err, "skipping unwatchable path", "path", path)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return fw.watcher.Add(path)
		}
		return nil
	})
}

// Start runs the event loop until the context is canceled.
func (fw *FileWatcher) Start(ctx context.Context) {
	go fw.loop(ctx)
}

// Close releases the underlying fsnotify watcher.
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}

func (fw *FileWatcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(ctx, event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn(ctx, err, "watch error")
		}
	}
}

func (fw *FileWatcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}

	// New directories join the watch set so nested changes are seen.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = fw.watcher.Add(event.Name)
			return
		}
	}

	if fw.filter != nil && !fw.filter(event.Name) {
		return
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.pending[event.Name] = struct{}{}
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.delay, fw.flush)
}

func (fw *FileWatcher) flush() {
	fw.mu.Lock()
	paths := make([]string, 0, len(fw.pending))
	for p := range fw.pending {
		paths = append(paths, p)
	}
	fw.pending = make(map[string]struct{})
	fw.mu.Unlock()

	if len(paths) > 0 && fw.handler != nil {
		fw.handler(paths)
	}
}
