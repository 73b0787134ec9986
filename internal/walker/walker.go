// Package walker enumerates candidate documentation files under a root
// directory, filtering by extension allow-list and directory exclude-list
// with a bounded recursion depth.
package walker

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/docsentry/docsentry/internal/logging"
)

// Options controls a traversal. Zero-value fields fall back to defaults.
type Options struct {
	Extensions  []string
	ExcludeDirs []string
	MaxDepth    int
}

// DefaultExtensions is the extension allow-list applied when none is
// configured.
var DefaultExtensions = []string{".md", ".txt", ".json", ".js", ".mjs", ".ts", ".yml", ".yaml"}

// DefaultExcludeDirs is the directory exclude-list applied when none is
// configured. Excluded names apply at any nesting level.
var DefaultExcludeDirs = []string{"node_modules", ".git", "dist", "build"}

// DefaultMaxDepth bounds recursion below the root.
const DefaultMaxDepth = 10

// Walker produces candidate file paths. Unreadable directories are skipped
// with a logged warning; they never fail the traversal.
type Walker struct {
	opts   Options
	logger logging.Logger
}

// New creates a walker with the given options, applying defaults for any
// unset field.
func New(opts Options, logger logging.Logger) *Walker {
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if len(opts.ExcludeDirs) == 0 {
		opts.ExcludeDirs = DefaultExcludeDirs
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Walker{opts: opts, logger: logger.WithComponent("walker")}
}

// Walk returns every file under root that carries an allowed extension and
// does not reside under an excluded directory name at any level. Order is
// directory-enumeration order. MaxDepth bounds the file depth: a file
// directly under root has depth 1, and files deeper than MaxDepth are
// excluded. A root that cannot be read at all is an error; unreadable
// subdirectories are skipped.
func (w *Walker) Walk(ctx context.Context, root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// A root that stats but cannot be enumerated is a hard
			// error. Permission and transient read errors on subtrees
			// are recovered; the rest of the tree is still visited.
			if path == root {
				return err
			}
			w.logger.Warn(ctx, err, "skipping unreadable path", "path", path)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && w.excluded(d.Name()) {
				return filepath.SkipDir
			}
			// A directory at MaxDepth can only hold entries deeper than
			// MaxDepth, so there is nothing left to collect under it.
			if w.depth(root, path) >= w.opts.MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if w.depth(root, path) > w.opts.MaxDepth {
			return nil
		}
		if w.allowed(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (w *Walker) allowed(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range w.opts.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (w *Walker) excluded(name string) bool {
	for _, ex := range w.opts.ExcludeDirs {
		if name == ex {
			return true
		}
	}
	return false
}

func (w *Walker) depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
