package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsentry/docsentry/internal/logging"
)

// collector gathers debounced batches for assertions.
type collector struct {
	mu      sync.Mutex
	batches [][]string
}

func (c *collector) handle(paths []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, paths)
}

func (c *collector) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, b := range c.batches {
		out = append(out, b...)
	}
	return out
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestWatcherDeliversChanges(t *testing.T) {
	dir := t.TempDir()
	c := &collector{}

	mdOnly := func(path string) bool { return strings.HasSuffix(path, ".md") }

	fw, err := New(50*time.Millisecond, mdOnly, c.handle, logging.NopLogger{})
	require.NoError(t, err)
	defer fw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, fw.AddRecursive(ctx, dir))
	fw.Start(ctx)

	target := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(target, []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.png"), []byte("x"), 0o644))

	ok := waitFor(t, 2*time.Second, func() bool {
		return len(c.all()) > 0
	})
	require.True(t, ok, "expected a change batch")

	for _, p := range c.all() {
		assert.True(t, strings.HasSuffix(p, ".md"), "filter must exclude %s", p)
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	c := &collector{}

	fw, err := New(100*time.Millisecond, nil, c.handle, logging.NopLogger{})
	require.NoError(t, err)
	defer fw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, fw.AddRecursive(ctx, dir))
	fw.Start(ctx)

	target := filepath.Join(dir, "doc.md")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(target, []byte(strings.Repeat("x", i+1)), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	waitFor(t, 2*time.Second, func() bool { return len(c.all()) > 0 })

	c.mu.Lock()
	batchCount := len(c.batches)
	c.mu.Unlock()
	assert.LessOrEqual(t, batchCount, 2, "burst should collapse into few batches")
}
