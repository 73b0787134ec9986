package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docsentry/docsentry/internal/patterns"
	"github.com/docsentry/docsentry/internal/scanner"
	"github.com/docsentry/docsentry/internal/watcher"
)

var watchDebounce time.Duration

// watchCmd represents the watch command.
var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Re-scan documentation files as they change",
	Long: `Watch a directory tree and incrementally scan changed files for
secrets and PII, printing findings as they appear. Rapid change bursts are
debounced into single scans.

Runs until interrupted (Ctrl-C).

Examples:
  docsentry watch ./docs
  docsentry watch ./docs --debounce 500ms`,
	Args: cobra.ExactArgs(1),
	RunE: runWatchCommand,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "Delay before scanning a burst of changes")
}

func runWatchCommand(cmd *cobra.Command, args []string) error {
	deps, err := newPipelineDeps()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := deps.logger.WithComponent("watch")
	s := scanner.New(patterns.NewRegistry(), deps.logger)
	out := cmd.OutOrStdout()

	filter := func(path string) bool {
		ext := strings.ToLower(filepath.Ext(path))
		for _, allowed := range deps.cfg.Scan.Extensions {
			if ext == allowed {
				return true
			}
		}
		return false
	}

	handler := func(paths []string) {
		for _, path := range paths {
			raw, err := os.ReadFile(path)
			if err != nil {
				// Deleted or locked mid-save; the next write retriggers.
				continue
			}
			matches := s.ScanContent(ctx, string(raw), patterns.PurposeSecrets, patterns.PurposePII)
			if len(matches) == 0 {
				fmt.Fprintf(out, "%s: clean\n", path)
				continue
			}
			for _, m := range matches {
				fmt.Fprintf(out, "%s:%d: [%s] %s\n", path, m.Line, m.Severity, m.Category)
			}
		}
	}

	fw, err := watcher.New(watchDebounce, filter, handler, deps.logger)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.AddRecursive(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to watch %s: %w", args[0], err)
	}

	fw.Start(ctx)
	logger.Info(ctx, "watching for changes", "root", args[0])
	fmt.Fprintf(out, "Watching %s (Ctrl-C to stop)\n", args[0])

	<-ctx.Done()
	if ctx.Err() == context.Canceled {
		fmt.Fprintln(out, "\nStopped")
	}
	return nil
}
