package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/docsentry/docsentry/internal/config"
	"github.com/docsentry/docsentry/internal/errors"
	"github.com/docsentry/docsentry/internal/logging"
	"github.com/docsentry/docsentry/internal/walker"
)

// pipelineDeps bundles what every batch command needs: the loaded config,
// a logger honoring --log-level/--log-format, a traversal walker, and the
// collector accumulating per-file failures recovered during the batch.
type pipelineDeps struct {
	cfg       *config.Config
	logger    logging.Logger
	walker    *walker.Walker
	collector *errors.ErrorCollector
}

func newPipelineDeps() (*pipelineDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: viper.GetString("log_format"),
		Output: os.Stderr,
	})

	w := walker.New(walker.Options{
		Extensions:  cfg.Scan.Extensions,
		ExcludeDirs: cfg.Scan.ExcludeDirs,
		MaxDepth:    cfg.Scan.MaxDepth,
	}, logger)

	return &pipelineDeps{
		cfg:       cfg,
		logger:    logger,
		walker:    w,
		collector: errors.NewErrorCollector(),
	}, nil
}

// recordReadError wraps a recovered file-read failure, adds it to the batch
// collector, and returns the typed error for reporting.
func (d *pipelineDeps) recordReadError(path string, cause error) *errors.DocsentryError {
	de := errors.WrapFile(cause, errors.ErrorTypeIO, "IO_READ", "failed to read file", path)
	d.collector.Add(de)
	return de
}

// logRecoveredErrors summarizes per-file failures recovered during a batch.
func (d *pipelineDeps) logRecoveredErrors(ctx context.Context, logger logging.Logger) {
	if d.collector.HasErrors() {
		logger.Warn(ctx, nil, "batch completed with recovered file errors", "count", d.collector.Count())
	}
}

// writeOutput writes report bytes to path, degrading to a console warning
// when the write fails so computed results are never lost silently.
func writeOutput(ctx context.Context, logger logging.Logger, path string, data []byte) {
	if path == "" {
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Warn(ctx, err, "failed to write report file, console output only", "path", path)
		return
	}
	fmt.Fprintln(os.Stderr, "Report written to", path)
}
