package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsentry/docsentry/internal/errors"
	"github.com/docsentry/docsentry/internal/patterns"
	"github.com/docsentry/docsentry/internal/report"
	"github.com/docsentry/docsentry/internal/sanitizer"
)

var (
	sanitizeDryRun   bool
	sanitizeNoBackup bool
	sanitizeOutput   string
	sanitizeFormat   string
)

// sanitizeCmd represents the sanitize command.
var sanitizeCmd = &cobra.Command{
	Use:   "sanitize <directory>",
	Short: "Redact secrets and PII in documentation files",
	Long: `Rewrite files under a directory with sensitive content replaced by
category-specific placeholders:

  API keys           [REDACTED-API-KEY]
  passwords          password: [REDACTED]
  emails             user@example.com
  private IPs        192.0.2.1
  private key blocks [REDACTED-PRIVATE-KEY] between the PEM markers
  crypto addresses   partial masking, middle replaced by *

Each modified file is backed up to <path>.backup-<timestamp> first unless
--no-backup is given. Sanitizing already-sanitized content is a no-op.

Examples:
  docsentry sanitize ./docs --dry-run
  docsentry sanitize ./docs --no-backup --output changes.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSanitizeCommand,
}

func init() {
	rootCmd.AddCommand(sanitizeCmd)

	sanitizeCmd.Flags().BoolVar(&sanitizeDryRun, "dry-run", false, "Compute changes without writing files")
	sanitizeCmd.Flags().BoolVar(&sanitizeNoBackup, "no-backup", false, "Skip per-file backups before overwriting")
	sanitizeCmd.Flags().StringVarP(&sanitizeOutput, "output", "o", "", "Write the change report to a file")
	sanitizeCmd.Flags().StringVarP(&sanitizeFormat, "format", "f", "", "Output format (json, markdown)")
}

func runSanitizeCommand(cmd *cobra.Command, args []string) error {
	deps, err := newPipelineDeps()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	paths, err := deps.walker.Walk(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", args[0], err)
	}

	opts := sanitizer.Options{
		DryRun: sanitizeDryRun || deps.cfg.Sanitize.DryRun,
		Backup: !sanitizeNoBackup && deps.cfg.Sanitize.Backup,
	}

	s := sanitizer.New(patterns.NewRegistry(), deps.logger)
	builder := report.NewBuilder()

	for _, path := range paths {
		result := s.SanitizeFile(ctx, path, opts)
		if result.Error != "" {
			de := errors.New(errors.ErrorType(result.ErrorType), "IO_SANITIZE", result.Error)
			de.FilePath = result.FilePath
			de.Recoverable = result.Recoverable
			deps.collector.Add(de)
		}
		builder.AddSanitization(result)
	}
	deps.logRecoveredErrors(ctx, deps.logger.WithComponent("sanitize"))

	rep := builder.Build()
	out := cmd.OutOrStdout()
	if opts.DryRun {
		fmt.Fprintln(out, "Dry run: no files were modified")
	}
	fmt.Fprintf(out, "Files processed: %d\n", rep.Summary.FilesProcessed)
	fmt.Fprintf(out, "Files sanitized: %d\n", rep.Summary.FilesSanitized)
	fmt.Fprintf(out, "Total changes:   %d\n", rep.Summary.TotalChanges)
	if rep.Summary.FilesFailed > 0 {
		fmt.Fprintf(out, "Files failed:    %d\n", rep.Summary.FilesFailed)
	}

	return emitSanitizeReport(cmd, deps, rep)
}

func emitSanitizeReport(cmd *cobra.Command, deps *pipelineDeps, rep *report.Report) error {
	if sanitizeOutput == "" {
		return nil
	}

	format := sanitizeFormat
	if format == "" {
		format = deps.cfg.Report.Format
	}

	var rendered []byte
	switch format {
	case "json":
		data, err := rep.JSON()
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		rendered = data
	case "markdown":
		rendered = []byte(rep.Markdown())
	default:
		return fmt.Errorf("unsupported format: %s (supported: json, markdown)", format)
	}

	writeOutput(cmd.Context(), deps.logger, sanitizeOutput, rendered)
	return nil
}
