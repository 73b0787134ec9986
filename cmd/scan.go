package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docsentry/docsentry/internal/patterns"
	"github.com/docsentry/docsentry/internal/report"
	"github.com/docsentry/docsentry/internal/scanner"
)

var (
	scanOutput     string
	scanFormat     string
	scanCategories []string
)

// errBlockingFindings makes `scan` exit non-zero without cobra printing a
// usage screen for what is a policy decision, not a CLI mistake.
var errBlockingFindings = errors.New("scan found HIGH or CRITICAL findings")

// scanCmd represents the scan command.
var scanCmd = &cobra.Command{
	Use:   "scan <directory>",
	Short: "Scan documentation for secrets and PII",
	Long: `Scan all matching files under a directory for secrets and PII.

Matches are reported with their category, severity, and line number.
Known-safe example values (example.com, ${VAR} placeholders, your-*-here
shapes, already-redacted text) are suppressed.

The command exits 1 when any HIGH or CRITICAL severity match is found,
making it directly usable as a CI check.

Examples:
  docsentry scan ./docs
  docsentry scan ./docs --format json --output scan-report.json
  docsentry scan ./docs --categories secrets`,
	Args: cobra.ExactArgs(1),
	RunE: runScanCommand,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "Write the report to a file")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "", "Output format (json, markdown)")
	scanCmd.Flags().StringSliceVar(&scanCategories, "categories", []string{"secrets", "pii"}, "Pattern categories to scan for")
}

func runScanCommand(cmd *cobra.Command, args []string) error {
	deps, err := newPipelineDeps()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	logger := deps.logger.WithComponent("scan")

	purposes, err := resolvePurposes(scanCategories)
	if err != nil {
		return err
	}

	paths, err := deps.walker.Walk(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", args[0], err)
	}

	registry := patterns.NewRegistry()
	s := scanner.New(registry, deps.logger)
	builder := report.NewBuilder()

	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			docErr := deps.recordReadError(path, err)
			logger.Warn(ctx, docErr, "skipping unreadable file", "path", path)
			builder.AddScan(report.FileScan{
				Path:        path,
				Error:       docErr.Error(),
				ErrorType:   string(docErr.Type),
				Recoverable: docErr.Recoverable,
			})
			continue
		}
		matches := s.ScanContent(ctx, string(raw), purposes...)
		builder.AddScan(report.FileScan{Path: path, Matches: matches})
	}
	deps.logRecoveredErrors(ctx, logger)

	rep := builder.Build()
	printScanSummary(cmd, rep)
	if err := emitReport(cmd, deps, rep, scanFormat, scanOutput); err != nil {
		return err
	}

	if rep.HasBlockingSeverity() {
		return errBlockingFindings
	}
	return nil
}

// resolvePurposes maps --categories values onto registry purposes.
func resolvePurposes(categories []string) ([]patterns.Purpose, error) {
	var purposes []patterns.Purpose
	for _, c := range categories {
		switch strings.ToLower(strings.TrimSpace(c)) {
		case "secrets":
			purposes = append(purposes, patterns.PurposeSecrets)
		case "pii":
			purposes = append(purposes, patterns.PurposePII)
		default:
			return nil, fmt.Errorf("unknown category %q (supported: secrets, pii)", c)
		}
	}
	return purposes, nil
}

// emitReport prints the human-readable summary and optionally writes the
// report file in the requested format.
func emitReport(cmd *cobra.Command, deps *pipelineDeps, rep *report.Report, format, output string) error {
	if format == "" {
		format = deps.cfg.Report.Format
	}
	if output == "" {
		output = deps.cfg.Report.Output
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

	writeOutput(cmd.Context(), deps.logger, output, rendered)
	return nil
}

func printScanSummary(cmd *cobra.Command, rep *report.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Files processed:   %d\n", rep.Summary.FilesProcessed)
	fmt.Fprintf(out, "Files with issues: %d\n", rep.Summary.FilesWithIssue)
	fmt.Fprintf(out, "Total matches:     %d\n", rep.Summary.TotalMatches)
	if rep.Summary.FilesFailed > 0 {
		fmt.Fprintf(out, "Files failed:      %d\n", rep.Summary.FilesFailed)
	}
	for _, sev := range []string{"CRITICAL", "HIGH", "MEDIUM", "LOW"} {
		if n := rep.Summary.BySeverity[sev]; n > 0 {
			fmt.Fprintf(out, "  %-8s %d\n", sev, n)
		}
	}
}
