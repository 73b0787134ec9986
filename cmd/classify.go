package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docsentry/docsentry/internal/access"
	"github.com/docsentry/docsentry/internal/classifier"
	"github.com/docsentry/docsentry/internal/frontmatter"
	"github.com/docsentry/docsentry/internal/patterns"
	"github.com/docsentry/docsentry/internal/report"
)

var (
	classifyOutput string
	classifyFormat string
	classifyConfig string
)

// classifyCmd represents the classify command.
var classifyCmd = &cobra.Command{
	Use:   "classify <directory>",
	Short: "Assign PUBLIC/PARTNER/INTERNAL tiers to documentation files",
	Long: `Classify each file under a directory into an access-control tier
based on its path, content patterns, and front-matter metadata.

Any internal-signal match escalates the file to INTERNAL regardless of
path; partner signals lift PUBLIC files to PARTNER. Score ties resolve to
the higher-sensitivity tier.

With --access-config, an access-control configuration document is
additionally written as JSON, mapping each file to its allowed audiences.
This flag was previously called --config; it was renamed because --config
selects the docsentry configuration file.

Examples:
  docsentry classify ./docs
  docsentry classify ./docs --format json --output classifications.json
  docsentry classify ./docs --access-config access-control.json`,
	Args: cobra.ExactArgs(1),
	RunE: runClassifyCommand,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVarP(&classifyOutput, "output", "o", "", "Write the report to a file")
	classifyCmd.Flags().StringVarP(&classifyFormat, "format", "f", "", "Output format (json, markdown)")
	classifyCmd.Flags().StringVar(&classifyConfig, "access-config", "", "Write an access-control config JSON to a file")
}

func runClassifyCommand(cmd *cobra.Command, args []string) error {
	deps, err := newPipelineDeps()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	logger := deps.logger.WithComponent("classify")

	paths, err := deps.walker.Walk(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", args[0], err)
	}

	c := classifier.New(patterns.NewRegistry(), deps.logger)
	builder := report.NewBuilder()
	var results []classifier.Result

	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			docErr := deps.recordReadError(path, err)
			logger.Warn(ctx, docErr, "skipping unreadable file", "path", path)
			results = append(results, classifier.Unprocessed(path, docErr))
			builder.AddClassification(results[len(results)-1])
			continue
		}

		meta, body := frontmatter.Parse(string(raw))
		result := c.Classify(ctx, path, body, meta)
		results = append(results, result)
		builder.AddClassification(result)
	}
	deps.logRecoveredErrors(ctx, logger)

	rep := builder.Build()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Files classified: %d\n", rep.Summary.FilesProcessed)
	for _, tier := range []patterns.Level{patterns.LevelPublic, patterns.LevelPartner, patterns.LevelInternal} {
		fmt.Fprintf(out, "  %-8s %d\n", tier, rep.Summary.ByTier[string(tier)])
	}

	if err := emitReport(cmd, deps, rep, classifyFormat, classifyOutput); err != nil {
		return err
	}

	if classifyConfig != "" {
		cfg := access.Build(results)
		data, err := cfg.JSON()
		if err != nil {
			return fmt.Errorf("failed to render access-control config: %w", err)
		}
		writeOutput(ctx, deps.logger, classifyConfig, data)
	}
	return nil
}
