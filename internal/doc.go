// Package internal contains the core implementation packages for docsentry.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules while providing
// all the core functionality for the docsentry CLI tool.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - patterns: Detection taxonomy (secret/PII rules, tier signals, whitelist)
//   - walker: File enumeration with extension and directory filtering
//   - scanner: Pattern matching with line attribution and whitelist suppression
//   - classifier: Access-tier scoring with escalation overrides
//   - sanitizer: Category-specific redaction with backups and changelogs
//   - report: Result aggregation and JSON/markdown rendering
//   - access: Access-control configuration projection
//   - frontmatter: YAML front-matter metadata extraction
//   - gate: Quality-gate policy evaluation for CI
//   - watcher: File system monitoring with debouncing
//   - config: Configuration management via viper
//   - logging: Structured logging on log/slog
//   - errors: Structured errors and batch error collection
//
// # Pipeline Shape
//
// The pipeline is a linear batch: the walker enumerates paths, each file's
// content is read once and handed to the scanner, classifier, or sanitizer,
// and per-file results accumulate in the report builder. Per-file failures
// are recorded and skipped; nothing inside the pipeline is fatal.
package internal
