// Package report folds per-file scan, classification, and sanitization
// results into an aggregate summary and renders it as JSON or markdown.
package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/docsentry/docsentry/internal/classifier"
	"github.com/docsentry/docsentry/internal/patterns"
	"github.com/docsentry/docsentry/internal/sanitizer"
	"github.com/docsentry/docsentry/internal/scanner"
)

// FileScan captures one file's scan outcome, including a recovered read
// error when the file could not be processed. ErrorType and Recoverable
// carry the error taxonomy through to report consumers.
type FileScan struct {
	Path        string          `json:"path"`
	Matches     []scanner.Match `json:"matches"`
	Error       string          `json:"error,omitempty"`
	ErrorType   string          `json:"errorType,omitempty"`
	Recoverable bool            `json:"recoverable,omitempty"`
}

// Summary aggregates a whole batch run.
type Summary struct {
	ScanID         string         `json:"scanId"`
	GeneratedAt    time.Time      `json:"generated"`
	FilesProcessed int            `json:"filesProcessed"`
	FilesWithIssue int            `json:"filesWithIssues"`
	FilesFailed    int            `json:"filesFailed"`
	TotalMatches   int            `json:"totalMatches"`
	BySeverity     map[string]int `json:"bySeverity"`
	ByCategory     map[string]int `json:"byCategory"`
	ByTier         map[string]int `json:"byTier"`
	FilesSanitized int            `json:"filesSanitized"`
	TotalChanges   int            `json:"totalChanges"`
}

// Report is the machine-readable batch result.
type Report struct {
	Summary         Summary             `json:"summary"`
	Scans           []FileScan          `json:"scans,omitempty"`
	Classifications []classifier.Result `json:"classifications,omitempty"`
	Sanitizations   []sanitizer.Result  `json:"sanitizations,omitempty"`
}

// Builder accumulates per-file results. It is append-only and
// single-writer; the batch pipeline adds results one file at a time.
type Builder struct {
	scans           []FileScan
	classifications []classifier.Result
	sanitizations   []sanitizer.Result
}

// NewBuilder creates an empty report builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddScan records one file's scan result.
func (b *Builder) AddScan(fs FileScan) {
	b.scans = append(b.scans, fs)
}

// AddClassification records one file's classification result.
func (b *Builder) AddClassification(r classifier.Result) {
	b.classifications = append(b.classifications, r)
}

// AddSanitization records one file's sanitization result.
func (b *Builder) AddSanitization(r sanitizer.Result) {
	b.sanitizations = append(b.sanitizations, r)
}

// Build computes the aggregate summary. Zero recorded files produce an
// all-zero summary.
func (b *Builder) Build() *Report {
	summary := Summary{
		ScanID:      uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		BySeverity:  map[string]int{},
		ByCategory:  map[string]int{},
		ByTier:      map[string]int{},
	}

	for _, fs := range b.scans {
		summary.FilesProcessed++
		if fs.Error != "" {
			summary.FilesFailed++
			continue
		}
		if len(fs.Matches) > 0 {
			summary.FilesWithIssue++
		}
		for _, m := range fs.Matches {
			summary.TotalMatches++
			summary.BySeverity[m.Severity.String()]++
			summary.ByCategory[m.Category]++
		}
	}

	for _, c := range b.classifications {
		if len(b.scans) == 0 {
			summary.FilesProcessed++
		}
		if !c.Processed {
			summary.FilesFailed++
		}
		summary.ByTier[string(c.Classification)]++
	}

	for _, s := range b.sanitizations {
		if len(b.scans) == 0 && len(b.classifications) == 0 {
			summary.FilesProcessed++
		}
		if s.Error != "" {
			summary.FilesFailed++
			continue
		}
		if s.WasSanitized {
			summary.FilesSanitized++
			summary.TotalChanges += len(s.Changes)
		}
	}

	return &Report{
		Summary:         summary,
		Scans:           b.scans,
		Classifications: b.classifications,
		Sanitizations:   b.sanitizations,
	}
}

// HasBlockingSeverity reports whether the batch found any HIGH or CRITICAL
// match.
func (r *Report) HasBlockingSeverity() bool {
	return r.Summary.BySeverity[patterns.SeverityHigh.String()] > 0 ||
		r.Summary.BySeverity[patterns.SeverityCritical.String()] > 0
}

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
