package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsentry/docsentry/internal/classifier"
	"github.com/docsentry/docsentry/internal/patterns"
	"github.com/docsentry/docsentry/internal/sanitizer"
	"github.com/docsentry/docsentry/internal/scanner"
)

func TestBuildEmptyBatch(t *testing.T) {
	rep := NewBuilder().Build()

	assert.Equal(t, 0, rep.Summary.FilesProcessed)
	assert.Equal(t, 0, rep.Summary.FilesWithIssue)
	assert.Equal(t, 0, rep.Summary.TotalMatches)
	assert.NotEmpty(t, rep.Summary.ScanID)
	assert.False(t, rep.HasBlockingSeverity())
}

func TestBuildAggregatesScans(t *testing.T) {
	b := NewBuilder()
	b.AddScan(FileScan{Path: "a.md", Matches: []scanner.Match{
		{Category: "dbCredentials", Severity: patterns.SeverityCritical, Line: 3},
		{Category: "emails", Severity: patterns.SeverityMedium, Line: 9},
	}})
	b.AddScan(FileScan{Path: "b.md"})
	b.AddScan(FileScan{Path: "c.md", Error: "permission denied"})

	rep := b.Build()

	assert.Equal(t, 3, rep.Summary.FilesProcessed)
	assert.Equal(t, 1, rep.Summary.FilesWithIssue)
	assert.Equal(t, 1, rep.Summary.FilesFailed)
	assert.Equal(t, 2, rep.Summary.TotalMatches)
	assert.Equal(t, 1, rep.Summary.BySeverity["CRITICAL"])
	assert.Equal(t, 1, rep.Summary.BySeverity["MEDIUM"])
	assert.Equal(t, 1, rep.Summary.ByCategory["dbCredentials"])
	assert.True(t, rep.HasBlockingSeverity())
}

func TestBuildAggregatesClassifications(t *testing.T) {
	b := NewBuilder()
	b.AddClassification(classifier.Result{FilePath: "a.md", Classification: patterns.LevelPublic, Processed: true})
	b.AddClassification(classifier.Result{FilePath: "b.md", Classification: patterns.LevelInternal, Processed: true})
	b.AddClassification(classifier.Result{FilePath: "c.md", Classification: patterns.LevelPublic, Processed: false})

	rep := b.Build()

	assert.Equal(t, 3, rep.Summary.FilesProcessed)
	assert.Equal(t, 1, rep.Summary.FilesFailed)
	assert.Equal(t, 2, rep.Summary.ByTier["PUBLIC"])
	assert.Equal(t, 1, rep.Summary.ByTier["INTERNAL"])
}

func TestBuildAggregatesSanitizations(t *testing.T) {
	b := NewBuilder()
	b.AddSanitization(sanitizer.Result{FilePath: "a.md", WasSanitized: true, Changes: []sanitizer.Change{{}, {}}})
	b.AddSanitization(sanitizer.Result{FilePath: "b.md"})
	b.AddSanitization(sanitizer.Result{FilePath: "c.md", Error: "read-only filesystem"})

	rep := b.Build()

	assert.Equal(t, 3, rep.Summary.FilesProcessed)
	assert.Equal(t, 1, rep.Summary.FilesSanitized)
	assert.Equal(t, 2, rep.Summary.TotalChanges)
	assert.Equal(t, 1, rep.Summary.FilesFailed)
}

func TestJSONRoundTrip(t *testing.T) {
	b := NewBuilder()
	b.AddScan(FileScan{Path: "a.md", Matches: []scanner.Match{
		{Category: "awsKeys", MatchedText: "AKIA...", Severity: patterns.SeverityCritical, Line: 7},
	}})

	data, err := b.Build().JSON()
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded.Summary.TotalMatches)
	assert.Equal(t, 1, decoded.Summary.BySeverity["CRITICAL"])
}

func TestMarkdownRendering(t *testing.T) {
	b := NewBuilder()
	b.AddScan(FileScan{Path: "docs/a.md", Matches: []scanner.Match{
		{Category: "dbCredentials", MatchedText: "password: x|y", Severity: patterns.SeverityCritical, Line: 2},
	}})
	b.AddClassification(classifier.Result{FilePath: "docs/a.md", Classification: patterns.LevelInternal, Confidence: 0.8, Processed: true})

	md := b.Build().Markdown()

	assert.Contains(t, md, "# Documentation Security Report")
	assert.Contains(t, md, "## Summary")
	assert.Contains(t, md, "## Findings")
	assert.Contains(t, md, "docs/a.md")
	assert.Contains(t, md, "CRITICAL")
	// Pipes inside matched text must not break the table.
	assert.Contains(t, md, `password: x\|y`)
	assert.Contains(t, md, "INTERNAL")
}

func TestMarkdownEmptyBatch(t *testing.T) {
	md := NewBuilder().Build().Markdown()

	assert.Contains(t, md, "| Files processed | 0 |")
	assert.NotContains(t, md, "## Findings")
}
