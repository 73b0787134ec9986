package report

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Markdown renders the human-readable report. Sections with no data are
// omitted; an empty batch still renders an all-zero summary table.
func (r *Report) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# Documentation Security Report\n\n")
	fmt.Fprintf(&sb, "- Scan ID: `%s`\n", r.Summary.ScanID)
	fmt.Fprintf(&sb, "- Generated: %s\n\n", r.Summary.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"))

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Count |\n|--------|-------|\n")
	fmt.Fprintf(&sb, "| Files processed | %d |\n", r.Summary.FilesProcessed)
	fmt.Fprintf(&sb, "| Files with issues | %d |\n", r.Summary.FilesWithIssue)
	fmt.Fprintf(&sb, "| Files failed | %d |\n", r.Summary.FilesFailed)
	fmt.Fprintf(&sb, "| Total matches | %d |\n", r.Summary.TotalMatches)
	if len(r.Sanitizations) > 0 {
		fmt.Fprintf(&sb, "| Files sanitized | %d |\n", r.Summary.FilesSanitized)
		fmt.Fprintf(&sb, "| Total changes | %d |\n", r.Summary.TotalChanges)
	}
	sb.WriteString("\n")

	writeCountSection(&sb, "By Severity", r.Summary.BySeverity)
	writeCountSection(&sb, "By Category", r.Summary.ByCategory)
	writeCountSection(&sb, "By Classification Tier", r.Summary.ByTier)

	if findings := r.findingRows(); len(findings) > 0 {
		sb.WriteString("## Findings\n\n")
		sb.WriteString("| File | Line | Category | Severity | Match |\n")
		sb.WriteString("|------|------|----------|----------|-------|\n")
		for _, row := range findings {
			sb.WriteString(row)
		}
		sb.WriteString("\n")
	}

	if len(r.Classifications) > 0 {
		sb.WriteString("## Classifications\n\n")
		sb.WriteString("| File | Tier | Confidence |\n|------|------|------------|\n")
		for _, c := range r.Classifications {
			fmt.Fprintf(&sb, "| %s | %s | %.2f |\n", c.FilePath, c.Classification, c.Confidence)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (r *Report) findingRows() []string {
	var rows []string
	for _, fs := range r.Scans {
		for _, m := range fs.Matches {
			rows = append(rows, fmt.Sprintf("| %s | %d | %s | %s | `%s` |\n",
				fs.Path, m.Line, m.Category, m.Severity, truncate(m.MatchedText, 40)))
		}
	}
	return rows
}

func writeCountSection(sb *strings.Builder, heading string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(sb, "## %s\n\n", heading)
	sb.WriteString("| Name | Count |\n|------|-------|\n")
	for _, k := range keys {
		fmt.Fprintf(sb, "| %s | %d |\n", titleCaser.String(k), counts[k])
	}
	sb.WriteString("\n")
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", "\\|")
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
