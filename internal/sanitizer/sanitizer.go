// Package sanitizer produces redacted copies of document content with
// matched secrets and PII replaced by category-specific placeholders, plus
// an ordered changelog of every edit.
//
// Replacements use the same whitelist as the scanner, and the whitelist
// covers the sanitizer's own placeholder vocabulary, so sanitizing
// already-sanitized content yields zero further changes.
package sanitizer

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/docsentry/docsentry/internal/errors"
	"github.com/docsentry/docsentry/internal/logging"
	"github.com/docsentry/docsentry/internal/patterns"
)

// Change records one applied redaction.
type Change struct {
	Category    string `json:"category"`
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
	Line        int    `json:"lineNumber"`
}

// Result is the outcome of sanitizing one document's content. Recovered
// failures carry the error taxonomy: their type and whether the batch may
// continue past them.
type Result struct {
	FilePath     string   `json:"filePath"`
	Content      string   `json:"-"`
	Changes      []Change `json:"changes"`
	WasSanitized bool     `json:"wasSanitized"`
	Error        string   `json:"error,omitempty"`
	ErrorType    string   `json:"errorType,omitempty"`
	Recoverable  bool     `json:"recoverable,omitempty"`
}

func (r *Result) recordError(de *errors.DocsentryError) {
	r.Error = de.Error()
	r.ErrorType = string(de.Type)
	r.Recoverable = de.Recoverable
}

// Options controls file-level sanitization behavior.
type Options struct {
	// DryRun computes changes without writing anything.
	DryRun bool
	// Backup writes <path>.backup-<unix-ts> before overwriting.
	Backup bool
}

// Sanitizer applies category replacement functions from the registry.
type Sanitizer struct {
	registry *patterns.Registry
	logger   logging.Logger
}

// New creates a sanitizer backed by the given registry.
func New(registry *patterns.Registry, logger logging.Logger) *Sanitizer {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Sanitizer{
		registry: registry,
		logger:   logger.WithComponent("sanitizer"),
	}
}

// SanitizeContent redacts all non-whitelisted matches in content and
// returns the new content plus the ordered changelog. Rules are applied
// pass by pass over the evolving content; line numbers refer to the
// content as seen by that pass.
func (s *Sanitizer) SanitizeContent(ctx context.Context, content string) (string, []Change) {
	changes := []Change{}

	for _, purpose := range s.registry.SanitizePurposes() {
		for _, rule := range s.registry.Rules(purpose) {
			if rule.Replace == nil {
				continue
			}
			content = s.applyRule(content, rule, &changes)
		}
	}
	return content, changes
}

// applyRule rewrites all matches of one rule, skipping whitelisted match
// text, and appends the edits to the changelog.
func (s *Sanitizer) applyRule(content string, rule patterns.Rule, changes *[]Change) string {
	locs := rule.Regex.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return content
	}

	newlines := newlineOffsets(content)

	var sb strings.Builder
	sb.Grow(len(content))
	prev := 0
	for _, loc := range locs {
		matched := content[loc[0]:loc[1]]
		if s.registry.IsSafe(matched) {
			continue
		}
		replacement := rule.Replace(matched)
		sb.WriteString(content[prev:loc[0]])
		sb.WriteString(replacement)
		prev = loc[1]

		*changes = append(*changes, Change{
			Category:    rule.Category,
			Original:    matched,
			Replacement: replacement,
			Line:        lineAt(newlines, loc[0]),
		})
	}
	sb.WriteString(content[prev:])
	return sb.String()
}

// SanitizeFile sanitizes one file on disk. Read or write failures are
// recovered per-file: the result carries the typed error and the batch
// continues.
func (s *Sanitizer) SanitizeFile(ctx context.Context, path string, opts Options) Result {
	raw, err := os.ReadFile(path)
	if err != nil {
		de := errors.WrapFile(err, errors.ErrorTypeIO, "IO_READ", "cannot read file", path)
		s.logger.Warn(ctx, de, "cannot read file", "path", path)
		result := Result{FilePath: path}
		result.recordError(de)
		return result
	}

	sanitized, changes := s.SanitizeContent(ctx, string(raw))
	result := Result{
		FilePath:     path,
		Content:      sanitized,
		Changes:      changes,
		WasSanitized: len(changes) > 0,
	}

	if opts.DryRun || !result.WasSanitized {
		return result
	}

	if opts.Backup {
		backupPath := fmt.Sprintf("%s.backup-%d", path, time.Now().Unix())
		if err := os.WriteFile(backupPath, raw, 0o644); err != nil {
			result.recordError(errors.WrapFile(err, errors.ErrorTypeIO, "IO_WRITE", "cannot write backup file", backupPath))
			return result
		}
	}

	if err := os.WriteFile(path, []byte(sanitized), 0o644); err != nil {
		de := errors.WrapFile(err, errors.ErrorTypeIO, "IO_WRITE", "cannot write sanitized file", path)
		s.logger.Warn(ctx, de, "cannot write sanitized file", "path", path)
		result.recordError(de)
	}
	return result
}

func newlineOffsets(content string) []int {
	var offsets []int
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

func lineAt(newlines []int, offset int) int {
	line := 1
	for _, nl := range newlines {
		if nl >= offset {
			break
		}
		line++
	}
	return line
}
