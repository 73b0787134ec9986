// Package scanner finds secret and PII pattern matches in document content.
//
// The scanner applies the registry's rule sets for a requested purpose set
// and reports each hit with its category, severity, and 1-based line
// number. Matches whose text satisfies a whitelist pattern (documentation
// placeholders, example domains, already-redacted runs) are suppressed to
// avoid false positives on example values.
package scanner

import (
	"context"
	"fmt"

	"github.com/docsentry/docsentry/internal/logging"
	"github.com/docsentry/docsentry/internal/patterns"
)

// Match is one pattern hit inside a document.
type Match struct {
	Category    string            `json:"category"`
	MatchedText string            `json:"matchedText"`
	Line        int               `json:"lineNumber"`
	Severity    patterns.Severity `json:"severity"`
}

// Scanner applies registry rules to text content. It holds no per-file
// state; one scanner serves a whole batch.
type Scanner struct {
	registry *patterns.Registry
	logger   logging.Logger
}

// New creates a scanner backed by the given registry.
func New(registry *patterns.Registry, logger logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Scanner{
		registry: registry,
		logger:   logger.WithComponent("scanner"),
	}
}

// ScanContent returns all non-whitelisted matches for the given purposes,
// ordered by purpose, then rule, then discovery offset. Output is
// deterministic for identical input. An empty result is the normal
// no-findings case, not an error.
func (s *Scanner) ScanContent(ctx context.Context, content string, purposes ...patterns.Purpose) []Match {
	index := newLineIndex(content)

	var matches []Match
	for _, purpose := range purposes {
		for _, rule := range s.registry.Rules(purpose) {
			found, err := s.applyRule(content, index, rule)
			if err != nil {
				// Static rules are pre-validated; an evaluation failure
				// skips that rule for this document only.
				s.logger.Warn(ctx, err, "pattern evaluation failed", "category", rule.Category)
				continue
			}
			matches = append(matches, found...)
		}
	}
	return matches
}

// applyRule evaluates one rule against the content. Regexp evaluation in
// Go does not return errors, but a panic inside a rule (for example a
// misbehaving replacement closure reused during scanning) is converted to
// an error so a single rule cannot abort the document.
func (s *Scanner) applyRule(content string, index *lineIndex, rule patterns.Rule) (found []Match, err error) {
	defer func() {
		if r := recover(); r != nil {
			found = nil
			err = fmt.Errorf("pattern %q panicked: %v", rule.Category, r)
		}
	}()

	locs := rule.Regex.FindAllStringIndex(content, -1)
	for _, loc := range locs {
		matched := content[loc[0]:loc[1]]
		if s.registry.IsSafe(matched) {
			continue
		}
		found = append(found, Match{
			Category:    rule.Category,
			MatchedText: matched,
			Line:        index.lineAt(loc[0]),
			Severity:    rule.Severity,
		})
	}
	return found, nil
}

// HasBlockingSeverity reports whether any match is HIGH or CRITICAL, the
// scan command's exit-code policy.
func HasBlockingSeverity(matches []Match) bool {
	for _, m := range matches {
		if m.Severity >= patterns.SeverityHigh {
			return true
		}
	}
	return false
}
