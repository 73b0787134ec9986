// Package patterns holds the static detection taxonomy shared by the
// scanner, classifier, and sanitizer: secret and PII rules, tier signal
// patterns for content and file paths, metadata tag vocabularies, and the
// whitelist of known-safe placeholder shapes.
//
// The registry is built once at process start and is read-only thereafter.
// Components receive it at construction time; there is no package-level
// mutable state.
package patterns

import (
	"regexp"
	"strings"
)

// Rule pairs a compiled expression with its category, severity, and an
// optional replacement function used by the sanitizer. Rules with a nil
// Replace are detect-only.
type Rule struct {
	Category string
	Regex    *regexp.Regexp
	Severity Severity
	Replace  func(match string) string
}

// Registry is the immutable rule store. An unknown purpose key yields an
// empty rule list, never an error.
type Registry struct {
	rules map[Purpose][]Rule
	safe  []*regexp.Regexp
	tags  map[Level][]string
}

// Rules returns the ordered rule list for a purpose. The returned slice
// must not be modified.
func (r *Registry) Rules(purpose Purpose) []Rule {
	return r.rules[purpose]
}

// SanitizePurposes lists the purposes whose rules carry replacement
// functions, in the order the sanitizer applies them.
func (r *Registry) SanitizePurposes() []Purpose {
	return []Purpose{PurposeSecrets, PurposePII}
}

// IsSafe reports whether a matched substring satisfies any whitelist
// pattern and should be suppressed as a known-safe example value. The
// whitelist includes the sanitizer's own placeholder vocabulary so that
// sanitized output scans clean.
func (r *Registry) IsSafe(matched string) bool {
	for _, re := range r.safe {
		if re.MatchString(matched) {
			return true
		}
	}
	return false
}

// MetadataTags returns the front-matter tag vocabulary that signals the
// given tier.
func (r *Registry) MetadataTags(level Level) []string {
	return r.tags[level]
}

func literalReplacement(text string) func(string) string {
	return func(string) string { return text }
}

// maskMiddle keeps the first and last four characters of a matched value
// and replaces the middle run with asterisks, capped at 20.
func maskMiddle(match string) string {
	if len(match) <= 8 {
		return strings.Repeat("*", len(match))
	}
	middle := len(match) - 8
	if middle > 20 {
		middle = 20
	}
	return match[:4] + strings.Repeat("*", middle) + match[len(match)-4:]
}

// NewRegistry builds the default rule registry.
func NewRegistry() *Registry {
	dbCredRe := regexp.MustCompile(`(?i)\b(password|passwd|pwd)\b\s*[:=]\s*['"]?[^\s'"]+['"]?`)
	pemRe := regexp.MustCompile(`(-----BEGIN [A-Z ]*PRIVATE KEY-----)[\s\S]+?(-----END [A-Z ]*PRIVATE KEY-----)`)

	secrets := []Rule{
		{
			Category: "apiKeys",
			Regex:    regexp.MustCompile(`(?i)\b(?:api[_-]?key|apikey|access[_-]?key|secret[_-]?key)\b\s*[:=]\s*["']?[A-Za-z0-9/+=_.\-]{8,}["']?`),
			Severity: SeverityHigh,
			Replace:  literalReplacement("[REDACTED-API-KEY]"),
		},
		{
			Category: "awsKeys",
			Regex:    regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
			Severity: SeverityCritical,
			Replace:  literalReplacement("[REDACTED-AWS-KEY]"),
		},
		{
			Category: "githubTokens",
			Regex:    regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36}\b`),
			Severity: SeverityCritical,
			Replace:  literalReplacement("[REDACTED-GITHUB-TOKEN]"),
		},
		{
			Category: "slackTokens",
			Regex:    regexp.MustCompile(`\bxox[baprs]-[0-9A-Za-z-]{10,}\b`),
			Severity: SeverityHigh,
			Replace:  literalReplacement("[REDACTED-SLACK-TOKEN]"),
		},
		{
			Category: "googleApiKeys",
			Regex:    regexp.MustCompile(`\bAIza[0-9A-Za-z_\-]{35}\b`),
			Severity: SeverityHigh,
			Replace:  literalReplacement("[REDACTED-GOOGLE-KEY]"),
		},
		{
			Category: "jwtTokens",
			Regex:    regexp.MustCompile(`\beyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\b`),
			Severity: SeverityHigh,
			Replace:  literalReplacement("[REDACTED-JWT]"),
		},
		{
			Category: "bearerTokens",
			Regex:    regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9\-._~+/]{16,}=*`),
			Severity: SeverityHigh,
			Replace:  literalReplacement("Bearer [REDACTED-TOKEN]"),
		},
		{
			Category: "dbCredentials",
			Regex:    dbCredRe,
			Severity: SeverityCritical,
			Replace: func(match string) string {
				groups := dbCredRe.FindStringSubmatch(match)
				if len(groups) < 2 {
					return "[REDACTED]"
				}
				return groups[1] + ": [REDACTED]"
			},
		},
		{
			Category: "connectionStrings",
			Regex:    regexp.MustCompile(`(?i)\b(?:postgres(?:ql)?|mysql|mongodb(?:\+srv)?|redis|amqp)://[^\s'"]+@[^\s'"]+`),
			Severity: SeverityCritical,
			Replace:  literalReplacement("[REDACTED-CONNECTION-STRING]"),
		},
		{
			Category: "privateKeys",
			Regex:    pemRe,
			Severity: SeverityCritical,
			Replace: func(match string) string {
				groups := pemRe.FindStringSubmatch(match)
				if len(groups) < 3 {
					return "[REDACTED-PRIVATE-KEY]"
				}
				return groups[1] + "\n[REDACTED-PRIVATE-KEY]\n" + groups[2]
			},
		},
	}

	pii := []Rule{
		{
			Category: "emails",
			Regex:    regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`),
			Severity: SeverityMedium,
			Replace:  literalReplacement("user@example.com"),
		},
		{
			// RFC 1918 ranges only; replacement is the RFC 5737
			// documentation address.
			Category: "privateIPs",
			Regex:    regexp.MustCompile(`\b(?:10\.(?:\d{1,3}\.){2}\d{1,3}|192\.168\.\d{1,3}\.\d{1,3}|172\.(?:1[6-9]|2\d|3[01])\.\d{1,3}\.\d{1,3})\b`),
			Severity: SeverityMedium,
			Replace:  literalReplacement("192.0.2.1"),
		},
		{
			Category: "ssn",
			Regex:    regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
			Severity: SeverityCritical,
			Replace:  literalReplacement("[REDACTED-SSN]"),
		},
		{
			Category: "creditCards",
			Regex:    regexp.MustCompile(`\b(?:4\d{3}|5[1-5]\d{2}|3[47]\d{2}|6011)[ -]?\d{4}[ -]?\d{4}[ -]?\d{4}\b`),
			Severity: SeverityCritical,
			Replace:  literalReplacement("[REDACTED-CC]"),
		},
		{
			Category: "cryptoAddresses",
			Regex:    regexp.MustCompile(`\b(?:0x[a-fA-F0-9]{40}|bc1[a-z0-9]{25,62}|[13][a-km-zA-HJ-NP-Z1-9]{25,34})\b`),
			Severity: SeverityHigh,
			Replace:  maskMiddle,
		},
	}

	internalContent := []Rule{
		{Category: "internalMarkers", Regex: regexp.MustCompile(`(?i)\b(?:internal (?:use )?only|do not (?:share|distribute)|confidential|proprietary)\b`), Severity: SeverityMedium},
		{Category: "internalMarkers", Regex: regexp.MustCompile(`(?i)\bprivate key\b`), Severity: SeverityMedium},
		{Category: "internalMarkers", Regex: regexp.MustCompile(`(?i)\b(?:security (?:audit|incident)|vulnerability report|threat model)\b`), Severity: SeverityMedium},
		{Category: "internalMarkers", Regex: regexp.MustCompile(`(?i)\b(?:payroll|salar(?:y|ies)|headcount)\b`), Severity: SeverityMedium},
	}

	partnerContent := []Rule{
		{Category: "partnerMarkers", Regex: regexp.MustCompile(`(?i)\bpartners?[ -](?:only|access|portal|agreement)\b`), Severity: SeverityLow},
		{Category: "partnerMarkers", Regex: regexp.MustCompile(`(?i)\b(?:nda|non-disclosure)\b`), Severity: SeverityLow},
		{Category: "partnerMarkers", Regex: regexp.MustCompile(`(?i)\bintegration partners?\b`), Severity: SeverityLow},
	}

	publicContent := []Rule{
		{Category: "publicMarkers", Regex: regexp.MustCompile(`(?i)\b(?:public documentation|open[ -]source|community edition|publicly available)\b`), Severity: SeverityLow},
		{Category: "publicMarkers", Regex: regexp.MustCompile(`(?i)\bgetting started\b`), Severity: SeverityLow},
		{Category: "publicMarkers", Regex: regexp.MustCompile(`(?i)\b(?:changelog|release notes)\b`), Severity: SeverityLow},
	}

	internalPaths := []Rule{
		{Category: "internalPaths", Regex: regexp.MustCompile(`(?i)(^|[\\/])(internal|private|confidential|restricted)([\\/]|$)`), Severity: SeverityLow},
		{Category: "internalPaths", Regex: regexp.MustCompile(`(?i)(^|[\\/])\.?secrets?([\\/]|$)`), Severity: SeverityLow},
	}

	partnerPaths := []Rule{
		{Category: "partnerPaths", Regex: regexp.MustCompile(`(?i)(^|[\\/])(partners?|nda)([\\/]|$)`), Severity: SeverityLow},
	}

	publicPaths := []Rule{
		{Category: "publicPaths", Regex: regexp.MustCompile(`(?i)(^|[\\/])(public|website|blog|community)([\\/]|$)`), Severity: SeverityLow},
		{Category: "publicPaths", Regex: regexp.MustCompile(`(?i)(^|[\\/])readme\.(md|txt)$`), Severity: SeverityLow},
	}

	safe := []*regexp.Regexp{
		regexp.MustCompile(`(?i)example\.(com|org|net)`),
		regexp.MustCompile(`(?i)your-[a-z0-9-]+-here`),
		regexp.MustCompile(`\$\{[^}]*\}`),
		regexp.MustCompile(`\{\{[^}]*\}\}`),
		regexp.MustCompile(`<[A-Za-z0-9 _-]+>`),
		regexp.MustCompile(`\[[A-Z][A-Z0-9 _-]*\]`),
		regexp.MustCompile(`\*{3,}`),
		regexp.MustCompile(`\b(?:192\.0\.2|198\.51\.100|203\.0\.113)\.\d{1,3}\b`),
		regexp.MustCompile(`(?i)\b(?:changeme|placeholder|xxxx+)\b`),
	}

	return &Registry{
		rules: map[Purpose][]Rule{
			PurposeSecrets:                          secrets,
			PurposePII:                              pii,
			ClassificationPurpose(LevelInternal):    internalContent,
			ClassificationPurpose(LevelPartner):     partnerContent,
			ClassificationPurpose(LevelPublic):      publicContent,
			PathPurpose(LevelInternal):              internalPaths,
			PathPurpose(LevelPartner):               partnerPaths,
			PathPurpose(LevelPublic):                publicPaths,
		},
		safe: safe,
		tags: map[Level][]string{
			LevelInternal: {"internal", "confidential", "private", "restricted", "security"},
			LevelPartner:  {"partner", "partners", "nda"},
			LevelPublic:   {"public", "open", "community", "external"},
		},
	}
}
