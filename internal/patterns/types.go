package patterns

import "fmt"

// Severity ranks how critical a pattern match is. Scan pass/fail policy is
// decided on severity: any High or Critical match fails the scan.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler so severities render as
// their names in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so severities decode
// from report JSON (the gate command re-reads scan reports).
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "LOW":
		*s = SeverityLow
	case "MEDIUM":
		*s = SeverityMedium
	case "HIGH":
		*s = SeverityHigh
	case "CRITICAL":
		*s = SeverityCritical
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Level is a document access-control tier.
type Level string

const (
	LevelPublic   Level = "PUBLIC"
	LevelPartner  Level = "PARTNER"
	LevelInternal Level = "INTERNAL"
)

// Levels lists all tiers ordered from most to least sensitive. Consumers
// that resolve score ties iterate in this order so a tie resolves to the
// higher-sensitivity tier.
func Levels() []Level {
	return []Level{LevelInternal, LevelPartner, LevelPublic}
}

// Purpose selects which rule group a caller wants from the registry.
type Purpose string

const (
	PurposeSecrets Purpose = "secrets"
	PurposePII     Purpose = "pii"
)

// ClassificationPurpose returns the purpose key for content patterns that
// signal the given tier.
func ClassificationPurpose(level Level) Purpose {
	return Purpose("classification:" + string(level))
}

// PathPurpose returns the purpose key for file-path patterns that signal
// the given tier.
func PathPurpose(level Level) Purpose {
	return Purpose("path:" + string(level))
}
