// Package classifier assigns a PUBLIC/PARTNER/INTERNAL access tier to a
// document from three signal sources: its file path, its content, and its
// declared front-matter metadata.
//
// Scoring per tier: +10 for each path-pattern match, +2 per content-pattern
// occurrence, +5 per matching metadata tag, +20 for an explicit
// classification field naming the tier. The tier with the maximum score
// wins; ties resolve to the higher-sensitivity tier. Two overrides then
// apply: any INTERNAL signal escalates the result to INTERNAL, and any
// PARTNER signal lifts a PUBLIC result to PARTNER.
package classifier

import (
	"context"
	"strings"

	"github.com/docsentry/docsentry/internal/frontmatter"
	"github.com/docsentry/docsentry/internal/logging"
	"github.com/docsentry/docsentry/internal/patterns"
)

// Scoring weights for the three signal sources.
const (
	pathWeight     = 10
	contentWeight  = 2
	tagWeight      = 5
	explicitWeight = 20
)

// confidenceFloor is reported when no signal fired at all; classification
// is never presented as impossible.
const confidenceFloor = 0.1

// Result is the classification outcome for a single file.
type Result struct {
	FilePath       string                 `json:"filePath"`
	Classification patterns.Level         `json:"classification"`
	Confidence     float64                `json:"confidenceScore"`
	Scores         map[patterns.Level]int `json:"perCategoryScores"`
	Reasons        []string               `json:"reasons"`
	Processed      bool                   `json:"processed"`
	Error          string                 `json:"error,omitempty"`
}

// Classifier derives classification tiers from registry signal patterns.
type Classifier struct {
	registry *patterns.Registry
	logger   logging.Logger
}

// New creates a classifier backed by the given registry.
func New(registry *patterns.Registry, logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Classifier{
		registry: registry,
		logger:   logger.WithComponent("classifier"),
	}
}

// Classify scores a document. It is a pure function of (path, content,
// metadata) and never fails: the zero-signal case yields PUBLIC with floor
// confidence.
func (c *Classifier) Classify(ctx context.Context, path, content string, meta frontmatter.Metadata) Result {
	result := Result{
		FilePath:  path,
		Scores:    map[patterns.Level]int{patterns.LevelPublic: 0, patterns.LevelPartner: 0, patterns.LevelInternal: 0},
		Reasons:   []string{},
		Processed: true,
	}

	for _, level := range patterns.Levels() {
		c.scorePath(path, level, &result)
		c.scoreContent(content, level, &result)
		c.scoreMetadata(meta, level, &result)
	}

	picked, maxScore := c.pickLevel(result.Scores)

	// Escalation overrides: any sensitive signal disqualifies lower tiers.
	if result.Scores[patterns.LevelInternal] > 0 && picked != patterns.LevelInternal {
		picked = patterns.LevelInternal
		result.Reasons = append(result.Reasons, "escalated to INTERNAL: internal signal present")
	} else if result.Scores[patterns.LevelPartner] > 0 && picked == patterns.LevelPublic {
		picked = patterns.LevelPartner
		result.Reasons = append(result.Reasons, "escalated to PARTNER: partner signal present")
	}

	result.Classification = picked
	result.Confidence = confidence(maxScore)
	return result
}

// Unprocessed records a file whose content could not be read. The result
// falls back to PUBLIC with floor confidence and carries the error.
func Unprocessed(path string, err error) Result {
	return Result{
		FilePath:       path,
		Classification: patterns.LevelPublic,
		Confidence:     confidenceFloor,
		Scores:         map[patterns.Level]int{patterns.LevelPublic: 0, patterns.LevelPartner: 0, patterns.LevelInternal: 0},
		Reasons:        []string{},
		Processed:      false,
		Error:          err.Error(),
	}
}

func (c *Classifier) scorePath(path string, level patterns.Level, result *Result) {
	for _, rule := range c.registry.Rules(patterns.PathPurpose(level)) {
		if rule.Regex.MatchString(path) {
			result.Scores[level] += pathWeight
			result.Reasons = append(result.Reasons, "path matches "+string(level)+" pattern "+rule.Regex.String())
		}
	}
}

func (c *Classifier) scoreContent(content string, level patterns.Level, result *Result) {
	for _, rule := range c.registry.Rules(patterns.ClassificationPurpose(level)) {
		count := len(rule.Regex.FindAllStringIndex(content, -1))
		if count > 0 {
			result.Scores[level] += contentWeight * count
			result.Reasons = append(result.Reasons, "content matches "+string(level)+" pattern "+rule.Regex.String())
		}
	}
}

func (c *Classifier) scoreMetadata(meta frontmatter.Metadata, level patterns.Level, result *Result) {
	for _, tag := range meta.Tags {
		for _, known := range c.registry.MetadataTags(level) {
			if strings.EqualFold(strings.TrimSpace(tag), known) {
				result.Scores[level] += tagWeight
				result.Reasons = append(result.Reasons, "metadata tag "+tag+" signals "+string(level))
			}
		}
	}

	if strings.EqualFold(strings.TrimSpace(meta.Classification), string(level)) {
		result.Scores[level] += explicitWeight
		result.Reasons = append(result.Reasons, "explicit classification field: "+string(level))
	}
}

// pickLevel selects the tier with the strictly maximum score. Levels() is
// ordered most-sensitive first, so equal scores resolve to the higher
// sensitivity. This is a deliberate, documented tie-break.
func (c *Classifier) pickLevel(scores map[patterns.Level]int) (patterns.Level, int) {
	picked := patterns.LevelInternal
	maxScore := -1
	for _, level := range patterns.Levels() {
		if scores[level] > maxScore {
			picked = level
			maxScore = scores[level]
		}
	}
	if maxScore == 0 {
		// No signal anywhere: default to the least restrictive tier.
		return patterns.LevelPublic, 0
	}
	return picked, maxScore
}

// confidence maps the winning score to [0.1, 1.0].
func confidence(maxScore int) float64 {
	if maxScore <= 0 {
		return confidenceFloor
	}
	conf := float64(maxScore) / 10
	if conf > 1.0 {
		return 1.0
	}
	if conf < confidenceFloor {
		return confidenceFloor
	}
	return conf
}
