// Package gate evaluates a scan report against a YAML quality-gate policy.
// CI pipelines run `docsentry gate` after `docsentry scan --output` and
// fail the build when a threshold is exceeded.
package gate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/docsentry/docsentry/internal/report"
)

// Policy holds per-severity issue thresholds. A nil threshold means the
// severity is not gated.
type Policy struct {
	MaxCritical *int `yaml:"max_critical"`
	MaxHigh     *int `yaml:"max_high"`
	MaxMedium   *int `yaml:"max_medium"`
	MaxLow      *int `yaml:"max_low"`
	MaxTotal    *int `yaml:"max_total"`
}

// Evaluation is the outcome of applying a policy to a report summary.
type Evaluation struct {
	Passed      bool     `json:"passed"`
	FailedGates []string `json:"failedGates"`
	PassedGates []string `json:"passedGates"`
}

// DefaultPolicy tolerates nothing above MEDIUM: zero critical, zero high.
func DefaultPolicy() Policy {
	zero := 0
	return Policy{MaxCritical: &zero, MaxHigh: &zero}
}

// LoadPolicy reads a YAML policy file.
func LoadPolicy(path string) (Policy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("reading gate policy: %w", err)
	}
	var p Policy
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Policy{}, fmt.Errorf("parsing gate policy: %w", err)
	}
	return p, nil
}

// Evaluate applies the policy to a report summary.
func (p Policy) Evaluate(summary report.Summary) Evaluation {
	eval := Evaluation{Passed: true}

	check := func(name string, count int, max *int) {
		if max == nil {
			return
		}
		gate := fmt.Sprintf("%s: %d (max %d)", name, count, *max)
		if count > *max {
			eval.Passed = false
			eval.FailedGates = append(eval.FailedGates, gate)
		} else {
			eval.PassedGates = append(eval.PassedGates, gate)
		}
	}

	check("critical issues", summary.BySeverity["CRITICAL"], p.MaxCritical)
	check("high issues", summary.BySeverity["HIGH"], p.MaxHigh)
	check("medium issues", summary.BySeverity["MEDIUM"], p.MaxMedium)
	check("low issues", summary.BySeverity["LOW"], p.MaxLow)
	check("total issues", summary.TotalMatches, p.MaxTotal)

	return eval
}
