package gate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsentry/docsentry/internal/report"
)

func summaryWith(critical, high, medium int) report.Summary {
	return report.Summary{
		TotalMatches: critical + high + medium,
		BySeverity: map[string]int{
			"CRITICAL": critical,
			"HIGH":     high,
			"MEDIUM":   medium,
		},
	}
}

func TestDefaultPolicyBlocksHighAndCritical(t *testing.T) {
	policy := DefaultPolicy()

	assert.True(t, policy.Evaluate(summaryWith(0, 0, 5)).Passed)
	assert.False(t, policy.Evaluate(summaryWith(1, 0, 0)).Passed)
	assert.False(t, policy.Evaluate(summaryWith(0, 1, 0)).Passed)
}

func TestEvaluateReportsGateNames(t *testing.T) {
	eval := DefaultPolicy().Evaluate(summaryWith(2, 0, 0))

	assert.False(t, eval.Passed)
	require.Len(t, eval.FailedGates, 1)
	assert.Contains(t, eval.FailedGates[0], "critical issues: 2 (max 0)")
	require.Len(t, eval.PassedGates, 1)
	assert.Contains(t, eval.PassedGates[0], "high issues")
}

func TestUngatedSeveritiesIgnored(t *testing.T) {
	zero := 0
	policy := Policy{MaxCritical: &zero}

	eval := policy.Evaluate(summaryWith(0, 10, 10))
	assert.True(t, eval.Passed)
}

func TestMaxTotalGate(t *testing.T) {
	two := 2
	policy := Policy{MaxTotal: &two}

	assert.True(t, policy.Evaluate(summaryWith(0, 0, 2)).Passed)
	assert.False(t, policy.Evaluate(summaryWith(0, 0, 3)).Passed)
}

func TestLoadPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gates.yml")
	require.NoError(t, os.WriteFile(path, []byte("max_critical: 0\nmax_high: 3\nmax_total: 100\n"), 0o644))

	policy, err := LoadPolicy(path)
	require.NoError(t, err)

	require.NotNil(t, policy.MaxHigh)
	assert.Equal(t, 3, *policy.MaxHigh)
	assert.Nil(t, policy.MaxMedium)

	assert.True(t, policy.Evaluate(summaryWith(0, 3, 0)).Passed)
	assert.False(t, policy.Evaluate(summaryWith(0, 4, 0)).Passed)
}

func TestLoadPolicyErrors(t *testing.T) {
	_, err := LoadPolicy(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("max_critical: [not a number\n"), 0o644))
	_, err = LoadPolicy(bad)
	assert.Error(t, err)
}
