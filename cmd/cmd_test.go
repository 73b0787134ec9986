package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsentry/docsentry/internal/access"
	"github.com/docsentry/docsentry/internal/report"
)

// execute runs the root command with args and returns stdout plus the
// command error. Viper and flag state are reset around each invocation so
// tests stay independent.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	scanOutput, scanFormat, scanCategories = "", "", []string{"secrets", "pii"}
	sanitizeDryRun, sanitizeNoBackup, sanitizeOutput, sanitizeFormat = false, false, "", ""
	classifyOutput, classifyFormat, classifyConfig = "", "", ""
	gatePolicyFile = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScanCleanDirectoryExitsZero(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "guide.md", "# Getting Started\n\nNothing secret.\n")

	out, err := execute(t, "scan", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Files processed:   1")
	assert.Contains(t, out, "Total matches:     0")
}

func TestScanBlockingFindingFailsCommand(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "leak.md", "password: Sup3rSecret!\n")

	out, err := execute(t, "scan", dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBlockingFindings)
	assert.Contains(t, out, "CRITICAL 1")
}

func TestScanWritesJSONReport(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "leak.md", "contact carol@corp-mail.io\n")
	reportPath := filepath.Join(t.TempDir(), "report.json")

	_, err := execute(t, "scan", dir, "--format", "json", "--output", reportPath)
	require.NoError(t, err, "MEDIUM findings must not fail the scan")

	raw, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "summary")
}

func TestScanUnknownCategoryRejected(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "scan", dir, "--categories", "financials")
	assert.Error(t, err)
}

func TestSanitizeDryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "creds.md", "password: hunter22\n")

	out, err := execute(t, "sanitize", dir, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: no files were modified")
	assert.Contains(t, out, "Files sanitized: 1")

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "password: hunter22\n", string(onDisk))
}

func TestSanitizeRewritesFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "creds.md", "password: hunter22\n")

	_, err := execute(t, "sanitize", dir, "--no-backup")
	require.NoError(t, err)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "password: [REDACTED]\n", string(onDisk))

	backups, _ := filepath.Glob(path + ".backup-*")
	assert.Empty(t, backups)
}

func TestClassifyEmitsAccessConfig(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "public/readme.md", "# Getting Started\n")
	writeDoc(t, dir, "internal/runbook.md", "confidential checklist\n")
	cfgPath := filepath.Join(t.TempDir(), "access.json")

	out, err := execute(t, "classify", dir, "--access-config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Files classified: 2")

	raw, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	var cfg access.Config
	require.NoError(t, json.Unmarshal(raw, &cfg))

	assert.Len(t, cfg.Rules.Internal, 2)
	assert.Len(t, cfg.Rules.Public, 1)
	for _, p := range cfg.Rules.Public {
		assert.Contains(t, cfg.Rules.Internal, p)
	}
}

func TestGateFailsOnCritical(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "leak.md", "password: Sup3rSecret!\n")
	reportPath := filepath.Join(t.TempDir(), "report.json")

	_, err := execute(t, "scan", dir, "--format", "json", "--output", reportPath)
	require.Error(t, err) // blocking finding

	out, err := execute(t, "gate", reportPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, errGateFailed)
	assert.Contains(t, out, "FAIL")
}

func TestGatePassesCleanReport(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "clean.md", "nothing here\n")
	reportPath := filepath.Join(t.TempDir(), "report.json")

	_, err := execute(t, "scan", dir, "--format", "json", "--output", reportPath)
	require.NoError(t, err)

	out, err := execute(t, "gate", reportPath)
	require.NoError(t, err)
	assert.Contains(t, out, "All quality gates passed")
}

func TestGateCustomPolicy(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "leak.md", "contact carol@corp-mail.io\n")
	reportPath := filepath.Join(t.TempDir(), "report.json")
	_, err := execute(t, "scan", dir, "--format", "json", "--output", reportPath)
	require.NoError(t, err)

	policyPath := filepath.Join(t.TempDir(), "gates.yml")
	require.NoError(t, os.WriteFile(policyPath, []byte("max_medium: 0\n"), 0o644))

	_, err = execute(t, "gate", reportPath, "--policy", policyPath)
	assert.ErrorIs(t, err, errGateFailed)
}

func TestScanReportsTypedErrorForUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "fine.md", "# Getting Started\n")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone.md"), filepath.Join(dir, "broken.md")))
	reportPath := filepath.Join(t.TempDir(), "report.json")

	out, err := execute(t, "scan", dir, "--format", "json", "--output", reportPath)
	require.NoError(t, err, "an unreadable file is recovered, not fatal")
	assert.Contains(t, out, "Files failed:      1")

	raw, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, json.Unmarshal(raw, &rep))

	assert.Equal(t, 1, rep.Summary.FilesFailed)
	var failed *report.FileScan
	for i := range rep.Scans {
		if rep.Scans[i].Error != "" {
			failed = &rep.Scans[i]
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, "io", failed.ErrorType)
	assert.True(t, failed.Recoverable)
	assert.Contains(t, failed.Error, "IO_READ")
}

func TestClassifyRecordsTypedErrorForUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone.md"), filepath.Join(dir, "broken.md")))
	reportPath := filepath.Join(t.TempDir(), "report.json")

	out, err := execute(t, "classify", dir, "--format", "json", "--output", reportPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Files classified: 1")

	raw, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, json.Unmarshal(raw, &rep))

	require.Len(t, rep.Classifications, 1)
	assert.False(t, rep.Classifications[0].Processed)
	assert.Contains(t, rep.Classifications[0].Error, "IO_READ")
	assert.Equal(t, 1, rep.Summary.FilesFailed)
}

func TestClassifyHelpDocumentsAccessConfigRename(t *testing.T) {
	out, err := execute(t, "classify", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--access-config")
	assert.Contains(t, out, "previously called --config")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "docsentry")
}
