package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.Scan.Extensions, ".md")
	assert.Contains(t, cfg.Scan.Extensions, ".yaml")
	assert.Contains(t, cfg.Scan.ExcludeDirs, "node_modules")
	assert.Equal(t, 10, cfg.Scan.MaxDepth)
	assert.True(t, cfg.Sanitize.Backup)
	assert.Equal(t, "markdown", cfg.Report.Format)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	resetViper(t)
	viper.Set("scan.max_depth", 3)
	viper.Set("scan.extensions", []string{"md", ".RST"})
	viper.Set("sanitize.backup", false)
	viper.Set("report.format", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Scan.MaxDepth)
	assert.Equal(t, []string{".md", ".rst"}, cfg.Scan.Extensions)
	assert.False(t, cfg.Sanitize.Backup)
	assert.Equal(t, "json", cfg.Report.Format)
}

func TestLoadRejectsBadFormat(t *testing.T) {
	resetViper(t)
	viper.Set("report.format", "xml")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsAbsurdDepth(t *testing.T) {
	resetViper(t)
	viper.Set("scan.max_depth", 5000)

	_, err := Load()
	assert.Error(t, err)
}

func TestNormalizeExtensions(t *testing.T) {
	got := normalizeExtensions([]string{"md", ".Txt", "  ", "YAML"})
	assert.Equal(t, []string{".md", ".txt", ".yaml"}, got)
}
