// Package config provides configuration management for docsentry using
// Viper for flexible loading from files, environment variables, and
// command-line flags.
//
// The configuration system supports YAML files and environment variable
// overrides with the DOCSENTRY_ prefix. It manages traversal settings
// (extensions, excluded directories, depth), sanitizer behavior, and
// report output options.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Scan     ScanConfig     `yaml:"scan" mapstructure:"scan"`
	Sanitize SanitizeConfig `yaml:"sanitize" mapstructure:"sanitize"`
	Report   ReportConfig   `yaml:"report" mapstructure:"report"`
	Gate     GateConfig     `yaml:"gate" mapstructure:"gate"`
	LogLevel string         `yaml:"log_level" mapstructure:"log_level"`
}

type ScanConfig struct {
	Extensions  []string `yaml:"extensions" mapstructure:"extensions"`
	ExcludeDirs []string `yaml:"exclude_dirs" mapstructure:"exclude_dirs"`
	MaxDepth    int      `yaml:"max_depth" mapstructure:"max_depth"`
}

type SanitizeConfig struct {
	Backup bool `yaml:"backup" mapstructure:"backup"`
	DryRun bool `yaml:"dry_run" mapstructure:"dry_run"`
}

type ReportConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
	Output string `yaml:"output" mapstructure:"output"`
}

type GateConfig struct {
	PolicyFile string `yaml:"policy_file" mapstructure:"policy_file"`
}

// Load unmarshals the viper state into a Config and applies defaults for
// anything unset. Slice values set via env or file need explicit handling
// because viper's Unmarshal does not always populate them.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if viper.IsSet("scan.extensions") && len(config.Scan.Extensions) == 0 {
		config.Scan.Extensions = viper.GetStringSlice("scan.extensions")
	}
	if viper.IsSet("scan.exclude_dirs") && len(config.Scan.ExcludeDirs) == 0 {
		config.Scan.ExcludeDirs = viper.GetStringSlice("scan.exclude_dirs")
	}

	if len(config.Scan.Extensions) == 0 {
		config.Scan.Extensions = []string{".md", ".txt", ".json", ".js", ".mjs", ".ts", ".yml", ".yaml"}
	}
	if len(config.Scan.ExcludeDirs) == 0 {
		config.Scan.ExcludeDirs = []string{"node_modules", ".git", "dist", "build"}
	}
	if config.Scan.MaxDepth <= 0 {
		config.Scan.MaxDepth = 10
	}

	if viper.IsSet("sanitize.backup") {
		config.Sanitize.Backup = viper.GetBool("sanitize.backup")
	} else {
		config.Sanitize.Backup = true
	}

	if config.Report.Format == "" {
		config.Report.Format = "markdown"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	config.Scan.Extensions = normalizeExtensions(config.Scan.Extensions)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects unusable settings early.
func (c *Config) Validate() error {
	switch c.Report.Format {
	case "json", "markdown":
	default:
		return fmt.Errorf("unsupported report format %q (supported: json, markdown)", c.Report.Format)
	}
	if c.Scan.MaxDepth > 100 {
		return fmt.Errorf("scan.max_depth %d is unreasonably deep", c.Scan.MaxDepth)
	}
	return nil
}

// normalizeExtensions ensures every allow-list entry carries a leading dot
// and is lowercase, so config files may list "md" or ".MD".
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
