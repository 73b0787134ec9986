// Package cmd provides the command-line interface for docsentry with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration with clear precedence:
//	1. Command-line flags (--config, --format, etc.) - highest priority
//	2. DOCSENTRY_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (DOCSENTRY_SCAN_MAX_DEPTH, etc.)
//	4. Configuration files (.docsentry.yml) - lowest priority
//
// A local .env file, when present, is loaded before anything else so CI
// variable files work without exporting.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docsentry",
	Short: "Documentation classification, secret scanning, and sanitization",
	Long: `docsentry audits documentation trees before publication. It detects
secrets and PII, assigns PUBLIC/PARTNER/INTERNAL access tiers, redacts
sensitive content, and emits reports for CI quality gates.

Commands:
  docsentry scan ./docs               Detect secrets and PII
  docsentry classify ./docs           Assign access-control tiers
  docsentry sanitize ./docs --dry-run Preview redactions
  docsentry gate report.json          Enforce severity thresholds
  docsentry watch ./docs              Re-scan files as they change

Exit codes: scan exits 1 when any HIGH or CRITICAL finding exists; gate
exits 1 when a policy threshold is exceeded.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .docsentry.yml, can also use DOCSENTRY_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig initializes the configuration system.
//
// Loading priority (highest to lowest):
//  1. --config flag
//  2. DOCSENTRY_CONFIG_FILE environment variable
//  3. .docsentry.yml in the current directory
func initConfig() {
	// A .env in the working directory supplies CI-style variables; its
	// absence is not an error.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("DOCSENTRY_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".docsentry")
	}

	viper.SetEnvPrefix("DOCSENTRY")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Missing or malformed config files degrade to defaults.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
