package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docsentry/docsentry/internal/gate"
	"github.com/docsentry/docsentry/internal/report"
)

var gatePolicyFile string

var errGateFailed = errors.New("quality gate failed")

// gateCmd represents the gate command.
var gateCmd = &cobra.Command{
	Use:   "gate <report.json>",
	Short: "Evaluate a scan report against quality-gate thresholds",
	Long: `Evaluate a JSON report produced by 'docsentry scan --format json
--output' against severity thresholds and exit 1 when a gate fails.

The default policy allows zero CRITICAL and zero HIGH findings. A YAML
policy file can raise or add thresholds:

  max_critical: 0
  max_high: 2
  max_total: 50

Examples:
  docsentry scan ./docs --format json --output report.json
  docsentry gate report.json --policy .docsentry-gates.yml`,
	Args: cobra.ExactArgs(1),
	RunE: runGateCommand,
}

func init() {
	rootCmd.AddCommand(gateCmd)

	gateCmd.Flags().StringVar(&gatePolicyFile, "policy", "", "YAML gate policy file")
}

func runGateCommand(cmd *cobra.Command, args []string) error {
	deps, err := newPipelineDeps()
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}
	var rep report.Report
	if err := json.Unmarshal(raw, &rep); err != nil {
		return fmt.Errorf("failed to parse report: %w", err)
	}

	policy := gate.DefaultPolicy()
	policyFile := gatePolicyFile
	if policyFile == "" {
		policyFile = deps.cfg.Gate.PolicyFile
	}
	if policyFile != "" {
		policy, err = gate.LoadPolicy(policyFile)
		if err != nil {
			return err
		}
	}

	eval := policy.Evaluate(rep.Summary)

	out := cmd.OutOrStdout()
	for _, g := range eval.PassedGates {
		fmt.Fprintln(out, "PASS", g)
	}
	for _, g := range eval.FailedGates {
		fmt.Fprintln(out, "FAIL", g)
	}

	if !eval.Passed {
		return errGateFailed
	}
	fmt.Fprintln(out, "All quality gates passed")
	return nil
}
