package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	auditwire "github.com/auditwire/auditwire-go"
	"github.com/auditwire/auditwire-go/internal/checks"
	"github.com/auditwire/auditwire-go/internal/config"
)

func newCheckCmd() *cobra.Command {
	var (
		outputFormat string
		configFile   string
	)

	cmd := &cobra.Command{
		Use:   "check [packages...]",
		Short: "Run policy checks against the built template",
		Long: `Check builds the baseline template and verifies the security posture
it encodes.

Checks:
    AWS001: Trail buckets block all public access
    AWS002: Trail buckets are encrypted at rest
    AWS003: Organization trails cover all regions and validate log files
    AWS004: Trails delivering to CloudWatch Logs carry both group and role ARNs
    AWS005: GuardDuty detectors publish findings at the fastest cadence
    AWS006: Finding rules match GuardDuty findings with a numeric severity floor
    AWS007: Finding rules are enabled and have at least one target
    AWS008: Log groups set a retention period
    AWS009: Trail buckets have versioning enabled
    AWS010: Trail delivery roles grant only log stream writes
    AWS011: Finding rule targets no longer point at the placeholder destination

Warnings are reported but only error findings fail the command.

Examples:
    auditwire check
    auditwire check --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args, outputFormat, configFile)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().StringVarP(&configFile, "config", "c", "auditwire.yaml", "Config file with deployment inputs")

	return cmd
}

func runCheck(packages []string, format, configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	tmpl, buildErrs := buildStackTemplate(packages, cfg)
	if len(buildErrs) > 0 {
		for _, e := range buildErrs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return fmt.Errorf("check failed: could not build template")
	}

	result := checks.Run(tmpl)
	return outputCheckResult(result, format)
}

func outputCheckResult(result auditwire.CheckResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.Success {
			fmt.Println("All checks passed.")
			return nil
		}

		for _, f := range result.Findings {
			if f.Resource != "" {
				fmt.Printf("%s: %s: %s [%s]\n", f.Severity, f.Resource, f.Message, f.Rule)
			} else {
				fmt.Printf("%s: %s [%s]\n", f.Severity, f.Message, f.Rule)
			}
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		os.Exit(2)
	}

	return nil
}
