package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	auditwire "github.com/auditwire/auditwire-go"
	"github.com/auditwire/auditwire-go/internal/discover"
	"github.com/auditwire/auditwire-go/internal/linter"
)

func newLintCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "lint [packages...]",
		Short: "Check declarations for style issues",
		Long: `Lint checks Go packages containing resource declarations for common issues.

Rules:
    AWL001: Use pseudo-parameter constants instead of hardcoded strings
    AWL002: Use intrinsic types instead of raw map[string]any
    AWL003: Detect duplicate resource variable names
    AWL004: Split large files with too many resources
    AWL005: Use direct resource references instead of explicit Ref maps
    AWL006: Use attribute fields instead of explicit Fn::GetAtt maps
    AWL007: Declare resources as values, not pointers
    AWL008: Prefer typed policy structs over raw JSON maps

Examples:
    auditwire lint
    auditwire lint ./stack --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(args, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runLint(packages []string, format string) error {
	if len(packages) == 0 {
		packages = []string{defaultStackPackage}
	}

	var issues []auditwire.LintIssue

	// Discovery also validates references
	discoverResult, err := discover.Discover(discover.Options{
		Packages: packages,
	})
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	for _, e := range discoverResult.Errors {
		issues = append(issues, auditwire.LintIssue{
			Severity: "error",
			Message:  e.Error(),
			Rule:     "undefined-reference",
		})
	}

	for _, pkg := range packages {
		lintResult, err := linter.LintPackage(pkg, linter.Options{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to lint %s: %v\n", pkg, err)
			continue
		}

		for _, issue := range lintResult.Issues {
			issues = append(issues, auditwire.LintIssue{
				Severity: string(issue.Severity),
				Message:  issue.Message,
				Rule:     issue.Rule,
				File:     issue.File,
				Line:     issue.Line,
				Column:   issue.Column,
			})
		}
	}

	result := auditwire.LintResult{
		Success: len(issues) == 0,
		Issues:  issues,
	}

	return outputLintResult(result, format)
}

func outputLintResult(result auditwire.LintResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.Success {
			fmt.Println("No issues found.")
			return nil
		}

		for _, issue := range result.Issues {
			if issue.File != "" {
				fmt.Printf("%s:%d:%d: %s: %s [%s]\n",
					issue.File, issue.Line, issue.Column,
					issue.Severity, issue.Message, issue.Rule)
			} else {
				fmt.Printf("%s: %s [%s]\n", issue.Severity, issue.Message, issue.Rule)
			}
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		os.Exit(2) // Exit code 2 for issues found
	}

	return nil
}
