package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/auditwire/auditwire-go/internal/config"
	"github.com/auditwire/auditwire-go/internal/differ"
)

func newDiffCmd() *cobra.Command {
	var (
		outputFormat string
		ignoreOrder  bool
		configFile   string
	)

	cmd := &cobra.Command{
		Use:   "diff <template> [template2]",
		Short: "Compare templates",
		Long: `Diff compares two CloudFormation templates resource by resource.

With two arguments it compares the given template files. With one
argument it compares the file against a fresh build of ./stack, which
verifies a previously generated template is still current.

Examples:
    auditwire diff old.json new.json
    auditwire diff deployed.json
    auditwire diff old.json new.json --ignore-order`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args, outputFormat, ignoreOrder, configFile)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&ignoreOrder, "ignore-order", false, "Ignore array element order")
	cmd.Flags().StringVarP(&configFile, "config", "c", "auditwire.yaml", "Config file with deployment inputs")

	return cmd
}

func runDiff(args []string, format string, ignoreOrder bool, configFile string) error {
	opts := differ.Options{IgnoreOrder: ignoreOrder}

	var result *differ.Result
	var err error

	if len(args) == 2 {
		result, err = differ.CompareFiles(args[0], args[1], opts)
	} else {
		result, err = diffAgainstBuild(args[0], opts, configFile)
	}
	if err != nil {
		return err
	}

	return outputDiffResult(result, format)
}

// diffAgainstBuild compares a template file against a fresh build.
func diffAgainstBuild(path string, opts differ.Options, configFile string) (*differ.Result, error) {
	old, err := differ.LoadTemplate(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	current, buildErrs := buildStackTemplate(nil, cfg)
	if len(buildErrs) > 0 {
		for _, e := range buildErrs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return nil, fmt.Errorf("diff failed: could not build template")
	}

	return differ.Compare(old, current, opts)
}

func outputDiffResult(result *differ.Result, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(struct {
			Diff    any `json:"diff"`
			Summary any `json:"summary"`
		}{result.Diff, result.Summary}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.Summary.Total == 0 {
			fmt.Println("Templates are identical.")
			return nil
		}

		for _, e := range result.Diff.Added {
			fmt.Printf("+ %s (%s)\n", e.Resource, e.Type)
		}
		for _, e := range result.Diff.Removed {
			fmt.Printf("- %s (%s)\n", e.Resource, e.Type)
		}
		for _, e := range result.Diff.Modified {
			fmt.Printf("~ %s (%s)\n", e.Resource, e.Type)
			for _, c := range e.Changes {
				fmt.Printf("    %s\n", c)
			}
		}
		fmt.Printf("\n%d added, %d removed, %d modified\n",
			result.Summary.Added, result.Summary.Removed, result.Summary.Modified)

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.Summary.Total > 0 {
		os.Exit(1)
	}

	return nil
}
