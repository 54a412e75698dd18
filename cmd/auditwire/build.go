package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	auditwire "github.com/auditwire/auditwire-go"
	"github.com/auditwire/auditwire-go/internal/config"
	"github.com/auditwire/auditwire-go/internal/discover"
	"github.com/auditwire/auditwire-go/internal/template"
	"github.com/auditwire/auditwire-go/intrinsics"
	"github.com/auditwire/auditwire-go/stack"
)

// defaultStackPackage is the package holding the baseline declarations.
const defaultStackPackage = "./stack"

const templateDescription = "Organization CloudTrail logging and GuardDuty threat detection baseline"

func newBuildCmd() *cobra.Command {
	var (
		outputFormat string
		outputFile   string
		configFile   string
	)

	cmd := &cobra.Command{
		Use:   "build [packages...]",
		Short: "Generate the CloudFormation template",
		Long: `Build discovers the baseline resource declarations and generates a
CloudFormation template. With no arguments it builds ./stack.

Deployment inputs (region, trail bucket name, SIEM destination ARN) come
from an optional config file and AUDITWIRE_* environment variables, and
become the template parameter defaults.

Examples:
    auditwire build
    auditwire build -o template.json
    auditwire build --format yaml
    auditwire build --config auditwire.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args, outputFormat, outputFile, configFile)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: json or yaml (default from config)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&configFile, "config", "c", "auditwire.yaml", "Config file with deployment inputs")

	return cmd
}

func runBuild(packages []string, format, outputFile, configFile string) error {
	// Reject a bad --format before doing any discovery or config work.
	if format != "" && format != "json" && format != "yaml" {
		return fmt.Errorf("unknown format: %s", format)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if format == "" {
		format = cfg.Format
	}

	tmpl, buildErrs := buildStackTemplate(packages, cfg)
	if len(buildErrs) > 0 {
		for _, e := range buildErrs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return fmt.Errorf("build failed")
	}

	return outputTemplate(tmpl, format, outputFile)
}

// buildStackTemplate builds the baseline template. AST discovery supplies
// resource identity, dependency edges, and attr-ref paths; the stack
// registry supplies the declared values; settings override the template
// parameter defaults.
func buildStackTemplate(packages []string, cfg config.Settings) (*auditwire.Template, []error) {
	if len(packages) == 0 {
		packages = []string{defaultStackPackage}
	}

	result, err := discover.Discover(discover.Options{
		Packages: packages,
	})
	if err != nil {
		return nil, []error{fmt.Errorf("discovery failed: %w", err)}
	}
	if len(result.Errors) > 0 {
		return nil, result.Errors
	}

	// Fold transitively resolved attr refs into each resource so the
	// builder can patch references that flow through intermediate vars.
	for name, res := range result.Resources {
		res.AttrRefUsages = result.ResolveAttrRefs(name)
		result.Resources[name] = res
	}

	builder := template.NewBuilder(result.Resources)
	builder.SetDescription(templateDescription)

	for name, value := range stack.Resources() {
		builder.SetValue(name, value)
	}

	params := stack.Parameters()
	applySettings(params, cfg)
	builder.SetParameters(params)
	builder.SetOutputs(stack.Outputs())

	tmpl, err := builder.Build()
	if err != nil {
		return nil, []error{err}
	}
	return tmpl, nil
}

// applySettings overrides the template parameter defaults with the
// configured deployment inputs.
func applySettings(params map[string]intrinsics.Parameter, cfg config.Settings) {
	if p, ok := params["Region"]; ok {
		p.Default = cfg.Region
		params["Region"] = p
	}
	if p, ok := params["TrailBucketName"]; ok {
		p.Default = cfg.TrailBucketName
		params["TrailBucketName"] = p
	}
	if p, ok := params["SiemDestinationArn"]; ok {
		p.Default = cfg.SiemDestinationArn
		params["SiemDestinationArn"] = p
	}
}

func outputTemplate(tmpl *auditwire.Template, format, outputFile string) error {
	var data []byte
	var err error

	switch format {
	case "json":
		data, err = template.ToJSON(tmpl)
	case "yaml":
		data, err = template.ToYAML(tmpl)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}

	return os.WriteFile(outputFile, data, 0644)
}
