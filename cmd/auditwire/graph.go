package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/auditwire/auditwire-go/internal/discover"
	"github.com/auditwire/auditwire-go/internal/graph"
)

func newGraphCmd() *cobra.Command {
	var (
		outputFormat      string
		includeParameters bool
		clusterByType     bool
	)

	cmd := &cobra.Command{
		Use:   "graph [packages...]",
		Short: "Generate DOT graph of resource dependencies",
		Long: `Generate a DOT or Mermaid format graph showing resource dependencies.

The output can be rendered with Graphviz:
    auditwire graph | dot -Tpng -o deps.png

Or used in GitHub markdown (Mermaid format):
    auditwire graph -f mermaid

Examples:
    auditwire graph
    auditwire graph -p              # include parameters
    auditwire graph -c              # cluster by service
    auditwire graph -f mermaid      # mermaid format`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(args, outputFormat, includeParameters, clusterByType)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVarP(&includeParameters, "include-parameters", "p", false, "Include parameter nodes in the graph")
	cmd.Flags().BoolVarP(&clusterByType, "cluster", "c", false, "Cluster resources by AWS service type")

	return cmd
}

func runGraph(packages []string, format string, includeParams bool, cluster bool) error {
	if len(packages) == 0 {
		packages = []string{defaultStackPackage}
	}

	result, err := discover.Discover(discover.Options{
		Packages: packages,
	})
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if len(result.Resources) == 0 {
		return fmt.Errorf("no resources found")
	}

	var graphFormat graph.Format
	switch format {
	case "dot":
		graphFormat = graph.FormatDOT
	case "mermaid":
		graphFormat = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", format)
	}

	gen := &graph.Generator{
		Format:            graphFormat,
		IncludeParameters: includeParams,
		ClusterByType:     cluster,
	}

	return gen.Generate(result.Resources, result.Parameters, os.Stdout)
}
