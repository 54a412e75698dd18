// Command auditwire generates the organization logging and detection
// baseline as a CloudFormation template from Go resource declarations.
//
// Usage:
//
//	auditwire build               Generate the CloudFormation template
//	auditwire check               Run policy checks against the template
//	auditwire lint ./stack        Check declarations for style issues
//	auditwire version             Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "auditwire",
		Short: "Generate the AWS logging and detection baseline",
		Long: `auditwire generates a CloudFormation template for an organization-wide
logging and threat detection baseline from Go resource declarations.

The baseline stack wires CloudTrail into an encrypted S3 archive and
CloudWatch Logs, enables GuardDuty, and forwards high-severity findings
to a SIEM event bus:

    var TrailBucket = s3.Bucket{
        BucketName: TrailBucketName,
    }

Then generate CloudFormation JSON:

    auditwire build`,
	}

	rootCmd.AddCommand(
		newBuildCmd(),
		newValidateCmd(),
		newListCmd(),
		newLintCmd(),
		newCheckCmd(),
		newGraphCmd(),
		newDiffCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("auditwire %s\n", getVersion())
		},
	}
}
