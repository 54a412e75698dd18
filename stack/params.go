// Package stack declares the organization logging and detection baseline:
// a CloudTrail archive bucket, an organization trail with CloudWatch Logs
// delivery, a GuardDuty detector, and an EventBridge rule that forwards
// high-severity findings to the SIEM.
//
// Declarations follow the flat block style: named top-level vars, direct
// resource references, extracted inline configs.
package stack

import (
	. "github.com/auditwire/auditwire-go/intrinsics"
)

// ----------------------------------------------------------------------------
// Stack Parameters
// ----------------------------------------------------------------------------

// Region is the AWS region the baseline is meant to run in.
var Region = Parameter{
	Name:        "Region",
	Type:        "String",
	Default:     "us-east-1",
	Description: "AWS region for the logging and detection baseline",
}

// TrailBucketName is the name of the S3 bucket that receives CloudTrail logs.
var TrailBucketName = Parameter{
	Name:        "TrailBucketName",
	Type:        "String",
	Default:     "org-cloudtrail-logs-archive",
	Description: "Name of the S3 bucket that stores organization trail logs",
}

// SiemDestinationArn is the ARN of the SIEM event bus or ingestion endpoint
// that high-severity GuardDuty findings are forwarded to.
var SiemDestinationArn = Parameter{
	Name:        "SiemDestinationArn",
	Type:        "String",
	Default:     "arn:aws:events:us-east-1:000000000000:event-bus/placeholder",
	Description: "ARN of the SIEM destination for forwarded findings",
}
