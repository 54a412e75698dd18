// Package cloudtrail provides CloudFormation types for AWS::CloudTrail resources.
package cloudtrail

import (
	auditwire "github.com/auditwire/auditwire-go"
)

// Trail represents an AWS::CloudTrail::Trail resource.
type Trail struct {
	// TrailName is the trail name.
	TrailName any `json:"TrailName,omitempty"`
	// S3BucketName is the bucket log files are delivered to. Direct resource reference.
	S3BucketName any `json:"S3BucketName,omitempty"`
	// S3KeyPrefix prefixes delivered log file keys.
	S3KeyPrefix any `json:"S3KeyPrefix,omitempty"`
	// IsLogging starts the trail. Required.
	IsLogging bool `json:"IsLogging"`
	// IsMultiRegionTrail captures events from all regions.
	IsMultiRegionTrail bool `json:"IsMultiRegionTrail,omitempty"`
	// IsOrganizationTrail captures events for every account in the organization.
	IsOrganizationTrail bool `json:"IsOrganizationTrail,omitempty"`
	// IncludeGlobalServiceEvents captures events from global services such as IAM.
	IncludeGlobalServiceEvents bool `json:"IncludeGlobalServiceEvents,omitempty"`
	// EnableLogFileValidation writes integrity digests alongside log files.
	EnableLogFileValidation bool `json:"EnableLogFileValidation,omitempty"`
	// CloudWatchLogsLogGroupArn delivers events to a log group in addition to S3.
	CloudWatchLogsLogGroupArn any `json:"CloudWatchLogsLogGroupArn,omitempty"`
	// CloudWatchLogsRoleArn is the role CloudTrail assumes to write to the log group.
	CloudWatchLogsRoleArn any `json:"CloudWatchLogsRoleArn,omitempty"`
	// KMSKeyId encrypts delivered log files.
	KMSKeyId any `json:"KMSKeyId,omitempty"`
	// Tags are key-value pairs for the trail.
	Tags []any `json:"Tags,omitempty"`

	// Arn is the trail ARN (GetAtt).
	Arn auditwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (Trail) ResourceType() string { return "AWS::CloudTrail::Trail" }
