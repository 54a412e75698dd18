// Package logs provides CloudFormation types for AWS::Logs resources.
package logs

import (
	auditwire "github.com/auditwire/auditwire-go"
)

// LogGroup represents an AWS::Logs::LogGroup resource.
type LogGroup struct {
	// LogGroupName is the log group name.
	LogGroupName any `json:"LogGroupName,omitempty"`
	// RetentionInDays is how long log events are kept.
	RetentionInDays int `json:"RetentionInDays,omitempty"`
	// KmsKeyId encrypts log data with the given KMS key.
	KmsKeyId any `json:"KmsKeyId,omitempty"`
	// Tags are key-value pairs for the log group.
	Tags []any `json:"Tags,omitempty"`

	// Arn is the log group ARN (GetAtt).
	Arn auditwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (LogGroup) ResourceType() string { return "AWS::Logs::LogGroup" }
