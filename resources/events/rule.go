// Package events provides CloudFormation types for AWS::Events resources.
package events

import (
	auditwire "github.com/auditwire/auditwire-go"
)

// Rule represents an AWS::Events::Rule resource.
// Ref returns the rule name.
type Rule struct {
	// Name is the rule name.
	Name any `json:"Name,omitempty"`
	// Description documents what the rule matches.
	Description string `json:"Description,omitempty"`
	// EventPattern selects events by source, detail-type, and field predicates.
	EventPattern any `json:"EventPattern,omitempty"`
	// ScheduleExpression triggers the rule on a schedule instead of a pattern.
	ScheduleExpression any `json:"ScheduleExpression,omitempty"`
	// State is ENABLED or DISABLED.
	State string `json:"State,omitempty"`
	// Targets are the destinations matched events are routed to.
	Targets []any `json:"Targets,omitempty"`

	// Arn is the rule ARN (GetAtt).
	Arn auditwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (Rule) ResourceType() string { return "AWS::Events::Rule" }

// Rule_Target binds a rule to a destination by ARN.
type Rule_Target struct {
	// Arn is the destination ARN.
	Arn any `json:"Arn,omitempty"`
	// Id uniquely identifies the target within the rule.
	Id string `json:"Id,omitempty"`
	// RoleArn is assumed by EventBridge to invoke the target, when required.
	RoleArn any `json:"RoleArn,omitempty"`
	// InputPath extracts part of the event to pass to the target.
	InputPath string `json:"InputPath,omitempty"`
}
