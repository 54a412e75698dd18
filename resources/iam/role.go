// Package iam provides CloudFormation types for AWS::IAM resources.
package iam

import (
	auditwire "github.com/auditwire/auditwire-go"
)

// Role represents an AWS::IAM::Role resource.
type Role struct {
	// RoleName is the role name.
	RoleName any `json:"RoleName,omitempty"`
	// Description documents the role's purpose.
	Description string `json:"Description,omitempty"`
	// AssumeRolePolicyDocument is the trust policy controlling who may assume the role.
	AssumeRolePolicyDocument any `json:"AssumeRolePolicyDocument,omitempty"`
	// Policies are inline policies embedded in the role.
	Policies []any `json:"Policies,omitempty"`
	// ManagedPolicyArns attaches managed policies by ARN.
	ManagedPolicyArns []any `json:"ManagedPolicyArns,omitempty"`
	// Tags are key-value pairs for the role.
	Tags []any `json:"Tags,omitempty"`

	// Arn is the role ARN (GetAtt).
	Arn auditwire.AttrRef `json:"-"`
	// RoleId is the stable unique ID of the role (GetAtt).
	RoleId auditwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (Role) ResourceType() string { return "AWS::IAM::Role" }

// Role_Policy is an inline policy attached to a role.
type Role_Policy struct {
	PolicyName     any `json:"PolicyName,omitempty"`
	PolicyDocument any `json:"PolicyDocument,omitempty"`
}
