// Package s3 provides CloudFormation types for AWS::S3 resources.
package s3

import (
	auditwire "github.com/auditwire/auditwire-go"
)

// Bucket represents an AWS::S3::Bucket resource.
type Bucket struct {
	// BucketName is the bucket name. Must be globally unique.
	BucketName any `json:"BucketName,omitempty"`
	// BucketEncryption configures default server-side encryption.
	BucketEncryption any `json:"BucketEncryption,omitempty"`
	// VersioningConfiguration enables object versioning.
	VersioningConfiguration any `json:"VersioningConfiguration,omitempty"`
	// LifecycleConfiguration holds age-based transition and expiration rules.
	LifecycleConfiguration any `json:"LifecycleConfiguration,omitempty"`
	// PublicAccessBlockConfiguration blocks public access at the bucket level.
	PublicAccessBlockConfiguration any `json:"PublicAccessBlockConfiguration,omitempty"`
	// Tags are key-value pairs for the bucket.
	Tags []any `json:"Tags,omitempty"`

	// Arn is the bucket ARN (GetAtt).
	Arn auditwire.AttrRef `json:"-"`
	// DomainName is the IPv4 DNS name of the bucket (GetAtt).
	DomainName auditwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (Bucket) ResourceType() string { return "AWS::S3::Bucket" }

// Bucket_ServerSideEncryptionByDefault configures the default encryption algorithm.
type Bucket_ServerSideEncryptionByDefault struct {
	SSEAlgorithm   string `json:"SSEAlgorithm,omitempty"`
	KMSMasterKeyID any    `json:"KMSMasterKeyID,omitempty"`
}

// Bucket_ServerSideEncryptionRule wraps a default encryption configuration.
type Bucket_ServerSideEncryptionRule struct {
	ServerSideEncryptionByDefault any  `json:"ServerSideEncryptionByDefault,omitempty"`
	BucketKeyEnabled              bool `json:"BucketKeyEnabled,omitempty"`
}

// Bucket_BucketEncryption is the bucket-level encryption configuration.
type Bucket_BucketEncryption struct {
	ServerSideEncryptionConfiguration []any `json:"ServerSideEncryptionConfiguration,omitempty"`
}

// Bucket_VersioningConfiguration enables or suspends versioning.
type Bucket_VersioningConfiguration struct {
	Status string `json:"Status,omitempty"`
}

// Bucket_PublicAccessBlockConfiguration blocks all forms of public access.
type Bucket_PublicAccessBlockConfiguration struct {
	BlockPublicAcls       bool `json:"BlockPublicAcls,omitempty"`
	BlockPublicPolicy     bool `json:"BlockPublicPolicy,omitempty"`
	IgnorePublicAcls      bool `json:"IgnorePublicAcls,omitempty"`
	RestrictPublicBuckets bool `json:"RestrictPublicBuckets,omitempty"`
}

// Bucket_LifecycleConfiguration holds the bucket lifecycle rules.
type Bucket_LifecycleConfiguration struct {
	Rules []any `json:"Rules,omitempty"`
}

// Bucket_Rule is a single lifecycle rule.
type Bucket_Rule struct {
	Id               string `json:"Id,omitempty"`
	Prefix           string `json:"Prefix,omitempty"`
	Status           string `json:"Status,omitempty"`
	Transitions      []any  `json:"Transitions,omitempty"`
	ExpirationInDays int    `json:"ExpirationInDays,omitempty"`
}

// Bucket_Transition moves objects to another storage tier after an age threshold.
type Bucket_Transition struct {
	StorageClass     string `json:"StorageClass,omitempty"`
	TransitionInDays int    `json:"TransitionInDays,omitempty"`
}

// BucketPolicy represents an AWS::S3::BucketPolicy resource.
type BucketPolicy struct {
	// Bucket is the bucket the policy applies to. Direct resource reference.
	Bucket any `json:"Bucket,omitempty"`
	// PolicyDocument is the IAM policy document.
	PolicyDocument any `json:"PolicyDocument,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (BucketPolicy) ResourceType() string { return "AWS::S3::BucketPolicy" }
