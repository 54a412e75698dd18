package stack

import (
	. "github.com/auditwire/auditwire-go/intrinsics"
	"github.com/auditwire/auditwire-go/resources/s3"
)

// ----------------------------------------------------------------------------
// Trail Archive Bucket
// ----------------------------------------------------------------------------

// TrailBucketEncryptionDefault configures AES256 server-side encryption.
var TrailBucketEncryptionDefault = s3.Bucket_ServerSideEncryptionByDefault{
	SSEAlgorithm: "AES256",
}

// TrailBucketEncryptionRule wraps the default encryption configuration.
var TrailBucketEncryptionRule = s3.Bucket_ServerSideEncryptionRule{
	ServerSideEncryptionByDefault: TrailBucketEncryptionDefault,
}

// TrailBucketEncryption defines the encryption configuration for the bucket.
var TrailBucketEncryption = s3.Bucket_BucketEncryption{
	ServerSideEncryptionConfiguration: []any{TrailBucketEncryptionRule},
}

// TrailBucketVersioning enables versioning so delivered log files cannot be
// silently overwritten.
var TrailBucketVersioning = s3.Bucket_VersioningConfiguration{
	Status: "Enabled",
}

// TrailBucketPublicAccessBlock blocks all public access to the bucket.
var TrailBucketPublicAccessBlock = s3.Bucket_PublicAccessBlockConfiguration{
	BlockPublicAcls:       true,
	BlockPublicPolicy:     true,
	IgnorePublicAcls:      true,
	RestrictPublicBuckets: true,
}

// TrailBucketArchiveTransition moves trail logs to Glacier after 90 days.
var TrailBucketArchiveTransition = s3.Bucket_Transition{
	StorageClass:     "GLACIER",
	TransitionInDays: 90,
}

// TrailBucketArchiveRule is the lifecycle rule that ages out trail logs.
var TrailBucketArchiveRule = s3.Bucket_Rule{
	Id:          "archive-to-glacier",
	Status:      "Enabled",
	Transitions: []any{TrailBucketArchiveTransition},
}

// TrailBucketLifecycle holds the bucket lifecycle rules.
var TrailBucketLifecycle = s3.Bucket_LifecycleConfiguration{
	Rules: []any{TrailBucketArchiveRule},
}

// TrailBucket is the S3 bucket that receives organization trail log files.
// Encrypted, versioned, lifecycle-managed, and closed to public access.
var TrailBucket = s3.Bucket{
	BucketName:                     TrailBucketName,
	BucketEncryption:               TrailBucketEncryption,
	VersioningConfiguration:        TrailBucketVersioning,
	LifecycleConfiguration:         TrailBucketLifecycle,
	PublicAccessBlockConfiguration: TrailBucketPublicAccessBlock,
}

// ----------------------------------------------------------------------------
// Trail Archive Bucket Policy
// ----------------------------------------------------------------------------

// TrailBucketAclCheckStatement lets CloudTrail confirm bucket ownership
// before delivering log files.
var TrailBucketAclCheckStatement = PolicyStatement{
	Sid:       "AWSCloudTrailAclCheck",
	Effect:    "Allow",
	Principal: ServicePrincipal{"cloudtrail.amazonaws.com"},
	Action:    "s3:GetBucketAcl",
	Resource:  TrailBucket.Arn,
}

// TrailBucketWriteStatement lets CloudTrail deliver log files under the
// AWSLogs prefix, requiring bucket-owner-full-control on every object.
var TrailBucketWriteStatement = PolicyStatement{
	Sid:       "AWSCloudTrailWrite",
	Effect:    "Allow",
	Principal: ServicePrincipal{"cloudtrail.amazonaws.com"},
	Action:    "s3:PutObject",
	Resource:  Join{Delimiter: "", Values: []any{TrailBucket.Arn, "/AWSLogs/*"}},
	Condition: Json{
		StringEquals: Json{"s3:x-amz-acl": "bucket-owner-full-control"},
	},
}

// TrailBucketDenyInsecureStatement rejects any request not made over TLS.
var TrailBucketDenyInsecureStatement = PolicyStatement{
	Sid:       "DenyInsecureTransport",
	Effect:    "Deny",
	Principal: AllPrincipal,
	Action:    "s3:*",
	Resource: []any{
		TrailBucket.Arn,
		Join{Delimiter: "", Values: []any{TrailBucket.Arn, "/*"}},
	},
	Condition: Json{
		Bool: Json{"aws:SecureTransport": false},
	},
}

// TrailBucketPolicyDocument combines the delivery and transport statements.
var TrailBucketPolicyDocument = PolicyDocument{
	Version: "2012-10-17",
	Statement: []any{
		TrailBucketAclCheckStatement,
		TrailBucketWriteStatement,
		TrailBucketDenyInsecureStatement,
	},
}

// TrailBucketPolicy attaches the delivery policy to the trail bucket.
var TrailBucketPolicy = s3.BucketPolicy{
	Bucket:         TrailBucket,
	PolicyDocument: TrailBucketPolicyDocument,
}
