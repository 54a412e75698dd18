package stack

import (
	. "github.com/auditwire/auditwire-go/intrinsics"
)

// ----------------------------------------------------------------------------
// Stack Outputs
// ----------------------------------------------------------------------------

// TrailBucketOut exposes the name of the trail archive bucket.
var TrailBucketOut = Output{
	Description: "Name of the S3 bucket that stores organization trail logs",
	Value:       TrailBucket,
}

// ThreatDetectorOut exposes the GuardDuty detector ID.
var ThreatDetectorOut = Output{
	Description: "ID of the GuardDuty detector",
	Value:       ThreatDetector,
}

// FindingsRuleOut exposes the name of the finding forwarding rule.
var FindingsRuleOut = Output{
	Description: "Name of the EventBridge rule that forwards findings to the SIEM",
	Value:       HighSeverityFindingsRule,
}
