package stack

import (
	auditwire "github.com/auditwire/auditwire-go"
	"github.com/auditwire/auditwire-go/intrinsics"
)

// Resources returns every resource declaration keyed by logical name.
// Logical names match the var names so AST discovery and value extraction
// agree on identity.
func Resources() map[string]auditwire.Resource {
	return map[string]auditwire.Resource{
		"TrailBucket":              TrailBucket,
		"TrailBucketPolicy":        TrailBucketPolicy,
		"TrailLogGroup":            TrailLogGroup,
		"TrailDeliveryRole":        TrailDeliveryRole,
		"OrgTrail":                 OrgTrail,
		"ThreatDetector":           ThreatDetector,
		"HighSeverityFindingsRule": HighSeverityFindingsRule,
	}
}

// Parameters returns every parameter declaration keyed by logical name.
func Parameters() map[string]intrinsics.Parameter {
	return map[string]intrinsics.Parameter{
		"Region":             Region,
		"TrailBucketName":    TrailBucketName,
		"SiemDestinationArn": SiemDestinationArn,
	}
}

// Outputs returns every output declaration keyed by logical name.
func Outputs() map[string]intrinsics.Output {
	return map[string]intrinsics.Output{
		"TrailBucket":    TrailBucketOut,
		"ThreatDetector": ThreatDetectorOut,
		"FindingsRule":   FindingsRuleOut,
	}
}
