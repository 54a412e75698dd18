package stack

import (
	"github.com/auditwire/auditwire-go/resources/cloudtrail"
)

// ----------------------------------------------------------------------------
// Organization Trail
// ----------------------------------------------------------------------------

// OrgTrail is the organization-wide, multi-region CloudTrail trail. Events
// land in the trail bucket for archival and in the trail log group for
// near-real-time inspection. Log file validation is on so tampering with
// delivered files is detectable.
var OrgTrail = cloudtrail.Trail{
	TrailName:                  "org-trail",
	S3BucketName:               TrailBucket,
	IsLogging:                  true,
	IsMultiRegionTrail:         true,
	IsOrganizationTrail:        true,
	IncludeGlobalServiceEvents: true,
	EnableLogFileValidation:    true,
	CloudWatchLogsLogGroupArn:  TrailLogGroup.Arn,
	CloudWatchLogsRoleArn:      TrailDeliveryRole.Arn,
}
