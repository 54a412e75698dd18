package stack

import (
	"github.com/auditwire/auditwire-go/resources/logs"
)

// ----------------------------------------------------------------------------
// Trail Log Group
// ----------------------------------------------------------------------------

// TrailLogGroup receives trail events for near-real-time inspection,
// alongside the durable S3 archive. Retention is 90 days.
var TrailLogGroup = logs.LogGroup{
	LogGroupName:    "/aws/cloudtrail/org_trail",
	RetentionInDays: 90,
}
