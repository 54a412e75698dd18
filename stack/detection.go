package stack

import (
	"github.com/auditwire/auditwire-go/resources/guardduty"
)

// ----------------------------------------------------------------------------
// Threat Detector
// ----------------------------------------------------------------------------

// ThreatDetector is the account GuardDuty detector. Findings are published
// every fifteen minutes, the fastest cadence GuardDuty offers, so the
// forwarding rule sees new findings promptly.
var ThreatDetector = guardduty.Detector{
	Enable:                     true,
	FindingPublishingFrequency: guardduty.FrequencyFifteenMinutes,
}
