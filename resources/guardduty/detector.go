// Package guardduty provides CloudFormation types for AWS::GuardDuty resources.
package guardduty

// Detector represents an AWS::GuardDuty::Detector resource.
// Ref returns the detector ID.
type Detector struct {
	// Enable turns the detector on. Required.
	Enable bool `json:"Enable"`
	// FindingPublishingFrequency controls how often updated findings are
	// published: FIFTEEN_MINUTES, ONE_HOUR, or SIX_HOURS.
	FindingPublishingFrequency string `json:"FindingPublishingFrequency,omitempty"`
	// Tags are key-value pairs for the detector.
	Tags []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Detector) ResourceType() string { return "AWS::GuardDuty::Detector" }

// Detector frequency values.
const (
	FrequencyFifteenMinutes = "FIFTEEN_MINUTES"
	FrequencyOneHour        = "ONE_HOUR"
	FrequencySixHours       = "SIX_HOURS"
)
