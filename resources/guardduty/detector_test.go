package guardduty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetector_ResourceType(t *testing.T) {
	assert.Equal(t, "AWS::GuardDuty::Detector", Detector{}.ResourceType())
}

func TestDetector_FrequencyValues(t *testing.T) {
	assert.Equal(t, "FIFTEEN_MINUTES", FrequencyFifteenMinutes)
	assert.Equal(t, "ONE_HOUR", FrequencyOneHour)
	assert.Equal(t, "SIX_HOURS", FrequencySixHours)
}
