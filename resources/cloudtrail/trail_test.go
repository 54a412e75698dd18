package cloudtrail

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrail_ResourceType(t *testing.T) {
	assert.Equal(t, "AWS::CloudTrail::Trail", Trail{}.ResourceType())
}

func TestTrail_IsLoggingAlwaysSerialized(t *testing.T) {
	// IsLogging is a required property, so false must still appear.
	data, err := json.Marshal(Trail{IsLogging: false})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"IsLogging":false`)
}
