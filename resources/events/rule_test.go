package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRule_ResourceType(t *testing.T) {
	assert.Equal(t, "AWS::Events::Rule", Rule{}.ResourceType())
}

func TestRule_Target(t *testing.T) {
	r := Rule{
		Name:  "findings",
		State: "ENABLED",
		Targets: []any{
			Rule_Target{Arn: "arn:aws:events:us-east-1:000000000000:event-bus/placeholder", Id: "siem"},
		},
	}
	assert.Len(t, r.Targets, 1)
	assert.True(t, r.Arn.IsZero())
}
