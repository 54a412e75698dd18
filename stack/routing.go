package stack

import (
	. "github.com/auditwire/auditwire-go/intrinsics"
	"github.com/auditwire/auditwire-go/resources/events"
)

// ----------------------------------------------------------------------------
// Finding Forwarding Rule
// ----------------------------------------------------------------------------

// HighSeverityFindingPattern matches GuardDuty findings with severity 7.0
// or above (GuardDuty's High and Critical bands). The numeric predicate
// compares severity as a number, not a string.
var HighSeverityFindingPattern = Json{
	"source":      []any{"aws.guardduty"},
	"detail-type": []any{"GuardDuty Finding"},
	"detail": Json{
		"severity": []any{
			Json{"numeric": []any{">=", 7}},
		},
	},
}

// SiemTarget routes matched findings to the SIEM destination.
var SiemTarget = events.Rule_Target{
	Arn: SiemDestinationArn,
	Id:  "siem-destination",
}

// HighSeverityFindingsRule forwards high-severity GuardDuty findings to
// the SIEM as they are published.
var HighSeverityFindingsRule = events.Rule{
	Name:         "guardduty-high-severity-findings",
	Description:  "Forwards GuardDuty findings with severity >= 7 to the SIEM",
	EventPattern: HighSeverityFindingPattern,
	State:        "ENABLED",
	Targets:      []any{SiemTarget},
}
