package stack

import (
	. "github.com/auditwire/auditwire-go/intrinsics"
	"github.com/auditwire/auditwire-go/resources/iam"
)

// ----------------------------------------------------------------------------
// Trail Delivery Role
// ----------------------------------------------------------------------------

// TrailAssumeRoleStatement allows CloudTrail to assume the delivery role.
var TrailAssumeRoleStatement = PolicyStatement{
	Effect:    "Allow",
	Principal: ServicePrincipal{"cloudtrail.amazonaws.com"},
	Action:    "sts:AssumeRole",
}

// TrailAssumeRolePolicy is the trust policy for the delivery role.
var TrailAssumeRolePolicy = PolicyDocument{
	Version:   "2012-10-17",
	Statement: []any{TrailAssumeRoleStatement},
}

// TrailLogDeliveryStatement allows CloudTrail to write event streams into
// the trail log group.
var TrailLogDeliveryStatement = PolicyStatement{
	Effect: "Allow",
	Action: []any{
		"logs:CreateLogStream",
		"logs:PutLogEvents",
	},
	Resource: Join{Delimiter: "", Values: []any{TrailLogGroup.Arn, ":log-stream:*"}},
}

// TrailLogDeliveryPolicy is the inline policy granting log delivery.
var TrailLogDeliveryPolicy = iam.Role_Policy{
	PolicyName: "cloudtrail-log-delivery",
	PolicyDocument: PolicyDocument{
		Version:   "2012-10-17",
		Statement: []any{TrailLogDeliveryStatement},
	},
}

// TrailDeliveryRole is assumed by CloudTrail to deliver events to the
// trail log group.
var TrailDeliveryRole = iam.Role{
	RoleName:                 "org-trail-log-delivery",
	Description:              "Lets CloudTrail deliver organization trail events to CloudWatch Logs",
	AssumeRolePolicyDocument: TrailAssumeRolePolicy,
	Policies:                 []any{TrailLogDeliveryPolicy},
}
