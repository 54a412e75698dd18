// Package checks validates built templates against the logging and
// detection baseline policy.
//
// Checks:
//
//	AWS001: S3 buckets must block all public access
//	AWS002: S3 buckets must have server-side encryption
//	AWS003: Organization trails must be multi-region with log file validation
//	AWS004: Trail CloudWatch delivery needs both a log group ARN and a role ARN
//	AWS005: GuardDuty detectors must be enabled on the fastest publishing cadence
//	AWS006: GuardDuty finding rules must use a numeric severity predicate
//	AWS007: Finding rules must be enabled and have at least one target
//	AWS008: Log groups must set a retention period
//	AWS009: S3 buckets must have versioning enabled
//	AWS010: Trail delivery roles must grant only log stream writes
//	AWS011: Finding rule targets must not point at the placeholder destination
package checks

import (
	"fmt"
	"strings"

	auditwire "github.com/auditwire/auditwire-go"
)

// Check is a single template policy check.
type Check interface {
	ID() string
	Description() string
	Run(tmpl *auditwire.Template) []auditwire.CheckFinding
}

// AllChecks returns every policy check.
func AllChecks() []Check {
	return []Check{
		BucketPublicAccess{},
		BucketEncryption{},
		TrailCoverage{},
		TrailLogDelivery{},
		DetectorCadence{},
		FindingSeverityPredicate{},
		FindingRuleWiring{},
		LogRetention{},
		BucketVersioning{},
		DeliveryRoleScope{},
		PlaceholderDestination{},
	}
}

// Run executes every check against the template. Warnings are reported
// but do not fail the result.
func Run(tmpl *auditwire.Template) auditwire.CheckResult {
	var findings []auditwire.CheckFinding
	for _, c := range AllChecks() {
		findings = append(findings, c.Run(tmpl)...)
	}
	success := true
	for _, f := range findings {
		if f.Severity == "error" {
			success = false
		}
	}
	return auditwire.CheckResult{
		Success:  success,
		Findings: findings,
	}
}

// resourcesOfType returns logical name -> properties for a resource type.
func resourcesOfType(tmpl *auditwire.Template, cfType string) map[string]map[string]any {
	result := make(map[string]map[string]any)
	for name, res := range tmpl.Resources {
		if res.Type == cfType {
			result[name] = res.Properties
		}
	}
	return result
}

// BucketPublicAccess requires every bucket to block all public access.
type BucketPublicAccess struct{}

func (c BucketPublicAccess) ID() string { return "AWS001" }
func (c BucketPublicAccess) Description() string {
	return "S3 buckets must block all public access"
}

func (c BucketPublicAccess) Run(tmpl *auditwire.Template) []auditwire.CheckFinding {
	var findings []auditwire.CheckFinding

	for name, props := range resourcesOfType(tmpl, "AWS::S3::Bucket") {
		block, ok := props["PublicAccessBlockConfiguration"].(map[string]any)
		if !ok {
			findings = append(findings, auditwire.CheckFinding{
				Rule:     c.ID(),
				Severity: "error",
				Resource: name,
				Message:  "bucket has no PublicAccessBlockConfiguration",
			})
			continue
		}
		for _, key := range []string{"BlockPublicAcls", "BlockPublicPolicy", "IgnorePublicAcls", "RestrictPublicBuckets"} {
			if enabled, _ := block[key].(bool); !enabled {
				findings = append(findings, auditwire.CheckFinding{
					Rule:     c.ID(),
					Severity: "error",
					Resource: name,
					Message:  fmt.Sprintf("public access block does not set %s", key),
				})
			}
		}
	}

	return findings
}

// BucketEncryption requires server-side encryption on every bucket.
type BucketEncryption struct{}

func (c BucketEncryption) ID() string { return "AWS002" }
func (c BucketEncryption) Description() string {
	return "S3 buckets must have server-side encryption"
}

func (c BucketEncryption) Run(tmpl *auditwire.Template) []auditwire.CheckFinding {
	var findings []auditwire.CheckFinding

	for name, props := range resourcesOfType(tmpl, "AWS::S3::Bucket") {
		if _, ok := props["BucketEncryption"].(map[string]any); !ok {
			findings = append(findings, auditwire.CheckFinding{
				Rule:     c.ID(),
				Severity: "error",
				Resource: name,
				Message:  "bucket has no BucketEncryption configuration",
			})
		}
	}

	return findings
}

// TrailCoverage requires organization trails to capture everything and
// write integrity digests.
type TrailCoverage struct{}

func (c TrailCoverage) ID() string { return "AWS003" }
func (c TrailCoverage) Description() string {
	return "Organization trails must be multi-region with log file validation"
}

func (c TrailCoverage) Run(tmpl *auditwire.Template) []auditwire.CheckFinding {
	var findings []auditwire.CheckFinding

	for name, props := range resourcesOfType(tmpl, "AWS::CloudTrail::Trail") {
		if logging, _ := props["IsLogging"].(bool); !logging {
			findings = append(findings, auditwire.CheckFinding{
				Rule: c.ID(), Severity: "error", Resource: name,
				Message: "trail is not logging",
			})
		}
		if org, _ := props["IsOrganizationTrail"].(bool); !org {
			continue // per-account trails are out of scope
		}
		if multi, _ := props["IsMultiRegionTrail"].(bool); !multi {
			findings = append(findings, auditwire.CheckFinding{
				Rule: c.ID(), Severity: "error", Resource: name,
				Message: "organization trail must be multi-region",
			})
		}
		if validation, _ := props["EnableLogFileValidation"].(bool); !validation {
			findings = append(findings, auditwire.CheckFinding{
				Rule: c.ID(), Severity: "warning", Resource: name,
				Message: "organization trail should enable log file validation",
			})
		}
	}

	return findings
}

// TrailLogDelivery requires CloudWatch delivery settings to come in pairs.
type TrailLogDelivery struct{}

func (c TrailLogDelivery) ID() string { return "AWS004" }
func (c TrailLogDelivery) Description() string {
	return "Trail CloudWatch delivery needs both a log group ARN and a role ARN"
}

func (c TrailLogDelivery) Run(tmpl *auditwire.Template) []auditwire.CheckFinding {
	var findings []auditwire.CheckFinding

	for name, props := range resourcesOfType(tmpl, "AWS::CloudTrail::Trail") {
		_, hasGroup := props["CloudWatchLogsLogGroupArn"]
		_, hasRole := props["CloudWatchLogsRoleArn"]
		if hasGroup != hasRole {
			findings = append(findings, auditwire.CheckFinding{
				Rule: c.ID(), Severity: "error", Resource: name,
				Message: "CloudWatchLogsLogGroupArn and CloudWatchLogsRoleArn must be set together",
			})
		}
	}

	return findings
}

// DetectorCadence requires detectors to be enabled and publish findings on
// the fifteen-minute cadence, so forwarding stays prompt.
type DetectorCadence struct{}

func (c DetectorCadence) ID() string { return "AWS005" }
func (c DetectorCadence) Description() string {
	return "GuardDuty detectors must be enabled on the fastest publishing cadence"
}

func (c DetectorCadence) Run(tmpl *auditwire.Template) []auditwire.CheckFinding {
	var findings []auditwire.CheckFinding

	for name, props := range resourcesOfType(tmpl, "AWS::GuardDuty::Detector") {
		if enabled, _ := props["Enable"].(bool); !enabled {
			findings = append(findings, auditwire.CheckFinding{
				Rule: c.ID(), Severity: "error", Resource: name,
				Message: "detector is not enabled",
			})
		}
		if freq, _ := props["FindingPublishingFrequency"].(string); freq != "FIFTEEN_MINUTES" {
			findings = append(findings, auditwire.CheckFinding{
				Rule: c.ID(), Severity: "warning", Resource: name,
				Message: "detector should publish findings every fifteen minutes",
			})
		}
	}

	return findings
}

// FindingSeverityPredicate requires GuardDuty finding rules to compare
// severity numerically. A string match like ["7"] silently misses 7.5.
type FindingSeverityPredicate struct{}

func (c FindingSeverityPredicate) ID() string { return "AWS006" }
func (c FindingSeverityPredicate) Description() string {
	return "GuardDuty finding rules must use a numeric severity predicate"
}

func (c FindingSeverityPredicate) Run(tmpl *auditwire.Template) []auditwire.CheckFinding {
	var findings []auditwire.CheckFinding

	for name, props := range resourcesOfType(tmpl, "AWS::Events::Rule") {
		pattern, ok := props["EventPattern"].(map[string]any)
		if !ok || !matchesGuardDutyFindings(pattern) {
			continue
		}

		detail, _ := pattern["detail"].(map[string]any)
		severity, ok := detail["severity"].([]any)
		if !ok || len(severity) == 0 {
			findings = append(findings, auditwire.CheckFinding{
				Rule: c.ID(), Severity: "error", Resource: name,
				Message: "finding rule has no severity predicate",
			})
			continue
		}

		for _, entry := range severity {
			pred, ok := entry.(map[string]any)
			if !ok {
				findings = append(findings, auditwire.CheckFinding{
					Rule: c.ID(), Severity: "error", Resource: name,
					Message: "severity must use a numeric predicate, not a literal match",
				})
				continue
			}
			if _, ok := pred["numeric"]; !ok {
				findings = append(findings, auditwire.CheckFinding{
					Rule: c.ID(), Severity: "error", Resource: name,
					Message: "severity predicate is not numeric",
				})
			}
		}
	}

	return findings
}

// matchesGuardDutyFindings reports whether an event pattern selects
// GuardDuty findings.
func matchesGuardDutyFindings(pattern map[string]any) bool {
	sources, _ := pattern["source"].([]any)
	for _, s := range sources {
		if s == "aws.guardduty" {
			return true
		}
	}
	return false
}

// FindingRuleWiring requires finding rules to be enabled and routed somewhere.
type FindingRuleWiring struct{}

func (c FindingRuleWiring) ID() string { return "AWS007" }
func (c FindingRuleWiring) Description() string {
	return "Finding rules must be enabled and have at least one target"
}

func (c FindingRuleWiring) Run(tmpl *auditwire.Template) []auditwire.CheckFinding {
	var findings []auditwire.CheckFinding

	for name, props := range resourcesOfType(tmpl, "AWS::Events::Rule") {
		if state, _ := props["State"].(string); state != "ENABLED" {
			findings = append(findings, auditwire.CheckFinding{
				Rule: c.ID(), Severity: "error", Resource: name,
				Message: "rule is not ENABLED",
			})
		}
		targets, _ := props["Targets"].([]any)
		if len(targets) == 0 {
			findings = append(findings, auditwire.CheckFinding{
				Rule: c.ID(), Severity: "error", Resource: name,
				Message: "rule has no targets",
			})
		}
	}

	return findings
}

// LogRetention requires log groups to set a retention period so log
// storage does not grow without bound.
type LogRetention struct{}

func (c LogRetention) ID() string { return "AWS008" }
func (c LogRetention) Description() string {
	return "Log groups must set a retention period"
}

func (c LogRetention) Run(tmpl *auditwire.Template) []auditwire.CheckFinding {
	var findings []auditwire.CheckFinding

	for name, props := range resourcesOfType(tmpl, "AWS::Logs::LogGroup") {
		if _, ok := props["RetentionInDays"]; !ok {
			findings = append(findings, auditwire.CheckFinding{
				Rule: c.ID(), Severity: "warning", Resource: name,
				Message: "log group has no retention period",
			})
		}
	}

	return findings
}

// BucketVersioning requires every bucket to have versioning enabled.
type BucketVersioning struct{}

func (c BucketVersioning) ID() string { return "AWS009" }
func (c BucketVersioning) Description() string {
	return "S3 buckets must have versioning enabled"
}

func (c BucketVersioning) Run(tmpl *auditwire.Template) []auditwire.CheckFinding {
	var findings []auditwire.CheckFinding

	for name, props := range resourcesOfType(tmpl, "AWS::S3::Bucket") {
		versioning, _ := props["VersioningConfiguration"].(map[string]any)
		if versioning["Status"] != "Enabled" {
			findings = append(findings, auditwire.CheckFinding{
				Rule: c.ID(), Severity: "error", Resource: name,
				Message: "bucket does not have versioning enabled",
			})
		}
	}

	return findings
}

// deliveryActions are the only actions a trail delivery role may hold.
var deliveryActions = map[string]bool{
	"logs:CreateLogStream": true,
	"logs:PutLogEvents":    true,
}

// DeliveryRoleScope requires roles assumable by CloudTrail to grant exactly
// the log stream write actions, scoped to a log group resource.
type DeliveryRoleScope struct{}

func (c DeliveryRoleScope) ID() string { return "AWS010" }
func (c DeliveryRoleScope) Description() string {
	return "Trail delivery roles must grant only log stream writes"
}

func (c DeliveryRoleScope) Run(tmpl *auditwire.Template) []auditwire.CheckFinding {
	var findings []auditwire.CheckFinding

	for name, props := range resourcesOfType(tmpl, "AWS::IAM::Role") {
		if !assumableByCloudTrail(props) {
			continue
		}

		if _, ok := props["ManagedPolicyArns"]; ok {
			findings = append(findings, auditwire.CheckFinding{
				Rule: c.ID(), Severity: "error", Resource: name,
				Message: "delivery role carries managed policies beyond the inline delivery policy",
			})
		}

		policies, _ := props["Policies"].([]any)
		for _, p := range policies {
			policy, _ := p.(map[string]any)
			doc, _ := policy["PolicyDocument"].(map[string]any)
			statements, _ := doc["Statement"].([]any)

			for _, st := range statements {
				stmt, _ := st.(map[string]any)

				for _, action := range valueStrings(stmt["Action"]) {
					if !deliveryActions[action] {
						findings = append(findings, auditwire.CheckFinding{
							Rule: c.ID(), Severity: "error", Resource: name,
							Message: fmt.Sprintf("delivery role grants %s beyond log stream writes", action),
						})
					}
				}

				if res, ok := stmt["Resource"].(string); ok && res == "*" {
					findings = append(findings, auditwire.CheckFinding{
						Rule: c.ID(), Severity: "error", Resource: name,
						Message: "delivery role policy is not scoped to a log group resource",
					})
				}
			}
		}
	}

	return findings
}

// assumableByCloudTrail reports whether a role's trust policy names the
// CloudTrail service principal.
func assumableByCloudTrail(props map[string]any) bool {
	doc, _ := props["AssumeRolePolicyDocument"].(map[string]any)
	statements, _ := doc["Statement"].([]any)
	for _, st := range statements {
		stmt, _ := st.(map[string]any)
		principal, _ := stmt["Principal"].(map[string]any)
		for _, svc := range valueStrings(principal["Service"]) {
			if svc == "cloudtrail.amazonaws.com" {
				return true
			}
		}
	}
	return false
}

// valueStrings flattens a policy field that may hold a string or a list.
func valueStrings(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []any:
		var out []string
		for _, e := range val {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// PlaceholderDestination warns when a finding rule target resolves to a
// parameter whose default is still the inert placeholder, which a real
// deployment must override.
type PlaceholderDestination struct{}

func (c PlaceholderDestination) ID() string { return "AWS011" }
func (c PlaceholderDestination) Description() string {
	return "Finding rule targets must not point at the placeholder destination"
}

func (c PlaceholderDestination) Run(tmpl *auditwire.Template) []auditwire.CheckFinding {
	var findings []auditwire.CheckFinding

	for name, props := range resourcesOfType(tmpl, "AWS::Events::Rule") {
		targets, _ := props["Targets"].([]any)
		for _, t := range targets {
			target, _ := t.(map[string]any)
			arn := target["Arn"]

			if ref, ok := arn.(map[string]any); ok {
				if paramName, ok := ref["Ref"].(string); ok {
					arn = tmpl.Parameters[paramName].Default
				}
			}

			s, _ := arn.(string)
			if strings.Contains(s, ":000000000000:") || strings.Contains(s, "placeholder") {
				findings = append(findings, auditwire.CheckFinding{
					Rule: c.ID(), Severity: "warning", Resource: name,
					Message: "rule target still uses the placeholder destination; override it for a real deployment",
				})
			}
		}
	}

	return findings
}
