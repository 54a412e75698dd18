// Package intrinsics provides CloudFormation intrinsic functions and
// template-level declaration types (Parameter, Output) for the audit stack.
//
// Core intrinsic functions:
//
//	Ref{LogicalName: "TrailBucket"} → {"Ref": "TrailBucket"}
//	Sub{String: "${AWS::Region}-trail"} → {"Fn::Sub": "${AWS::Region}-trail"}
//	Join{Delimiter: "", Values: []any{a, b}} → {"Fn::Join": ["", [a, b]]}
//
// Pseudo-parameters:
//
//	AWS_REGION, AWS_ACCOUNT_ID, AWS_PARTITION, etc.
package intrinsics

import (
	"encoding/json"
	"fmt"
)

// Ref represents a CloudFormation Ref intrinsic function.
type Ref struct {
	LogicalName string
}

// MarshalJSON serializes Ref to CloudFormation syntax.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Ref": r.LogicalName})
}

// GetAtt represents a CloudFormation Fn::GetAtt intrinsic function.
// Prefer Resource.Attr field access in declarations; GetAtt exists for the
// rare case where the attribute has no typed field.
type GetAtt struct {
	LogicalName string
	Attribute   string
}

// MarshalJSON serializes GetAtt to CloudFormation syntax.
func (g GetAtt) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]string{
		"Fn::GetAtt": {g.LogicalName, g.Attribute},
	})
}

// Sub represents a CloudFormation Fn::Sub intrinsic function.
type Sub struct {
	String string
}

// MarshalJSON serializes Sub to CloudFormation syntax.
func (s Sub) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Fn::Sub": s.String})
}

// SubWithMap is Fn::Sub with a variable map.
type SubWithMap struct {
	String    string
	Variables map[string]any
}

// MarshalJSON serializes SubWithMap to CloudFormation syntax.
func (s SubWithMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]any{
		"Fn::Sub": {s.String, s.Variables},
	})
}

// Join represents a CloudFormation Fn::Join intrinsic function.
type Join struct {
	Delimiter string
	Values    []any
}

// MarshalJSON serializes Join to CloudFormation syntax.
func (j Join) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]any{
		"Fn::Join": {j.Delimiter, j.Values},
	})
}

// Tag represents a CloudFormation resource tag.
type Tag struct {
	Key   string `json:"Key"`
	Value any    `json:"Value"`
}

// Param creates a Ref for a CloudFormation parameter.
func Param(name string) Ref {
	return Ref{LogicalName: name}
}

// Parameter defines a CloudFormation template parameter with metadata.
// When used as a value in resource properties, it serializes to
// {"Ref": "ParameterName"}.
//
// Example:
//
//	var TrailBucketName = Parameter{
//	    Name:        "TrailBucketName",
//	    Type:        "String",
//	    Description: "Name of the CloudTrail archive bucket",
//	    Default:     "org-cloudtrail-logs-archive",
//	}
//
//	var TrailBucket = s3.Bucket{
//	    BucketName: TrailBucketName,  // Serializes to {"Ref": "TrailBucketName"}
//	}
type Parameter struct {
	// Name is the logical parameter name, bound at declaration. Package
	// var initialization copies embedded parameters before any init()
	// runs, so the name must travel with the value itself.
	Name string
	// Type is the CloudFormation parameter type (String, Number, ...)
	Type string
	// Description is optional documentation for the parameter
	Description string
	// Default is the default value if none is provided
	Default any
	// AllowedValues restricts the parameter to specific values
	AllowedValues []any
	// AllowedPattern is a regex pattern for String type validation
	AllowedPattern string
	// ConstraintDescription explains validation failures
	ConstraintDescription string
}

// MarshalJSON serializes Parameter as a CloudFormation Ref when used as a value.
func (p Parameter) MarshalJSON() ([]byte, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("parameter used as a value has no Name")
	}
	return json.Marshal(map[string]string{"Ref": p.Name})
}

// ToDefinition returns the parameter as a map suitable for the Parameters section.
func (p Parameter) ToDefinition() map[string]any {
	def := map[string]any{
		"Type": p.Type,
	}
	if p.Description != "" {
		def["Description"] = p.Description
	}
	if p.Default != nil {
		def["Default"] = p.Default
	}
	if len(p.AllowedValues) > 0 {
		def["AllowedValues"] = p.AllowedValues
	}
	if p.AllowedPattern != "" {
		def["AllowedPattern"] = p.AllowedPattern
	}
	if p.ConstraintDescription != "" {
		def["ConstraintDescription"] = p.ConstraintDescription
	}
	return def
}

// Output declares a CloudFormation stack output.
//
// Example:
//
//	var DetectorId = Output{
//	    Description: "GuardDuty detector identifier",
//	    Value:       ThreatDetector,
//	}
type Output struct {
	// Description is optional documentation for the output
	Description string
	// Value is the output value, usually a resource reference or attribute
	Value any
	// ExportName makes the output available for cross-stack import
	ExportName string
}

// List creates a typed slice from the given items.
// Avoids verbose slice type annotations in struct literals.
func List[T any](items ...T) []T {
	return items
}

// Any creates a []any slice from the given items.
// Use for fields typed as []any that accept mixed types or intrinsics.
func Any(items ...any) []any {
	return items
}
