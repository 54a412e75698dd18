package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditwire "github.com/auditwire/auditwire-go"
)

func baselineResources() map[string]auditwire.DiscoveredResource {
	return map[string]auditwire.DiscoveredResource{
		"TrailBucket": {Name: "TrailBucket", Type: "s3.Bucket"},
		"OrgTrail": {
			Name:         "OrgTrail",
			Type:         "cloudtrail.Trail",
			Dependencies: []string{"TrailBucket", "TrailLogGroup"},
			AttrRefUsages: []auditwire.AttrRefUsage{
				{ResourceName: "TrailLogGroup", Attribute: "Arn", FieldPath: "CloudWatchLogsLogGroupArn"},
			},
		},
		"TrailLogGroup": {Name: "TrailLogGroup", Type: "logs.LogGroup"},
	}
}

func TestGenerate_DOT(t *testing.T) {
	g := &Generator{}
	out, err := g.GenerateString(baselineResources(), nil)
	require.NoError(t, err)

	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, "OrgTrail")
	assert.Contains(t, out, "AWS::CloudTrail::Trail")
	assert.Contains(t, out, "AWS::Logs::LogGroup")
}

func TestGenerate_GetAttEdgesStyled(t *testing.T) {
	g := &Generator{}
	out, err := g.GenerateString(baselineResources(), nil)
	require.NoError(t, err)

	// The OrgTrail -> TrailLogGroup edge is a GetAtt reference
	assert.Contains(t, out, `color="blue"`)
}

func TestGenerate_Mermaid(t *testing.T) {
	g := &Generator{Format: FormatMermaid}
	out, err := g.GenerateString(baselineResources(), nil)
	require.NoError(t, err)

	assert.Contains(t, out, "graph TD")
}

func TestGenerate_ParametersIncluded(t *testing.T) {
	params := map[string]auditwire.DiscoveredParameter{
		"TrailBucketName": {Name: "TrailBucketName"},
	}
	resources := map[string]auditwire.DiscoveredResource{
		"TrailBucket": {
			Name:         "TrailBucket",
			Type:         "s3.Bucket",
			Dependencies: []string{"TrailBucketName"},
		},
	}

	withParams := &Generator{IncludeParameters: true}
	out, err := withParams.GenerateString(resources, params)
	require.NoError(t, err)
	assert.Contains(t, out, "TrailBucketName")

	withoutParams := &Generator{}
	out, err = withoutParams.GenerateString(resources, params)
	require.NoError(t, err)
	assert.NotContains(t, out, "TrailBucketName")
}

func TestGenerate_ClusterByType(t *testing.T) {
	resources := map[string]auditwire.DiscoveredResource{
		"TrailBucket":  {Name: "TrailBucket", Type: "s3.Bucket"},
		"TrailPolicy":  {Name: "TrailPolicy", Type: "s3.BucketPolicy"},
		"ThreatDetect": {Name: "ThreatDetect", Type: "guardduty.Detector"},
	}

	g := &Generator{ClusterByType: true}
	out, err := g.GenerateString(resources, nil)
	require.NoError(t, err)

	// dot assigns cluster subgraphs sequential ids; the service name is
	// carried in the cluster label.
	assert.Contains(t, out, "subgraph cluster_")
	assert.Contains(t, out, `label="S3"`)
	assert.NotContains(t, out, `label="GuardDuty"`)
}

func TestGoTypeToCFType(t *testing.T) {
	assert.Equal(t, "AWS::GuardDuty::Detector", goTypeToCFType("guardduty.Detector"))
	assert.Equal(t, "AWS::IAM::Role", goTypeToCFType("iam.Role"))
	assert.Equal(t, "AWS::Events::Rule", goTypeToCFType("events.Rule"))
}
