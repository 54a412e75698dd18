package serialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditwire "github.com/auditwire/auditwire-go"
	. "github.com/auditwire/auditwire-go/intrinsics"
	"github.com/auditwire/auditwire-go/resources/cloudtrail"
	"github.com/auditwire/auditwire-go/resources/s3"
)

func TestResource_OmitsZeroValues(t *testing.T) {
	props, err := Resource(s3.Bucket{BucketName: "logs"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "logs", props["BucketName"])
	assert.NotContains(t, props, "BucketEncryption")
	assert.NotContains(t, props, "Tags")
}

func TestResource_SkipsAttrRefFields(t *testing.T) {
	// Attribute fields carry json:"-" and never appear as properties.
	props, err := Resource(s3.Bucket{BucketName: "logs"}, nil)
	require.NoError(t, err)
	assert.NotContains(t, props, "Arn")
	assert.NotContains(t, props, "DomainName")
}

func TestResource_RequiredBoolSurvivesWhenFalse(t *testing.T) {
	props, err := Resource(cloudtrail.Trail{TrailName: "t", IsLogging: false}, nil)
	require.NoError(t, err)
	assert.Equal(t, false, props["IsLogging"])
}

func TestResource_NestedResourceBecomesRef(t *testing.T) {
	bucket := s3.Bucket{BucketName: "logs"}
	refs, err := NewRefTable(map[string]auditwire.Resource{"TrailBucket": bucket})
	require.NoError(t, err)

	props, err := Resource(cloudtrail.Trail{S3BucketName: bucket, IsLogging: true}, refs)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Ref": "TrailBucket"}, props["S3BucketName"])
}

func TestResource_UnknownNestedResourceSerializesInline(t *testing.T) {
	refs, err := NewRefTable(nil)
	require.NoError(t, err)

	other := s3.Bucket{BucketName: "other"}
	props, err := Resource(cloudtrail.Trail{S3BucketName: other, IsLogging: true}, refs)
	require.NoError(t, err)

	inline, ok := props["S3BucketName"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "other", inline["BucketName"])
}

func TestValue_ParameterBecomesRef(t *testing.T) {
	param := Parameter{Name: "TrailBucketName", Type: "String", Default: "org-logs"}

	v, err := Value(param, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Ref": "TrailBucketName"}, v)
}

func TestValue_IntrinsicsMarshalThemselves(t *testing.T) {
	v, err := Value(Sub{String: "${AWS::StackName}-trail"}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Fn::Sub": "${AWS::StackName}-trail"}, v)
}

func TestValue_SlicesAndMapsRecurse(t *testing.T) {
	v, err := Value([]any{
		Json{"numeric": []any{">=", 7}},
	}, nil)
	require.NoError(t, err)

	list, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	entry, ok := list[0].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, entry, "numeric")
}

func TestToPascalCase(t *testing.T) {
	assert.Equal(t, "BucketName", ToPascalCase("bucket_name"))
	assert.Equal(t, "TrailLogGroup", ToPascalCase("trail_log_group"))
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "bucket_name", ToSnakeCase("BucketName"))
}
