package stack

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/auditwire/auditwire-go/intrinsics"
)

func TestParameters_Defaults(t *testing.T) {
	params := Parameters()
	require.Len(t, params, 3)

	assert.Equal(t, "us-east-1", params["Region"].Default)
	assert.Equal(t, "org-cloudtrail-logs-archive", params["TrailBucketName"].Default)
	assert.Equal(t,
		"arn:aws:events:us-east-1:000000000000:event-bus/placeholder",
		params["SiemDestinationArn"].Default)
	for name, p := range params {
		assert.Equal(t, "String", p.Type, name)
		assert.Equal(t, name, p.Name)
	}
}

func TestTrailBucket_Hardening(t *testing.T) {
	assert.Equal(t, TrailBucketName, TrailBucket.BucketName)
	assert.Equal(t, "Enabled", TrailBucketVersioning.Status)
	assert.True(t, TrailBucketPublicAccessBlock.BlockPublicAcls)
	assert.True(t, TrailBucketPublicAccessBlock.BlockPublicPolicy)
	assert.True(t, TrailBucketPublicAccessBlock.IgnorePublicAcls)
	assert.True(t, TrailBucketPublicAccessBlock.RestrictPublicBuckets)
	assert.Equal(t, "AES256", TrailBucketEncryptionDefault.SSEAlgorithm)
}

func TestTrailBucket_LifecycleArchivesAfter90Days(t *testing.T) {
	assert.Equal(t, "GLACIER", TrailBucketArchiveTransition.StorageClass)
	assert.Equal(t, 90, TrailBucketArchiveTransition.TransitionInDays)
	assert.Equal(t, "Enabled", TrailBucketArchiveRule.Status)
}

func TestTrailBucketPolicy_RequiresBucketOwnerFullControl(t *testing.T) {
	cond, ok := TrailBucketWriteStatement.Condition[StringEquals].(Json)
	require.True(t, ok)
	assert.Equal(t, "bucket-owner-full-control", cond["s3:x-amz-acl"])
	assert.Equal(t, "s3:PutObject", TrailBucketWriteStatement.Action)
}

func TestTrailBucketPolicy_DeniesInsecureTransport(t *testing.T) {
	assert.Equal(t, "Deny", TrailBucketDenyInsecureStatement.Effect)
	cond, ok := TrailBucketDenyInsecureStatement.Condition[Bool].(Json)
	require.True(t, ok)
	assert.Equal(t, false, cond["aws:SecureTransport"])
}

func TestOrgTrail_CoversWholeOrganization(t *testing.T) {
	assert.True(t, OrgTrail.IsLogging)
	assert.True(t, OrgTrail.IsMultiRegionTrail)
	assert.True(t, OrgTrail.IsOrganizationTrail)
	assert.True(t, OrgTrail.IncludeGlobalServiceEvents)
	assert.True(t, OrgTrail.EnableLogFileValidation)
	assert.Equal(t, TrailBucket, OrgTrail.S3BucketName)
}

func TestTrailLogGroup_Retention(t *testing.T) {
	assert.Equal(t, "/aws/cloudtrail/org_trail", TrailLogGroup.LogGroupName)
	assert.Equal(t, 90, TrailLogGroup.RetentionInDays)
}

func TestThreatDetector_FastestCadence(t *testing.T) {
	assert.True(t, ThreatDetector.Enable)
	assert.Equal(t, "FIFTEEN_MINUTES", ThreatDetector.FindingPublishingFrequency)
}

func TestHighSeverityFindingPattern_Shape(t *testing.T) {
	want := Json{
		"source":      []any{"aws.guardduty"},
		"detail-type": []any{"GuardDuty Finding"},
		"detail": Json{
			"severity": []any{
				Json{"numeric": []any{">=", 7}},
			},
		},
	}
	if diff := cmp.Diff(want, HighSeverityFindingPattern); diff != "" {
		t.Errorf("pattern mismatch (-want +got):\n%s", diff)
	}
}

func TestHighSeverityFindingPattern_SeverityIsNumeric(t *testing.T) {
	// The severity comparison must serialize as a JSON number, not a
	// string. json.Marshal HTML-escapes ">", so encode without escaping
	// before asserting on the raw document.
	out := marshalPlain(t, HighSeverityFindingPattern)
	assert.Contains(t, out, `"numeric":[">=",7]`)
	assert.NotContains(t, out, `"7"`)
}

// marshalPlain encodes v as compact JSON without HTML escaping.
func marshalPlain(t *testing.T, v any) string {
	t.Helper()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(v))
	return buf.String()
}

func TestParameters_SurviveEmbedding(t *testing.T) {
	// Embedding a parameter in a resource property copies the struct at
	// package var initialization; the copy must still serialize as a Ref
	// to the declared name.
	data, err := json.Marshal(TrailBucket.BucketName)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Ref": "TrailBucketName"}`, string(data))

	data, err = json.Marshal(SiemTarget.Arn)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Ref": "SiemDestinationArn"}`, string(data))

	data, err = json.Marshal(TrailBucket)
	require.NoError(t, err)
	assert.Contains(t, string(data), `{"Ref":"TrailBucketName"}`)
}

func TestFindingsRule_TargetsSiem(t *testing.T) {
	assert.Equal(t, "ENABLED", HighSeverityFindingsRule.State)
	require.Len(t, HighSeverityFindingsRule.Targets, 1)
	assert.Equal(t, SiemTarget, HighSeverityFindingsRule.Targets[0])
	assert.Equal(t, SiemDestinationArn, SiemTarget.Arn)
	assert.Equal(t, "siem-destination", SiemTarget.Id)
}

func TestRegistry_CoversAllDeclarations(t *testing.T) {
	resources := Resources()
	require.Len(t, resources, 7)
	for name, r := range resources {
		assert.NotEmpty(t, r.ResourceType(), name)
	}

	outputs := Outputs()
	require.Len(t, outputs, 3)
	for name, o := range outputs {
		assert.NotNil(t, o.Value, name)
		assert.NotEmpty(t, o.Description, name)
	}
}
