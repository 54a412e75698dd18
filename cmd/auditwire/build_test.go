package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditwire "github.com/auditwire/auditwire-go"
	"github.com/auditwire/auditwire-go/internal/checks"
	"github.com/auditwire/auditwire-go/internal/config"
	"github.com/auditwire/auditwire-go/internal/differ"
	"github.com/auditwire/auditwire-go/stack"
)

// stackPackage points at the baseline declarations relative to this
// package's directory, where tests run.
const stackPackage = "../../stack"

func buildBaseline(t *testing.T, cfg config.Settings) *auditwire.Template {
	t.Helper()
	tmpl, errs := buildStackTemplate([]string{stackPackage}, cfg)
	require.Empty(t, errs)
	require.NotNil(t, tmpl)
	return tmpl
}

func TestBuildStackTemplate_AllResourcesPresent(t *testing.T) {
	tmpl := buildBaseline(t, config.Defaults())

	want := []string{
		"TrailBucket",
		"TrailBucketPolicy",
		"TrailLogGroup",
		"TrailDeliveryRole",
		"OrgTrail",
		"ThreatDetector",
		"HighSeverityFindingsRule",
	}
	assert.Len(t, tmpl.Resources, len(want))
	for _, name := range want {
		assert.Contains(t, tmpl.Resources, name)
	}

	assert.Len(t, tmpl.Parameters, 3)
	assert.Len(t, tmpl.Outputs, 3)
	assert.Equal(t, templateDescription, tmpl.Description)
}

func TestBuildStackTemplate_ReferencesAreWired(t *testing.T) {
	tmpl := buildBaseline(t, config.Defaults())

	// json.Marshal HTML-escapes ">" inside the severity predicate, so
	// encode without escaping before asserting on the raw document.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(tmpl))
	out := buf.String()

	// trail -> bucket reference
	trail := tmpl.Resources["OrgTrail"].Properties
	assert.Equal(t, map[string]any{"Ref": "TrailBucket"}, trail["S3BucketName"])

	// trail -> log group and role via GetAtt
	assert.Contains(t, out, `"Fn::GetAtt":["TrailLogGroup","Arn"]`)
	assert.Contains(t, out, `"Fn::GetAtt":["TrailDeliveryRole","Arn"]`)

	// parameter refs survive into the policy and rule targets
	assert.Contains(t, out, `{"Ref":"TrailBucketName"}`)
	assert.Contains(t, out, `{"Ref":"SiemDestinationArn"}`)

	// severity floor stays a JSON number
	assert.Contains(t, out, `"numeric":[">=",7]`)
}

func TestBuildStackTemplate_SettingsOverrideDefaults(t *testing.T) {
	cfg := config.Defaults()
	cfg.Region = "eu-central-1"
	cfg.TrailBucketName = "acme-org-trail-logs"
	cfg.SiemDestinationArn = "arn:aws:events:eu-central-1:123456789012:event-bus/siem"

	tmpl := buildBaseline(t, cfg)

	assert.Equal(t, "eu-central-1", tmpl.Parameters["Region"].Default)
	assert.Equal(t, "acme-org-trail-logs", tmpl.Parameters["TrailBucketName"].Default)
	assert.Equal(t, "arn:aws:events:eu-central-1:123456789012:event-bus/siem", tmpl.Parameters["SiemDestinationArn"].Default)
}

func TestBuildStackTemplate_Idempotent(t *testing.T) {
	first := buildBaseline(t, config.Defaults())
	second := buildBaseline(t, config.Defaults())

	result, err := differ.Compare(first, second, differ.Options{})
	require.NoError(t, err)
	assert.Zero(t, result.Summary.Total, "two builds of the same declarations must be identical")
}

func TestBuildStackTemplate_PassesAllChecks(t *testing.T) {
	tmpl := buildBaseline(t, config.Defaults())

	result := checks.Run(tmpl)
	assert.True(t, result.Success)

	// The default SIEM destination is the inert placeholder, which is the
	// one expected warning until a deployment overrides it.
	for _, f := range result.Findings {
		if f.Rule != "AWS011" || f.Severity != "warning" {
			t.Errorf("%s %s: %s [%s]", f.Severity, f.Resource, f.Message, f.Rule)
		}
	}
	require.Len(t, result.Findings, 1)
}

func TestBuildStackTemplate_OutputsReferenceResources(t *testing.T) {
	tmpl := buildBaseline(t, config.Defaults())

	data, err := json.Marshal(tmpl.Outputs)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `{"Ref":"TrailBucket"}`)
	assert.Contains(t, out, `{"Ref":"ThreatDetector"}`)
	assert.Contains(t, out, `{"Ref":"HighSeverityFindingsRule"}`)
}

func TestRunBuild_RejectsUnknownFormat(t *testing.T) {
	// An unsupported --format fails before any config or discovery work.
	err := runBuild(nil, "toml", "", "no-such-config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format: toml")
}

func TestApplySettings_OnlyKnownParameters(t *testing.T) {
	params := stack.Parameters()
	cfg := config.Defaults()
	cfg.Region = "ap-northeast-1"

	applySettings(params, cfg)

	assert.Equal(t, "ap-northeast-1", params["Region"].Default)
	assert.Len(t, params, 3)
}
