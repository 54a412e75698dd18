package differ

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditwire "github.com/auditwire/auditwire-go"
)

func detectorTemplate(frequency string) *auditwire.Template {
	return &auditwire.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Resources: map[string]auditwire.ResourceDef{
			"ThreatDetector": {
				Type: "AWS::GuardDuty::Detector",
				Properties: map[string]any{
					"Enable":                     true,
					"FindingPublishingFrequency": frequency,
				},
			},
		},
	}
}

func TestCompare_IdenticalTemplatesAreEmpty(t *testing.T) {
	result, err := Compare(detectorTemplate("FIFTEEN_MINUTES"), detectorTemplate("FIFTEEN_MINUTES"), Options{})
	require.NoError(t, err)

	assert.Zero(t, result.Summary.Total)
	assert.Empty(t, result.Diff.Added)
	assert.Empty(t, result.Diff.Removed)
	assert.Empty(t, result.Diff.Modified)
}

func TestCompare_ModifiedProperty(t *testing.T) {
	result, err := Compare(detectorTemplate("FIFTEEN_MINUTES"), detectorTemplate("SIX_HOURS"), Options{})
	require.NoError(t, err)

	require.Len(t, result.Diff.Modified, 1)
	entry := result.Diff.Modified[0]
	assert.Equal(t, "ThreatDetector", entry.Resource)
	assert.Contains(t, entry.Changes, "FindingPublishingFrequency modified")
}

func TestCompare_AddedAndRemoved(t *testing.T) {
	t1 := detectorTemplate("FIFTEEN_MINUTES")
	t2 := detectorTemplate("FIFTEEN_MINUTES")
	t2.Resources["TrailBucket"] = auditwire.ResourceDef{Type: "AWS::S3::Bucket"}
	delete(t2.Resources, "ThreatDetector")

	result, err := Compare(t1, t2, Options{})
	require.NoError(t, err)

	require.Len(t, result.Diff.Added, 1)
	assert.Equal(t, "TrailBucket", result.Diff.Added[0].Resource)
	require.Len(t, result.Diff.Removed, 1)
	assert.Equal(t, "ThreatDetector", result.Diff.Removed[0].Resource)
	assert.Equal(t, 2, result.Summary.Total)
}

func TestCompare_IgnoreOrder(t *testing.T) {
	t1 := detectorTemplate("FIFTEEN_MINUTES")
	t1.Resources["FindingsRule"] = auditwire.ResourceDef{
		Type: "AWS::Events::Rule",
		Properties: map[string]any{
			"Targets": []any{
				map[string]any{"Id": "siem"},
				map[string]any{"Id": "archive"},
			},
		},
	}
	t2 := detectorTemplate("FIFTEEN_MINUTES")
	t2.Resources["FindingsRule"] = auditwire.ResourceDef{
		Type: "AWS::Events::Rule",
		Properties: map[string]any{
			"Targets": []any{
				map[string]any{"Id": "archive"},
				map[string]any{"Id": "siem"},
			},
		},
	}

	strict, err := Compare(t1, t2, Options{})
	require.NoError(t, err)
	assert.Len(t, strict.Diff.Modified, 1)

	relaxed, err := Compare(t1, t2, Options{IgnoreOrder: true})
	require.NoError(t, err)
	assert.Empty(t, relaxed.Diff.Modified)
}

func TestCompareFiles_JSONAndYAML(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
  "AWSTemplateFormatVersion": "2010-09-09",
  "Resources": {
    "TrailBucket": {"Type": "AWS::S3::Bucket"}
  }
}`), 0o644))

	yamlPath := filepath.Join(dir, "b.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`AWSTemplateFormatVersion: "2010-09-09"
Resources:
  TrailBucket:
    Type: AWS::S3::Bucket
`), 0o644))

	result, err := CompareFiles(jsonPath, yamlPath, Options{})
	require.NoError(t, err)
	assert.Zero(t, result.Summary.Total)
}

func TestLoadTemplate_MissingFile(t *testing.T) {
	_, err := LoadTemplate(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
