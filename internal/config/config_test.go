package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "org-cloudtrail-logs-archive", cfg.TrailBucketName)
	assert.Equal(t, "arn:aws:events:us-east-1:000000000000:event-bus/placeholder", cfg.SiemDestinationArn)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auditwire.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`region: eu-west-1
trail_bucket_name: acme-org-trail-logs
format: yaml
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "acme-org-trail-logs", cfg.TrailBucketName)
	assert.Equal(t, "yaml", cfg.Format)
	// untouched keys keep their defaults
	assert.Equal(t, "arn:aws:events:us-east-1:000000000000:event-bus/placeholder", cfg.SiemDestinationArn)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auditwire.yaml")
	require.NoError(t, os.WriteFile(path, []byte("region: eu-west-1\n"), 0o644))

	t.Setenv("AUDITWIRE_REGION", "ap-southeast-2")
	t.Setenv("AUDITWIRE_TRAIL_BUCKET_NAME", "env-trail-bucket")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ap-southeast-2", cfg.Region)
	assert.Equal(t, "env-trail-bucket", cfg.TrailBucketName)
}

func TestLoad_MissingFileIsSkipped(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", cfg.Region)
}

func TestValidate_RejectsBadInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		want   string
	}{
		{
			name:   "bad region",
			mutate: func(s *Settings) { s.Region = "US-EAST-1" },
			want:   "not a valid AWS region",
		},
		{
			name:   "bucket name too short",
			mutate: func(s *Settings) { s.TrailBucketName = "ab" },
			want:   "not a valid S3 bucket name",
		},
		{
			name:   "bucket name with uppercase",
			mutate: func(s *Settings) { s.TrailBucketName = "MyTrailBucket" },
			want:   "not a valid S3 bucket name",
		},
		{
			name:   "bucket name with adjacent dots",
			mutate: func(s *Settings) { s.TrailBucketName = "org..trail-logs" },
			want:   "not a valid S3 bucket name",
		},
		{
			name:   "arn for wrong service",
			mutate: func(s *Settings) { s.SiemDestinationArn = "arn:aws:sns:us-east-1:000000000000:alerts" },
			want:   "not a valid EventBridge event bus ARN",
		},
		{
			name:   "unknown format",
			mutate: func(s *Settings) { s.Format = "toml" },
			want:   "must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	assert.NoError(t, Validate(Defaults()))
}
