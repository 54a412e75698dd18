// Package config loads auditwire CLI settings from defaults, an optional
// YAML file, and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. AUDITWIRE_REGION, AUDITWIRE_TRAIL_BUCKET_NAME.
const EnvPrefix = "AUDITWIRE_"

// Settings holds the deployment inputs and CLI behavior knobs.
type Settings struct {
	// Region is the home region for the organization trail stack.
	Region string `koanf:"region" validate:"required,aws_region"`

	// TrailBucketName is the S3 bucket that receives trail log files.
	TrailBucketName string `koanf:"trail_bucket_name" validate:"required,bucket_name"`

	// SiemDestinationArn is the event bus that receives high-severity findings.
	SiemDestinationArn string `koanf:"siem_destination_arn" validate:"required,event_bus_arn"`

	// Format selects the template output encoding.
	Format string `koanf:"format" validate:"oneof=json yaml"`

	// LogLevel controls CLI log verbosity.
	LogLevel string `koanf:"log_level" validate:"oneof=trace debug info warn error"`
}

// Defaults returns the built-in settings, matching the template
// parameter defaults.
func Defaults() Settings {
	return Settings{
		Region:             "us-east-1",
		TrailBucketName:    "org-cloudtrail-logs-archive",
		SiemDestinationArn: "arn:aws:events:us-east-1:000000000000:event-bus/placeholder",
		Format:             "json",
		LogLevel:           "info",
	}
}

var (
	regionPattern     = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d$`)
	bucketNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)
	eventBusPattern   = regexp.MustCompile(`^arn:aws[a-z-]*:events:[a-z0-9-]+:\d{12}:event-bus/[A-Za-z0-9._/-]+$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("aws_region", func(fl validator.FieldLevel) bool {
		return regionPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("bucket_name", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		return bucketNamePattern.MatchString(name) && !strings.Contains(name, "..")
	})
	v.RegisterValidation("event_bus_arn", func(fl validator.FieldLevel) bool {
		return eventBusPattern.MatchString(fl.Field().String())
	})
	return v
}

// Load builds Settings from defaults, the config file at path (skipped when
// path is empty or the file does not exist), and AUDITWIRE_* environment
// variables. The result is validated before it is returned.
func Load(path string) (Settings, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return Settings{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Settings{}, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Settings{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(name string) string {
		return strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Settings{}, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Settings
	if err := k.Unmarshal("", &cfg); err != nil {
		return Settings{}, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

// Validate checks the settings against the deployment input constraints.
func Validate(cfg Settings) error {
	if err := newValidator().Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			msgs := make([]string, 0, len(errs))
			for _, fe := range errs {
				msgs = append(msgs, describeFieldError(fe))
			}
			return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "aws_region":
		return fmt.Sprintf("%s %q is not a valid AWS region name", fe.Field(), fe.Value())
	case "bucket_name":
		return fmt.Sprintf("%s %q is not a valid S3 bucket name", fe.Field(), fe.Value())
	case "event_bus_arn":
		return fmt.Sprintf("%s %q is not a valid EventBridge event bus ARN", fe.Field(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
