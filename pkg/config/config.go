package config

import (
	"runtime"
	"strings"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/logger"
)

// Config is the configuration of the rrcodec tool and of encoders built
// from it.
type Config struct {
	// Encoding settings for recording streams
	Encoding EncodingConfig `yaml:"encoding" json:"encoding" mapstructure:"encoding"`

	// Logging configures the global zap logger
	Logging logger.Config `yaml:"logging" json:"logging" mapstructure:"logging"`

	// Metrics configures the Prometheus endpoint
	Metrics MetricsConfig `yaml:"metrics" json:"metrics" mapstructure:"metrics"`

	// Tracing configures OpenTelemetry span export
	Tracing TracingConfig `yaml:"tracing" json:"tracing" mapstructure:"tracing"`
}

// EncodingConfig contains the settings of the message encoder.
type EncodingConfig struct {
	// Compression of Arrow payloads: off, lz4 or zstd
	Compression string `yaml:"compression" json:"compression" mapstructure:"compression"`
	// Level is the compression level: fastest, default, better or best
	Level string `yaml:"level" json:"level" mapstructure:"level"`
	// Workers bounds the number of payloads serialized concurrently
	Workers int `yaml:"workers" json:"workers" mapstructure:"workers"`
	// ApplicationID is written into the store info of new recordings
	ApplicationID string `yaml:"application_id" json:"application_id" mapstructure:"application_id"`
}

// MetricsConfig contains the metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	Address string `yaml:"address" json:"address" mapstructure:"address"`
}

// TracingConfig contains the span exporter settings.
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	ServiceName string `yaml:"service_name" json:"service_name" mapstructure:"service_name"`
	// PrettyPrint indents exported spans
	PrettyPrint bool `yaml:"pretty_print" json:"pretty_print" mapstructure:"pretty_print"`
}

// NewDefault returns a configuration with sensible defaults.
func NewDefault() *Config {
	return &Config{
		Encoding: EncodingConfig{
			Compression: "lz4",
			Level:       "default",
			Workers:     runtime.NumCPU(),
		},
		Logging: logger.Config{
			Level:    "info",
			Encoding: "json",
		},
		Metrics: MetricsConfig{
			Address: ":9090",
		},
		Tracing: TracingConfig{
			ServiceName: "rrcodec",
		},
	}
}

var (
	validCompressions = []string{"off", "lz4", "zstd"}
	validLevels       = []string{"fastest", "default", "better", "best"}
)

// Validate validates the configuration for correctness.
func (c *Config) Validate() error {
	if !oneOf(c.Encoding.Compression, validCompressions) {
		return errors.Newf(errors.ErrorTypeConfig, "encoding.compression must be one of %s",
			strings.Join(validCompressions, ", ")).
			WithDetail("value", c.Encoding.Compression)
	}
	if !oneOf(c.Encoding.Level, validLevels) {
		return errors.Newf(errors.ErrorTypeConfig, "encoding.level must be one of %s",
			strings.Join(validLevels, ", ")).
			WithDetail("value", c.Encoding.Level)
	}
	if c.Encoding.Workers <= 0 {
		return errors.New(errors.ErrorTypeConfig, "encoding.workers must be positive")
	}
	if c.Metrics.Enabled && c.Metrics.Address == "" {
		return errors.New(errors.ErrorTypeConfig, "metrics.address is required when metrics are enabled")
	}
	if c.Tracing.Enabled && c.Tracing.ServiceName == "" {
		return errors.New(errors.ErrorTypeConfig, "tracing.service_name is required when tracing is enabled")
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}
