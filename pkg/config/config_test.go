package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "off", mutate: func(c *Config) { c.Encoding.Compression = "off" }},
		{name: "case insensitive", mutate: func(c *Config) { c.Encoding.Compression = "ZSTD" }},
		{name: "unknown compression", mutate: func(c *Config) { c.Encoding.Compression = "gzip" }, wantErr: true},
		{name: "unknown level", mutate: func(c *Config) { c.Encoding.Level = "max" }, wantErr: true},
		{name: "no workers", mutate: func(c *Config) { c.Encoding.Workers = 0 }, wantErr: true},
		{name: "metrics without address", mutate: func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Address = ""
		}, wantErr: true},
		{name: "tracing without service", mutate: func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.ServiceName = ""
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.True(t, errors.IsType(err, errors.ErrorTypeConfig), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RERUN_ENCODING_COMPRESSION", "off")
	t.Setenv("RERUN_ENCODING_WORKERS", "3")
	t.Setenv("RERUN_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "off", cfg.Encoding.Compression)
	assert.Equal(t, 3, cfg.Encoding.Workers)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "rrcodec", cfg.Tracing.ServiceName)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, Save(path, map[string]interface{}{
		"encoding": map[string]interface{}{"compression": "snappy"},
	}))

	_, err := Load(path)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestSaveLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rrcodec.yaml")
	cfg := NewDefault()
	cfg.Encoding.ApplicationID = "my_app"
	cfg.Metrics.Enabled = true
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Encoding, loaded.Encoding)
	assert.Equal(t, cfg.Metrics, loaded.Metrics)

	var plain Config
	require.NoError(t, LoadYAML(path, &plain))
	assert.Equal(t, "my_app", plain.Encoding.ApplicationID)
}

func TestLoadYAMLSubstitutesEnv(t *testing.T) {
	t.Setenv("RRCODEC_APP", "robot_arm")
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, Save(path, map[string]interface{}{
		"encoding": map[string]interface{}{"application_id": "${RRCODEC_APP}"},
	}))

	var cfg Config
	require.NoError(t, LoadYAML(path, &cfg))
	assert.Equal(t, "robot_arm", cfg.Encoding.ApplicationID)
}
