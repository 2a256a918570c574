package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestDefaultConfig_IgnoresEnvironment(t *testing.T) {
	t.Setenv("MYOCTL_BACKEND_URL", "http://10.0.0.5:8080")
	t.Setenv("MYOCTL_DB", "/tmp/myoctl.db")

	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:5000", cfg.BackendURL)
	assert.Empty(t, cfg.DBPath)
	assert.Zero(t, cfg.RequestTimeout)
	assert.False(t, cfg.LenientAck)
	assert.Equal(t, "MyoDataset.csv", cfg.DatasetKey)
	assert.Equal(t, "modelo_LSTM.keras", cfg.ModelKey)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("MYOCTL_BACKEND_URL", "http://10.0.0.5:8080")
	t.Setenv("MYOCTL_REQUEST_TIMEOUT", "45s")
	t.Setenv("MYOCTL_LENIENT_ACK", "true")
	t.Setenv("MYOCTL_DB", "/tmp/myoctl.db")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8080", cfg.BackendURL)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.LenientAck)
	assert.Equal(t, "/tmp/myoctl.db", cfg.DBPath)
	assert.Equal(t, "MyoDataset.csv", cfg.DatasetKey)
}

func TestConfigFromEnv_BadDuration(t *testing.T) {
	t.Setenv("MYOCTL_REQUEST_TIMEOUT", "soon")
	_, err := ConfigFromEnv()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"https", func(c *Config) { c.BackendURL = "https://myo.local" }, false},
		{"bad scheme", func(c *Config) { c.BackendURL = "ftp://myo.local" }, true},
		{"no host", func(c *Config) { c.BackendURL = "http://" }, true},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -time.Second }, true},
		{"same keys", func(c *Config) { c.ModelKey = c.DatasetKey }, true},
		{"empty key", func(c *Config) { c.DatasetKey = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
