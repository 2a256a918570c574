package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime configuration for myoctl.
type Config struct {
	// BackendURL is the origin of the capture/training/inference service.
	BackendURL string `env:"BACKEND_URL" envDefault:"http://localhost:5000"`

	// DBPath overrides the default event store location.
	DBPath string `env:"DB"`

	// RequestTimeout bounds a single backend request. Zero means no timeout;
	// captures and training routinely run for tens of seconds.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"0s"`

	// LenientAck accepts any JSON object from /api/realtime and
	// /api/power-off as success, for services that reply without a status
	// or message field.
	LenientAck bool `env:"LENIENT_ACK" envDefault:"false"`

	// DatasetKey and ModelKey are the artifact names reported by /api/check.
	DatasetKey string `env:"DATASET_KEY" envDefault:"MyoDataset.csv"`
	ModelKey   string `env:"MODEL_KEY" envDefault:"modelo_LSTM.keras"`
}

// DefaultConfig returns a Config with the envDefault values applied and no
// environment overrides.
func DefaultConfig() Config {
	var cfg Config
	// The defaults are static tags; parsing them cannot fail.
	_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	return cfg
}

// ConfigFromEnv builds a Config from MYOCTL_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "MYOCTL_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid backend URL %q: %w", c.BackendURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend URL %q must use http or https", c.BackendURL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend URL %q has no host", c.BackendURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative, got %s", c.RequestTimeout)
	}
	if c.DatasetKey == "" || c.ModelKey == "" {
		return fmt.Errorf("artifact keys must not be empty")
	}
	if c.DatasetKey == c.ModelKey {
		return fmt.Errorf("dataset and model artifact keys must differ, both are %q", c.DatasetKey)
	}
	return nil
}
