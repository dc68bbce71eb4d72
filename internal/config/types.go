package config

import (
	"fmt"
	"net/url"
)

// Config is the full client configuration.
type Config struct {
	API       APIConfig       `koanf:"api"`
	Google    GoogleConfig    `koanf:"google"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Logging   LoggingConfig   `koanf:"logging"`
	Export    ExportConfig    `koanf:"export"`
}

// APIConfig points at the PlanBrew backend.
type APIConfig struct {
	BaseURL string `koanf:"base_url"`
}

// GoogleConfig holds the identity-provider credentials for the sign-in
// flow. When empty, login is disabled with a configuration hint instead
// of failing obscurely.
type GoogleConfig struct {
	ClientID     string `koanf:"client_id"`
	ClientSecret Secret `koanf:"client_secret"`
}

// Configured reports whether the identity provider is set up.
func (g GoogleConfig) Configured() bool {
	return g.ClientID != ""
}

// AnalyticsConfig carries the optional measurement id. Empty disables
// analytics entirely.
type AnalyticsConfig struct {
	MeasurementID string `koanf:"measurement_id"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ExportConfig controls where export files land.
type ExportConfig struct {
	Dir string `koanf:"dir"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", c.Logging.Format)
	}
	return nil
}

// Secret wraps strings that should be redacted in logs and serialization.
// Use Value() to access the actual secret value.
type Secret string

// String implements fmt.Stringer. Always returns the redacted form.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

// GoString implements fmt.GoStringer for %#v formatting.
func (s Secret) GoString() string {
	return "Secret([REDACTED])"
}

// Value returns the actual secret value. Use sparingly.
func (s Secret) Value() string {
	return string(s)
}
