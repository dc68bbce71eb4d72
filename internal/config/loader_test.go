package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "", 0o600))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5001/api/v1", cfg.API.BaseURL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, ".", cfg.Export.Dir)
	assert.False(t, cfg.Google.Configured())
	assert.Empty(t, cfg.Analytics.MeasurementID)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://api.planbrew.dev/api/v1
google:
  client_id: cid
  client_secret: shh
logging:
  level: debug
`, 0o600)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.planbrew.dev/api/v1", cfg.API.BaseURL)
	assert.True(t, cfg.Google.Configured())
	assert.Equal(t, "shh", cfg.Google.ClientSecret.Value())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "api:\n  base_url: https://file.example/api\n", 0o600)
	t.Setenv("PLANBREW_API_BASE_URL", "https://env.example/api")
	t.Setenv("PLANBREW_LOGGING_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example/api", cfg.API.BaseURL)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_RejectsLooseFilePermissions(t *testing.T) {
	path := writeConfig(t, "api:\n  base_url: https://x.example\n", 0o644)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insecure config file permissions")
}

func TestLoad_RejectsInvalidBaseURL(t *testing.T) {
	t.Setenv("PLANBREW_API_BASE_URL", "not a url")

	_, err := Load(writeConfig(t, "", 0o600))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url")
}

func TestLoad_RejectsUnknownLogFormat(t *testing.T) {
	t.Setenv("PLANBREW_LOGGING_FORMAT", "xml")

	_, err := Load(writeConfig(t, "", 0o600))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.format")
}

func TestTransformEnvKey(t *testing.T) {
	assert.Equal(t, "api.base_url", transformEnvKey("PLANBREW_API_BASE_URL"))
	assert.Equal(t, "google.client_id", transformEnvKey("PLANBREW_GOOGLE_CLIENT_ID"))
	assert.Equal(t, "analytics.measurement_id", transformEnvKey("PLANBREW_ANALYTICS_MEASUREMENT_ID"))
	assert.Equal(t, "debug", transformEnvKey("PLANBREW_DEBUG"))
}

func TestSecret_Redaction(t *testing.T) {
	s := Secret("hunter2")

	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "Secret([REDACTED])", s.GoString())
	assert.Equal(t, "hunter2", s.Value())
	assert.Equal(t, "", Secret("").String())
}
