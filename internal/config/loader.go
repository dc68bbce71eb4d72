// Package config provides configuration loading for the planbrew client.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	maxConfigFileSize = 1024 * 1024 // 1MB

	// envPrefix namespaces the client's environment variables.
	envPrefix = "PLANBREW_"
)

// Load reads configuration with the following precedence (highest to
// lowest):
//  1. PLANBREW_* environment variables (a .env file in the working
//     directory is folded into the environment first)
//  2. YAML config file (default ~/.config/planbrew/config.yaml)
//  3. Hardcoded defaults
//
// Environment variables map section-first:
//
//	PLANBREW_API_BASE_URL      -> api.base_url
//	PLANBREW_GOOGLE_CLIENT_ID  -> google.client_id
//	PLANBREW_LOGGING_LEVEL     -> logging.level
//
// The config file must have 0600 permissions and stay under 1MB; the
// Google client secret lives there, so world-readable files are rejected.
func Load(configPath string) (*Config, error) {
	// Fold a local .env into the process environment, if present.
	_ = godotenv.Load()

	k := koanf.New(".")

	if configPath == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(dir, "config.yaml")
	}

	if _, err := os.Stat(configPath); err == nil {
		// Open once and validate via the descriptor to avoid a TOCTOU
		// race between stat and read.
		f, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
		if err := validateConfigFileProperties(info); err != nil {
			return nil, fmt.Errorf("config file validation failed: %w", err)
		}

		content, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", transformEnvKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// transformEnvKey maps PLANBREW_SECTION_FIELD_NAME to section.field_name:
// the first underscore after the prefix separates the section, the rest
// stays in the field name.
func transformEnvKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

// Dir returns the planbrew config directory (~/.config/planbrew). The
// access token and config file both live here.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "planbrew"), nil
}

// EnsureDir creates the config directory with 0700 permissions so new
// users have somewhere for the token file to land.
func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}
	return dir, nil
}

// validateConfigFileProperties checks file permissions and size.
func validateConfigFileProperties(info os.FileInfo) error {
	// Skip the permission check on Windows (different permission model).
	if runtime.GOOS != "windows" {
		perm := info.Mode().Perm()
		if perm != 0o600 && perm != 0o400 {
			return fmt.Errorf("insecure config file permissions: %v (expected 0600 or 0400)", perm)
		}
	}
	if info.Size() > maxConfigFileSize {
		return fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}
	return nil
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:5001/api/v1"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "."
	}
}
