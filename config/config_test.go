package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

var envKeys = []string{
	"PORT", "ENV", "BUILD_TIME", "GIT_SHA", "SERVICE_VERSION", "LOG_LEVEL",
	"LIMITER_RPS", "LIMITER_BURST", "LIMITER_ENABLED", "CORS_TRUSTED_ORIGINS",
	"METRICS_ENABLED", "BASIC_AUTH_USERNAME", "BASIC_AUTH_PASSWORD_HASH",
}

// clearEnv unsets every variable Decode reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestDecodeDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Decode("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"*"}, cfg.Cors.TrustedOrigins)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Limiter.Enabled)
	assert.Equal(t, 4.0, cfg.Limiter.RPS)
	assert.Equal(t, 8, cfg.Limiter.Burst)
	assert.Empty(t, cfg.Build.Time)
	assert.Empty(t, cfg.Build.GitSHA)
	assert.Empty(t, cfg.Build.Version)
	assert.True(t, cfg.AllowsAnyOrigin())
}

func TestDecodeBuildEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("BUILD_TIME", "2024-01-01T00:00:00Z")
	t.Setenv("GIT_SHA", "abc123")
	t.Setenv("SERVICE_VERSION", "1.2.3")

	cfg, err := Decode("")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01T00:00:00Z", cfg.Build.Time)
	assert.Equal(t, "abc123", cfg.Build.GitSHA)
	assert.Equal(t, "1.2.3", cfg.Build.Version)
}

func TestDecodeFileWithEnvironmentOverride(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
server:
  port: 9000
  env: staging
build:
  git_sha: fromfile
  version: 2.0.0
cors:
  trusted_origins:
    - https://billing.example.com
limiter:
  enabled: true
  rps: 1
  burst: 2
`)
	t.Setenv("SERVICE_VERSION", "2.0.1")

	cfg, err := Decode(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "staging", cfg.Server.Env)
	assert.Equal(t, "fromfile", cfg.Build.GitSHA)
	assert.Equal(t, "2.0.1", cfg.Build.Version)
	assert.Equal(t, []string{"https://billing.example.com"}, cfg.Cors.TrustedOrigins)
	assert.False(t, cfg.AllowsAnyOrigin())
	assert.True(t, cfg.Limiter.Enabled)
	assert.Equal(t, 1.0, cfg.Limiter.RPS)
	assert.Equal(t, 2, cfg.Limiter.Burst)
}

func TestDecodeFileKeepsExplicitFalse(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "metrics:\n  enabled: false\n")

	cfg, err := Decode(path)
	require.NoError(t, err)
	assert.False(t, cfg.Metrics.Enabled)

	t.Setenv("METRICS_ENABLED", "true")
	cfg, err = Decode(path)
	require.NoError(t, err)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestDecodeEmptyBuildValuesPassThrough(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "build:\n  git_sha: fromfile\n")
	t.Setenv("GIT_SHA", "")

	cfg, err := Decode(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Build.GitSHA)
}

func TestDecodeOriginList(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_TRUSTED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := Decode("")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Cors.TrustedOrigins)
	assert.False(t, cfg.AllowsAnyOrigin())
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "server:\n  prot: 9000\n")
	_, err := Decode(path)
	assert.Error(t, err)
}

func TestDecodeMissingFile(t *testing.T) {
	_, err := Decode(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Default

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"negative rps", func(c *Config) { c.Limiter.RPS = -1 }, true},
		{"negative burst", func(c *Config) { c.Limiter.Burst = -1 }, true},
		{"unknown log level", func(c *Config) { c.Log.Level = "debug" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
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
