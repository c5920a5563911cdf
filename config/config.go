package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/orcka/invoiceapi/internal/jsonlog"
)

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port int    `yaml:"port" env:"PORT" env-description:"HTTP listen port"`
		Env  string `yaml:"env" env:"ENV" env-description:"environment label (development|staging|production)"`
	} `yaml:"server"`
	// Build holds the raw build metadata. Empty values are resolved to
	// fallbacks by the service layer, not here.
	Build struct {
		Time    string `yaml:"time" env:"BUILD_TIME" env-description:"build timestamp, current UTC time when empty"`
		GitSHA  string `yaml:"git_sha" env:"GIT_SHA" env-description:"git commit SHA, dev-snapshot when empty"`
		Version string `yaml:"version" env:"SERVICE_VERSION" env-description:"service version, 0.0.0 when empty"`
	} `yaml:"build"`
	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL" env-description:"minimum log level (info|error|fatal|off)"`
	} `yaml:"log"`
	Limiter struct {
		RPS     float64 `yaml:"rps" env:"LIMITER_RPS" env-description:"rate limiter maximum requests per second"`
		Burst   int     `yaml:"burst" env:"LIMITER_BURST" env-description:"rate limiter maximum burst"`
		Enabled bool    `yaml:"enabled" env:"LIMITER_ENABLED" env-description:"enable rate limiter"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"CORS_TRUSTED_ORIGINS" env-description:"trusted CORS origins, comma separated, * allows all"`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"METRICS_ENABLED" env-description:"expose request metrics"`
	} `yaml:"metrics"`
	BasicAuth struct {
		Username     string `yaml:"username" env:"BASIC_AUTH_USERNAME" env-description:"username for /debug/vars"`
		PasswordHash string `yaml:"password_hash" env:"BASIC_AUTH_PASSWORD_HASH" env-description:"bcrypt hash of the /debug/vars password"`
	} `yaml:"basic_auth"`
}

// Default returns the configuration used when neither the file nor the
// environment sets a value.
func Default() Config {
	var cfg Config
	cfg.Server.Port = 8080
	cfg.Server.Env = "development"
	cfg.Log.Level = "info"
	cfg.Limiter.RPS = 4
	cfg.Limiter.Burst = 8
	cfg.Cors.TrustedOrigins = []string{"*"}
	cfg.Metrics.Enabled = true
	return cfg
}

// Decode layers the configuration: defaults, then the optional YAML file at
// path, then environment variables. An empty path skips the file.
func Decode(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: open %s: %w", path, err)
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late at runtime.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server port %d out of range", c.Server.Port)
	}
	if c.Limiter.RPS < 0 || c.Limiter.Burst < 0 {
		return errors.New("config: limiter rps and burst must not be negative")
	}
	if _, err := jsonlog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// AllowsAnyOrigin reports whether the CORS policy is the wildcard policy.
func (c Config) AllowsAnyOrigin() bool {
	for _, origin := range c.Cors.TrustedOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
