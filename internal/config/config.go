// Package config loads runtime settings for the CLI and the HTTP server.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults
const (
	DefaultPort           = 8080
	DefaultModel          = "gemini-2.5-pro"
	DefaultSessionTTL     = 2 * time.Hour
	DefaultRewriteTimeout = 30 * time.Second
	DefaultMaxUploadBytes = 10 << 20
)

// DefaultCORSOrigins are the local UI dev servers
var DefaultCORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// Config holds every setting. Values come from, in order of precedence,
// environment variables, the optional config file and the defaults.
type Config struct {
	GeminiAPIKey     string        `mapstructure:"gemini_api_key"`
	GeminiModel      string        `mapstructure:"gemini_model"`
	Port             int           `mapstructure:"port"`
	DatabaseURL      string        `mapstructure:"database_url"`
	SessionSecret    string        `mapstructure:"session_secret"`
	SessionTTL       time.Duration `mapstructure:"session_ttl"`
	RewriteTimeout   time.Duration `mapstructure:"rewrite_timeout"`
	MaxUploadBytes   int64         `mapstructure:"max_upload_bytes"`
	CORSAllowOrigins []string      `mapstructure:"cors_allow_origins"`
	LogJSON          bool          `mapstructure:"log_json"`
	Debug            bool          `mapstructure:"debug"`
}

// keys maps each setting to its environment variable
var keys = map[string]string{
	"gemini_api_key":     "GEMINI_API_KEY",
	"gemini_model":       "GEMINI_MODEL",
	"port":               "PORT",
	"database_url":       "DATABASE_URL",
	"session_secret":     "SESSION_SECRET",
	"session_ttl":        "SESSION_TTL",
	"rewrite_timeout":    "REWRITE_TIMEOUT",
	"max_upload_bytes":   "MAX_UPLOAD_BYTES",
	"cors_allow_origins": "CORS_ALLOW_ORIGINS",
	"log_json":           "LOG_JSON",
	"debug":              "DEBUG",
}

// New returns a viper instance with defaults and environment bindings installed
func New() (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("gemini_model", DefaultModel)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("session_ttl", DefaultSessionTTL)
	v.SetDefault("rewrite_timeout", DefaultRewriteTimeout)
	v.SetDefault("max_upload_bytes", DefaultMaxUploadBytes)
	v.SetDefault("cors_allow_origins", DefaultCORSOrigins)
	v.SetDefault("log_json", false)
	v.SetDefault("debug", false)

	for key, env := range keys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s environment variable: %w", env, err)
		}
	}
	return v, nil
}

// Load reads the config file at path, if any, and applies the environment.
// An empty path means environment and defaults only.
func Load(path string) (*Config, error) {
	v, err := New()
	if err != nil {
		return nil, err
	}
	return FromViper(v, path)
}

// FromViper decodes v into a Config after reading the config file at path.
// Callers use it when flags have been bound to v.
func FromViper(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.CORSAllowOrigins = splitOrigins(cfg.CORSAllowOrigins)
	return &cfg, nil
}

// splitOrigins accepts both a list and a single comma separated env value
func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, o := range strings.Split(item, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}

// Validate checks value ranges. Missing credentials are not errors here: the
// rewriter falls back to original content without an API key, and sessions
// without a secret are rejected by the server when it starts.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port))
	}
	if c.SessionTTL < time.Minute {
		errs = append(errs, fmt.Errorf("config error: 'session_ttl' must be at least 1m, got %s", c.SessionTTL))
	}
	if c.RewriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("config error: 'rewrite_timeout' must be positive"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("config error: 'max_upload_bytes' must be positive"))
	}
	return errors.Join(errs...)
}

// ValidateServer additionally requires the settings the HTTP server depends on
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.SessionSecret) < 16 {
		return fmt.Errorf("config error: 'session_secret' must be at least 16 characters")
	}
	return nil
}
