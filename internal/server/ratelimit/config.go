package ratelimit

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends in "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig reads RATE_LIMIT_* environment variables:
// ENABLED, DEFAULT_LIMIT, DEFAULT_WINDOW, CLEANUP_INTERVAL, WHITELIST and BLACKLIST
// (comma separated client IPs). Unparseable values fall back to the defaults.
func LoadConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("RATE_LIMIT")
	v.AutomaticEnv()
	v.SetDefault("enabled", true)
	v.SetDefault("default_limit", 1000)
	v.SetDefault("default_window", time.Minute)
	v.SetDefault("cleanup_interval", 5*time.Minute)
	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	if !boolOr(v, "enabled", true) {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    positiveIntOr(v, "default_limit", 1000),
		DefaultWindow:   positiveDurationOr(v, "default_window", time.Minute),
		CleanupInterval: positiveDurationOr(v, "cleanup_interval", 5*time.Minute),
		Whitelist:       parseIPList(v.GetString("whitelist")),
		Blacklist:       parseIPList(v.GetString("blacklist")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Model calls
		{Path: "/api/tailor-resume", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/api/sessions/", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},

		// Parsing and edits
		{Path: "/api/parse-resume", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/analyze-job", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/export-docx", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/sessions/", Method: "PUT", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/api/sessions/", Method: "DELETE", Limit: 300, Window: time.Minute, Burst: 30},
	}
}

func boolOr(v *viper.Viper, key string, def bool) bool {
	raw := strings.ToLower(strings.TrimSpace(v.GetString(key)))
	switch raw {
	case "1", "t", "true", "yes", "on":
		return true
	case "0", "f", "false", "no", "off":
		return false
	}
	return def
}

// positiveIntOr returns def for unset, malformed or non-positive values
func positiveIntOr(v *viper.Viper, key string, def int) int {
	if n := v.GetInt(key); n > 0 {
		return n
	}
	return def
}

func positiveDurationOr(v *viper.Viper, key string, def time.Duration) time.Duration {
	if d := v.GetDuration(key); d > 0 {
		return d
	}
	return def
}

// parseIPList parses a comma-separated list of client IPs into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
