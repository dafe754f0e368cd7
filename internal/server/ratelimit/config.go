package ratelimit

import (
	"strings"
	"time"

	"github.com/jonathan/skillmatch/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path; a trailing "/" makes it a prefix
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window; <= 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// FromConfig builds the limiter configuration from the application settings.
func FromConfig(cfg config.RateLimitConfig) *Config {
	return &Config{
		Enabled:         cfg.Enabled,
		DefaultLimit:    cfg.DefaultLimit,
		DefaultWindow:   cfg.DefaultWindow,
		CleanupInterval: cfg.CleanupInterval,
		IdleTTL:         time.Hour,
		Whitelist:       toSet(cfg.Whitelist),
		Blacklist:       toSet(cfg.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 0: health checks are unlimited.
		{Path: "/health", Method: "GET", Limit: 0},
		{Path: "/metrics", Method: "GET", Limit: 0},

		// Tier 1: fan-out and external calls.
		{Path: "/feedback", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/match/batch", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/corpus/reload", Method: "POST", Limit: 6, Window: time.Minute, Burst: 2},

		// Tier 2: single-candidate scoring and reads use the default limit.
	}
}

// toSet turns a list of client IDs into a lookup set, dropping blanks.
func toSet(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			result[item] = true
		}
	}
	return result
}
