package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !envOr("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envOr("RATE_LIMIT_DEFAULT_LIMIT", 1000, strconv.Atoi),
		DefaultWindow:   envOr("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		CleanupInterval: envOr("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: Whole-pool rankings (strictest limits)
		{Path: "/rankings", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/requisitions/", Method: "GET", Limit: 300, Window: time.Minute, Burst: 30},

		// Tier 2: Single-candidate scoring
		{Path: "/skill-matches", Method: "POST", Limit: 600, Window: time.Minute, Burst: 60},
		{Path: "/overall-score", Method: "POST", Limit: 600, Window: time.Minute, Burst: 60},

		// Tier 3: Selection changes
		{Path: "/requisitions/", Method: "PUT", Limit: 600, Window: time.Minute, Burst: 60},
		{Path: "/requisitions/", Method: "POST", Limit: 600, Window: time.Minute, Burst: 60},
		{Path: "/requisitions/", Method: "DELETE", Limit: 600, Window: time.Minute, Burst: 60},

		// Everything else uses the default limit; /health and /metrics are unlimited
	}
}

// envOr parses the environment variable key, falling back to def when it
// is unset or does not parse.
func envOr[T any](key string, def T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

// parseIPList turns a comma-separated client list into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
