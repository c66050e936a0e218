package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool

	// DefaultLimit requests per DefaultWindow apply to unlisted routes.
	DefaultLimit  int
	DefaultWindow time.Duration

	// CleanupInterval is how often buckets unused for IdleTTL are pruned.
	// Zero disables pruning.
	CleanupInterval time.Duration
	IdleTTL         time.Duration

	Allowlist map[string]bool // client IDs never limited
	Denylist  map[string]bool // client IDs always refused
	Endpoints []EndpointConfig
}

// EndpointConfig is the limit for one route.
type EndpointConfig struct {
	Path   string        // exact path, "{name}" wildcard segments, or a prefix ending in "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window; zero means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// DefaultConfig is the limiter used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Allowlist:       map[string]bool{},
		Denylist:        map[string]bool{},
		Endpoints:       DefaultEndpointConfigs(),
	}
}

// LoadConfig reads RATE_LIMIT_* environment variables over DefaultConfig.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	cfg := DefaultConfig()
	cfg.DefaultLimit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.IdleTTL = getEnvDuration("RATE_LIMIT_IDLE_TTL", cfg.IdleTTL)
	cfg.Allowlist = parseIPList(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Denylist = parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST"))
	return cfg
}

// DefaultEndpointConfigs returns the per-route limits of the API.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: headless browser work (strictest limits)
		{Path: "/v1/sessions/{id}/export.pdf", Method: "GET", Limit: 20, Window: time.Hour, Burst: 3},

		// Tier 2: credential endpoints
		{Path: "/v1/auth/register", Method: "POST", Limit: 10, Window: time.Hour, Burst: 3},
		{Path: "/v1/auth/login", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/v1/me/password", Method: "PUT", Limit: 10, Window: time.Hour, Burst: 3},

		// Tier 3: writes that touch the row store
		{Path: "/v1/documents", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/v1/documents/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/v1/sessions", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/v1/sessions/{id}/save", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/v1/sessions/{id}/import", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// Tier 4: a stream is one long request, reconnects are cheap
		{Path: "/v1/sessions/{id}/events", Method: "GET", Limit: 0},

		// Editing traffic (ops, undo, redo, settings) is bursty by nature
		// and falls under the default limit.
	}
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of client IDs into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
