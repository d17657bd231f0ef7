package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule is the rate limit applied to an endpoint. A Limit of zero or less
// means unlimited.
type Rule struct {
	Path   string        // Endpoint path (exact match, or prefix when it ends with "/")
	Method string        // HTTP method
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Rules           []Rule
}

// DefaultConfig returns the built-in limits.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Rules:           defaultRules(),
	}
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Rules:           defaultRules(),
	}
}

// defaultRules tiers the endpoints: screening runs and uploads are costly
// (embedding calls, file parsing), auth endpoints get abuse protection, and
// health stays unlimited.
func defaultRules() []Rule {
	return []Rule{
		{Path: "/sessions/", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/auth/login", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/auth/register", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/job-postings", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/health", Method: "GET", Limit: 0},
		{Path: "/metrics", Method: "GET", Limit: 0},
	}
}

// match finds the rule for an endpoint, falling back to the default limit.
func (c *Config) match(endpoint, method string) Rule {
	for _, rule := range c.Rules {
		if rule.Method != method {
			continue
		}
		if strings.HasSuffix(rule.Path, "/") {
			if strings.HasPrefix(endpoint, rule.Path) {
				return rule
			}
			continue
		}
		if endpoint == rule.Path {
			return rule
		}
	}
	return Rule{Limit: c.DefaultLimit, Window: c.DefaultWindow, Burst: c.DefaultLimit}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
