package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Rules: []Rule{
			{Path: "/sessions/", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
			{Path: "/health", Method: "GET", Limit: 0},
		},
	}
}

func TestLimiter_Allow(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	allowed, info := l.Allow("1.2.3.4", "/sessions/abc/screen", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 2, info.Limit)

	allowed, _ = l.Allow("1.2.3.4", "/sessions/abc/screen", "POST")
	assert.True(t, allowed)

	allowed, info = l.Allow("1.2.3.4", "/sessions/abc/screen", "POST")
	require.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("1.1.1.1", "/sessions/x/screen", "POST")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("1.1.1.1", "/sessions/x/screen", "POST")
	assert.False(t, allowed)

	allowed, _ = l.Allow("2.2.2.2", "/sessions/x/screen", "POST")
	assert.True(t, allowed)
}

func TestLimiter_UnlimitedEndpoint(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/sessions/x/screen", "POST")
		require.True(t, allowed)
	}
}

func TestConfig_Match(t *testing.T) {
	cfg := testConfig()

	rule := cfg.match("/sessions/abc/screen", "POST")
	assert.Equal(t, 2, rule.Limit)

	// Method must match for a rule to apply.
	rule = cfg.match("/sessions/abc/screen", "GET")
	assert.Equal(t, cfg.DefaultLimit, rule.Limit)

	rule = cfg.match("/job-postings", "GET")
	assert.Equal(t, cfg.DefaultLimit, rule.Limit)
}
