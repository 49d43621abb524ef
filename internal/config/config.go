// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"fmt"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RosterPath points to a YAML roster. Empty uses the built-in roster.
	RosterPath string `koanf:"roster_path"`

	// APIToken enables bearer authentication when set.
	APIToken string `koanf:"api_token"`

	// CommandQueueSize bounds the planner command queue.
	CommandQueueSize int `koanf:"command_queue_size"`

	// DismissedMax bounds the dismissed recommendations. Zero means unbounded.
	DismissedMax int `koanf:"dismissed_max"`

	// CandidateLimit caps the number of recommendations.
	CandidateLimit int `koanf:"candidate_limit"`

	// MaxPairLimit caps GET /api/v1/pairs?limit.
	MaxPairLimit int `koanf:"max_pair_limit"`

	// CORSAllowedOrigins lists the origins allowed by CORS.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// RateLimitRPS and RateLimitBurst configure the per-client limiter.
	// A zero rate disables limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// MetricsNamespace and MetricsSubsystem prefix every metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsHTTPBuckets are the HTTP latency buckets in milliseconds.
	// Empty keeps the Prometheus defaults.
	MetricsHTTPBuckets []float64 `koanf:"metrics_http_buckets"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		CommandQueueSize:   1024,
		DismissedMax:       0,
		CandidateLimit:     25,
		MaxPairLimit:       100,
		CORSAllowedOrigins: []string{"*"},
		RateLimitRPS:       20,
		RateLimitBurst:     40,
		MetricsNamespace:   "padelmatch",
		MetricsSubsystem:   "planner",
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	case c.CommandQueueSize < 1:
		return fmt.Errorf("%w: command_queue_size must be positive", ErrInvalidConfig)
	case c.DismissedMax < 0:
		return fmt.Errorf("%w: dismissed_max must not be negative", ErrInvalidConfig)
	case c.CandidateLimit < 1:
		return fmt.Errorf("%w: candidate_limit must be positive", ErrInvalidConfig)
	case c.MaxPairLimit < 1:
		return fmt.Errorf("%w: max_pair_limit must be positive", ErrInvalidConfig)
	case c.RateLimitRPS < 0:
		return fmt.Errorf("%w: rate_limit_rps must not be negative", ErrInvalidConfig)
	case c.RateLimitRPS > 0 && c.RateLimitBurst < 1:
		return fmt.Errorf("%w: rate_limit_burst must be positive when limiting", ErrInvalidConfig)
	case !metricName(c.MetricsNamespace):
		return fmt.Errorf("%w: metrics_namespace %q is not a metric name", ErrInvalidConfig, c.MetricsNamespace)
	case c.MetricsSubsystem != "" && !metricName(c.MetricsSubsystem):
		return fmt.Errorf("%w: metrics_subsystem %q is not a metric name", ErrInvalidConfig, c.MetricsSubsystem)
	case !increasing(c.MetricsHTTPBuckets):
		return fmt.Errorf("%w: metrics_http_buckets must be strictly increasing", ErrInvalidConfig)
	}
	return nil
}

// metricName reports whether s matches [a-zA-Z_][a-zA-Z0-9_]*.
func metricName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func increasing(v []float64) bool {
	for i := 1; i < len(v); i++ {
		if v[i] <= v[i-1] {
			return false
		}
	}
	return true
}
