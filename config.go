package ntcrypt

import (
	"errors"
	"strings"
	"time"
)

// Config defines a public type used by ntcrypt APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Metrics MetricsConfig
	Audit   AuditConfig
	Limiter LimiterConfig
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by ntcrypt APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by ntcrypt APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
LIMITER CONFIG
====================================
*/

// LimiterConfig controls per-identifier throttling of failed verifications.
//
// With Enabled set, an identifier that reaches MaxAttempts failed
// verifications within Cooldown is refused until the window expires.
// Enabling the limiter requires a Redis client on the [Builder].
type LimiterConfig struct {
	Enabled     bool
	RedisPrefix string
	MaxAttempts int
	Cooldown    time.Duration
}

// DefaultConfig returns the configuration used by [New].
func DefaultConfig() Config {
	return Config{
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: false,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Limiter: LimiterConfig{
			Enabled:     false,
			RedisPrefix: "nt",
			MaxAttempts: 5,
			Cooldown:    15 * time.Minute,
		},
	}
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when audit is enabled")
	}

	// Limiter
	if c.Limiter.Enabled {
		if strings.TrimSpace(c.Limiter.RedisPrefix) == "" {
			return errors.New("Limiter RedisPrefix must not be empty")
		}
		if strings.ContainsAny(c.Limiter.RedisPrefix, " :") {
			return errors.New("Limiter RedisPrefix must not contain spaces or ':'")
		}
		if c.Limiter.MaxAttempts <= 0 {
			return errors.New("Limiter MaxAttempts must be > 0")
		}
		if c.Limiter.Cooldown <= 0 {
			return errors.New("Limiter Cooldown must be > 0")
		}
	}

	return nil
}
