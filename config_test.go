package ntcrypt

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{
			name:      "default valid",
			mutate:    func(*Config) {},
			wantValid: true,
		},
		{
			name: "audit zero buffer invalid",
			mutate: func(c *Config) {
				c.Audit.Enabled = true
				c.Audit.BufferSize = 0
			},
			wantValid: false,
		},
		{
			name: "audit disabled ignores buffer",
			mutate: func(c *Config) {
				c.Audit.Enabled = false
				c.Audit.BufferSize = 0
			},
			wantValid: true,
		},
		{
			name: "limiter valid",
			mutate: func(c *Config) {
				c.Limiter.Enabled = true
			},
			wantValid: true,
		},
		{
			name: "limiter blank prefix invalid",
			mutate: func(c *Config) {
				c.Limiter.Enabled = true
				c.Limiter.RedisPrefix = "  "
			},
			wantValid: false,
		},
		{
			name: "limiter prefix with colon invalid",
			mutate: func(c *Config) {
				c.Limiter.Enabled = true
				c.Limiter.RedisPrefix = "nt:x"
			},
			wantValid: false,
		},
		{
			name: "limiter zero attempts invalid",
			mutate: func(c *Config) {
				c.Limiter.Enabled = true
				c.Limiter.MaxAttempts = 0
			},
			wantValid: false,
		},
		{
			name: "limiter zero cooldown invalid",
			mutate: func(c *Config) {
				c.Limiter.Enabled = true
				c.Limiter.Cooldown = 0
			},
			wantValid: false,
		},
		{
			name: "limiter disabled ignores fields",
			mutate: func(c *Config) {
				c.Limiter.Enabled = false
				c.Limiter.MaxAttempts = -1
				c.Limiter.Cooldown = -time.Second
			},
			wantValid: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantValid && err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
			if !tc.wantValid && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestBuilderLimiterRequiresRedis(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Limiter.Enabled = true

	if _, err := New().WithConfig(cfg).Build(); err == nil {
		t.Fatal("expected Build to fail without redis client")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New()
	h, err := b.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	defer h.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("expected second Build to fail")
	}
}

func TestBuilderRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = -1

	if _, err := New().WithConfig(cfg).Build(); err == nil {
		t.Fatal("expected Build to reject invalid config")
	}
}

func TestBuilderConfigImmutableAfterBuild(t *testing.T) {
	cfg := DefaultConfig()
	b := New().WithConfig(cfg)
	h, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer h.Close()

	b.WithMetricsEnabled(false)
	if _, err := h.Hash("x"); err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if got := h.MetricsSnapshot().Counters[MetricHashSuccess]; got != 1 {
		t.Fatalf("expected metrics to stay enabled after builder mutation, got %d", got)
	}
}

func TestBuilderMetricsDisabled(t *testing.T) {
	h, err := New().WithMetricsEnabled(false).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer h.Close()

	_, _ = h.Hash("x")
	if snap := h.MetricsSnapshot(); len(snap.Counters) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap.Counters)
	}
}
