package ntcrypt

import (
	"errors"

	"github.com/MrEthical07/ntcrypt/internal/audit"
	"github.com/MrEthical07/ntcrypt/internal/rate"
	"github.com/MrEthical07/ntcrypt/nthash"
	"github.com/redis/go-redis/v9"
)

// Builder assembles a [Hasher]. A Builder can be used for one Build only.
type Builder struct {
	config    Config
	redis     redis.UniversalClient
	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the builder configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis sets the Redis client used by the verification limiter.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles metric collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the hash latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Hasher, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Limiter.Enabled && b.redis == nil {
		return nil, errors.New("Limiter requires redis client")
	}

	h := &Hasher{
		metrics: NewMetrics(cfg.Metrics),
	}
	h.scratch.New = func() any {
		return nthash.NewScratch()
	}

	// -------- LIMITER --------
	if cfg.Limiter.Enabled {
		h.limiter = rate.New(b.redis, rate.Config{
			Prefix:      cfg.Limiter.RedisPrefix,
			MaxAttempts: cfg.Limiter.MaxAttempts,
			Cooldown:    cfg.Limiter.Cooldown,
		})
	}

	// -------- AUDIT --------
	h.audit = audit.NewDispatcher(audit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)

	b.built = true
	return h, nil
}
