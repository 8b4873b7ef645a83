package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds rate limiter tuning parameters.
type Config struct {
	Prefix      string
	MaxAttempts int
	Cooldown    time.Duration
}

// Limiter counts verification attempts per identifier using Redis counters.
type Limiter struct {
	redis  redis.UniversalClient
	config Config
}

// New creates a rate [Limiter] backed by the given Redis client.
func New(redisClient redis.UniversalClient, cfg Config) *Limiter {
	return &Limiter{
		redis:  redisClient,
		config: cfg,
	}
}

// ReserveVerify counts one verification attempt for identifier before the
// password is checked. It returns ErrRateLimited when the attempt exceeds
// MaxAttempts in the current window. The counter is bumped atomically, so
// concurrent attempts for one identifier can never all fit in the budget.
func (l *Limiter) ReserveVerify(ctx context.Context, identifier string) error {
	count, err := l.incrementWithTTL(ctx, l.verifyKey(identifier), l.config.Cooldown)
	if err != nil {
		return err
	}
	if count > int64(l.config.MaxAttempts) {
		return ErrRateLimited
	}
	return nil
}

// ResetVerify clears the attempt counter for the identifier.
// Called after a successful verification.
func (l *Limiter) ResetVerify(ctx context.Context, identifier string) error {
	if err := l.redis.Del(ctx, l.verifyKey(identifier)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// GetVerifyAttempts returns the attempts reserved in the current window.
// Missing keys return zero.
func (l *Limiter) GetVerifyAttempts(ctx context.Context, identifier string) (int, error) {
	count, err := l.redis.Get(ctx, l.verifyKey(identifier)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if count < 0 {
		return 0, nil
	}
	return int(count), nil
}

func (l *Limiter) verifyKey(identifier string) string {
	return l.config.Prefix + ":vf:" + identifier
}

func (l *Limiter) incrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	// Fixed-window semantics: set TTL only for the first hit in the window.
	if count == 1 {
		if err := l.redis.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	return count, nil
}
