package rate

import "errors"

var (
	// ErrRateLimited is returned once an identifier has used up its verification budget.
	ErrRateLimited = errors.New("rate limited")
	// ErrRedisUnavailable wraps any Redis failure seen by the limiter.
	ErrRedisUnavailable = errors.New("redis unavailable")
)
