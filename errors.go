package ntcrypt

import (
	"errors"

	"github.com/MrEthical07/ntcrypt/nthash"
)

var (
	// ErrInsufficientSpace is returned when a buffer is smaller than the scheme requires.
	ErrInsufficientSpace = nthash.ErrInsufficientSpace
	// ErrInvalidInput is returned for a setting without the "$3$" tag or a nonzero cost.
	ErrInvalidInput = nthash.ErrInvalidInput
	// ErrMalformedHash is returned when a stored hash cannot be decoded.
	ErrMalformedHash = errors.New("malformed nt hash")
	// ErrVerifyRateLimited is returned when an identifier has exhausted its verification budget.
	ErrVerifyRateLimited = errors.New("verification rate limited")
	// ErrLimiterUnavailable is returned when the limiter backend cannot be reached.
	ErrLimiterUnavailable = errors.New("verification limiter unavailable")
	// ErrHasherClosed is returned by Hash, Crypt, GenerateSetting, Verify,
	// NeedsUpgrade and Upgrade after Close.
	ErrHasherClosed = errors.New("hasher closed")
)
