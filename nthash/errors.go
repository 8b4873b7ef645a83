package nthash

import "errors"

var (
	// ErrInsufficientSpace is returned when an output or scratch buffer is
	// smaller than the scheme requires.
	ErrInsufficientSpace = errors.New("insufficient output space")
	// ErrInvalidInput is returned for a setting without the "$3$" tag, a
	// nonzero cost parameter, or a malformed encoded hash.
	ErrInvalidInput = errors.New("invalid setting or parameter")
)
