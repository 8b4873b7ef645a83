package nthash

import (
	"encoding/hex"
	"strings"
)

// Digest is a raw NT-hash digest.
type Digest [DigestSize]byte

// String returns the lowercase hex form of d.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Form identifies which encoding a stored hash was written in.
type Form uint8

const (
	// FormCanonical is "$3$" followed by the hex digest.
	FormCanonical Form = iota
	// FormLegacy is "$3$$" followed by the hex digest, as written by the
	// C crypt implementations that append a separator after the tag.
	FormLegacy
)

// Decode parses an encoded NT hash in either form. A single trailing NUL
// byte is accepted. Hex digits are accepted in either case.
func Decode(encoded string) (Digest, Form, error) {
	var d Digest

	encoded = strings.TrimSuffix(encoded, "\x00")
	if !strings.HasPrefix(encoded, Prefix) {
		return d, FormCanonical, ErrInvalidInput
	}

	rest := encoded[len(Prefix):]
	form := FormCanonical
	if len(rest) == 2*DigestSize+1 && rest[0] == '$' {
		rest = rest[1:]
		form = FormLegacy
	}
	if len(rest) != 2*DigestSize {
		return d, FormCanonical, ErrInvalidInput
	}

	if _, err := hex.Decode(d[:], []byte(rest)); err != nil {
		return Digest{}, FormCanonical, ErrInvalidInput
	}

	return d, form, nil
}

// Encode returns the canonical encoding of d without a NUL terminator.
func Encode(d Digest) string {
	return Prefix + d.String()
}
