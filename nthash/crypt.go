package nthash

import (
	"encoding/binary"
	"encoding/hex"
	"hash"
	"strings"

	"golang.org/x/crypto/md4" //nolint:staticcheck // MD4 is the scheme, not a choice.
)

const (
	// Prefix is the scheme tag carried by every setting and encoded hash.
	Prefix = "$3$"
	// DigestSize is the size of the raw MD4 digest.
	DigestSize = md4.Size
	// MaxUnits caps the number of widened password units fed to MD4.
	MaxUnits = 128
	// OutputSize is the encoded hash length including the NUL terminator.
	OutputSize = len(Prefix) + 2*DigestSize + 1
	// SettingSize is the setting length including the NUL terminator.
	SettingSize = len(Prefix) + 1
)

// Scratch is the caller-owned working area used by [Crypt].
//
// A Scratch holds the MD4 state and digest between the hashing steps of one
// call. It may be reused across calls but must not be used by two calls at
// the same time. The zero value is ready to use.
type Scratch struct {
	h   hash.Hash
	sum [DigestSize]byte
}

// NewScratch allocates a Scratch with its MD4 state prepared.
func NewScratch() *Scratch {
	return &Scratch{h: md4.New()}
}

func (s *Scratch) digest(unipw []byte) []byte {
	if s.h == nil {
		s.h = md4.New()
	}
	s.h.Reset()
	_, _ = s.h.Write(unipw)
	return s.h.Sum(s.sum[:0])
}

func (s *Scratch) wipe() {
	clear(s.sum[:])
	if s.h != nil {
		s.h.Reset()
	}
}

// Crypt computes the encoded NT hash of phrase into out.
//
// out must hold at least [OutputSize] bytes and scratch must be non-nil,
// otherwise ErrInsufficientSpace is returned. setting must begin with
// [Prefix], otherwise ErrInvalidInput is returned. The size check is made
// first. On error out is not modified.
//
// On success out[:OutputSize] holds "$3$", 32 lowercase hex digits and a
// NUL byte. The phrase ends at its first NUL byte or after MaxUnits bytes,
// whichever comes first; the rest is ignored without error.
func Crypt(out []byte, phrase []byte, setting string, scratch *Scratch) error {
	if len(out) < OutputSize || scratch == nil {
		return ErrInsufficientSpace
	}
	if !strings.HasPrefix(setting, Prefix) {
		return ErrInvalidInput
	}

	var unipw [MaxUnits * 2]byte
	clear(unipw[:])
	defer clear(unipw[:])

	n := widen(&unipw, phrase)
	sum := scratch.digest(unipw[:n*2])
	defer scratch.wipe()

	w := copy(out, Prefix)
	w += hex.Encode(out[w:], sum)
	out[w] = 0

	return nil
}

// widen stores each phrase byte as a big-endian unit with the byte in the
// high octet and returns the number of units written.
func widen(dst *[MaxUnits * 2]byte, phrase []byte) int {
	n := 0
	for _, c := range phrase {
		if n == MaxUnits || c == 0 {
			break
		}
		binary.BigEndian.PutUint16(dst[n*2:], uint16(c)<<8)
		n++
	}
	return n
}

// Sum returns the encoded NT hash of phrase without the NUL terminator.
func Sum(phrase []byte) string {
	var out [OutputSize]byte
	// Buffers are sized here and Prefix is a valid setting.
	_ = Crypt(out[:], phrase, Prefix, NewScratch())
	return string(out[:OutputSize-1])
}
