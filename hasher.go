package ntcrypt

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrEthical07/ntcrypt/internal/audit"
	"github.com/MrEthical07/ntcrypt/internal/rate"
	"github.com/MrEthical07/ntcrypt/nthash"
)

// Hasher computes and verifies "$3$" NT hashes.
//
// Hasher methods are safe for concurrent use. Every call borrows its own
// scratch area, so no buffer is shared between concurrent calls.
type Hasher struct {
	metrics *Metrics
	limiter *rate.Limiter
	audit   *audit.Dispatcher
	scratch sync.Pool
	closed  atomic.Bool
}

// Hash describes the hash operation and its observable behavior.
//
// Hash returns the canonical encoding "$3$<32 hex>". Passwords longer than
// nthash.MaxUnits bytes are truncated silently, and a NUL byte ends the
// password, exactly as in every other implementation of the scheme.
// Hash does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (h *Hasher) Hash(password string) (string, error) {
	return h.Crypt(password, nthash.Prefix)
}

// Crypt hashes password under an explicit setting. setting must begin with
// "$3$"; a stored hash is itself a valid setting.
func (h *Hasher) Crypt(password, setting string) (string, error) {
	if h.closed.Load() {
		return "", ErrHasherClosed
	}

	var out [nthash.OutputSize]byte
	if err := h.compute(out[:], password, setting); err != nil {
		return "", err
	}
	return string(out[:nthash.OutputSize-1]), nil
}

// GenerateSetting returns the setting string for this scheme. count must be
// zero; rbytes is ignored because the scheme has no salt.
func (h *Hasher) GenerateSetting(count uint64, rbytes []byte) (string, error) {
	if h.closed.Load() {
		return "", ErrHasherClosed
	}

	var out [nthash.SettingSize]byte
	if err := nthash.GenSalt(count, rbytes, out[:]); err != nil {
		h.metrics.Inc(MetricSettingRejected)
		return "", err
	}

	h.metrics.Inc(MetricSettingGenerated)
	return string(out[:nthash.SettingSize-1]), nil
}

// Verify describes the verify operation and its observable behavior.
//
// Verify reports whether password hashes to encoded, which may be in the
// canonical or the legacy "$3$$" form. When the limiter is enabled and
// identifier is non-empty, every call reserves one attempt from the
// identifier's budget before the password is checked. Once the budget is
// spent Verify returns ErrVerifyRateLimited without checking the password,
// and a match clears the identifier's counter.
// Verify may return an error when input validation, dependency calls, or security checks fail.
func (h *Hasher) Verify(ctx context.Context, identifier, password, encoded string) (bool, error) {
	if h.closed.Load() {
		return false, ErrHasherClosed
	}
	if ctx == nil {
		ctx = context.Background()
	}

	throttled := h.limiter != nil && identifier != ""
	if throttled {
		if err := h.limiter.ReserveVerify(ctx, identifier); err != nil {
			return false, h.limiterError(ctx, identifier, err)
		}
	}

	stored, form, err := nthash.Decode(encoded)
	if err != nil {
		h.metrics.Inc(MetricVerifyMalformed)
		h.audit.Record(ctx, audit.EventVerifyMalformed, identifier, false, ErrMalformedHash)
		return false, ErrMalformedHash
	}
	if form == nthash.FormLegacy {
		h.metrics.Inc(MetricLegacyEncoding)
	}

	var out [nthash.OutputSize]byte
	if err := h.compute(out[:], password, nthash.Prefix); err != nil {
		return false, err
	}
	want := nthash.Encode(stored)

	if subtle.ConstantTimeCompare(out[:nthash.OutputSize-1], []byte(want)) != 1 {
		// The reserved attempt stays counted.
		h.metrics.Inc(MetricVerifyMismatch)
		h.audit.Record(ctx, audit.EventVerifyMismatch, identifier, false, nil)
		return false, nil
	}

	h.metrics.Inc(MetricVerifyMatch)
	if throttled {
		// A stale counter only shortens the next window; the match stands.
		_ = h.limiter.ResetVerify(ctx, identifier)
	}
	h.audit.Record(ctx, audit.EventVerifyMatch, identifier, true, nil)
	return true, nil
}

// NeedsUpgrade reports whether encoded should be re-stored in canonical
// form. Only the legacy "$3$$" encoding needs it.
func (h *Hasher) NeedsUpgrade(encoded string) (bool, error) {
	if h.closed.Load() {
		return false, ErrHasherClosed
	}
	_, form, err := nthash.Decode(encoded)
	if err != nil {
		return false, ErrMalformedHash
	}
	return form == nthash.FormLegacy, nil
}

// Upgrade rewrites encoded in canonical form without needing the password.
func (h *Hasher) Upgrade(encoded string) (string, error) {
	if h.closed.Load() {
		return "", ErrHasherClosed
	}
	d, _, err := nthash.Decode(encoded)
	if err != nil {
		return "", ErrMalformedHash
	}
	return nthash.Encode(d), nil
}

// MetricsSnapshot returns a copy of the current metric values.
func (h *Hasher) MetricsSnapshot() MetricsSnapshot {
	return h.metrics.Snapshot()
}

// AuditDropped returns the number of audit events that never reached the sink.
func (h *Hasher) AuditDropped() uint64 {
	return h.audit.Dropped()
}

// Close stops the audit dispatcher after flushing buffered events. Further
// calls return ErrHasherClosed. Close does not close the Redis client.
func (h *Hasher) Close() {
	if h.closed.Swap(true) {
		return
	}
	h.audit.Close()
}

func (h *Hasher) compute(out []byte, password, setting string) error {
	phrase := []byte(password)
	defer clear(phrase)

	scratch := h.scratch.Get().(*nthash.Scratch)
	defer h.scratch.Put(scratch)

	var start time.Time
	if h.metrics.LatencyEnabled() {
		start = time.Now()
	}

	if err := nthash.Crypt(out, phrase, setting, scratch); err != nil {
		h.metrics.Inc(MetricHashFailure)
		return err
	}

	if !start.IsZero() {
		h.metrics.Observe(MetricHashLatency, time.Since(start))
	}
	h.metrics.Inc(MetricHashSuccess)
	return nil
}

func (h *Hasher) limiterError(ctx context.Context, identifier string, err error) error {
	if errors.Is(err, rate.ErrRateLimited) {
		h.metrics.Inc(MetricVerifyRateLimited)
		h.audit.Record(ctx, audit.EventVerifyRateLimited, identifier, false, ErrVerifyRateLimited)
		return ErrVerifyRateLimited
	}
	return fmt.Errorf("%w: %v", ErrLimiterUnavailable, err)
}
