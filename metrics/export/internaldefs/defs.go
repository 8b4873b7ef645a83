package internaldefs

import (
	ntcrypt "github.com/MrEthical07/ntcrypt"
)

// CounterDef binds a counter MetricID to its exported name.
type CounterDef struct {
	ID   ntcrypt.MetricID
	Name string
	Help string
}

// HistogramDef binds a histogram MetricID to its exported name.
type HistogramDef struct {
	ID   ntcrypt.MetricID
	Name string
	Help string
}

// AuditDroppedName is the counter name for dropped audit events.
const AuditDroppedName = "ntcrypt_audit_dropped_total"

// AuditDroppedHelp describes AuditDroppedName.
const AuditDroppedHelp = "Dropped audit events due to dispatcher backpressure."

// CounterDefs lists every exported counter in render order.
var CounterDefs = []CounterDef{
	{ID: ntcrypt.MetricHashSuccess, Name: "ntcrypt_hash_success_total", Help: "NT digests computed."},
	{ID: ntcrypt.MetricHashFailure, Name: "ntcrypt_hash_failure_total", Help: "Digest computations rejected for buffer size or setting tag."},
	{ID: ntcrypt.MetricSettingGenerated, Name: "ntcrypt_setting_generated_total", Help: "Settings generated."},
	{ID: ntcrypt.MetricSettingRejected, Name: "ntcrypt_setting_rejected_total", Help: "Setting generation rejected for a nonzero cost."},
	{ID: ntcrypt.MetricVerifyMatch, Name: "ntcrypt_verify_match_total", Help: "Verifications where the password matched."},
	{ID: ntcrypt.MetricVerifyMismatch, Name: "ntcrypt_verify_mismatch_total", Help: "Verifications where the password did not match."},
	{ID: ntcrypt.MetricVerifyMalformed, Name: "ntcrypt_verify_malformed_total", Help: "Verifications against an undecodable stored hash."},
	{ID: ntcrypt.MetricVerifyRateLimited, Name: "ntcrypt_verify_rate_limited_total", Help: "Verifications refused by the limiter."},
	{ID: ntcrypt.MetricLegacyEncoding, Name: "ntcrypt_legacy_encoding_total", Help: "Stored hashes seen in the legacy $3$$ form."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: ntcrypt.MetricHashLatency, Name: "ntcrypt_hash_latency_seconds", Help: "Digest computation latency histogram."},
}

// HistogramBounds are the upper bounds in seconds matching the core's
// microsecond buckets.
var HistogramBounds = []string{
	"0.000001",
	"0.000002",
	"0.000005",
	"0.00001",
	"0.000025",
	"0.00005",
	"0.0001",
	"+Inf",
}

// HistogramBoundSuffix are instrument-name-safe forms of HistogramBounds.
var HistogramBoundSuffix = []string{
	"1us",
	"2us",
	"5us",
	"10us",
	"25us",
	"50us",
	"100us",
	"inf",
}

// NormalizeBuckets copies raw into a fixed eight-bucket array, padding with zeros.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
