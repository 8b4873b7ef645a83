package ntcrypt

import (
	"sync/atomic"
	"time"
)

// MetricID identifies one counter or histogram tracked by a [Hasher].
type MetricID uint16

const (
	// MetricHashSuccess counts encoded hashes produced by Hash.
	MetricHashSuccess MetricID = iota
	// MetricHashFailure counts Hash calls rejected by the digest computation.
	MetricHashFailure
	// MetricSettingGenerated counts settings produced by GenerateSetting.
	MetricSettingGenerated
	// MetricSettingRejected counts GenerateSetting calls with a nonzero cost.
	MetricSettingRejected
	// MetricVerifyMatch counts verifications where the password matched.
	MetricVerifyMatch
	// MetricVerifyMismatch counts verifications where the password did not match.
	MetricVerifyMismatch
	// MetricVerifyMalformed counts verifications against an undecodable hash.
	MetricVerifyMalformed
	// MetricVerifyRateLimited counts verifications refused by the limiter.
	MetricVerifyRateLimited
	// MetricLegacyEncoding counts stored hashes seen in the legacy "$3$$" form.
	MetricLegacyEncoding
	// MetricHashLatency is the digest computation latency histogram.
	MetricHashLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds lock-free counters and the hash latency histogram.
//
// A nil or disabled Metrics ignores every write.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of all metric values.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics describes the newmetrics operation and its observable behavior.
//
// NewMetrics does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled reports whether the latency histogram is recorded.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc describes the inc operation and its observable behavior.
//
// Inc does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records d in the histogram for id. Only MetricHashLatency carries
// a histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricHashLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value returns the current counter value for id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot describes the snapshot operation and its observable behavior.
//
// Snapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricHashLatency].buckets[i])
		}
		s.Histograms[MetricHashLatency] = buckets
	}

	return s
}

// bucketIndex maps a digest latency onto microsecond buckets:
// ≤1, ≤2, ≤5, ≤10, ≤25, ≤50, ≤100, +Inf.
func bucketIndex(d time.Duration) int {
	us := d.Microseconds()

	switch {
	case us <= 1:
		return 0
	case us <= 2:
		return 1
	case us <= 5:
		return 2
	case us <= 10:
		return 3
	case us <= 25:
		return 4
	case us <= 50:
		return 5
	case us <= 100:
		return 6
	default:
		return 7
	}
}
