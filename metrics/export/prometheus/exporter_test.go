package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ntcrypt "github.com/MrEthical07/ntcrypt"
)

type fakeSource struct {
	snapshot ntcrypt.MetricsSnapshot
	dropped  uint64
}

func (f fakeSource) MetricsSnapshot() ntcrypt.MetricsSnapshot { return f.snapshot }
func (f fakeSource) AuditDropped() uint64                     { return f.dropped }

func TestRenderEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: ntcrypt.MetricsSnapshot{
			Counters:   map[ntcrypt.MetricID]uint64{},
			Histograms: map[ntcrypt.MetricID][]uint64{},
		},
	})

	if got := exp.Render(); got != "" {
		t.Fatalf("expected empty output for disabled metrics, got:\n%s", got)
	}
}

func TestRenderIncludesCounterAndHistogram(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: ntcrypt.MetricsSnapshot{
			Counters: map[ntcrypt.MetricID]uint64{
				ntcrypt.MetricVerifyMatch: 7,
			},
			Histograms: map[ntcrypt.MetricID][]uint64{
				ntcrypt.MetricHashLatency: {1, 2, 3, 4, 5, 6, 7, 8},
			},
		},
		dropped: 2,
	})

	out := exp.Render()
	for _, want := range []string{
		"ntcrypt_verify_match_total 7",
		"ntcrypt_verify_mismatch_total 0",
		"ntcrypt_hash_latency_seconds_bucket{le=\"0.000001\"} 1",
		"ntcrypt_hash_latency_seconds_bucket{le=\"+Inf\"} 36",
		"ntcrypt_hash_latency_seconds_count 36",
		"ntcrypt_audit_dropped_total 2",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestRenderOmitsHistogramWhenLatencyDisabled(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: ntcrypt.MetricsSnapshot{
			Counters:   map[ntcrypt.MetricID]uint64{ntcrypt.MetricHashSuccess: 1},
			Histograms: map[ntcrypt.MetricID][]uint64{},
		},
	})

	if out := exp.Render(); strings.Contains(out, "ntcrypt_hash_latency_seconds") {
		t.Fatalf("expected no histogram, got:\n%s", out)
	}
}

func TestRenderFromHasher(t *testing.T) {
	h, err := ntcrypt.New().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer h.Close()

	if _, err := h.Hash("password"); err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	out := NewPrometheusExporter(h).Render()
	if !strings.Contains(out, "ntcrypt_hash_success_total 1") {
		t.Fatalf("expected hash success counter, got:\n%s", out)
	}
}

func TestHandlerWritesPrometheusContentType(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: ntcrypt.MetricsSnapshot{
			Counters:   map[ntcrypt.MetricID]uint64{ntcrypt.MetricHashSuccess: 1},
			Histograms: map[ntcrypt.MetricID][]uint64{},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/plain") {
		t.Fatalf("expected prometheus content type, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func BenchmarkRender(b *testing.B) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: ntcrypt.MetricsSnapshot{
			Counters: map[ntcrypt.MetricID]uint64{
				ntcrypt.MetricHashSuccess:    1000,
				ntcrypt.MetricVerifyMatch:    800,
				ntcrypt.MetricVerifyMismatch: 40,
			},
			Histograms: map[ntcrypt.MetricID][]uint64{
				ntcrypt.MetricHashLatency: {10, 20, 30, 40, 50, 60, 70, 80},
			},
		},
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = exp.Render()
	}
}
