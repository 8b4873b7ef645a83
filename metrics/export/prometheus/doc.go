// Package prometheus renders ntcrypt metrics in Prometheus text exposition format.
//
// [NewPrometheusExporter] accepts a [ntcrypt.Hasher] and exposes an [http.Handler]
// that renders all ntcrypt counters and the hash latency histogram. Counter names
// are prefixed ntcrypt_*_total; the single histogram is ntcrypt_hash_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate hasher state.
package prometheus
