// Package otel provides OpenTelemetry metric exporter bindings for ntcrypt counters
// and the hash latency histogram.
//
// [NewOTelExporter] registers an Int64ObservableCounter for each ntcrypt counter and
// an Int64ObservableGauge per histogram bucket. A single callback reads
// [ntcrypt.Hasher.MetricsSnapshot] on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate hasher state.
package otel
