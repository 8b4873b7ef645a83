// Package audit implements async event dispatching for verification outcomes.
//
// # Components
//
//   - [Sink] — interface for event consumers (channel, JSON writer, no-op).
//   - [Dispatcher] — buffered relay; [Dispatcher.Record] builds verify events, Close drains the queue.
//   - [Event] — audit record with a UUID, timestamp, type, identifier and metadata.
//
// # Architecture boundaries
//
// This package owns event buffering and sink delivery. It does NOT decide which events
// to emit — that responsibility belongs to the Hasher.
//
// # What this package must NOT do
//
//   - Accept passwords, digests or encoded hashes in events.
//   - Import ntcrypt or any sibling internal package.
//   - Perform network I/O beyond what a caller-supplied Sink does.
package audit
