package ntcrypt

import (
	"io"

	"github.com/MrEthical07/ntcrypt/internal/audit"
)

// AuditEvent is one verification outcome delivered to an [AuditSink].
type AuditEvent = audit.Event

// AuditSink receives audit events from the Hasher's dispatcher goroutine.
type AuditSink = audit.Sink

// NoOpSink drops audit events.
type NoOpSink = audit.NoOpSink

// ChannelSink buffers audit events in a channel.
type ChannelSink = audit.ChannelSink

// JSONWriterSink writes audit events as JSON lines.
type JSONWriterSink = audit.JSONWriterSink

// Audit event types.
const (
	AuditVerifyMatch       = audit.EventVerifyMatch
	AuditVerifyMismatch    = audit.EventVerifyMismatch
	AuditVerifyMalformed   = audit.EventVerifyMalformed
	AuditVerifyRateLimited = audit.EventVerifyRateLimited
)

// NewChannelSink returns a sink that buffers up to buffer events.
func NewChannelSink(buffer int) *ChannelSink {
	return audit.NewChannelSink(buffer)
}

// NewJSONWriterSink returns a sink writing one JSON object per line to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}
