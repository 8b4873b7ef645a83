package audit

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the verification path.
const (
	EventVerifyMatch       = "nthash_verify_match"
	EventVerifyMismatch    = "nthash_verify_mismatch"
	EventVerifyMalformed   = "nthash_verify_malformed"
	EventVerifyRateLimited = "nthash_verify_rate_limited"
)

// Event is a single audit record. It never carries passwords or digests.
type Event struct {
	ID         string            `json:"id"`
	Timestamp  time.Time         `json:"timestamp"`
	EventType  string            `json:"event_type"`
	Identifier string            `json:"identifier,omitempty"`
	Success    bool              `json:"success"`
	Error      string            `json:"error,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// NewEvent stamps an event with a fresh ID and the current time.
func NewEvent(eventType, identifier string, success bool) Event {
	return Event{
		ID:         uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		EventType:  eventType,
		Identifier: identifier,
		Success:    success,
	}
}

// Sink receives emitted audit events.
type Sink interface {
	Emit(ctx context.Context, event Event)
}

// NoOpSink drops audit events.
type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, Event) {}

// ChannelSink writes audit events into a buffered channel.
type ChannelSink struct {
	events chan Event
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan Event, buffer),
	}
}

func (s *ChannelSink) Emit(ctx context.Context, event Event) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// JSONWriterSink writes one JSON object per line.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

func (s *JSONWriterSink) Emit(_ context.Context, event Event) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
}
