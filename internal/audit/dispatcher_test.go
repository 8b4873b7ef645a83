package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

type gateSink struct {
	gate chan struct{}
}

func (s *gateSink) Emit(context.Context, Event) {
	<-s.gate
}

func TestDispatcherDisabledReturnsNil(t *testing.T) {
	d := NewDispatcher(Config{Enabled: false}, NoOpSink{})
	if d != nil {
		t.Fatal("expected nil dispatcher when disabled")
	}

	// nil dispatcher is safe to use
	d.Emit(context.Background(), Event{EventType: EventVerifyMatch})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("expected zero drops on nil dispatcher")
	}
}

func TestDispatcherDeliversAndStampsEvents(t *testing.T) {
	sink := NewChannelSink(4)
	d := NewDispatcher(Config{Enabled: true, BufferSize: 4}, sink)
	defer d.Close()

	d.Emit(context.Background(), Event{EventType: EventVerifyMismatch, Identifier: "alice"})

	select {
	case ev := <-sink.Events():
		if ev.EventType != EventVerifyMismatch || ev.Identifier != "alice" {
			t.Fatalf("unexpected event: %+v", ev)
		}
		if _, err := uuid.Parse(ev.ID); err != nil {
			t.Fatalf("expected uuid event id, got %q: %v", ev.ID, err)
		}
		if ev.Timestamp.IsZero() {
			t.Fatal("expected timestamp to be set")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestDispatcherDropIfFull(t *testing.T) {
	sink := &gateSink{gate: make(chan struct{})}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	for i := 0; i < 10; i++ {
		d.Emit(context.Background(), NewEvent(EventVerifyMismatch, "alice", false))
	}

	if d.Dropped() == 0 {
		t.Fatal("expected events to be dropped with a blocked sink")
	}

	close(sink.gate)
	d.Close()
}

func TestDispatcherCloseFlushesBuffered(t *testing.T) {
	sink := NewChannelSink(8)
	d := NewDispatcher(Config{Enabled: true, BufferSize: 8}, sink)

	for i := 0; i < 5; i++ {
		d.Emit(context.Background(), NewEvent(EventVerifyMatch, "bob", true))
	}
	d.Close()

	if got := len(sink.Events()); got != 5 {
		t.Fatalf("delivered %d events after close, want 5", got)
	}

	d.Emit(context.Background(), NewEvent(EventVerifyMatch, "bob", true))
	if got := len(sink.Events()); got != 5 {
		t.Fatalf("expected emit after close to be ignored, got %d events", got)
	}
}

func TestDispatcherRecordFillsEvent(t *testing.T) {
	sink := NewChannelSink(2)
	d := NewDispatcher(Config{Enabled: true, BufferSize: 2}, sink)

	d.Record(context.Background(), EventVerifyRateLimited, "dave", false, errors.New("verification rate limited"))
	d.Close()

	ev := <-sink.Events()
	if ev.EventType != EventVerifyRateLimited || ev.Identifier != "dave" || ev.Success {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.Error != "verification rate limited" || ev.ID == "" {
		t.Fatalf("expected error message and id, got %+v", ev)
	}

	var nilDispatcher *Dispatcher
	nilDispatcher.Record(context.Background(), EventVerifyMatch, "dave", true, nil)
}

func TestDispatcherBlockingEmitCountsCanceled(t *testing.T) {
	sink := &gateSink{gate: make(chan struct{})}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 1}, sink)

	// One event is held by the sink and one fills the queue.
	d.Emit(context.Background(), NewEvent(EventVerifyMismatch, "alice", false))
	d.Emit(context.Background(), NewEvent(EventVerifyMismatch, "alice", false))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	queued := true
	for i := 0; i < 3 && queued; i++ {
		queued = d.Emit(ctx, NewEvent(EventVerifyMismatch, "alice", false))
	}
	if queued {
		t.Fatal("expected an emit to give up once its context ended")
	}
	if d.Dropped() == 0 {
		t.Fatal("expected abandoned event to be counted as dropped")
	}

	close(sink.gate)
	d.Close()
}

func TestDispatcherEmitDuringCloseLosesNothing(t *testing.T) {
	for round := 0; round < 20; round++ {
		sink := NewChannelSink(1024)
		d := NewDispatcher(Config{Enabled: true, BufferSize: 16}, sink)

		var (
			wg     sync.WaitGroup
			queued atomic.Int64
		)
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					if d.Emit(context.Background(), NewEvent(EventVerifyMatch, "erin", true)) {
						queued.Add(1)
					}
				}
			}()
		}
		d.Close()
		wg.Wait()

		if delivered := int64(len(sink.Events())); delivered != queued.Load() {
			t.Fatalf("round %d: queued %d events, sink received %d", round, queued.Load(), len(sink.Events()))
		}
	}
}

func TestJSONWriterSinkWritesLines(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), NewEvent(EventVerifyRateLimited, "carol", false))
	sink.Emit(context.Background(), NewEvent(EventVerifyMatch, "carol", true))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}

	var ev Event
	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if ev.EventType != EventVerifyRateLimited || ev.Identifier != "carol" || ev.Success {
		t.Fatalf("unexpected decoded event: %+v", ev)
	}
}
