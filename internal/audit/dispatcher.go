package audit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Config controls dispatcher buffering behavior.
type Config struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// Dispatcher relays verification events to a sink from one delivery
// goroutine. A nil *Dispatcher accepts and discards events.
//
// Queueing and Close are serialized by mu: once Close holds the write lock
// no further event can enter the queue, so everything queued before it is
// delivered and everything refused after it is reported by Emit.
type Dispatcher struct {
	sink       Sink
	dropIfFull bool
	queue      chan Event
	delivered  chan struct{}
	dropped    atomic.Uint64

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher starts the delivery goroutine. It returns nil when auditing
// is disabled.
func NewDispatcher(cfg Config, sink Sink) *Dispatcher {
	if !cfg.Enabled {
		return nil
	}
	size := cfg.BufferSize
	if size <= 0 {
		size = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &Dispatcher{
		sink:       sink,
		dropIfFull: cfg.DropIfFull,
		queue:      make(chan Event, size),
		delivered:  make(chan struct{}),
	}
	go d.deliver()
	return d
}

func (d *Dispatcher) deliver() {
	defer close(d.delivered)
	for event := range d.queue {
		d.sink.Emit(context.Background(), event)
	}
}

// Record queues the outcome of one verification for identifier. A non-nil
// err is stored by message only.
func (d *Dispatcher) Record(ctx context.Context, eventType, identifier string, success bool, err error) {
	if d == nil {
		return
	}
	event := NewEvent(eventType, identifier, success)
	if err != nil {
		event.Error = err.Error()
	}
	d.Emit(ctx, event)
}

// Emit queues event, filling in ID and Timestamp if unset, and reports
// whether it was queued. With DropIfFull a full queue drops the event;
// otherwise Emit waits for room or for ctx to end, and an event abandoned
// that way is dropped too. Dropped events are counted. After Close, Emit
// returns false without counting.
func (d *Dispatcher) Emit(ctx context.Context, event Event) bool {
	if d == nil {
		return false
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}

	if d.dropIfFull {
		select {
		case d.queue <- event:
			return true
		default:
			d.dropped.Add(1)
			return false
		}
	}

	select {
	case d.queue <- event:
		return true
	case <-ctx.Done():
		d.dropped.Add(1)
		return false
	}
}

// Close stops accepting events and waits until every queued event has
// reached the sink. It is safe to call more than once.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.delivered
}

// Dropped reports how many events were discarded before reaching the queue.
func (d *Dispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
