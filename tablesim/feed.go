package tablesim

import (
	"context"
	"sync"
	"time"

	"github.com/forkring/dining-table-sim-go/events"
)

// Envelope wraps a domain event with the ordering metadata assigned at publish time.
//
// Seq is a feed-wide monotonic sequence number. It reflects the order in which
// publish calls were serialized by the Feed, which for a single producer
// matches that producer's publish order.
type Envelope struct {
	Seq        uint64
	OccurredAt time.Time
	Event      events.Event
}

// Envelopes is an alias type for a slice of Envelope.
type Envelopes = []Envelope

// Feed is the many-producer single-consumer conduit carrying simulation events.
//
// Publish never blocks the producer: the feed buffers without bound so that a
// slow observer can never couple unrelated philosophers through backpressure.
// The consumer side offers a blocking Next and a non-blocking TryNext, and is
// meant to be driven by a single consumer goroutine; concurrent consumers may
// stall in Next because a wake-up is delivered to only one of them.
type Feed struct {
	mu      sync.Mutex
	queue   []Envelope
	nextSeq uint64
	closed  bool
	wake    chan struct{}
}

// NewFeed creates an empty open feed.
func NewFeed() *Feed {
	return &Feed{
		wake: make(chan struct{}, 1),
	}
}

func newFeedWithCapacity(hint int) *Feed {
	f := NewFeed()
	if hint > 0 {
		f.queue = make([]Envelope, 0, hint)
	}

	return f
}

// Publish appends an event to the feed, assigning its sequence number and
// timestamp. It never blocks. Publishing to a closed feed is a no-op.
func (f *Feed) Publish(event events.Event) {
	f.mu.Lock()

	if f.closed {
		f.mu.Unlock()
		return
	}

	f.nextSeq++
	f.queue = append(f.queue, Envelope{
		Seq:        f.nextSeq,
		OccurredAt: time.Now(),
		Event:      event,
	})

	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// Next returns the next unconsumed envelope, blocking until one is available,
// the feed is closed and fully drained (ErrFeedDrained), or ctx is cancelled.
func (f *Feed) Next(ctx context.Context) (Envelope, error) {
	for {
		envelope, ok, closed := f.pop()
		if ok {
			return envelope, nil
		}

		if closed {
			return Envelope{}, ErrFeedDrained
		}

		select {
		case <-f.wake:
		case <-ctx.Done():
			return Envelope{}, ctx.Err()
		}
	}
}

// TryNext returns the next unconsumed envelope without blocking.
// The second return value is false when no envelope is currently buffered.
func (f *Feed) TryNext() (Envelope, bool) {
	envelope, ok, _ := f.pop()
	return envelope, ok
}

// Len returns the number of currently buffered envelopes.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.queue)
}

// Close marks the feed as complete. Buffered envelopes remain readable;
// once they are consumed, Next and TryNext report the feed as drained.
func (f *Feed) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
}

func (f *Feed) pop() (Envelope, bool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return Envelope{}, false, f.closed
	}

	envelope := f.queue[0]
	f.queue = f.queue[1:]

	return envelope, true, f.closed
}
