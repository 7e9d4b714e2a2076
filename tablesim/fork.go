package tablesim

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/forkring/dining-table-sim-go/events"
)

// Fork is the exclusive-access primitive shared by two ring-adjacent
// philosophers. The exclusive slot is a one-capacity channel, which gives a
// native bounded-wait acquire instead of a manual spin-wait.
//
// Owner state is only mutated through TryAcquire and Release; Snapshot reads
// are best-effort and may be momentarily stale.
type Fork struct {
	id    int
	slot  chan struct{}
	owner atomic.Int64
	feed  *Feed
}

func newFork(id int, feed *Feed) *Fork {
	f := &Fork{
		id:   id,
		slot: make(chan struct{}, 1),
		feed: feed,
	}
	f.owner.Store(NoOwner)

	return f
}

// ID returns the fork's stable ring position.
func (f *Fork) ID() int {
	return f.id
}

// TryAcquire attempts to take exclusive ownership for the given philosopher,
// waiting at most timeout. On success it records the owner, publishes a
// ForkPickedUp event and returns true. On timeout it returns false without
// mutating any state.
func (f *Fork) TryAcquire(philosopherID int, timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case f.slot <- struct{}{}:
		f.owner.Store(int64(philosopherID))
		f.feed.Publish(events.BuildForkPickedUp(f.id, philosopherID))

		return true

	case <-timer.C:
		return false
	}
}

// Release puts the fork back on the table and publishes a ForkPutDown event.
//
// The caller must currently hold the fork; ownership is not re-validated
// against philosopherID. Releasing a fork that is not held is a protocol
// violation and panics, mirroring sync.Mutex.Unlock.
func (f *Fork) Release(philosopherID int) {
	if f.owner.Load() == NoOwner {
		panic(fmt.Sprintf("tablesim: release of fork %d that is not held", f.id))
	}

	// Publish and clear the owner before freeing the slot, so the event
	// stream for one fork strictly alternates pickup and put-down.
	f.feed.Publish(events.BuildForkPutDown(f.id, philosopherID))
	f.owner.Store(NoOwner)

	select {
	case <-f.slot:
	default:
		panic(fmt.Sprintf("tablesim: release of fork %d that is not held", f.id))
	}
}

// ForkSnapshot is a read-only view of a fork's state.
// Held is derived from Owner, so the two can never disagree.
type ForkSnapshot struct {
	ID    int
	Held  bool
	Owner int // NoOwner when the fork is on the table
}

// Snapshot returns a best-effort, stale-tolerant view of the fork.
func (f *Fork) Snapshot() ForkSnapshot {
	owner := int(f.owner.Load())

	return ForkSnapshot{
		ID:    f.id,
		Held:  owner != NoOwner,
		Owner: owner,
	}
}
