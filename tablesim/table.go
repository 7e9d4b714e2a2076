package tablesim

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	logMsgRunStarting   = "simulation starting"
	logMsgRunComplete   = "simulation complete"
	logMsgRunCancelled  = "simulation cancelled"
	logAttrRunID        = "run_id"
	logAttrPhilosophers = "philosophers"
	logAttrServings     = "servings"
)

// Table is the composition root of one simulation run. It builds the ring of
// forks and philosophers, runs them, and supervises termination by polling
// the remaining serving budgets.
//
// Neighbor assignment: philosopher i owns right=fork[i] and
// left=fork[(i+N-1)%N]. Construction verifies the two forks of every
// philosopher are distinct and that every fork is shared by exactly two
// philosophers.
type Table struct {
	runID            uuid.UUID
	cfg              Config
	feed             *Feed
	feedCapacityHint int
	forks            []*Fork
	philosophers     []*Philosopher
	logger           Logger
	metrics          MetricsCollector
	done             chan struct{}
	started          atomic.Bool
}

// NewTable validates the configuration, applies options, and builds the fork
// ring. No goroutine is started until Run is called.
func NewTable(cfg Config, opts ...Option) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &Table{
		cfg:     cfg,
		logger:  noopLogger{},
		metrics: noopMetrics{},
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}

	t.feed = newFeedWithCapacity(t.feedCapacityHint)

	if t.runID == uuid.Nil {
		runID, err := uuid.NewV7()
		if err != nil {
			return nil, errors.Join(errors.New("generating run id failed"), err)
		}

		t.runID = runID
	}

	t.buildRing()

	if err := t.verifyRing(); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Table) buildRing() {
	n := t.cfg.Philosophers

	t.forks = make([]*Fork, n)
	for i := range t.forks {
		t.forks[i] = newFork(i, t.feed)
	}

	seed := t.cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	t.philosophers = make([]*Philosopher, n)
	for i := range t.philosophers {
		t.philosophers[i] = newPhilosopher(
			i,
			t.forks[(i+n-1)%n], // left
			t.forks[i],         // right
			t.cfg.Servings,
			t.cfg.Timing,
			rand.New(rand.NewPCG(seed, uint64(i))),
			t.feed,
			t.logger,
			t.metrics,
		)
	}
}

// verifyRing checks full connectivity of the ring: every philosopher's two
// forks are distinct and every fork is referenced by exactly two philosophers.
func (t *Table) verifyRing() error {
	shares := make(map[int]int, len(t.forks))

	for _, p := range t.philosophers {
		if p.left == p.right {
			return ErrBrokenRing
		}

		shares[p.left.id]++
		shares[p.right.id]++
	}

	for _, f := range t.forks {
		if shares[f.id] != 2 {
			return ErrBrokenRing
		}
	}

	return nil
}

// RunID returns the unique identifier of this run.
func (t *Table) RunID() uuid.UUID {
	return t.runID
}

// Feed returns the event feed for external observation. The feed is closed
// once the run is over and every philosopher has stopped producing.
func (t *Table) Feed() *Feed {
	return t.feed
}

// Done returns a channel closed by the supervisor once the sum of remaining
// serving budgets reaches zero. On cancellation before completion the channel
// is never closed.
func (t *Table) Done() <-chan struct{} {
	return t.done
}

// ServingsLeft returns the current sum of remaining serving budgets.
// The per-philosopher reads are relaxed; budgets only ever decrease.
func (t *Table) ServingsLeft() int {
	total := 0
	for _, p := range t.philosophers {
		total += p.ServingsLeft()
	}

	return total
}

// ForkSnapshots returns a best-effort view of every fork.
func (t *Table) ForkSnapshots() []ForkSnapshot {
	snapshots := make([]ForkSnapshot, len(t.forks))
	for i, f := range t.forks {
		snapshots[i] = f.Snapshot()
	}

	return snapshots
}

// PhilosopherSnapshots returns a best-effort view of every philosopher.
func (t *Table) PhilosopherSnapshots() []PhilosopherSnapshot {
	snapshots := make([]PhilosopherSnapshot, len(t.philosophers))
	for i, p := range t.philosophers {
		snapshots[i] = p.Snapshot()
	}

	return snapshots
}

// Run starts all philosophers and the termination supervisor, then blocks
// until every philosopher has stopped. The feed is closed before Run returns,
// so an observer can drain it to completion afterwards.
//
// Run may be called at most once per Table.
func (t *Table) Run(ctx context.Context) error {
	if !t.started.CompareAndSwap(false, true) {
		return ErrTableAlreadyRunning
	}

	t.logger.Info(logMsgRunStarting,
		logAttrRunID, t.runID.String(),
		logAttrPhilosophers, t.cfg.Philosophers,
		logAttrServings, t.cfg.Servings)

	supervisorCtx, stopSupervisor := context.WithCancel(context.Background())
	defer stopSupervisor()
	go t.superviseCompletion(supervisorCtx)

	var wg sync.WaitGroup
	for _, p := range t.philosophers {
		wg.Add(1)

		go func(p *Philosopher) {
			defer wg.Done()
			p.Run(ctx)
		}(p)
	}

	wg.Wait()
	t.feed.Close()

	if t.ServingsLeft() == 0 {
		<-t.done // closed by the supervisor within one poll interval
		t.logger.Info(logMsgRunComplete, logAttrRunID, t.runID.String())

		return nil
	}

	t.logger.Info(logMsgRunCancelled, logAttrRunID, t.runID.String())

	return ctx.Err()
}

// superviseCompletion polls the aggregate serving budget and closes the done
// channel when it reaches zero. The poll is a relaxed snapshot read; it never
// touches a fork.
func (t *Table) superviseCompletion(ctx context.Context) {
	ticker := time.NewTicker(t.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if t.ServingsLeft() == 0 {
				close(t.done)
				return
			}

		case <-ctx.Done():
			return
		}
	}
}
