package tablesim

import (
	"context"
	"math/rand/v2"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/forkring/dining-table-sim-go/events"
)

// Phase identifies where a philosopher currently is in its life cycle.
type Phase int32

const (
	PhaseThinking Phase = iota
	PhaseAcquiringFirst
	PhaseAcquiringSecond
	PhaseDining
	PhaseRetreating
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseThinking:
		return "thinking"
	case PhaseAcquiringFirst:
		return "acquiring-first"
	case PhaseAcquiringSecond:
		return "acquiring-second"
	case PhaseDining:
		return "dining"
	case PhaseRetreating:
		return "retreating"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

const (
	metricAcquireTimeouts = "tablesim_acquire_timeouts_total"
	metricBackoffs        = "tablesim_backoffs_total"
	metricDiningDuration  = "tablesim_dining_duration"
	metricServingsEaten   = "tablesim_servings_eaten_total"

	labelPhilosopherID = "philosopher_id"

	logAttrPhilosopherID = "philosopher_id"
	logAttrServingsLeft  = "servings_left"
)

// Philosopher is one independently scheduled actor at the table. It alternates
// between thinking and dining, needs both of its neighboring forks to dine,
// and stops once its serving budget is exhausted.
//
// The acquisition protocol is fixed: the right fork is always tried first,
// and a philosopher that cannot get its left fork within the acquire timeout
// puts the right fork back before retrying. It therefore never holds exactly
// one fork for longer than one timeout window, which rules out the circular
// wait that deadlocks the naive solution.
type Philosopher struct {
	id       int
	left     *Fork
	right    *Fork
	servings atomic.Int64
	phase    atomic.Int32
	feed     *Feed
	timing   Timing
	rng      *rand.Rand
	logger   Logger
	metrics  MetricsCollector
}

func newPhilosopher(
	id int,
	left *Fork,
	right *Fork,
	servings int,
	timing Timing,
	rng *rand.Rand,
	feed *Feed,
	logger Logger,
	metrics MetricsCollector,
) *Philosopher {

	p := &Philosopher{
		id:      id,
		left:    left,
		right:   right,
		feed:    feed,
		timing:  timing,
		rng:     rng,
		logger:  logger,
		metrics: metrics,
	}
	p.servings.Store(int64(servings))
	p.phase.Store(int32(PhaseThinking))

	return p
}

// ID returns the philosopher's stable ring position.
func (p *Philosopher) ID() int {
	return p.id
}

// ServingsLeft returns the philosopher's remaining serving budget.
// The read is relaxed; budgets only ever decrease.
func (p *Philosopher) ServingsLeft() int {
	return int(p.servings.Load())
}

// Phase returns the philosopher's current phase. Querying a Done philosopher
// never blocks.
func (p *Philosopher) Phase() Phase {
	return Phase(p.phase.Load())
}

// PhilosopherSnapshot is a read-only view of a philosopher's state.
type PhilosopherSnapshot struct {
	ID           int
	ServingsLeft int
	Phase        Phase
}

// Snapshot returns a best-effort, stale-tolerant view of the philosopher.
func (p *Philosopher) Snapshot() PhilosopherSnapshot {
	return PhilosopherSnapshot{
		ID:           p.id,
		ServingsLeft: p.ServingsLeft(),
		Phase:        p.Phase(),
	}
}

// Run drives the philosopher until its budget is exhausted or ctx is
// cancelled. Cancellation is honored only at suspension points; a philosopher
// cancelled while dining still puts both forks back before returning.
func (p *Philosopher) Run(ctx context.Context) {
	for p.servings.Load() > 0 {
		if err := p.think(ctx); err != nil {
			p.phase.Store(int32(PhaseDone))
			return
		}

		if err := p.dine(ctx); err != nil {
			p.phase.Store(int32(PhaseDone))
			return
		}
	}

	p.phase.Store(int32(PhaseDone))
	p.feed.Publish(events.BuildPhilosopherLeftTable(p.id))
	p.logger.Info("philosopher left the table", logAttrPhilosopherID, p.id)
}

func (p *Philosopher) think(ctx context.Context) error {
	p.phase.Store(int32(PhaseThinking))

	return sleepCtx(ctx, p.randomDelay(p.timing.ThinkMin, p.timing.ThinkMax))
}

// dine runs one full contending cycle: acquire both forks, consume one
// serving, put both forks back.
func (p *Philosopher) dine(ctx context.Context) error {
	if err := p.acquireForks(ctx); err != nil {
		return err
	}

	p.phase.Store(int32(PhaseDining))
	servingsLeft := int(p.servings.Add(-1))
	p.feed.Publish(events.BuildPhilosopherStartedDining(p.id, servingsLeft))
	p.logger.Debug("philosopher started dining",
		logAttrPhilosopherID, p.id, logAttrServingsLeft, servingsLeft)

	start := time.Now()
	sleepErr := sleepCtx(ctx, p.randomDelay(p.timing.DineMin, p.timing.DineMax))
	p.metrics.RecordDuration(metricDiningDuration, time.Since(start), p.labels())
	p.metrics.IncrementCounter(metricServingsEaten, p.labels())

	// The in-progress serving always completes with a release of both forks,
	// even when the budget just hit zero or ctx was cancelled mid-meal.
	p.phase.Store(int32(PhaseRetreating))
	p.right.Release(p.id)
	p.left.Release(p.id)
	p.feed.Publish(events.BuildPhilosopherStoppedDining(p.id, servingsLeft))

	return sleepErr
}

// acquireForks implements the deadlock-avoiding protocol: right fork first,
// then left; on a left-fork timeout the right fork goes back on the table
// before the next attempt.
func (p *Philosopher) acquireForks(ctx context.Context) error {
	for {
		p.phase.Store(int32(PhaseAcquiringFirst))

		if !p.right.TryAcquire(p.id, p.timing.AcquireTimeout) {
			p.metrics.IncrementCounter(metricAcquireTimeouts, p.labels())

			if err := sleepCtx(ctx, p.timing.RetryDelay); err != nil {
				return err
			}

			continue
		}

		p.phase.Store(int32(PhaseAcquiringSecond))

		if p.left.TryAcquire(p.id, p.timing.AcquireTimeout) {
			return nil
		}

		p.right.Release(p.id)
		p.metrics.IncrementCounter(metricBackoffs, p.labels())

		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (p *Philosopher) randomDelay(minDelay, maxDelay time.Duration) time.Duration {
	if maxDelay <= minDelay {
		return minDelay
	}

	return minDelay + time.Duration(p.rng.Int64N(int64(maxDelay-minDelay)))
}

func (p *Philosopher) labels() map[string]string {
	return map[string]string{labelPhilosopherID: strconv.Itoa(p.id)}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
