package tablesim

import (
	"time"
)

// Timing holds the bounded delay distributions driving a philosopher's
// suspension points. Think and dine delays are drawn uniformly from
// [Min, Max); AcquireTimeout bounds how long a single fork acquisition may
// wait; RetryDelay is the yield between failed first-fork attempts.
type Timing struct {
	ThinkMin       time.Duration
	ThinkMax       time.Duration
	DineMin        time.Duration
	DineMax        time.Duration
	AcquireTimeout time.Duration
	RetryDelay     time.Duration
}

// Config is the full configuration surface of a simulation run.
// It must pass Validate before any philosopher starts.
type Config struct {
	Philosophers int // N, at least 2
	Servings     int // M, at least 1, per philosopher
	Timing       Timing
	PollInterval time.Duration // supervisor budget poll interval
	Seed         uint64        // RNG seed; 0 picks a time-based seed
}

// DefaultConfig returns the classic table: five philosophers with seven
// servings each, one-second fork timeout, and delays on a human time scale.
func DefaultConfig() Config {
	return Config{
		Philosophers: 5,
		Servings:     7,
		Timing: Timing{
			ThinkMin:       1 * time.Second,
			ThinkMax:       4 * time.Second,
			DineMin:        2 * time.Second,
			DineMax:        4 * time.Second,
			AcquireTimeout: 1 * time.Second,
			RetryDelay:     100 * time.Millisecond,
		},
		PollInterval: 100 * time.Millisecond,
	}
}

// Validate rejects configurations that would break the protocol's liveness
// guarantees before any goroutine is started.
func (c Config) Validate() error {
	if c.Philosophers < 2 {
		return ErrTooFewPhilosophers
	}

	if c.Servings < 1 {
		return ErrNoServings
	}

	if c.Timing.ThinkMin <= 0 || c.Timing.ThinkMax < c.Timing.ThinkMin {
		return ErrInvalidThinkDelay
	}

	if c.Timing.DineMin <= 0 || c.Timing.DineMax < c.Timing.DineMin {
		return ErrInvalidDineDelay
	}

	if c.Timing.AcquireTimeout <= 0 {
		return ErrInvalidAcquireTimeout
	}

	if c.Timing.RetryDelay <= 0 {
		return ErrInvalidRetryDelay
	}

	if c.PollInterval <= 0 {
		return ErrInvalidPollInterval
	}

	return nil
}
