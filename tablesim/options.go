package tablesim

import (
	"github.com/google/uuid"
)

// Option defines a functional option for configuring a Table.
type Option func(*Table) error

// WithLogger sets the logger for the Table and its philosophers.
//
// Debug level: per-cycle protocol transitions (development use)
// Info level: run start/completion and terminal philosopher events
// Error level: invariant violations surfaced before aborting.
func WithLogger(logger Logger) Option {
	return func(t *Table) error {
		t.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Table and its philosophers.
// The collector receives acquisition timeouts, backoffs, dining durations
// and per-philosopher serving counts.
func WithMetrics(collector MetricsCollector) Option {
	return func(t *Table) error {
		t.metrics = collector
		return nil
	}
}

// WithFeedCapacityHint pre-sizes the feed's buffer for runs whose expected
// event volume is known up front. The feed still grows without bound beyond
// the hint; a hint of zero leaves the default allocation behavior in place.
func WithFeedCapacityHint(hint int) Option {
	return func(t *Table) error {
		if hint < 0 {
			return ErrInvalidFeedCapacityHint
		}

		t.feedCapacityHint = hint

		return nil
	}
}

// WithRunID sets an explicit run identifier instead of a generated V7 UUID.
func WithRunID(runID uuid.UUID) Option {
	return func(t *Table) error {
		t.runID = runID
		return nil
	}
}
