package postgresengine

import (
	"time"

	"github.com/forkring/dining-table-sim-go/journal"
)

// Logger interface for SQL query logging, operational warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting journal performance metrics.
// It is dependency-free so users can integrate with any metrics backend
// by implementing this interface.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// Option defines a functional option for configuring a Journal.
type Option func(*Journal) error

// WithTableName sets the table name for the Journal.
func WithTableName(tableName string) Option {
	return func(j *Journal) error {
		if tableName == "" {
			return journal.ErrEmptyJournalTableName
		}

		j.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Journal.
//
// Debug level: SQL queries with execution timing (development use)
// Info level: record counts and durations (production-safe)
// Error level: failures that cause operation errors.
func WithLogger(logger Logger) Option {
	return func(j *Journal) error {
		j.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Journal. The collector
// receives append/query durations and record counts.
func WithMetrics(collector MetricsCollector) Option {
	return func(j *Journal) error {
		j.metrics = collector
		return nil
	}
}
