package tablesim

import (
	"time"
)

// Logger interface for protocol logging, operational warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting simulation performance and contention metrics.
// It is dependency-free so users can integrate with any metrics backend
// (Prometheus, OpenTelemetry, StatsD, etc.) by implementing this interface.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

type noopLogger struct{}

func (noopLogger) Debug(_ string, _ ...any) {}
func (noopLogger) Info(_ string, _ ...any)  {}
func (noopLogger) Warn(_ string, _ ...any)  {}
func (noopLogger) Error(_ string, _ ...any) {}

type noopMetrics struct{}

func (noopMetrics) RecordDuration(_ string, _ time.Duration, _ map[string]string) {}
func (noopMetrics) IncrementCounter(_ string, _ map[string]string)                {}
func (noopMetrics) RecordValue(_ string, _ float64, _ map[string]string)          {}
