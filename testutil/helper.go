package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/forkring/dining-table-sim-go/events"
	"github.com/forkring/dining-table-sim-go/tablesim"
)

// GivenUniqueRunID returns a fresh V7 UUID for arranging test data.
func GivenUniqueRunID(t testing.TB) uuid.UUID {
	runID, err := uuid.NewV7()
	assert.NoError(t, err, "error in arranging test data")

	return runID
}

// FastTiming returns a millisecond-scale timing profile so protocol tests
// run a full simulation in well under a second.
func FastTiming() tablesim.Timing {
	return tablesim.Timing{
		ThinkMin:       time.Millisecond,
		ThinkMax:       3 * time.Millisecond,
		DineMin:        time.Millisecond,
		DineMax:        3 * time.Millisecond,
		AcquireTimeout: 20 * time.Millisecond,
		RetryDelay:     time.Millisecond,
	}
}

// FastConfig returns a valid configuration with FastTiming for the given
// table size.
func FastConfig(philosophers int, servings int) tablesim.Config {
	return tablesim.Config{
		Philosophers: philosophers,
		Servings:     servings,
		Timing:       FastTiming(),
		PollInterval: 5 * time.Millisecond,
		Seed:         42,
	}
}

// DrainFeed consumes a closed (or closing) feed to completion, failing the
// test if draining takes longer than timeout.
func DrainFeed(t testing.TB, feed *tablesim.Feed, timeout time.Duration) tablesim.Envelopes {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var envelopes tablesim.Envelopes

	for {
		envelope, err := feed.Next(ctx)
		if errors.Is(err, tablesim.ErrFeedDrained) {
			return envelopes
		}

		if !assert.NoError(t, err, "draining the feed timed out") {
			return envelopes
		}

		envelopes = append(envelopes, envelope)
	}
}

// CountEventType counts the envelopes carrying the given event type.
func CountEventType(envelopes tablesim.Envelopes, eventType events.EventTypeString) int {
	count := 0
	for _, envelope := range envelopes {
		if envelope.Event.EventType() == eventType {
			count++
		}
	}

	return count
}

// TBLogger adapts a testing.TB to the tablesim.Logger interface.
type TBLogger struct {
	tb testing.TB
}

// NewTBLogger creates a logger writing through t.Logf.
func NewTBLogger(tb testing.TB) *TBLogger {
	return &TBLogger{tb: tb}
}

func (l *TBLogger) Debug(msg string, args ...any) { l.log("DEBUG", msg, args...) }
func (l *TBLogger) Info(msg string, args ...any)  { l.log("INFO", msg, args...) }
func (l *TBLogger) Warn(msg string, args ...any)  { l.log("WARN", msg, args...) }
func (l *TBLogger) Error(msg string, args ...any) { l.log("ERROR", msg, args...) }

func (l *TBLogger) log(level string, msg string, args ...any) {
	l.tb.Helper()
	l.tb.Logf("%s %s %v", level, msg, args)
}
