package journal_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkring/dining-table-sim-go/events"
	"github.com/forkring/dining-table-sim-go/journal"
	"github.com/forkring/dining-table-sim-go/tablesim"
)

type memoryAppender struct {
	records journal.Records
	failErr error
}

func (m *memoryAppender) Append(_ context.Context, record journal.Record) error {
	if m.failErr != nil {
		return m.failErr
	}

	m.records = append(m.records, record)

	return nil
}

func Test_Pump_DrainsFeedIntoAppender(t *testing.T) {
	feed := tablesim.NewFeed()
	feed.Publish(events.BuildForkPickedUp(0, 1))
	feed.Publish(events.BuildPhilosopherStartedDining(1, 6))
	feed.Publish(events.BuildPhilosopherLeftTable(1))
	feed.Close()

	runID, err := uuid.NewV7()
	require.NoError(t, err)

	appender := &memoryAppender{}

	require.NoError(t, journal.Pump(context.Background(), feed, runID, appender))
	require.Len(t, appender.records, 3)

	expectedEventTypes := []string{
		events.ForkPickedUpEventType,
		events.PhilosopherStartedDiningEventType,
		events.PhilosopherLeftTableEventType,
	}

	for i, record := range appender.records {
		assert.Equal(t, expectedEventTypes[i], record.EventType)

		var metadata journal.RunMetadata
		require.NoError(t, jsoniter.ConfigFastest.Unmarshal(record.MetadataJSON, &metadata))
		assert.Equal(t, runID.String(), metadata.RunID)
		assert.Equal(t, uint64(i+1), metadata.Seq)

		// journaled payloads must re-hydrate into domain events
		_, rehydrateErr := events.EventFromJSON(record.EventType, record.PayloadJSON)
		assert.NoError(t, rehydrateErr)
	}
}

func Test_Pump_ReturnsContextErrorWhileFeedOpen(t *testing.T) {
	feed := tablesim.NewFeed()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := journal.Pump(ctx, feed, uuid.New(), &memoryAppender{})

	assert.ErrorIs(t, err, context.Canceled)
}

func Test_Pump_PropagatesAppendFailure(t *testing.T) {
	feed := tablesim.NewFeed()
	feed.Publish(events.BuildPhilosopherLeftTable(0))
	feed.Close()

	appendErr := errors.New("sink unavailable")
	appender := &memoryAppender{failErr: appendErr}

	err := journal.Pump(context.Background(), feed, uuid.New(), appender)

	assert.ErrorIs(t, err, appendErr)
}
