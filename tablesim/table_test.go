package tablesim_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkring/dining-table-sim-go/events"
	"github.com/forkring/dining-table-sim-go/tablesim"
	"github.com/forkring/dining-table-sim-go/testutil"
)

func Test_NewTable_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name        string
		cfg         tablesim.Config
		expectedErr error
	}{
		{
			name:        "single philosopher",
			cfg:         testutil.FastConfig(1, 7),
			expectedErr: tablesim.ErrTooFewPhilosophers,
		},
		{
			name:        "zero servings",
			cfg:         testutil.FastConfig(5, 0),
			expectedErr: tablesim.ErrNoServings,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tablesim.NewTable(tt.cfg)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func Test_Table_RunToCompletion_ClassicScenario(t *testing.T) {
	const philosophers = 5
	const servings = 7

	table, err := tablesim.NewTable(
		testutil.FastConfig(philosophers, servings),
		tablesim.WithRunID(testutil.GivenUniqueRunID(t)),
		tablesim.WithLogger(testutil.NewTBLogger(t)),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, table.Run(ctx))

	select {
	case <-table.Done():
	default:
		t.Fatal("done channel must be closed after completion")
	}

	assert.Equal(t, 0, table.ServingsLeft())

	envelopes := testutil.DrainFeed(t, table.Feed(), 5*time.Second)

	assert.Equal(t, philosophers,
		testutil.CountEventType(envelopes, events.PhilosopherLeftTableEventType))
	assert.Equal(t, philosophers*servings,
		testutil.CountEventType(envelopes, events.PhilosopherStartedDiningEventType))
	assert.Equal(t, philosophers*servings,
		testutil.CountEventType(envelopes, events.PhilosopherStoppedDiningEventType))

	assertBudgetConservation(t, envelopes, philosophers, servings)
	assertNoDoubleOwnership(t, envelopes)
}

func Test_Table_RunToCompletion_DegenerateRingOfTwo(t *testing.T) {
	table, err := tablesim.NewTable(testutil.FastConfig(2, 1))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, table.Run(ctx))

	envelopes := testutil.DrainFeed(t, table.Feed(), 5*time.Second)

	assert.Equal(t, 2, testutil.CountEventType(envelopes, events.PhilosopherLeftTableEventType))
	assertNoDoubleOwnership(t, envelopes)
}

func Test_Table_Run_SecondCallRejected(t *testing.T) {
	table, err := tablesim.NewTable(testutil.FastConfig(2, 1))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, table.Run(ctx))

	assert.ErrorIs(t, table.Run(ctx), tablesim.ErrTableAlreadyRunning)
}

func Test_Table_Run_HonorsCancellation(t *testing.T) {
	// A budget this large cannot be consumed before the cancellation below.
	table, err := tablesim.NewTable(testutil.FastConfig(3, 100000))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	assert.ErrorIs(t, table.Run(ctx), context.Canceled)

	select {
	case <-table.Done():
		t.Fatal("done channel must stay open on a cancelled run")
	default:
	}

	for _, snapshot := range table.ForkSnapshots() {
		assert.False(t, snapshot.Held, "fork %d leaked by a cancelled philosopher", snapshot.ID)
	}
}

// assertBudgetConservation verifies each philosopher consumed its budget
// exactly, one serving per completed dining phase, and left exactly once.
func assertBudgetConservation(t *testing.T, envelopes tablesim.Envelopes, philosophers int, servings int) {
	t.Helper()

	diningCounts := make(map[int]int)
	leftCounts := make(map[int]int)

	for _, envelope := range envelopes {
		switch event := envelope.Event.(type) {
		case events.PhilosopherStartedDining:
			diningCounts[event.Payload.PhilosopherID]++
			assert.GreaterOrEqual(t, event.Payload.ServingsLeft, 0)
		case events.PhilosopherLeftTable:
			leftCounts[event.Payload.PhilosopherID]++
		}
	}

	for id := 0; id < philosophers; id++ {
		assert.Equal(t, servings, diningCounts[id], "philosopher %d dining count", id)
		assert.Equal(t, 1, leftCounts[id], "philosopher %d must leave exactly once", id)
	}
}

// assertNoDoubleOwnership replays the fork events and verifies that no fork
// is ever picked up while held and only put down by its current owner.
func assertNoDoubleOwnership(t *testing.T, envelopes tablesim.Envelopes) {
	t.Helper()

	owners := make(map[int]int)

	for _, envelope := range envelopes {
		switch event := envelope.Event.(type) {
		case events.ForkPickedUp:
			_, held := owners[event.Payload.ForkID]
			require.False(t, held, "fork %d picked up while already held", event.Payload.ForkID)
			owners[event.Payload.ForkID] = event.Payload.PhilosopherID

		case events.ForkPutDown:
			owner, held := owners[event.Payload.ForkID]
			require.True(t, held, "fork %d put down while not held", event.Payload.ForkID)
			require.Equal(t, owner, event.Payload.PhilosopherID,
				"fork %d put down by a philosopher that does not hold it", event.Payload.ForkID)
			delete(owners, event.Payload.ForkID)
		}
	}

	assert.Empty(t, owners, "every fork must end up back on the table")
}
