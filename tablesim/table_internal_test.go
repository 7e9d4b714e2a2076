package tablesim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalConfig(philosophers int, servings int) Config {
	return Config{
		Philosophers: philosophers,
		Servings:     servings,
		Timing: Timing{
			ThinkMin:       time.Millisecond,
			ThinkMax:       3 * time.Millisecond,
			DineMin:        time.Millisecond,
			DineMax:        3 * time.Millisecond,
			AcquireTimeout: 10 * time.Millisecond,
			RetryDelay:     time.Millisecond,
		},
		PollInterval: 5 * time.Millisecond,
		Seed:         1,
	}
}

func Test_NewTable_NeighborAssignment(t *testing.T) {
	const n = 5

	table, err := NewTable(minimalConfig(n, 1))
	require.NoError(t, err)

	for i, p := range table.philosophers {
		assert.Same(t, table.forks[i], p.right, "philosopher %d right fork", i)
		assert.Same(t, table.forks[(i+n-1)%n], p.left, "philosopher %d left fork", i)
		assert.NotSame(t, p.left, p.right, "philosopher %d must reference two distinct forks", i)
	}
}

func Test_NewTable_RingOfTwoSharesBothForks(t *testing.T) {
	table, err := NewTable(minimalConfig(2, 1))
	require.NoError(t, err)

	p0 := table.philosophers[0]
	p1 := table.philosophers[1]

	assert.Same(t, table.forks[0], p0.right)
	assert.Same(t, table.forks[1], p0.left)
	assert.Same(t, table.forks[1], p1.right)
	assert.Same(t, table.forks[0], p1.left)
}

func Test_NewTable_FeedCapacityHint(t *testing.T) {
	const hint = 256

	table, err := NewTable(minimalConfig(3, 1), WithFeedCapacityHint(hint))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, cap(table.feed.queue), hint)
	assert.Equal(t, 0, table.Feed().Len())
}

func Test_NewTable_RejectsNegativeFeedCapacityHint(t *testing.T) {
	_, err := NewTable(minimalConfig(3, 1), WithFeedCapacityHint(-1))

	assert.ErrorIs(t, err, ErrInvalidFeedCapacityHint)
}

func Test_NewTable_PhilosophersStartWithFullBudget(t *testing.T) {
	table, err := NewTable(minimalConfig(3, 7))
	require.NoError(t, err)

	assert.Equal(t, 21, table.ServingsLeft())

	for _, snapshot := range table.PhilosopherSnapshots() {
		assert.Equal(t, 7, snapshot.ServingsLeft)
		assert.Equal(t, PhaseThinking, snapshot.Phase)
	}

	for _, snapshot := range table.ForkSnapshots() {
		assert.False(t, snapshot.Held)
		assert.Equal(t, NoOwner, snapshot.Owner)
	}
}
