package postgresengine_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkring/dining-table-sim-go/events"
	"github.com/forkring/dining-table-sim-go/journal"
	"github.com/forkring/dining-table-sim-go/journal/postgresengine"
	"github.com/forkring/dining-table-sim-go/tablesim"
	"github.com/forkring/dining-table-sim-go/testutil"
	"github.com/forkring/dining-table-sim-go/testutil/config"
)

func Test_NewJournal_RejectsNilConnections(t *testing.T) {
	_, pgxErr := postgresengine.NewJournalFromPGXPool(nil)
	assert.ErrorIs(t, pgxErr, journal.ErrNilDatabaseConnection)

	_, sqlErr := postgresengine.NewJournalFromSQLDB(nil)
	assert.ErrorIs(t, sqlErr, journal.ErrNilDatabaseConnection)

	_, sqlxErr := postgresengine.NewJournalFromSQLX(nil)
	assert.ErrorIs(t, sqlxErr, journal.ErrNilDatabaseConnection)
}

func Test_WithTableName_RejectsEmptyName(t *testing.T) {
	// sql.Open does not connect, so no database is needed here.
	db, err := sql.Open("postgres", "postgres://localhost:5432/unused?sslmode=disable")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, buildErr := postgresengine.NewJournalFromSQLDB(db, postgresengine.WithTableName(""))

	assert.ErrorIs(t, buildErr, journal.ErrEmptyJournalTableName)
}

// The tests below need a reachable Postgres with the journal schema and are
// skipped unless TABLESIM_TEST_POSTGRES_DSN is set.

func Test_Journal_AppendAndQueryByRun(t *testing.T) {
	pool := config.PostgresPGXPoolTestConfig(t)
	defer pool.Close()

	journalStore, err := postgresengine.NewJournalFromPGXPool(pool)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	runID := testutil.GivenUniqueRunID(t)

	published := tablesim.Envelopes{
		{Seq: 1, OccurredAt: time.Now(), Event: events.BuildForkPickedUp(0, 1)},
		{Seq: 2, OccurredAt: time.Now(), Event: events.BuildPhilosopherStartedDining(1, 6)},
		{Seq: 3, OccurredAt: time.Now(), Event: events.BuildPhilosopherLeftTable(1)},
	}

	for _, envelope := range published {
		record, buildErr := journal.RecordFromEnvelope(runID, envelope)
		require.NoError(t, buildErr)
		require.NoError(t, journalStore.Append(ctx, record))
	}

	records, queryErr := journalStore.ByRun(ctx, runID)
	require.NoError(t, queryErr)
	require.Len(t, records, len(published))

	for i, record := range records {
		expectedType := published[i].Event.EventType()
		assert.Equal(t, expectedType, record.EventType)

		_, rehydrateErr := events.EventFromJSON(record.EventType, record.PayloadJSON)
		assert.NoError(t, rehydrateErr)
	}
}

func Test_Journal_PumpFullRunIntoPostgres(t *testing.T) {
	db := config.PostgresSQLXTestConfig(t)
	defer func() { _ = db.Close() }()

	journalStore, err := postgresengine.NewJournalFromSQLX(db)
	require.NoError(t, err)

	table, err := tablesim.NewTable(testutil.FastConfig(3, 2))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		runErr <- table.Run(ctx)
	}()

	require.NoError(t, journal.Pump(ctx, table.Feed(), table.RunID(), journalStore))
	require.NoError(t, <-runErr)

	records, queryErr := journalStore.ByRun(ctx, table.RunID())
	require.NoError(t, queryErr)

	leftTheTable := 0
	for _, record := range records {
		if record.EventType == events.PhilosopherLeftTableEventType {
			leftTheTable++
		}
	}

	assert.Equal(t, 3, leftTheTable)
}
