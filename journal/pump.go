package journal

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/forkring/dining-table-sim-go/tablesim"
)

// Appender persists journal records. Implemented by the Postgres engine and
// by in-memory sinks in tests.
type Appender interface {
	Append(ctx context.Context, record Record) error
}

// Pump drains a feed into an appender, one record per envelope, until the
// feed is closed and fully drained or ctx is cancelled. It returns nil on a
// fully drained feed.
func Pump(ctx context.Context, feed *tablesim.Feed, runID uuid.UUID, appender Appender) error {
	for {
		envelope, err := feed.Next(ctx)
		if errors.Is(err, tablesim.ErrFeedDrained) {
			return nil
		}

		if err != nil {
			return err
		}

		record, buildErr := RecordFromEnvelope(runID, envelope)
		if buildErr != nil {
			return buildErr
		}

		if appendErr := appender.Append(ctx, record); appendErr != nil {
			return appendErr
		}
	}
}
