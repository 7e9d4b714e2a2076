// Package postgresengine provides the PostgreSQL implementation of the
// simulation event journal.
//
// It works with pgxpool.Pool, database/sql and sqlx connections through a
// small internal adapter layer, and builds its queries with goqu.
//
// Expected schema:
//
//	CREATE TABLE simulation_events (
//	    sequence_number BIGSERIAL PRIMARY KEY,
//	    event_type      TEXT                     NOT NULL,
//	    occurred_at     TIMESTAMP WITH TIME ZONE NOT NULL,
//	    payload         JSONB                    NOT NULL,
//	    metadata        JSONB                    NOT NULL
//	);
package postgresengine
