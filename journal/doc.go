// Package journal defines the storage-agnostic record format for persisted
// simulation events and the pump that drains a live event feed into an
// append-only sink.
//
// Journaling is strictly an observer-side concern: it consumes the feed the
// same way a renderer would and never sits on the coordination path. The
// engine under journal/postgresengine provides a Postgres-backed Appender.
package journal
