// Package adapters provides the database adapter implementations for the
// PostgreSQL journal engine.
//
// The journal only needs two operations, a row query and a statement
// execution, so the adapters reduce pgxpool.Pool, sql.DB and sqlx.DB to the
// small DBAdapter interface. All three behave identically from the engine's
// point of view.
package adapters
