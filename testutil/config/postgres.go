// Package config provides database connection helpers for the journal
// integration tests. The tests are skipped unless TABLESIM_TEST_POSTGRES_DSN
// points at a reachable database with the journal schema installed.
package config

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

const dsnEnvVar = "TABLESIM_TEST_POSTGRES_DSN"

// PostgresTestDSN returns the DSN for the journal test database, skipping the
// test when none is configured.
func PostgresTestDSN(t testing.TB) string {
	dsn := os.Getenv(dsnEnvVar)
	if dsn == "" {
		t.Skipf("set %s to run journal integration tests", dsnEnvVar)
	}

	return dsn
}

// PostgresPGXPoolTestConfig creates a configured pgxpool.Pool for the test database.
func PostgresPGXPoolTestConfig(t testing.TB) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, PostgresTestDSN(t))
	if err != nil {
		t.Fatalf("failed to create pgx pool: %v", err)
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		t.Fatalf("failed to ping database: %v", pingErr)
	}

	return pool
}

// PostgresSQLDBTestConfig creates a configured *sql.DB for the test database.
func PostgresSQLDBTestConfig(t testing.TB) *sql.DB {
	const defaultMaxOpenConnections = 10
	const defaultMaxConnLifetime = time.Hour

	db, err := sql.Open("postgres", PostgresTestDSN(t))
	if err != nil {
		t.Fatalf("failed to open database connection: %v", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)

	if pingErr := db.PingContext(context.Background()); pingErr != nil {
		t.Fatalf("failed to ping database: %v", pingErr)
	}

	return db
}

// PostgresSQLXTestConfig creates a configured sqlx.DB for the test database.
func PostgresSQLXTestConfig(t testing.TB) *sqlx.DB {
	db, err := sqlx.Connect("postgres", PostgresTestDSN(t))
	if err != nil {
		t.Fatalf("failed to connect with sqlx: %v", err)
	}

	return db
}
