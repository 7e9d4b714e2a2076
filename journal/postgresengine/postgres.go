package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/forkring/dining-table-sim-go/journal"
	"github.com/forkring/dining-table-sim-go/journal/postgresengine/internal/adapters"
)

const (
	defaultJournalTableName = "simulation_events"

	logMsgBuildInsertQueryFailed = "failed to build insert query"
	logMsgBuildSelectQueryFailed = "failed to build select query"
	logMsgDBExecFailed           = "database execution failed during record append"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgBuildRecordFailed      = "failed to build record from database row"
	logMsgRowsAffectedFailed     = "failed to get rows affected count"
	logMsgRecordAppended         = "record appended"
	logMsgQueryCompleted         = "query completed"
	logMsgSQLExecuted            = "executed sql for: "

	logAttrError       = "error"
	logAttrQuery       = "query"
	logAttrEventType   = "event_type"
	logAttrRecordCount = "record_count"
	logAttrDurationMS  = "duration_ms"

	logActionAppend = "append"
	logActionQuery  = "query"

	colEventType      = "event_type"
	colOccurredAt     = "occurred_at"
	colPayload        = "payload"
	colMetadata       = "metadata"
	colSequenceNumber = "sequence_number"

	dialectPostgres = "postgres"
	metadataRunID   = "metadata ->> 'RunID'"

	metricAppendDuration = "tablesim_journal_append_duration"
	metricQueryDuration  = "tablesim_journal_query_duration"
)

type sqlQueryString = string

// Journal is the Postgres-backed append-only store for simulation event
// records. It leverages a database adapter and supports customizable logging,
// metrics, and table configuration.
type Journal struct {
	db        adapters.DBAdapter
	tableName string
	logger    Logger
	metrics   MetricsCollector
}

// NewJournalFromPGXPool creates a new Journal using a pgx Pool with optional configuration.
func NewJournalFromPGXPool(db *pgxpool.Pool, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, journal.ErrNilDatabaseConnection
	}

	return buildJournal(adapters.NewPGXAdapter(db), options...)
}

// NewJournalFromSQLDB creates a new Journal using a sql.DB with optional configuration.
func NewJournalFromSQLDB(db *sql.DB, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, journal.ErrNilDatabaseConnection
	}

	return buildJournal(adapters.NewSQLAdapter(db), options...)
}

// NewJournalFromSQLX creates a new Journal using a sqlx.DB with optional configuration.
func NewJournalFromSQLX(db *sqlx.DB, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, journal.ErrNilDatabaseConnection
	}

	return buildJournal(adapters.NewSQLXAdapter(db), options...)
}

func buildJournal(db adapters.DBAdapter, options ...Option) (Journal, error) {
	j := Journal{
		db:        db,
		tableName: defaultJournalTableName,
	}

	for _, option := range options {
		if err := option(&j); err != nil {
			return Journal{}, err
		}
	}

	return j, nil
}

// Append stores one record in the journal.
func (j Journal) Append(ctx context.Context, record journal.Record) error {
	sqlQuery, buildQueryErr := j.buildInsertQuery(record)
	if buildQueryErr != nil {
		return buildQueryErr
	}

	start := time.Now()
	result, execErr := j.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	j.logQueryWithDuration(sqlQuery, logActionAppend, duration)
	j.recordDuration(metricAppendDuration, duration)

	if execErr != nil {
		j.logError(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		return errors.Join(journal.ErrAppendingRecordFailed, execErr)
	}

	if _, rowsAffectedErr := result.RowsAffected(); rowsAffectedErr != nil {
		j.logError(logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
		return errors.Join(journal.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	j.logInfo(logMsgRecordAppended,
		logAttrEventType, record.EventType,
		logAttrDurationMS, durationToMilliseconds(duration))

	return nil
}

// All retrieves every journaled record in append order.
func (j Journal) All(ctx context.Context) (journal.Records, error) {
	return j.query(ctx, j.baseSelect())
}

// ByRun retrieves the records of a single simulation run in append order.
func (j Journal) ByRun(ctx context.Context, runID uuid.UUID) (journal.Records, error) {
	selectStmt := j.baseSelect().Where(goqu.L(metadataRunID).Eq(runID.String()))

	return j.query(ctx, selectStmt)
}

func (j Journal) baseSelect() *goqu.SelectDataset {
	return goqu.Dialect(dialectPostgres).
		From(j.tableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata).
		Order(goqu.I(colSequenceNumber).Asc())
}

func (j Journal) query(ctx context.Context, selectStmt *goqu.SelectDataset) (journal.Records, error) {
	var empty journal.Records

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		j.logError(logMsgBuildSelectQueryFailed, logAttrError, toSQLErr.Error())
		return empty, errors.Join(journal.ErrBuildingQueryFailed, toSQLErr)
	}

	start := time.Now()
	rows, queryErr := j.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	j.logQueryWithDuration(sqlQuery, logActionQuery, duration)
	j.recordDuration(metricQueryDuration, duration)

	if queryErr != nil {
		j.logError(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return empty, errors.Join(journal.ErrQueryingJournalFailed, queryErr)
	}
	defer j.closeRows(rows)

	records, scanErr := j.processQueryResults(rows)
	if scanErr != nil {
		return empty, scanErr
	}

	j.logInfo(logMsgQueryCompleted,
		logAttrRecordCount, len(records),
		logAttrDurationMS, durationToMilliseconds(duration))

	return records, nil
}

func (j Journal) buildInsertQuery(record journal.Record) (sqlQueryString, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(j.tableName).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		Vals(goqu.Vals{
			record.EventType,
			record.OccurredAt,
			record.PayloadJSON,
			record.MetadataJSON,
		})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		j.logError(logMsgBuildInsertQueryFailed, logAttrError, toSQLErr.Error(), logAttrEventType, record.EventType)
		return "", errors.Join(journal.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (j Journal) processQueryResults(rows adapters.DBRows) (journal.Records, error) {
	var records journal.Records

	for rows.Next() {
		var eventType string
		var occurredAt time.Time
		var payload []byte
		var metadata []byte

		if scanErr := rows.Scan(&eventType, &occurredAt, &payload, &metadata); scanErr != nil {
			j.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
			return nil, errors.Join(journal.ErrScanningRowFailed, scanErr)
		}

		record, buildErr := journal.BuildRecord(eventType, occurredAt, payload, metadata)
		if buildErr != nil {
			j.logError(logMsgBuildRecordFailed, logAttrError, buildErr.Error())
			return nil, buildErr
		}

		records = append(records, record)
	}

	return records, nil
}

func (j Journal) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if j.logger != nil {
			j.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

func (j Journal) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if j.logger != nil {
		j.logger.Debug(logMsgSQLExecuted+action,
			logAttrQuery, sqlQuery,
			logAttrDurationMS, durationToMilliseconds(duration))
	}
}

func (j Journal) logInfo(msg string, args ...any) {
	if j.logger != nil {
		j.logger.Info(msg, args...)
	}
}

func (j Journal) logError(msg string, args ...any) {
	if j.logger != nil {
		j.logger.Error(msg, args...)
	}
}

func (j Journal) recordDuration(metric string, duration time.Duration) {
	if j.metrics != nil {
		j.metrics.RecordDuration(metric, duration, nil)
	}
}

func durationToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
