package journal

import (
	"errors"
)

var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrEmptyJournalTableName = errors.New("empty journal table name supplied")
var ErrBuildingQueryFailed = errors.New("building query failed")
var ErrAppendingRecordFailed = errors.New("appending record failed")
var ErrQueryingJournalFailed = errors.New("querying journal failed")
var ErrScanningRowFailed = errors.New("scanning journal row failed")
var ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
