package journal

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var ErrInvalidPayloadJSON = errors.New("payload json is not valid")
var ErrInvalidMetadataJSON = errors.New("metadata json is not valid")

// Records is an alias type for a slice of Record.
type Records = []Record

// Record is a DTO used by journal engines to append simulation events and
// query them back.
//
// It is built on scalars to be completely agnostic of the domain event types
// in the events package. While its properties are exported, it should only be
// constructed with the supplied factory methods:
//   - BuildRecord
//   - BuildRecordWithEmptyMetadata
type Record struct {
	EventType    string
	OccurredAt   time.Time
	PayloadJSON  []byte
	MetadataJSON []byte
}

// BuildRecord is a factory method for Record.
//
// It populates the Record with the given scalar input.
// Returns an error if payloadJSON or metadataJSON are not valid JSON.
func BuildRecord(eventType string, occurredAt time.Time, payloadJSON []byte, metadataJSON []byte) (Record, error) {
	if !jsoniter.ConfigFastest.Valid(payloadJSON) {
		return Record{}, ErrInvalidPayloadJSON
	}

	if !jsoniter.ConfigFastest.Valid(metadataJSON) {
		return Record{}, ErrInvalidMetadataJSON
	}

	return Record{
		EventType:    eventType,
		OccurredAt:   occurredAt,
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}

// BuildRecordWithEmptyMetadata is a factory method for Record.
//
// It populates the Record with the given scalar input and valid empty JSON
// for MetadataJSON. Returns an error if payloadJSON is not valid JSON.
func BuildRecordWithEmptyMetadata(eventType string, occurredAt time.Time, payloadJSON []byte) (Record, error) {
	return BuildRecord(eventType, occurredAt, payloadJSON, []byte("{}"))
}
