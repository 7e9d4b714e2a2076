package journal

import (
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/forkring/dining-table-sim-go/tablesim"
)

var errSerializingPayload = errors.New("serializing event payload failed")
var errSerializingMetadata = errors.New("serializing event metadata failed")

// RunMetadata is stored alongside every record so journaled events can be
// grouped by run and ordered by their feed sequence number.
type RunMetadata struct {
	RunID string
	Seq   uint64
}

// RecordFromEnvelope converts a feed envelope into a storable Record,
// tagging it with the run identifier and the envelope's sequence number.
func RecordFromEnvelope(runID uuid.UUID, envelope tablesim.Envelope) (Record, error) {
	payloadJSON, err := envelope.Event.PayloadToJSON()
	if err != nil {
		return Record{}, errors.Join(errSerializingPayload, err)
	}

	metadataJSON, err := jsoniter.ConfigFastest.Marshal(RunMetadata{
		RunID: runID.String(),
		Seq:   envelope.Seq,
	})
	if err != nil {
		return Record{}, errors.Join(errSerializingMetadata, err)
	}

	return BuildRecord(envelope.Event.EventType(), envelope.OccurredAt, payloadJSON, metadataJSON)
}
