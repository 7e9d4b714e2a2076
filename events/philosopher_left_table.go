package events

import (
	jsoniter "github.com/json-iterator/go"
)

const PhilosopherLeftTableEventType = "PhilosopherLeftTable"

// PhilosopherLeftTable is the terminal event of a philosopher whose serving
// budget is exhausted. It is published exactly once per philosopher.
type PhilosopherLeftTable struct {
	eventType EventTypeString
	Payload   PhilosopherLeftTablePayload
}

type PhilosopherLeftTablePayload struct {
	PhilosopherID int
}

func BuildPhilosopherLeftTable(philosopherID int) PhilosopherLeftTable {
	return PhilosopherLeftTable{
		eventType: PhilosopherLeftTableEventType,
		Payload: PhilosopherLeftTablePayload{
			PhilosopherID: philosopherID,
		},
	}
}

func PhilosopherLeftTableFromJSON(eventJSON []byte) (PhilosopherLeftTable, error) {
	payload := new(PhilosopherLeftTablePayload)
	if err := jsoniter.ConfigFastest.Unmarshal(eventJSON, payload); err != nil {
		return PhilosopherLeftTable{}, err
	}

	return PhilosopherLeftTable{
		eventType: PhilosopherLeftTableEventType,
		Payload:   *payload,
	}, nil
}

func (e PhilosopherLeftTable) EventType() EventTypeString {
	return e.eventType
}

func (e PhilosopherLeftTable) PayloadToJSON() ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(e.Payload)
}
