package events

import (
	jsoniter "github.com/json-iterator/go"
)

const PhilosopherStoppedDiningEventType = "PhilosopherStoppedDining"

// PhilosopherStoppedDining signals that a philosopher finished a serving and
// returned both forks to the table.
type PhilosopherStoppedDining struct {
	eventType EventTypeString
	Payload   PhilosopherStoppedDiningPayload
}

type PhilosopherStoppedDiningPayload struct {
	PhilosopherID int
	ServingsLeft  int
}

func BuildPhilosopherStoppedDining(philosopherID int, servingsLeft int) PhilosopherStoppedDining {
	return PhilosopherStoppedDining{
		eventType: PhilosopherStoppedDiningEventType,
		Payload: PhilosopherStoppedDiningPayload{
			PhilosopherID: philosopherID,
			ServingsLeft:  servingsLeft,
		},
	}
}

func PhilosopherStoppedDiningFromJSON(eventJSON []byte) (PhilosopherStoppedDining, error) {
	payload := new(PhilosopherStoppedDiningPayload)
	if err := jsoniter.ConfigFastest.Unmarshal(eventJSON, payload); err != nil {
		return PhilosopherStoppedDining{}, err
	}

	return PhilosopherStoppedDining{
		eventType: PhilosopherStoppedDiningEventType,
		Payload:   *payload,
	}, nil
}

func (e PhilosopherStoppedDining) EventType() EventTypeString {
	return e.eventType
}

func (e PhilosopherStoppedDining) PayloadToJSON() ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(e.Payload)
}
