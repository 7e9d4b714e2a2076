package events

import (
	jsoniter "github.com/json-iterator/go"
)

const PhilosopherStartedDiningEventType = "PhilosopherStartedDining"

// PhilosopherStartedDining signals that a philosopher holds both forks and
// began consuming one serving. ServingsLeft is the budget after the decrement.
type PhilosopherStartedDining struct {
	eventType EventTypeString
	Payload   PhilosopherStartedDiningPayload
}

type PhilosopherStartedDiningPayload struct {
	PhilosopherID int
	ServingsLeft  int
}

func BuildPhilosopherStartedDining(philosopherID int, servingsLeft int) PhilosopherStartedDining {
	return PhilosopherStartedDining{
		eventType: PhilosopherStartedDiningEventType,
		Payload: PhilosopherStartedDiningPayload{
			PhilosopherID: philosopherID,
			ServingsLeft:  servingsLeft,
		},
	}
}

func PhilosopherStartedDiningFromJSON(eventJSON []byte) (PhilosopherStartedDining, error) {
	payload := new(PhilosopherStartedDiningPayload)
	if err := jsoniter.ConfigFastest.Unmarshal(eventJSON, payload); err != nil {
		return PhilosopherStartedDining{}, err
	}

	return PhilosopherStartedDining{
		eventType: PhilosopherStartedDiningEventType,
		Payload:   *payload,
	}, nil
}

func (e PhilosopherStartedDining) EventType() EventTypeString {
	return e.eventType
}

func (e PhilosopherStartedDining) PayloadToJSON() ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(e.Payload)
}
