package events

import (
	jsoniter "github.com/json-iterator/go"
)

const ForkPickedUpEventType = "ForkPickedUp"

// ForkPickedUp signals that a fork was exclusively acquired by a philosopher.
type ForkPickedUp struct {
	eventType EventTypeString
	Payload   ForkPickedUpPayload
}

type ForkPickedUpPayload struct {
	ForkID        int
	PhilosopherID int
}

func BuildForkPickedUp(forkID int, philosopherID int) ForkPickedUp {
	return ForkPickedUp{
		eventType: ForkPickedUpEventType,
		Payload: ForkPickedUpPayload{
			ForkID:        forkID,
			PhilosopherID: philosopherID,
		},
	}
}

func ForkPickedUpFromJSON(eventJSON []byte) (ForkPickedUp, error) {
	payload := new(ForkPickedUpPayload)
	if err := jsoniter.ConfigFastest.Unmarshal(eventJSON, payload); err != nil {
		return ForkPickedUp{}, err
	}

	return ForkPickedUp{
		eventType: ForkPickedUpEventType,
		Payload:   *payload,
	}, nil
}

func (e ForkPickedUp) EventType() EventTypeString {
	return e.eventType
}

func (e ForkPickedUp) PayloadToJSON() ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(e.Payload)
}
