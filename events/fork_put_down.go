package events

import (
	jsoniter "github.com/json-iterator/go"
)

const ForkPutDownEventType = "ForkPutDown"

// ForkPutDown signals that a philosopher returned a fork to the table.
type ForkPutDown struct {
	eventType EventTypeString
	Payload   ForkPutDownPayload
}

type ForkPutDownPayload struct {
	ForkID        int
	PhilosopherID int
}

func BuildForkPutDown(forkID int, philosopherID int) ForkPutDown {
	return ForkPutDown{
		eventType: ForkPutDownEventType,
		Payload: ForkPutDownPayload{
			ForkID:        forkID,
			PhilosopherID: philosopherID,
		},
	}
}

func ForkPutDownFromJSON(eventJSON []byte) (ForkPutDown, error) {
	payload := new(ForkPutDownPayload)
	if err := jsoniter.ConfigFastest.Unmarshal(eventJSON, payload); err != nil {
		return ForkPutDown{}, err
	}

	return ForkPutDown{
		eventType: ForkPutDownEventType,
		Payload:   *payload,
	}, nil
}

func (e ForkPutDown) EventType() EventTypeString {
	return e.eventType
}

func (e ForkPutDown) PayloadToJSON() ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(e.Payload)
}
