package events

import (
	"errors"
)

type EventTypeString = string
type Events = []Event

// Event is a state-change record produced by the simulation core.
// Every event carries the identity of its source (a fork or a philosopher)
// in its payload and can serialize that payload to JSON.
type Event interface {
	EventType() EventTypeString
	PayloadToJSON() ([]byte, error)
}

var ErrUnknownEventType = errors.New("unknown event type")

var errUnmarshalling = errors.New("unmarshalling event from json failed")

// EventFromJSON re-hydrates a domain event from its type string and payload,
// for consumers reading journaled events back.
func EventFromJSON(eventType EventTypeString, payload []byte) (Event, error) {
	switch eventType {
	case ForkPickedUpEventType:
		event, unmarshallingErr := ForkPickedUpFromJSON(payload)
		if unmarshallingErr != nil {
			return nil, errors.Join(errUnmarshalling, unmarshallingErr)
		}

		return event, nil

	case ForkPutDownEventType:
		event, unmarshallingErr := ForkPutDownFromJSON(payload)
		if unmarshallingErr != nil {
			return nil, errors.Join(errUnmarshalling, unmarshallingErr)
		}

		return event, nil

	case PhilosopherStartedDiningEventType:
		event, unmarshallingErr := PhilosopherStartedDiningFromJSON(payload)
		if unmarshallingErr != nil {
			return nil, errors.Join(errUnmarshalling, unmarshallingErr)
		}

		return event, nil

	case PhilosopherStoppedDiningEventType:
		event, unmarshallingErr := PhilosopherStoppedDiningFromJSON(payload)
		if unmarshallingErr != nil {
			return nil, errors.Join(errUnmarshalling, unmarshallingErr)
		}

		return event, nil

	case PhilosopherLeftTableEventType:
		event, unmarshallingErr := PhilosopherLeftTableFromJSON(payload)
		if unmarshallingErr != nil {
			return nil, errors.Join(errUnmarshalling, unmarshallingErr)
		}

		return event, nil

	default:
		return nil, ErrUnknownEventType
	}
}
