package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Action is the kind of change applied to an entity
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event describes a committed change to one record
type Event struct {
	Type       string          `json:"type"`
	Entity     string          `json:"entity"`
	EntityID   int             `json:"entity_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// Type builds the routing name of an event, e.g. "job.created"
func Type(entity string, action Action) string {
	return entity + "." + string(action)
}

// New creates an event carrying data encoded as JSON. data may be nil.
func New(entity string, action Action, id int, data any, at time.Time) (Event, error) {
	evt := Event{
		Type:       Type(entity, action),
		Entity:     entity,
		EntityID:   id,
		OccurredAt: at.UTC(),
	}

	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return Event{}, fmt.Errorf("failed to marshal event data: %w", err)
		}
		evt.Data = raw
	}

	return evt, nil
}

// Decode parses an event from its wire form
func Decode(body []byte) (Event, error) {
	var evt Event
	if err := json.Unmarshal(body, &evt); err != nil {
		return Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	if evt.Type == "" {
		return Event{}, fmt.Errorf("failed to decode event: missing type")
	}
	return evt, nil
}

// Publisher delivers events to interested consumers
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// NopPublisher discards every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
