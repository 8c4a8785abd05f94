package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/mcoot/boggle-go/internal/model"
)

// Publisher delivers match events to interested parties outside the engine.
// Publish is never called while the engine holds its lock.
type Publisher interface {
	Publish(ctx context.Context, events ...model.Event) error
	Close() error
}

// Nop discards every event
type Nop struct{}

func (Nop) Publish(ctx context.Context, events ...model.Event) error { return nil }
func (Nop) Close() error                                             { return nil }

var _ Publisher = Nop{}

// Envelope is the wire form of an event
type Envelope struct {
	ID        string          `json:"id"`
	Type      model.EventType `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	MatchID   model.MatchID   `json:"match_id,omitempty"`
	Player    string          `json:"player,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope wraps an event with a fresh sortable id
func NewEnvelope(e model.Event) (*Envelope, error) {
	env := &Envelope{
		ID:        ksuid.New().String(),
		Type:      e.Type,
		Timestamp: e.Timestamp.UTC(),
		MatchID:   e.MatchID,
		Player:    e.Player,
	}
	if e.Payload != nil {
		payload, err := json.Marshal(e.Payload)
		if err != nil {
			return nil, err
		}
		env.Payload = payload
	}
	return env, nil
}

// Encode marshals an event into its wire form
func Encode(e model.Event) ([]byte, error) {
	env, err := NewEnvelope(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// Decode parses the wire form of an event. The payload is left raw.
func Decode(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
