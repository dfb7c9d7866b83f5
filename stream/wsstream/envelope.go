// Package wsstream carries prefix events over a WebSocket connection.
//
// Each event is one JSON text frame using the envelope
//
//	{"type":"prefix","id":"…","timestamp":1700000000000,"payload":{"label":"ex","term":{"termType":"NamedNode","value":"http://example.org/"}}}
//
// "end" closes the batch and "error" fails it with payload {"error":"…"}.
// A normal close frame from the peer also ends the batch. Frames of other
// types are ignored so control traffic can share the connection.
package wsstream

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/c360/prefixmap/errors"
	"github.com/c360/prefixmap/stream"
	"github.com/c360/prefixmap/term"
)

// Envelope types
const (
	TypePrefix = stream.EventPrefix
	TypeEnd    = "end"
	TypeError  = "error"
)

// Envelope wraps every frame on the connection
type Envelope struct {
	Type      string          `json:"type"`              // Message type
	ID        string          `json:"id"`                // Unique message ID
	Timestamp int64           `json:"timestamp"`         // Unix milliseconds
	Payload   json.RawMessage `json:"payload,omitempty"` // Prefix or error payload
}

// PrefixPayload is the payload of a prefix frame
type PrefixPayload struct {
	Label string    `json:"label"`
	Term  term.Wire `json:"term"`
}

// ErrorPayload is the payload of an error frame
type ErrorPayload struct {
	Error string `json:"error"`
}

func newEnvelope(kind string, payload any) ([]byte, error) {
	env := Envelope{
		Type:      kind,
		ID:        uuid.NewString(),
		Timestamp: time.Now().UnixMilli(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.WrapInvalid(err, "wsstream", "newEnvelope", "marshal payload")
		}
		env.Payload = raw
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, errors.WrapInvalid(err, "wsstream", "newEnvelope", "marshal envelope")
	}
	return data, nil
}

func decodePrefix(factory term.Factory, raw json.RawMessage) (stream.Event, error) {
	var p PrefixPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return stream.Event{}, errors.WrapInvalid(
			fmt.Errorf("%w: %w", errors.ErrParsingFailed, err),
			"wsstream", "decodePrefix", "unmarshal payload")
	}

	t, err := term.FromWire(factory, p.Term)
	if err != nil {
		return stream.Event{}, errors.Wrap(err, "wsstream", "decodePrefix", "decode namespace")
	}
	return stream.Event{Label: p.Label, Term: t}, nil
}
