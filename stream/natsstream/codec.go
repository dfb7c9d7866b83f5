// Package natsstream carries prefix events over NATS core subjects.
//
// Every event is one message on the subject. The Rdf-Event header names the
// event kind: "prefix" messages carry a JSON body with the label and the
// namespace term, "end" closes the batch and "error" fails it with the text
// in the Rdf-Error header. A Sink stamps its messages with an Rdf-Batch id so
// a Source can follow a single producer on a shared subject.
package natsstream

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/c360/prefixmap/errors"
	"github.com/c360/prefixmap/stream"
	"github.com/c360/prefixmap/term"
)

// Header names
const (
	HeaderEvent = "Rdf-Event"
	HeaderBatch = "Rdf-Batch"
	HeaderError = "Rdf-Error"
)

// Event kinds carried in HeaderEvent
const (
	EventPrefix = stream.EventPrefix
	EventEnd    = "end"
	EventError  = "error"
)

type prefixBody struct {
	Label string    `json:"label"`
	Term  term.Wire `json:"term"`
}

func encodePrefix(subject, batch string, ev stream.Event) (*nats.Msg, error) {
	if ev.Term == nil {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: prefix %q has no namespace", errors.ErrInvalidData, ev.Label),
			"natsstream", "encodePrefix", "validate event")
	}

	data, err := json.Marshal(prefixBody{Label: ev.Label, Term: term.ToWire(ev.Term)})
	if err != nil {
		return nil, errors.WrapInvalid(err, "natsstream", "encodePrefix", "marshal event")
	}

	msg := controlMsg(subject, batch, EventPrefix)
	msg.Data = data
	return msg, nil
}

func controlMsg(subject, batch, event string) *nats.Msg {
	msg := nats.NewMsg(subject)
	msg.Header.Set(HeaderEvent, event)
	msg.Header.Set(HeaderBatch, batch)
	return msg
}

func decodePrefix(factory term.Factory, data []byte) (stream.Event, error) {
	var body prefixBody
	if err := json.Unmarshal(data, &body); err != nil {
		return stream.Event{}, errors.WrapInvalid(
			fmt.Errorf("%w: %w", errors.ErrParsingFailed, err),
			"natsstream", "decodePrefix", "unmarshal event")
	}

	t, err := term.FromWire(factory, body.Term)
	if err != nil {
		return stream.Event{}, errors.Wrap(err, "natsstream", "decodePrefix", "decode namespace")
	}

	return stream.Event{Label: body.Label, Term: t}, nil
}
