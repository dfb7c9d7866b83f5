package natsstream

import (
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/prefixmap/environment"
	pkgerrors "github.com/c360/prefixmap/errors"
	"github.com/c360/prefixmap/prefixmap"
	"github.com/c360/prefixmap/stream"
	"github.com/c360/prefixmap/term"
)

var factory = term.NewDataFactory()

func TestEncodeDecodePrefix(t *testing.T) {
	tests := []struct {
		name string
		ev   stream.Event
	}{
		{"named node", stream.Event{Label: "ex", Term: factory.NamedNode("http://example.org/")}},
		{"empty label", stream.Event{Label: "", Term: factory.NamedNode("urn:x:")}},
		{"blank node", stream.Event{Label: "b", Term: factory.BlankNode("b0")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := encodePrefix("prefixes", "batch-1", tt.ev)
			require.NoError(t, err)
			assert.Equal(t, "prefixes", msg.Subject)
			assert.Equal(t, EventPrefix, msg.Header.Get(HeaderEvent))
			assert.Equal(t, "batch-1", msg.Header.Get(HeaderBatch))

			got, err := decodePrefix(factory, msg.Data)
			require.NoError(t, err)
			assert.Equal(t, tt.ev.Label, got.Label)
			assert.True(t, tt.ev.Term.Equals(got.Term))
		})
	}
}

func TestEncodePrefix_RejectsMissingTerm(t *testing.T) {
	_, err := encodePrefix("prefixes", "b", stream.Event{Label: "ex"})
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidData)
}

func TestDecodePrefix_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"not json", `{`, pkgerrors.ErrParsingFailed},
		{"literal namespace", `{"label":"ex","term":{"termType":"Literal","value":"x"}}`, pkgerrors.ErrInvalidData},
		{"unknown term type", `{"label":"ex","term":{"termType":"Quad","value":"x"}}`, pkgerrors.ErrInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodePrefix(factory, []byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, pkgerrors.IsInvalid(err))
		})
	}
}

func TestSource_AcceptFollowsFirstBatch(t *testing.T) {
	s := &Source{}

	noHeader := &nats.Msg{Subject: "prefixes"}
	assert.False(t, s.accept(noHeader))

	other := controlMsg("prefixes", "a", "heartbeat")
	assert.False(t, s.accept(other))
	assert.Empty(t, s.Batch())

	assert.True(t, s.accept(controlMsg("prefixes", "a", EventPrefix)))
	assert.Equal(t, "a", s.Batch())

	assert.False(t, s.accept(controlMsg("prefixes", "b", EventPrefix)))
	assert.False(t, s.accept(controlMsg("prefixes", "b", EventEnd)))
	assert.True(t, s.accept(controlMsg("prefixes", "a", EventEnd)))
}

func TestSource_AcceptSkipsMissingBatch(t *testing.T) {
	s := &Source{}

	assert.False(t, s.accept(controlMsg("prefixes", "", EventPrefix)))
	assert.Empty(t, s.Batch())

	assert.True(t, s.accept(controlMsg("prefixes", "a", EventPrefix)))
	assert.False(t, s.accept(controlMsg("prefixes", "", EventPrefix)))
	assert.False(t, s.accept(controlMsg("prefixes", "b", EventPrefix)))
	assert.Equal(t, "a", s.Batch())
}

// namedOnlyFactory builds named nodes and nothing else
type namedOnlyFactory struct{}

func (namedOnlyFactory) NamedNode(value string) term.Term {
	return factory.NamedNode(value)
}

func TestDecodePrefix_BlankNodeWithoutBlankNodeSupport(t *testing.T) {
	env, err := environment.New(namedOnlyFactory{}, prefixmap.Module{})
	require.NoError(t, err)

	msg, err := encodePrefix("prefixes", "batch-1", stream.Event{Label: "b", Term: factory.BlankNode("b0")})
	require.NoError(t, err)

	_, err = decodePrefix(env, msg.Data)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidData)
	assert.True(t, pkgerrors.IsInvalid(err))
}
