// Package stream defines the prefix event protocol shared by registry
// import/export and the transports.
//
// A Source yields prefix events in emission order and terminates with
// io.EOF (end of data) or any other error (stream failure). A Sink accepts
// prefix events. Transports that hold a listener on an external system
// implement Detacher so the consumer can release it once it is done.
package stream

import (
	"context"
	"fmt"

	"github.com/c360/prefixmap/errors"
	"github.com/c360/prefixmap/term"
)

// EventPrefix is the protocol name of a prefix event
const EventPrefix = "prefix"

// ErrClosed is returned when sending to a stream that has ended or failed
var ErrClosed = errors.ErrStreamClosed

// Event carries one prefix declaration
type Event struct {
	Label string
	Term  term.Term
}

// Source is a stream of prefix events
type Source interface {
	// Recv blocks until the next event. It returns io.EOF at end of data.
	Recv(ctx context.Context) (Event, error)
}

// Sink accepts prefix events
type Sink interface {
	Send(ctx context.Context, ev Event) error
}

// Detacher releases a listener a Source holds on an external transport.
// Detach must be safe to call more than once.
type Detacher interface {
	Detach() error
}

// RemoteError is a failure reported by the producing side of a transport
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote stream error: %s", e.Message)
}

// Unwrap lets errors.Is match ErrStreamFailed
func (e *RemoteError) Unwrap() error {
	return errors.ErrStreamFailed
}
