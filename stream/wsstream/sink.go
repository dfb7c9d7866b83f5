package wsstream

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/c360/prefixmap/errors"
	"github.com/c360/prefixmap/stream"
	"github.com/c360/prefixmap/term"
)

const writeTimeout = 10 * time.Second

// Sink writes prefix events to a WebSocket connection. Writes are
// serialized; the connection itself stays owned by the caller.
type Sink struct {
	conn *websocket.Conn

	mu     sync.Mutex
	closed bool
}

// NewSink writes events to conn
func NewSink(conn *websocket.Conn) *Sink {
	return &Sink{conn: conn}
}

// Send implements stream.Sink
func (s *Sink) Send(ctx context.Context, ev stream.Event) error {
	if ev.Term == nil {
		return errors.WrapInvalid(errors.ErrInvalidData, "Sink", "Send", "validate event")
	}
	data, err := newEnvelope(TypePrefix, PrefixPayload{Label: ev.Label, Term: term.ToWire(ev.Term)})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return stream.ErrClosed
	}
	return s.write(ctx, data)
}

// End sends the end frame. Later sends fail with stream.ErrClosed.
func (s *Sink) End(ctx context.Context) error {
	return s.finish(ctx, TypeEnd, nil)
}

// Fail sends an error frame carrying the text of cause
func (s *Sink) Fail(ctx context.Context, cause error) error {
	p := ErrorPayload{}
	if cause != nil {
		p.Error = cause.Error()
	}
	return s.finish(ctx, TypeError, p)
}

func (s *Sink) finish(ctx context.Context, kind string, payload any) error {
	data, err := newEnvelope(kind, payload)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return stream.ErrClosed
	}
	s.closed = true
	return s.write(ctx, data)
}

func (s *Sink) write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	deadline := time.Now().Add(writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = s.conn.SetWriteDeadline(deadline)

	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.WrapTransient(err, "Sink", "write", "write frame")
	}
	return nil
}
