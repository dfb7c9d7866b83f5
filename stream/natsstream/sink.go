package natsstream

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/c360/prefixmap/errors"
	"github.com/c360/prefixmap/natsclient"
	"github.com/c360/prefixmap/stream"
)

// Sink publishes prefix events to a NATS subject as one batch
type Sink struct {
	client  *natsclient.Client
	subject string
	batch   string

	mu     sync.Mutex
	closed bool
}

// NewSink returns a sink publishing to subject under a fresh batch id
func NewSink(client *natsclient.Client, subject string) *Sink {
	return &Sink{client: client, subject: subject, batch: uuid.NewString()}
}

// Batch returns the id stamped on every message of this sink
func (s *Sink) Batch() string {
	return s.batch
}

// Send implements stream.Sink
func (s *Sink) Send(ctx context.Context, ev stream.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return stream.ErrClosed
	}

	msg, err := encodePrefix(s.subject, s.batch, ev)
	if err != nil {
		return err
	}
	if err := s.client.PublishMsg(ctx, msg); err != nil {
		return errors.Wrap(err, "Sink", "Send", "publish prefix")
	}
	return nil
}

// End publishes the end marker and flushes the connection. Later sends fail
// with stream.ErrClosed.
func (s *Sink) End(ctx context.Context) error {
	return s.finish(ctx, controlMsg(s.subject, s.batch, EventEnd))
}

// Fail publishes the error marker carrying the text of cause
func (s *Sink) Fail(ctx context.Context, cause error) error {
	msg := controlMsg(s.subject, s.batch, EventError)
	if cause != nil {
		msg.Header.Set(HeaderError, cause.Error())
	}
	return s.finish(ctx, msg)
}

func (s *Sink) finish(ctx context.Context, msg *nats.Msg) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return stream.ErrClosed
	}
	s.closed = true

	if err := s.client.PublishMsg(ctx, msg); err != nil {
		return errors.Wrap(err, "Sink", "finish", "publish marker")
	}
	if err := s.client.Flush(ctx); err != nil {
		return errors.Wrap(err, "Sink", "finish", "flush")
	}
	return nil
}
