package natsstream

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/c360/prefixmap/errors"
	"github.com/c360/prefixmap/natsclient"
	"github.com/c360/prefixmap/stream"
	"github.com/c360/prefixmap/term"
)

// Source receives prefix events from a NATS subject. It follows the batch of
// the first event it sees and skips messages of other batches or without an
// Rdf-Event header.
type Source struct {
	sub     *nats.Subscription
	factory term.Factory

	recvMu sync.Mutex

	mu    sync.Mutex
	batch string
	done  error

	detachOnce sync.Once
	detachErr  error
}

// Subscribe listens on subject. The subscription is registered with the
// server before Subscribe returns, so every message published afterwards is
// seen.
func Subscribe(client *natsclient.Client, subject string, factory term.Factory) (*Source, error) {
	if factory == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingFactory, "Source", "Subscribe", "factory validation")
	}

	sub, err := client.SubscribeSync(subject)
	if err != nil {
		return nil, errors.Wrap(err, "Source", "Subscribe", "subscribe")
	}
	if err := client.Flush(context.Background()); err != nil {
		_ = sub.Unsubscribe()
		return nil, errors.Wrap(err, "Source", "Subscribe", "register subscription")
	}

	return &Source{sub: sub, factory: factory}, nil
}

// Recv implements stream.Source. Once the batch has ended or failed, Recv
// keeps returning the same result.
func (s *Source) Recv(ctx context.Context) (stream.Event, error) {
	s.recvMu.Lock()
	defer s.recvMu.Unlock()

	if err := s.finished(); err != nil {
		return stream.Event{}, err
	}

	for {
		msg, err := s.sub.NextMsgWithContext(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return stream.Event{}, ctxErr
			}
			return stream.Event{}, s.finish(errors.WrapTransient(
				fmt.Errorf("%w: %w", errors.ErrConnectionLost, err),
				"Source", "Recv", "next message"))
		}

		if !s.accept(msg) {
			continue
		}

		switch msg.Header.Get(HeaderEvent) {
		case EventPrefix:
			ev, err := decodePrefix(s.factory, msg.Data)
			if err != nil {
				return stream.Event{}, s.finish(err)
			}
			return ev, nil
		case EventEnd:
			return stream.Event{}, s.finish(io.EOF)
		default:
			return stream.Event{}, s.finish(&stream.RemoteError{Message: msg.Header.Get(HeaderError)})
		}
	}
}

func (s *Source) finished() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Source) finish(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = err
	return err
}

func (s *Source) accept(msg *nats.Msg) bool {
	if msg.Header == nil {
		return false
	}
	switch msg.Header.Get(HeaderEvent) {
	case EventPrefix, EventEnd, EventError:
	default:
		return false
	}

	batch := msg.Header.Get(HeaderBatch)
	if batch == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.batch == "" {
		s.batch = batch
		return true
	}
	return batch == s.batch
}

// Batch returns the batch id the source follows, empty before the first
// event
func (s *Source) Batch() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batch
}

// Detach implements stream.Detacher by unsubscribing. It is safe to call
// more than once.
func (s *Source) Detach() error {
	s.detachOnce.Do(func() {
		if !s.sub.IsValid() {
			return
		}
		if err := s.sub.Unsubscribe(); err != nil {
			s.detachErr = errors.Wrap(err, "Source", "Detach", "unsubscribe")
		}
	})
	return s.detachErr
}
