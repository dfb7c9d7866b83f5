package wsstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/c360/prefixmap/errors"
	"github.com/c360/prefixmap/stream"
	"github.com/c360/prefixmap/term"
)

const closeTimeout = 5 * time.Second

// Source reads prefix events from a WebSocket connection
type Source struct {
	conn    *websocket.Conn
	factory term.Factory

	mu   sync.Mutex
	done error

	detachOnce sync.Once
	detachErr  error
}

// NewSource reads events from conn. The source owns the read side of conn
// and closes it on Detach.
func NewSource(conn *websocket.Conn, factory term.Factory) (*Source, error) {
	if factory == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingFactory, "Source", "NewSource", "factory validation")
	}
	return &Source{conn: conn, factory: factory}, nil
}

// Recv implements stream.Source. Cancelling ctx interrupts a pending read;
// the connection cannot be read from afterwards.
func (s *Source) Recv(ctx context.Context) (stream.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done != nil {
		return stream.Event{}, s.done
	}

	// a cancelled earlier Recv may have left the deadline in the past
	_ = s.conn.SetReadDeadline(time.Time{})
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				s.done = ctxErr
				return stream.Event{}, ctxErr
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				s.done = io.EOF
				return stream.Event{}, io.EOF
			}
			s.done = errors.WrapTransient(
				fmt.Errorf("%w: %w", errors.ErrConnectionLost, err),
				"Source", "Recv", "read frame")
			return stream.Event{}, s.done
		}

		if msgType != websocket.TextMessage {
			continue
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.done = errors.WrapInvalid(
				fmt.Errorf("%w: %w", errors.ErrParsingFailed, err),
				"Source", "Recv", "unmarshal envelope")
			return stream.Event{}, s.done
		}

		switch env.Type {
		case TypePrefix:
			ev, err := decodePrefix(s.factory, env.Payload)
			if err != nil {
				s.done = err
				return stream.Event{}, err
			}
			return ev, nil
		case TypeEnd:
			s.done = io.EOF
			return stream.Event{}, io.EOF
		case TypeError:
			var p ErrorPayload
			_ = json.Unmarshal(env.Payload, &p)
			s.done = &stream.RemoteError{Message: p.Error}
			return stream.Event{}, s.done
		}
	}
}

// Detach implements stream.Detacher. It sends a normal-closure frame and
// closes the connection; later calls return the first result.
func (s *Source) Detach() error {
	s.detachOnce.Do(func() {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeTimeout))
		if err := s.conn.Close(); err != nil {
			s.detachErr = errors.Wrap(err, "Source", "Detach", "close connection")
		}
	})
	return s.detachErr
}
