package stream

import (
	"context"
	"io"
	"sync"
)

// Pipe is an in-memory stream that is both a Source and a Sink.
// Events are delivered in Send order. Sends never block; the queue grows
// until a receiver drains it.
type Pipe struct {
	mu     sync.Mutex
	queue  []Event
	ended  bool
	err    error
	signal chan struct{}
}

// NewPipe returns an open pipe
func NewPipe() *Pipe {
	return &Pipe{signal: make(chan struct{}, 1)}
}

func (p *Pipe) notify() {
	select {
	case p.signal <- struct{}{}:
	default:
	}
}

// Send queues ev. It returns ErrClosed once the pipe has ended or failed.
func (p *Pipe) Send(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ended || p.err != nil {
		return ErrClosed
	}
	p.queue = append(p.queue, ev)
	p.notify()
	return nil
}

// Recv returns the next queued event. After End it drains the queue and then
// returns io.EOF; after Destroy it returns the destroy error at once.
func (p *Pipe) Recv(ctx context.Context) (Event, error) {
	for {
		p.mu.Lock()
		switch {
		case p.err != nil:
			err := p.err
			p.notify()
			p.mu.Unlock()
			return Event{}, err
		case len(p.queue) > 0:
			ev := p.queue[0]
			p.queue[0] = Event{}
			p.queue = p.queue[1:]
			if len(p.queue) > 0 || p.ended {
				p.notify()
			}
			p.mu.Unlock()
			return ev, nil
		case p.ended:
			p.notify()
			p.mu.Unlock()
			return Event{}, io.EOF
		}
		p.mu.Unlock()

		select {
		case <-p.signal:
		case <-ctx.Done():
			return Event{}, ctx.Err()
		}
	}
}

// End signals end of data. Queued events are still delivered.
func (p *Pipe) End() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err == nil {
		p.ended = true
	}
	p.notify()
}

// Destroy fails the pipe with err, discarding queued events. A nil err is
// reported to receivers as ErrClosed. Only the first failure is kept.
func (p *Pipe) Destroy(err error) {
	if err == nil {
		err = ErrClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err == nil {
		p.err = err
	}
	p.queue = nil
	p.notify()
}

// Err returns the failure passed to Destroy, if any
func (p *Pipe) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// ReadAll drains src until end of data
func ReadAll(ctx context.Context, src Source) ([]Event, error) {
	var events []Event
	for {
		ev, err := src.Recv(ctx)
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
}
