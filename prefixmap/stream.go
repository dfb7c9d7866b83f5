package prefixmap

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/c360/prefixmap/errors"
	"github.com/c360/prefixmap/metric"
	"github.com/c360/prefixmap/stream"
)

// Import applies every prefix event from src, in order, until src reports
// end of data. A source failure is returned unchanged; entries applied
// before it stay in place. An event without a namespace term fails the
// import with an invalid-data error. Sources implementing stream.Detacher are
// detached once Import returns.
func (p *PrefixMap) Import(ctx context.Context, src stream.Source) (err error) {
	if d, ok := src.(stream.Detacher); ok {
		defer func() {
			if derr := d.Detach(); derr != nil {
				p.logger.Warn("detach import source", "error", derr)
			}
		}()
	}

	applied := 0
	p.logger.Debug("prefix import started")
	defer func() {
		p.metrics.RecordStreamOperation(metric.DirectionImport, err)
		if err != nil {
			p.logger.Warn("prefix import failed", "applied", applied, "error", err)
			return
		}
		p.logger.Debug("prefix import completed", "applied", applied, "size", p.Size())
	}()

	for {
		ev, recvErr := src.Recv(ctx)
		if stderrors.Is(recvErr, io.EOF) {
			return nil
		}
		if recvErr != nil {
			return recvErr
		}
		if ev.Term == nil {
			return errors.WrapInvalid(
				fmt.Errorf("%w: prefix %q has no namespace", errors.ErrInvalidData, ev.Label),
				"PrefixMap", "Import", "validate event")
		}

		p.Set(ev.Label, ev.Term)
		applied++
		p.metrics.RecordStreamEvent(metric.DirectionImport)
	}
}

// Export sends one prefix event per entry, in insertion order, as the map
// stood when Export was called. It does not end the sink. The first send
// error is returned unchanged.
func (p *PrefixMap) Export(ctx context.Context, sink stream.Sink) (err error) {
	entries := p.Entries()

	sent := 0
	p.logger.Debug("prefix export started", "entries", len(entries))
	defer func() {
		p.metrics.RecordStreamOperation(metric.DirectionExport, err)
		if err != nil {
			p.logger.Warn("prefix export failed", "sent", sent, "error", err)
			return
		}
		p.logger.Debug("prefix export completed", "sent", sent)
	}()

	for _, e := range entries {
		if err := sink.Send(ctx, stream.Event{Label: e.Prefix, Term: e.Namespace}); err != nil {
			return err
		}
		sent++
		p.metrics.RecordStreamEvent(metric.DirectionExport)
	}

	return nil
}
