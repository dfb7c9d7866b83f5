package prefixmap

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/c360/prefixmap/errors"
	"github.com/c360/prefixmap/metric"
	"github.com/c360/prefixmap/stream"
)

type detachingSource struct {
	*stream.Pipe
	detached atomic.Int32
}

func (s *detachingSource) Detach() error {
	s.detached.Add(1)
	return nil
}

type failingSink struct {
	failAfter int
	sent      []stream.Event
}

var errSinkFull = errors.New("sink full")

func (s *failingSink) Send(_ context.Context, ev stream.Event) error {
	if len(s.sent) >= s.failAfter {
		return errSinkFull
	}
	s.sent = append(s.sent, ev)
	return nil
}

func TestImport_AppliesEventsInOrder(t *testing.T) {
	ctx := context.Background()
	p := newMap(t)

	pipe := stream.NewPipe()
	require.NoError(t, pipe.Send(ctx, stream.Event{Label: "ex1", Term: exPrefix1}))
	require.NoError(t, pipe.Send(ctx, stream.Event{Label: "ex2", Term: exPrefix2}))
	require.NoError(t, pipe.Send(ctx, stream.Event{Label: "ex1", Term: exPrefix}))
	pipe.End()

	require.NoError(t, p.Import(ctx, pipe))

	assert.Equal(t, []string{"ex1", "ex2"}, p.Prefixes())
	ns, _ := p.Get("ex1")
	assert.True(t, ns.Equals(exPrefix))
	ns, _ = p.Get("ex2")
	assert.True(t, ns.Equals(exPrefix2))
}

func TestImport_EmptyStream(t *testing.T) {
	p := newMap(t, Entry{Prefix: "ex", Namespace: exPrefix})

	pipe := stream.NewPipe()
	pipe.End()

	require.NoError(t, p.Import(context.Background(), pipe))
	assert.Equal(t, 1, p.Size())
}

func TestImport_ReturnsStreamError(t *testing.T) {
	ctx := context.Background()
	p := newMap(t)

	pipe := stream.NewPipe()
	streamErr := errors.New("test")
	pipe.Destroy(streamErr)

	err := p.Import(ctx, pipe)
	require.Error(t, err)
	assert.Same(t, streamErr, err)
}

func TestImport_KeepsEntriesAppliedBeforeFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p := newMap(t)
	pipe := stream.NewPipe()
	streamErr := errors.New("broken")

	done := make(chan error, 1)
	go func() { done <- p.Import(ctx, pipe) }()

	require.NoError(t, pipe.Send(ctx, stream.Event{Label: "ex1", Term: exPrefix1}))
	require.Eventually(t, func() bool { return p.Has("ex1") }, time.Second, 5*time.Millisecond)
	pipe.Destroy(streamErr)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, streamErr)
	case <-ctx.Done():
		t.Fatal("import did not settle")
	}
	assert.True(t, p.Has("ex1"))
}

func TestImport_RejectsEventWithoutNamespace(t *testing.T) {
	ctx := context.Background()
	m := metric.NewMetrics()
	p, err := New(factory, nil, WithMetrics(m))
	require.NoError(t, err)

	pipe := stream.NewPipe()
	require.NoError(t, pipe.Send(ctx, stream.Event{Label: "ex1", Term: exPrefix1}))
	require.NoError(t, pipe.Send(ctx, stream.Event{Label: "b"}))
	require.NoError(t, pipe.Send(ctx, stream.Event{Label: "ex2", Term: exPrefix2}))
	pipe.End()

	err = p.Import(ctx, pipe)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidData)
	assert.True(t, pkgerrors.IsInvalid(err))

	assert.Equal(t, []string{"ex1"}, p.Prefixes())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StreamEvents.WithLabelValues(metric.DirectionImport)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StreamOperations.WithLabelValues(metric.DirectionImport, metric.OutcomeFailed)))
}

func TestImport_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := newMap(t)
	pipe := stream.NewPipe()

	done := make(chan error, 1)
	go func() { done <- p.Import(ctx, pipe) }()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("import did not settle")
	}
}

func TestImport_DetachesSourceOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("on end", func(t *testing.T) {
		src := &detachingSource{Pipe: stream.NewPipe()}
		require.NoError(t, src.Send(ctx, stream.Event{Label: "ex", Term: exPrefix}))
		src.End()

		require.NoError(t, newMap(t).Import(ctx, src))
		assert.Equal(t, int32(1), src.detached.Load())
	})

	t.Run("on error", func(t *testing.T) {
		src := &detachingSource{Pipe: stream.NewPipe()}
		src.Destroy(errors.New("boom"))

		require.Error(t, newMap(t).Import(ctx, src))
		assert.Equal(t, int32(1), src.detached.Load())
	})
}

func TestExport_EmitsEntriesInOrder(t *testing.T) {
	ctx := context.Background()
	p := newMap(t,
		Entry{Prefix: "ex1", Namespace: exPrefix1},
		Entry{Prefix: "ex2", Namespace: exPrefix2},
	)

	pipe := stream.NewPipe()
	require.NoError(t, p.Export(ctx, pipe))
	pipe.End()

	events, err := stream.ReadAll(ctx, pipe)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "ex1", events[0].Label)
	assert.True(t, events[0].Term.Equals(exPrefix1))
	assert.Equal(t, "ex2", events[1].Label)
	assert.True(t, events[1].Term.Equals(exPrefix2))
}

func TestExport_DoesNotEndSink(t *testing.T) {
	ctx := context.Background()
	p := newMap(t, Entry{Prefix: "ex", Namespace: exPrefix})

	pipe := stream.NewPipe()
	require.NoError(t, p.Export(ctx, pipe))
	assert.NoError(t, pipe.Send(ctx, stream.Event{Label: "extra", Term: exPrefix1}))
}

func TestExport_EmptyMap(t *testing.T) {
	sink := &failingSink{failAfter: 0}
	require.NoError(t, newMap(t).Export(context.Background(), sink))
	assert.Empty(t, sink.sent)
}

func TestExport_ReturnsSinkError(t *testing.T) {
	ctx := context.Background()
	p := newMap(t,
		Entry{Prefix: "a", Namespace: exPrefix},
		Entry{Prefix: "b", Namespace: exPrefix1},
		Entry{Prefix: "c", Namespace: exPrefix2},
	)

	sink := &failingSink{failAfter: 1}
	err := p.Export(ctx, sink)
	assert.ErrorIs(t, err, errSinkFull)
	require.Len(t, sink.sent, 1)
	assert.Equal(t, "a", sink.sent[0].Label)
}

func TestExport_ToEndedPipeFails(t *testing.T) {
	ctx := context.Background()
	p := newMap(t, Entry{Prefix: "ex", Namespace: exPrefix})

	pipe := stream.NewPipe()
	pipe.End()

	assert.ErrorIs(t, p.Export(ctx, pipe), stream.ErrClosed)
}

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newMap(t,
		Entry{Prefix: "ex", Namespace: exPrefix},
		Entry{Prefix: "ex1", Namespace: exPrefix1},
		Entry{Prefix: "", Namespace: exPrefix2},
	)

	pipe := stream.NewPipe()
	require.NoError(t, src.Export(ctx, pipe))
	pipe.End()

	dst := newMap(t)
	require.NoError(t, dst.Import(ctx, pipe))
	assert.Equal(t, src.Entries(), dst.Entries())
}

func TestStreamOperations_RecordMetrics(t *testing.T) {
	ctx := context.Background()
	m := metric.NewMetrics()
	p, err := New(factory, []Entry{
		{Prefix: "a", Namespace: exPrefix},
		{Prefix: "b", Namespace: exPrefix1},
	}, WithMetrics(m))
	require.NoError(t, err)

	pipe := stream.NewPipe()
	require.NoError(t, p.Export(ctx, pipe))
	pipe.End()
	require.NoError(t, p.Import(ctx, pipe))

	failed := stream.NewPipe()
	failed.Destroy(errors.New("boom"))
	require.Error(t, p.Import(ctx, failed))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StreamEvents.WithLabelValues(metric.DirectionExport)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.StreamEvents.WithLabelValues(metric.DirectionImport)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StreamOperations.WithLabelValues(metric.DirectionExport, metric.OutcomeCompleted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StreamOperations.WithLabelValues(metric.DirectionImport, metric.OutcomeCompleted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StreamOperations.WithLabelValues(metric.DirectionImport, metric.OutcomeFailed)))
}
