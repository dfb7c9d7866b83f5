package main

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/prefixmap/prefixmap"
	"github.com/c360/prefixmap/stream/wsstream"
	"github.com/c360/prefixmap/term"
)

func TestExportHandler(t *testing.T) {
	factory := term.NewDataFactory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		entries []prefixmap.Entry
		want    []string
	}{
		{name: "empty registry", want: nil},
		{
			name: "two prefixes",
			entries: []prefixmap.Entry{
				{Prefix: "ex", Namespace: factory.NamedNode("http://example.org/")},
				{Prefix: "ex1", Namespace: factory.NamedNode("http://example.org/1/")},
			},
			want: []string{"ex", "ex1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := prefixmap.New(factory, tt.entries)
			require.NoError(t, err)

			srv := httptest.NewServer(exportHandler(src, logger))
			defer srv.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			conn, _, err := websocket.DefaultDialer.DialContext(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
			require.NoError(t, err)
			defer conn.Close()

			source, err := wsstream.NewSource(conn, factory)
			require.NoError(t, err)

			dst, err := prefixmap.New(factory, nil)
			require.NoError(t, err)
			require.NoError(t, dst.Import(ctx, source))

			assert.Equal(t, tt.want, dst.Prefixes())
			for _, e := range tt.entries {
				got, ok := dst.Get(e.Prefix)
				require.True(t, ok)
				assert.Equal(t, e.Namespace.Value(), got.Value())
			}
		})
	}
}

func TestRun_ServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx, []string{"-listen", "127.0.0.1:0", "serve"}, io.Discard, io.Discard)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}
