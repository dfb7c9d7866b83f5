package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/c360/prefixmap/prefixmap"
	"github.com/c360/prefixmap/stream/wsstream"
)

const readHeaderTimeout = 5 * time.Second

// exportHandler upgrades each request and streams one batch of prefixes
func exportHandler(prefixes *prefixmap.PrefixMap, logger *slog.Logger) http.Handler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("WebSocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		defer conn.Close()

		ctx := r.Context()
		sink := wsstream.NewSink(conn)
		if err := prefixes.Export(ctx, sink); err != nil {
			if failErr := sink.Fail(context.WithoutCancel(ctx), err); failErr != nil {
				logger.Warn("Failed to send error marker", "remote", r.RemoteAddr, "error", failErr)
			}
			logger.Error("Export over WebSocket failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		if err := sink.End(ctx); err != nil {
			logger.Warn("Failed to end batch", "remote", r.RemoteAddr, "error", err)
			return
		}
		logger.Debug("Served prefixes", "remote", r.RemoteAddr, "count", prefixes.Size())
	})
}

// serve exports the registry to every WebSocket client until ctx is done
func (a *app) serve(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/prefixes", exportHandler(a.prefixes, a.logger))

	server := &http.Server{
		Addr:              a.cli.Listen,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	a.monitor.UpdateHealthy("websocket", "listening on "+a.cli.Listen)
	a.logger.Info("Serving prefixes", "address", a.cli.Listen, "path", "/prefixes")

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve prefixes: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
