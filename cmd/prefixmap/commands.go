package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/c360/prefixmap/config"
	"github.com/c360/prefixmap/environment"
	"github.com/c360/prefixmap/errors"
	"github.com/c360/prefixmap/health"
	"github.com/c360/prefixmap/metric"
	"github.com/c360/prefixmap/natsclient"
	"github.com/c360/prefixmap/pkg/retry"
	"github.com/c360/prefixmap/prefixmap"
	"github.com/c360/prefixmap/stream/natsstream"
	"github.com/c360/prefixmap/term"
)

const (
	connectionTimeout = 10 * time.Second
	closeTimeout      = 5 * time.Second

	// missing is printed when resolve or shrink finds no match
	missing = "-"
)

type app struct {
	cli     *CLIConfig
	cfg     *config.Config
	metrics *metric.Metrics
	monitor *health.Monitor
	logger  *slog.Logger
	out     io.Writer

	env      *environment.Environment
	prefixes *prefixmap.PrefixMap
}

func newApp(cli *CLIConfig, cfg *config.Config, metrics *metric.Metrics, monitor *health.Monitor, logger *slog.Logger, out io.Writer) (*app, error) {
	env, err := newEnvironment(cfg, metrics, logger)
	if err != nil {
		return nil, err
	}
	monitor.UpdateHealthy("prefixes", fmt.Sprintf("%d prefixes loaded", prefixmap.Prefixes(env).Size()))

	return &app{
		cli:      cli,
		cfg:      cfg,
		metrics:  metrics,
		monitor:  monitor,
		logger:   logger,
		out:      out,
		env:      env,
		prefixes: prefixmap.Prefixes(env),
	}, nil
}

func (a *app) execute(ctx context.Context) error {
	switch a.cli.Command {
	case "list":
		return a.list()
	case "resolve":
		return a.lookup(a.prefixes.Resolve)
	case "shrink":
		return a.lookup(a.prefixes.Shrink)
	case "publish":
		return a.publish(ctx)
	case "subscribe":
		return a.subscribe(ctx)
	case "serve":
		return a.serve(ctx)
	}
	return fmt.Errorf("unknown command: %s", a.cli.Command)
}

func (a *app) list() error {
	for prefix, namespace := range a.prefixes.All() {
		if _, err := fmt.Fprintf(a.out, "%s\t%s\n", prefix, namespace.Value()); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) lookup(fn func(term.Term) term.Term) error {
	for _, arg := range a.cli.Args {
		result := missing
		if t := fn(a.env.NamedNode(arg)); t != nil {
			result = t.Value()
		}
		if _, err := fmt.Fprintln(a.out, result); err != nil {
			return err
		}
	}
	return nil
}

// publish exports every prefix as one batch followed by the end marker
func (a *app) publish(ctx context.Context) error {
	client, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer a.closeClient(ctx, client)

	sink := natsstream.NewSink(client, a.cfg.NATS.Subject)
	if err := a.prefixes.Export(ctx, sink); err != nil {
		if failErr := sink.Fail(context.WithoutCancel(ctx), err); failErr != nil {
			a.logger.Warn("Failed to publish error marker", "error", failErr)
		}
		return fmt.Errorf("export prefixes: %w", err)
	}
	if err := sink.End(ctx); err != nil {
		return fmt.Errorf("end batch: %w", err)
	}

	a.logger.Info("Published prefixes",
		"subject", a.cfg.NATS.Subject,
		"batch", sink.Batch(),
		"count", a.prefixes.Size())
	return nil
}

// subscribe imports the first batch seen on the subject and lists the result
func (a *app) subscribe(ctx context.Context) error {
	client, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer a.closeClient(ctx, client)

	src, err := natsstream.Subscribe(client, a.cfg.NATS.Subject, a.env)
	if err != nil {
		return err
	}

	if a.cli.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cli.Timeout)
		defer cancel()
	}

	a.logger.Info("Waiting for prefixes", "subject", a.cfg.NATS.Subject)
	if err := a.prefixes.Import(ctx, src); err != nil {
		return fmt.Errorf("import prefixes: %w", err)
	}
	a.logger.Info("Imported prefixes", "batch", src.Batch(), "count", a.prefixes.Size())

	return a.list()
}

// connect dials NATS, retrying transient failures with backoff
func (a *app) connect(ctx context.Context) (*natsclient.Client, error) {
	opts := []natsclient.ClientOption{
		natsclient.WithLogger(natsclient.NewSlogLogger(a.logger)),
		natsclient.WithMetrics(a.metrics),
		natsclient.WithHealthChangeCallback(a.monitor.Tracker("nats")),
		natsclient.WithName(a.cfg.NATS.ClientName),
		natsclient.WithTimeout(a.cfg.NATS.Timeout.Std()),
	}
	if a.cfg.NATS.MaxReconnects != 0 {
		opts = append(opts, natsclient.WithMaxReconnects(a.cfg.NATS.MaxReconnects))
	}
	if a.cfg.NATS.Token != "" {
		opts = append(opts, natsclient.WithToken(a.cfg.NATS.Token))
	}
	if d := a.cfg.NATS.ReconnectWait.Std(); d > 0 {
		opts = append(opts, natsclient.WithReconnectWait(d))
	}
	if d := a.cfg.NATS.PingInterval.Std(); d > 0 {
		opts = append(opts, natsclient.WithPingInterval(d))
	}
	if d := a.cfg.NATS.DrainTimeout.Std(); d > 0 {
		opts = append(opts, natsclient.WithDrainTimeout(d))
	}

	client, err := natsclient.NewClient(a.cfg.NATS.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}

	err = retry.Do(ctx, errors.DefaultRetryConfig().ToRetryConfig(), func() error {
		err := client.Connect(ctx)
		if err != nil && !errors.IsTransient(err) {
			return retry.NonRetryable(err)
		}
		return err
	})
	if err != nil {
		a.monitor.Update("nats", health.FromError("nats", err))
		return nil, fmt.Errorf("connect to NATS at %s: %w", a.cfg.NATS.URL, err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()
	if err := client.WaitForConnection(waitCtx); err != nil {
		a.closeClient(ctx, client)
		return nil, err
	}
	return client, nil
}

func (a *app) closeClient(ctx context.Context, client *natsclient.Client) {
	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
	defer cancel()
	if err := client.Close(closeCtx); err != nil {
		a.logger.Warn("Failed to close NATS client", "error", err)
	}
}
