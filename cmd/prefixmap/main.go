// Package main implements the prefixmap command, a CURIE prefix registry
// that expands and compacts IRIs and shares its prefixes over NATS.
package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/c360/prefixmap/config"
	"github.com/c360/prefixmap/environment"
	"github.com/c360/prefixmap/health"
	"github.com/c360/prefixmap/metric"
	"github.com/c360/prefixmap/prefixmap"
	"github.com/c360/prefixmap/term"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "prefixmap"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		slog.Error("Command failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cliCfg, err := parseFlags(args, stderr)
	if stderrors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		_, _ = fmt.Fprintf(stdout, "%s version %s\n", appName, Version)
		return nil
	}

	cfg, err := initializeConfiguration(cliCfg)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log.Level, cfg.Log.Format, stderr)
	slog.SetDefault(logger)
	logger.Debug("Configuration loaded", "config_path", cliCfg.ConfigPath, "config", cfg.String())

	registry := metric.NewMetricsRegistry()
	monitor := health.NewMonitor(appName)
	if cfg.Metrics.Port > 0 {
		stopMetrics := startMetricsServer(cfg, registry, monitor, logger)
		defer stopMetrics()
	}

	a, err := newApp(cliCfg, cfg, registry.CoreMetrics(), monitor, logger, stdout)
	if err != nil {
		return err
	}
	return a.execute(ctx)
}

// initializeConfiguration loads the config file and applies flag overrides
func initializeConfiguration(cliCfg *CLIConfig) (*config.Config, error) {
	cfg, err := config.Load(cliCfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cliCfg.LogLevel != "" {
		cfg.Log.Level = cliCfg.LogLevel
	}
	if cliCfg.LogFormat != "" {
		cfg.Log.Format = cliCfg.LogFormat
	}
	return cfg, nil
}

func startMetricsServer(cfg *config.Config, registry *metric.MetricsRegistry, monitor *health.Monitor, logger *slog.Logger) func() {
	server := metric.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, registry)
	server.SetHealthHandler(monitor.Handler())
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Metrics server failed", "error", err)
		}
	}()
	logger.Info("Metrics server started", "address", server.Address())

	return func() {
		if err := server.Stop(); err != nil {
			logger.Warn("Failed to stop metrics server", "error", err)
		}
	}
}

// newEnvironment installs the prefix map module and seeds it from cfg
func newEnvironment(cfg *config.Config, metrics *metric.Metrics, logger *slog.Logger) (*environment.Environment, error) {
	env, err := environment.New(term.NewDataFactory(), prefixmap.Module{
		Logger:  logger,
		Metrics: metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("create environment: %w", err)
	}

	prefixes := prefixmap.Prefixes(env)
	for _, e := range cfg.Entries(env) {
		prefixes.Set(e.Prefix, e.Namespace)
	}
	return env, nil
}
