package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"time"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	LogLevel    string
	LogFormat   string
	Timeout     time.Duration
	Listen      string
	ShowVersion bool

	Command string
	Args    []string
}

func parseFlags(args []string, output io.Writer) (*CLIConfig, error) {
	cfg := &CLIConfig{}
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(output)

	// Define flags with environment variable fallback
	fs.StringVar(&cfg.ConfigPath, "config",
		getEnv("PREFIXMAP_CONFIG", ""),
		"Path to configuration file, JSON or YAML (env: PREFIXMAP_CONFIG)")

	fs.StringVar(&cfg.ConfigPath, "c",
		getEnv("PREFIXMAP_CONFIG", ""),
		"Path to configuration file, JSON or YAML (env: PREFIXMAP_CONFIG)")

	fs.StringVar(&cfg.LogLevel, "log-level",
		getEnv("PREFIXMAP_LOG_LEVEL", ""),
		"Log level: debug, info, warn, error; overrides the config file (env: PREFIXMAP_LOG_LEVEL)")

	fs.StringVar(&cfg.LogFormat, "log-format",
		getEnv("PREFIXMAP_LOG_FORMAT", ""),
		"Log format: json, text; overrides the config file (env: PREFIXMAP_LOG_FORMAT)")

	fs.DurationVar(&cfg.Timeout, "timeout",
		getEnvDuration("PREFIXMAP_TIMEOUT", 0),
		"Stop subscribe after this long, 0 waits for the end marker (env: PREFIXMAP_TIMEOUT)")

	fs.StringVar(&cfg.Listen, "listen",
		getEnv("PREFIXMAP_LISTEN", ":8090"),
		"Address serve listens on for WebSocket clients (env: PREFIXMAP_LISTEN)")

	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")

	// -h and -help print this and make Parse return flag.ErrHelp
	fs.Usage = func() {
		printDetailedHelp(output, fs)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if rest := fs.Args(); len(rest) > 0 {
		cfg.Command = rest[0]
		cfg.Args = rest[1:]
	}
	return cfg, nil
}

var commands = []string{"list", "resolve", "shrink", "publish", "subscribe", "serve"}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion {
		return nil
	}

	if cfg.Command == "" {
		return fmt.Errorf("missing command, expected one of %v", commands)
	}
	if !slices.Contains(commands, cfg.Command) {
		return fmt.Errorf("unknown command: %s", cfg.Command)
	}
	if (cfg.Command == "resolve" || cfg.Command == "shrink") && len(cfg.Args) == 0 {
		return fmt.Errorf("%s needs at least one argument", cfg.Command)
	}

	if cfg.LogLevel != "" && !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	if cfg.LogFormat != "" && !slices.Contains([]string{"json", "text"}, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}
	if cfg.Command == "serve" && cfg.Listen == "" {
		return fmt.Errorf("serve needs a listen address")
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("invalid timeout: %s", cfg.Timeout)
	}

	return nil
}

func printDetailedHelp(w io.Writer, fs *flag.FlagSet) {
	_, _ = fmt.Fprintf(w, `%s - CURIE prefix registry

Usage: %s [options] <command> [args]

Commands:
  list               Print every registered prefix and namespace
  resolve CURIE...   Expand compact IRIs, '-' when no prefix matches
  shrink IRI...      Compact full IRIs, '-' when no namespace matches
  publish            Export the configured prefixes to the NATS subject
  subscribe          Import one published batch from the NATS subject
  serve              Stream the prefixes to WebSocket clients at /prefixes

Options:
`, appName, appName)
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(w, `
Examples:
  # Expand a CURIE using the standard vocabularies
  %s resolve rdf:type

  # Share prefixes from a config file
  %s --config=prefixes.yaml publish

  # Receive them elsewhere
  export PREFIXMAP_NATS_URL=nats://broker:4222
  %s --timeout=30s subscribe

Version: %s
Build: %s
`, appName, appName, appName, Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
