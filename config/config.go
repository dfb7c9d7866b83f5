package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/c360/prefixmap/errors"
	"github.com/c360/prefixmap/prefixmap"
	"github.com/c360/prefixmap/term"
	"github.com/c360/prefixmap/vocabulary"
)

// Defaults
const (
	DefaultNATSURL     = "nats://localhost:4222"
	DefaultSubject     = "rdf.prefixes"
	DefaultClientName  = "prefixmap"
	DefaultNATSTimeout = 5 * time.Second
	DefaultMetricsPath = "/metrics"
)

// Config represents the complete application configuration
type Config struct {
	Prefixes         []PrefixConfig `json:"prefixes,omitempty"`
	StandardPrefixes bool           `json:"standard_prefixes"`
	NATS             NATSConfig     `json:"nats"`
	Metrics          MetricsConfig  `json:"metrics"`
	Log              LogConfig      `json:"log"`
}

// PrefixConfig declares one prefix
type PrefixConfig struct {
	Prefix    string `json:"prefix"`
	Namespace string `json:"namespace"`
}

// NATSConfig defines NATS connection settings
type NATSConfig struct {
	URL           string   `json:"url"`
	Subject       string   `json:"subject"`
	ClientName    string   `json:"client_name,omitempty"`
	Timeout       Duration `json:"timeout"`
	MaxReconnects int      `json:"max_reconnects,omitempty"`
	Token         string   `json:"token,omitempty"`

	// Zero keeps the client defaults
	ReconnectWait Duration `json:"reconnect_wait,omitempty"`
	PingInterval  Duration `json:"ping_interval,omitempty"`
	DrainTimeout  Duration `json:"drain_timeout,omitempty"`
}

// MetricsConfig controls the Prometheus endpoint. Port 0 disables it.
type MetricsConfig struct {
	Port int    `json:"port"`
	Path string `json:"path,omitempty"`
}

// LogConfig controls the slog handler
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// Duration is a time.Duration written as a Go duration string ("5s")
type Duration time.Duration

// UnmarshalJSON accepts a duration string or integer nanoseconds
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid duration %s", data)
	}
	*d = Duration(n)
	return nil
}

// MarshalJSON writes the duration string
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Std returns the time.Duration value
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		StandardPrefixes: true,
		NATS: NATSConfig{
			URL:        DefaultNATSURL,
			Subject:    DefaultSubject,
			ClientName: DefaultClientName,
			Timeout:    Duration(DefaultNATSTimeout),
		},
		Metrics: MetricsConfig{Path: DefaultMetricsPath},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	for i, p := range c.Prefixes {
		if p.Namespace == "" {
			return invalid("prefixes[%d] (%q): namespace is required", i, p.Prefix)
		}
		if strings.ContainsRune(p.Prefix, ':') {
			return invalid("prefixes[%d]: prefix %q must not contain ':'", i, p.Prefix)
		}
	}

	if c.NATS.URL == "" {
		return invalid("nats.url is required")
	}
	if !isValidSubject(c.NATS.Subject) {
		return invalid("nats.subject %q is not a valid NATS subject", c.NATS.Subject)
	}
	if c.NATS.Timeout <= 0 {
		return invalid("nats.timeout must be positive")
	}
	if c.NATS.ReconnectWait < 0 || c.NATS.PingInterval < 0 || c.NATS.DrainTimeout < 0 {
		return invalid("nats.reconnect_wait, ping_interval and drain_timeout cannot be negative")
	}

	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return invalid("metrics.port %d out of range", c.Metrics.Port)
	}
	if c.Metrics.Port > 0 && !strings.HasPrefix(c.Metrics.Path, "/") {
		return invalid("metrics.path %q must start with '/'", c.Metrics.Path)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("log.level %q must be one of debug, info, warn, error", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid("log.format %q must be text or json", c.Log.Format)
	}

	return nil
}

func invalid(format string, args ...any) error {
	return errors.WrapInvalid(
		fmt.Errorf("%w: %s", errors.ErrInvalidConfig, fmt.Sprintf(format, args...)),
		"Config", "Validate", "check configuration")
}

// isValidSubject checks for a publishable NATS subject: dot separated,
// non-empty tokens, no whitespace and no wildcards.
func isValidSubject(s string) bool {
	if s == "" {
		return false
	}
	for _, token := range strings.Split(s, ".") {
		if token == "" || token == "*" || token == ">" {
			return false
		}
		for _, r := range token {
			if unicode.IsSpace(r) {
				return false
			}
		}
	}
	return true
}

// Entries returns the configured prefixes in load order, preceded by the
// standard vocabularies when enabled. Namespaces are built with factory.
func (c *Config) Entries(factory term.Factory) []prefixmap.Entry {
	var entries []prefixmap.Entry
	if c.StandardPrefixes {
		entries = append(entries, vocabulary.Entries(factory)...)
	}
	for _, p := range c.Prefixes {
		entries = append(entries, prefixmap.Entry{
			Prefix:    p.Prefix,
			Namespace: factory.NamedNode(p.Namespace),
		})
	}
	return entries
}

// String returns a JSON representation with secrets redacted
func (c *Config) String() string {
	redacted := *c
	if redacted.NATS.Token != "" {
		redacted.NATS.Token = "[REDACTED]"
	}
	data, err := json.MarshalIndent(redacted, "", "  ")
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}
