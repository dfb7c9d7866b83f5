package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/c360/prefixmap/errors"
	"github.com/c360/prefixmap/prefixmap"
	"github.com/c360/prefixmap/term"
	"github.com/c360/prefixmap/vocabulary"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultNATSURL, cfg.NATS.URL)
	assert.Equal(t, DefaultSubject, cfg.NATS.Subject)
	assert.Equal(t, DefaultNATSTimeout, cfg.NATS.Timeout.Std())
	assert.True(t, cfg.StandardPrefixes)
	assert.Equal(t, 0, cfg.Metrics.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "prefixmap.yaml", `
prefixes:
  - prefix: ex
    namespace: http://example.org/
  - prefix: ""
    namespace: urn:default:
standard_prefixes: false
nats:
  url: nats://nats:4222
  subject: rdf.prefixes.test
  timeout: 2s
  reconnect_wait: 500ms
  ping_interval: 10s
  drain_timeout: 3s
metrics:
  port: 9090
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Prefixes, 2)
	assert.Equal(t, PrefixConfig{Prefix: "ex", Namespace: "http://example.org/"}, cfg.Prefixes[0])
	assert.Equal(t, "", cfg.Prefixes[1].Prefix)
	assert.False(t, cfg.StandardPrefixes)
	assert.Equal(t, "nats://nats:4222", cfg.NATS.URL)
	assert.Equal(t, "rdf.prefixes.test", cfg.NATS.Subject)
	assert.Equal(t, 2*time.Second, cfg.NATS.Timeout.Std())
	assert.Equal(t, 500*time.Millisecond, cfg.NATS.ReconnectWait.Std())
	assert.Equal(t, 10*time.Second, cfg.NATS.PingInterval.Std())
	assert.Equal(t, 3*time.Second, cfg.NATS.DrainTimeout.Std())
	assert.Equal(t, DefaultClientName, cfg.NATS.ClientName)
	assert.Equal(t, 9090, cfg.Metrics.Port)
	assert.Equal(t, DefaultMetricsPath, cfg.Metrics.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "prefixmap.json", `{
  "prefixes": [{"prefix": "ex", "namespace": "http://example.org/"}],
  "nats": {"subject": "custom"}
}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.NATS.Subject)
	assert.Equal(t, DefaultNATSURL, cfg.NATS.URL)
	require.Len(t, cfg.Prefixes, 1)
}

func TestLoader_Layers(t *testing.T) {
	base := writeFile(t, "base.yaml", `
prefixes:
  - prefix: a
    namespace: urn:a:
nats:
  url: nats://base:4222
  subject: base
`)
	override := writeFile(t, "override.json", `{
  "prefixes": [{"prefix": "b", "namespace": "urn:b:"}],
  "nats": {"subject": "override"}
}`)

	l := NewLoader()
	l.AddLayer(base)
	l.AddLayer(override)
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "nats://base:4222", cfg.NATS.URL)
	assert.Equal(t, "override", cfg.NATS.Subject)
	// lists are replaced
	require.Len(t, cfg.Prefixes, 1)
	assert.Equal(t, "b", cfg.Prefixes[0].Prefix)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PREFIXMAP_NATS_URL", "nats://env:4222")
	t.Setenv("PREFIXMAP_NATS_SUBJECT", "env.subject")
	t.Setenv("PREFIXMAP_LOG_LEVEL", "WARN")

	path := writeFile(t, "prefixmap.yaml", `
nats:
  url: nats://file:4222
  subject: file.subject
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "nats://env:4222", cfg.NATS.URL)
	assert.Equal(t, "env.subject", cfg.NATS.Subject)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{
			name:    "unknown key",
			file:    "c.yaml",
			content: "bogus: true\n",
			want:    pkgerrors.ErrInvalidConfig,
		},
		{
			name:    "log level enum",
			file:    "c.yaml",
			content: "log:\n  level: loud\n",
			want:    pkgerrors.ErrInvalidConfig,
		},
		{
			name:    "prefix without namespace",
			file:    "c.json",
			content: `{"prefixes": [{"prefix": "ex"}]}`,
			want:    pkgerrors.ErrInvalidConfig,
		},
		{
			name:    "port out of range",
			file:    "c.json",
			content: `{"metrics": {"port": 70000}}`,
			want:    pkgerrors.ErrInvalidConfig,
		},
		{
			name:    "bad duration",
			file:    "c.json",
			content: `{"nats": {"timeout": "soon"}}`,
			want:    pkgerrors.ErrInvalidConfig,
		},
		{
			name:    "malformed yaml",
			file:    "c.yaml",
			content: "nats: [unclosed\n",
			want:    pkgerrors.ErrParsingFailed,
		},
		{
			name:    "unsupported extension",
			file:    "c.toml",
			content: "",
			want:    pkgerrors.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, pkgerrors.IsInvalid(err))
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgerrors.ErrConfigNotFound)
	assert.True(t, pkgerrors.IsFatal(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"empty subject", func(c *Config) { c.NATS.Subject = "" }, false},
		{"wildcard subject", func(c *Config) { c.NATS.Subject = "rdf.*" }, false},
		{"empty token", func(c *Config) { c.NATS.Subject = "rdf..prefixes" }, false},
		{"space in subject", func(c *Config) { c.NATS.Subject = "rdf prefixes" }, false},
		{"empty url", func(c *Config) { c.NATS.URL = "" }, false},
		{"zero timeout", func(c *Config) { c.NATS.Timeout = 0 }, false},
		{"negative reconnect wait", func(c *Config) { c.NATS.ReconnectWait = -1 }, false},
		{"negative drain timeout", func(c *Config) { c.NATS.DrainTimeout = Duration(-time.Second) }, false},
		{"ping interval", func(c *Config) { c.NATS.PingInterval = Duration(time.Minute) }, true},
		{"colon in prefix", func(c *Config) {
			c.Prefixes = []PrefixConfig{{Prefix: "a:b", Namespace: "urn:x:"}}
		}, false},
		{"empty prefix label", func(c *Config) {
			c.Prefixes = []PrefixConfig{{Prefix: "", Namespace: "urn:x:"}}
		}, true},
		{"metrics path", func(c *Config) { c.Metrics.Port = 9090; c.Metrics.Path = "metrics" }, false},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, pkgerrors.ErrInvalidConfig)
		})
	}
}

func TestEntries(t *testing.T) {
	vocabulary.ResetRegistry()
	factory := term.NewDataFactory()

	cfg := Default()
	cfg.Prefixes = []PrefixConfig{
		{Prefix: "ex", Namespace: "http://example.org/"},
		{Prefix: "schema", Namespace: "https://schema.org/"},
	}

	p, err := prefixmap.New(factory, cfg.Entries(factory))
	require.NoError(t, err)

	// configured entries overwrite standard ones in place
	labels := p.Prefixes()
	assert.Equal(t, "rdf", labels[0])
	assert.Equal(t, "ex", labels[len(labels)-1])
	ns, _ := p.Get("schema")
	assert.Equal(t, "https://schema.org/", ns.Value())

	cfg.StandardPrefixes = false
	assert.Len(t, cfg.Entries(factory), 2)
}

func TestString_RedactsToken(t *testing.T) {
	cfg := Default()
	cfg.NATS.Token = "secret"

	s := cfg.String()
	assert.NotContains(t, s, "secret")
	assert.Contains(t, s, "[REDACTED]")
	assert.Equal(t, "secret", cfg.NATS.Token)
}
