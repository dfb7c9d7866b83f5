package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/c360/prefixmap/errors"
)

//go:embed schema.json
var schemaJSON []byte

// EnvPrefix prefixes every environment override
const EnvPrefix = "PREFIXMAP"

// Loader handles configuration loading with layers and overrides
type Loader struct {
	layers     []string
	validation bool
	envPrefix  string
	getenv     func(string) string
}

// NewLoader creates a new configuration loader with validation enabled
func NewLoader() *Loader {
	return &Loader{
		validation: true,
		envPrefix:  EnvPrefix,
		getenv:     os.Getenv,
	}
}

// AddLayer adds a configuration file layer
func (l *Loader) AddLayer(path string) {
	l.layers = append(l.layers, path)
}

// EnableValidation enables or disables configuration validation
func (l *Loader) EnableValidation(enable bool) {
	l.validation = enable
}

// Load reads a single configuration file. An empty path yields the defaults
// with environment overrides applied.
func Load(path string) (*Config, error) {
	l := NewLoader()
	if path != "" {
		l.AddLayer(path)
	}
	return l.Load()
}

// Load loads and merges all configuration layers
func (l *Loader) Load() (*Config, error) {
	merged := map[string]any{}
	for _, path := range l.layers {
		raw, err := loadRaw(path)
		if err != nil {
			return nil, err
		}
		merged = deepMerge(merged, raw)
	}

	if err := validateSchema(merged); err != nil {
		return nil, err
	}

	cfg := Default()
	if len(merged) > 0 {
		data, err := json.Marshal(merged)
		if err != nil {
			return nil, errors.WrapInvalid(err, "Loader", "Load", "encode merged config")
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapInvalid(
				fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err),
				"Loader", "Load", "decode merged config")
		}
	}

	l.applyEnvOverrides(cfg)

	if l.validation {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// loadRaw decodes a JSON or YAML file, chosen by extension, into a generic
// document
func loadRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapFatal(
				fmt.Errorf("%w: %s", errors.ErrConfigNotFound, path),
				"Loader", "loadRaw", "read file")
		}
		return nil, errors.WrapFatal(err, "Loader", "loadRaw", "read file")
	}

	raw := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: unsupported config extension %q", errors.ErrInvalidConfig, ext),
			"Loader", "loadRaw", "detect format")
	}
	if err != nil {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %s: %w", errors.ErrParsingFailed, path, err),
			"Loader", "loadRaw", "parse file")
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// deepMerge merges override into base. Nested objects merge recursively;
// any other value, lists included, replaces the base value.
func deepMerge(base, override map[string]any) map[string]any {
	result := make(map[string]any, len(base))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range override {
		if v == nil {
			continue
		}
		if overrideMap, ok := v.(map[string]any); ok {
			if baseMap, ok := result[k].(map[string]any); ok {
				result[k] = deepMerge(baseMap, overrideMap)
				continue
			}
		}
		result[k] = v
	}
	return result
}

func validateSchema(doc map[string]any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err),
			"Loader", "validateSchema", "run schema validation")
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return errors.WrapInvalid(
		fmt.Errorf("%w: %s", errors.ErrInvalidConfig, strings.Join(msgs, "; ")),
		"Loader", "validateSchema", "schema validation")
}

// applyEnvOverrides applies environment variable overrides
func (l *Loader) applyEnvOverrides(cfg *Config) {
	if val := l.getenv(l.envPrefix + "_NATS_URL"); val != "" {
		cfg.NATS.URL = val
	}
	if val := l.getenv(l.envPrefix + "_NATS_SUBJECT"); val != "" {
		cfg.NATS.Subject = val
	}
	if val := l.getenv(l.envPrefix + "_NATS_TOKEN"); val != "" {
		cfg.NATS.Token = val
	}
	if val := l.getenv(l.envPrefix + "_LOG_LEVEL"); val != "" {
		cfg.Log.Level = strings.ToLower(val)
	}
}
