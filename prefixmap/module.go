package prefixmap

import (
	"fmt"
	"log/slog"

	"github.com/c360/prefixmap/environment"
	"github.com/c360/prefixmap/errors"
	"github.com/c360/prefixmap/metric"
)

// ModuleName is the name the prefix map module installs under
const ModuleName = "prefix-map"

const prefixesKey = "prefixes"

// Module installs prefix maps into an environment: a default instance
// reachable through Prefixes, and NewFromEnvironment as constructor. Maps
// created by the module use the environment as their factory.
type Module struct {
	Logger  *slog.Logger
	Metrics *metric.Metrics
}

// Name implements environment.Module
func (m Module) Name() string {
	return ModuleName
}

// Init installs an empty default prefix map
func (m Module) Init(env *environment.Environment) error {
	p, err := New(env, nil, m.options()...)
	if err != nil {
		return err
	}
	env.SetValue(prefixesKey, p)
	return nil
}

// Clone copies the default prefix map of src into dst
func (m Module) Clone(src, dst *environment.Environment) error {
	p := Prefixes(src)
	if p == nil {
		return nil
	}
	dst.SetValue(prefixesKey, p.cloneWith(dst))
	return nil
}

func (m Module) options() []Option {
	return []Option{WithLogger(m.Logger), WithMetrics(m.Metrics)}
}

// Prefixes returns the default prefix map of env, or nil when the module is
// not installed
func Prefixes(env *environment.Environment) *PrefixMap {
	v, ok := env.Value(prefixesKey)
	if !ok {
		return nil
	}
	p, _ := v.(*PrefixMap)
	return p
}

// NewFromEnvironment creates a prefix map bound to env. The module must be
// installed in env.
func NewFromEnvironment(env *environment.Environment, entries ...Entry) (*PrefixMap, error) {
	if !env.Installed(ModuleName) {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: module %s not installed", errors.ErrMissingConfig, ModuleName),
			"PrefixMap", "NewFromEnvironment", "module lookup")
	}

	base := Prefixes(env)
	var opts []Option
	if base != nil {
		opts = append(opts, WithLogger(base.logger), WithMetrics(base.metrics))
	}
	return New(env, entries, opts...)
}
