// Package environment composes a term factory with installable modules.
//
// A module adds a capability to the environment when it is installed (Init)
// and copies its own state when the environment is cloned (Clone). Module
// state lives in the environment's value slots so that every clone carries
// independent instances.
package environment

import (
	"fmt"
	"sync"

	"github.com/c360/prefixmap/errors"
	"github.com/c360/prefixmap/term"
)

// Module is a capability installed into an Environment
type Module interface {
	// Name identifies the module; names are unique per environment.
	Name() string
	// Init installs the module's default state into env.
	Init(env *Environment) error
	// Clone copies the module's state from src into dst. dst has already
	// been initialised.
	Clone(src, dst *Environment) error
}

// Environment is a term factory extended by modules
type Environment struct {
	factory term.Factory
	modules []Module

	mu     sync.RWMutex
	values map[string]any
}

// New builds an environment around factory and installs modules in order
func New(factory term.Factory, modules ...Module) (*Environment, error) {
	if factory == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingFactory, "Environment", "New", "factory validation")
	}

	seen := make(map[string]struct{}, len(modules))
	for _, m := range modules {
		if m == nil {
			return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "Environment", "New", "module validation")
		}
		if _, dup := seen[m.Name()]; dup {
			return nil, errors.WrapInvalid(
				fmt.Errorf("module %q installed twice", m.Name()),
				"Environment", "New", "duplicate module check")
		}
		seen[m.Name()] = struct{}{}
	}

	env := &Environment{
		factory: factory,
		modules: append([]Module(nil), modules...),
		values:  make(map[string]any),
	}

	for _, m := range env.modules {
		if err := m.Init(env); err != nil {
			return nil, errors.Wrap(err, "Environment", "New", fmt.Sprintf("init module %s", m.Name()))
		}
	}

	return env, nil
}

// NamedNode delegates to the underlying factory, so an Environment is
// itself a term.Factory.
func (e *Environment) NamedNode(value string) term.Term {
	return e.factory.NamedNode(value)
}

// BlankNode delegates when the underlying factory supports blank nodes
func (e *Environment) BlankNode(id string) term.Term {
	if bf, ok := e.factory.(term.BlankNodeFactory); ok {
		return bf.BlankNode(id)
	}
	return nil
}

// Factory returns the wrapped factory
func (e *Environment) Factory() term.Factory {
	return e.factory
}

// Installed reports whether a module with the given name is installed
func (e *Environment) Installed(name string) bool {
	for _, m := range e.modules {
		if m.Name() == name {
			return true
		}
	}
	return false
}

// Value returns the value stored under key
func (e *Environment) Value(key string) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.values[key]
	return v, ok
}

// SetValue stores v under key
func (e *Environment) SetValue(key string, v any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.values[key] = v
}

// Clone returns a new environment with the same factory and modules. Each
// module is initialised on the clone and then asked to copy its state.
func (e *Environment) Clone() (*Environment, error) {
	clone, err := New(e.factory, e.modules...)
	if err != nil {
		return nil, errors.Wrap(err, "Environment", "Clone", "build clone")
	}

	for _, m := range e.modules {
		if err := m.Clone(e, clone); err != nil {
			return nil, errors.Wrap(err, "Environment", "Clone", fmt.Sprintf("clone module %s", m.Name()))
		}
	}

	return clone, nil
}
