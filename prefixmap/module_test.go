package prefixmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/prefixmap/environment"
	pkgerrors "github.com/c360/prefixmap/errors"
)

func newEnv(t *testing.T) *environment.Environment {
	t.Helper()
	env, err := environment.New(factory, Module{})
	require.NoError(t, err)
	return env
}

func TestModule_InstallsDefaultPrefixes(t *testing.T) {
	env := newEnv(t)

	p := Prefixes(env)
	require.NotNil(t, p)
	assert.Equal(t, 0, p.Size())
	assert.Same(t, env, p.Factory())
}

func TestNewFromEnvironment(t *testing.T) {
	env := newEnv(t)

	p, err := NewFromEnvironment(env,
		Entry{Prefix: "ex1", Namespace: exPrefix1},
		Entry{Prefix: "ex2", Namespace: exPrefix2},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, p.Size())
	assert.NotSame(t, Prefixes(env), p)
	assert.Same(t, env, p.Factory())

	ns, _ := p.Get("ex1")
	assert.True(t, ns.Equals(exPrefix1))
}

func TestNewFromEnvironment_RequiresModule(t *testing.T) {
	env, err := environment.New(factory)
	require.NoError(t, err)

	_, err = NewFromEnvironment(env)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgerrors.ErrMissingConfig)
	assert.Nil(t, Prefixes(env))
}

func TestModule_CloneCopiesPrefixes(t *testing.T) {
	original := newEnv(t)
	Prefixes(original).Set("ex", exPrefix1)

	clone, err := original.Clone()
	require.NoError(t, err)

	cloned := Prefixes(clone)
	require.NotNil(t, cloned)
	assert.NotSame(t, Prefixes(original), cloned)
	assert.Equal(t, 1, cloned.Size())
	ns, _ := cloned.Get("ex")
	assert.True(t, ns.Equals(exPrefix1))
	assert.Same(t, clone, cloned.Factory())

	cloned.Set("other", exPrefix2)
	assert.False(t, Prefixes(original).Has("other"))
}
