package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefixes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_Version(t *testing.T) {
	out, err := runCLI(t, "-version")
	require.NoError(t, err)
	assert.Equal(t, "prefixmap version "+Version+"\n", out)
}

func TestRun_Help(t *testing.T) {
	_, err := runCLI(t, "-h")
	assert.NoError(t, err)
}

func TestRun_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no command", args: nil, want: "missing command"},
		{name: "unknown command", args: []string{"frobnicate"}, want: "unknown command"},
		{name: "resolve without args", args: []string{"resolve"}, want: "needs at least one argument"},
		{name: "bad log level", args: []string{"-log-level", "loud", "list"}, want: "invalid log level"},
		{name: "bad log format", args: []string{"-log-format", "xml", "list"}, want: "invalid log format"},
		{name: "serve without address", args: []string{"-listen", "", "serve"}, want: "needs a listen address"},
		{name: "unknown flag", args: []string{"-nope", "list"}, want: "invalid flags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRun_ResolveAndShrink(t *testing.T) {
	out, err := runCLI(t, "resolve", "rdf:type", "nope:thing", "noseparator")
	require.NoError(t, err)
	assert.Equal(t, "http://www.w3.org/1999/02/22-rdf-syntax-ns#type\n-\n-\n", out)

	out, err = runCLI(t, "shrink",
		"http://www.w3.org/2004/02/skos/core#prefLabel",
		"http://unknown.example/x")
	require.NoError(t, err)
	assert.Equal(t, "skos:prefLabel\n-\n", out)
}

func TestRun_ConfiguredPrefixes(t *testing.T) {
	path := writeConfig(t, `
standard_prefixes: false
prefixes:
  - prefix: ex
    namespace: http://example.org/
  - prefix: ex1
    namespace: http://example.org/1/
`)

	out, err := runCLI(t, "-c", path, "list")
	require.NoError(t, err)
	assert.Equal(t, "ex\thttp://example.org/\nex1\thttp://example.org/1/\n", out)

	out, err = runCLI(t, "-c", path, "shrink", "http://example.org/1/a")
	require.NoError(t, err)
	assert.Equal(t, "ex1:a\n", out)
}

func TestRun_ListStandardPrefixes(t *testing.T) {
	out, err := runCLI(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "rdf\thttp://www.w3.org/1999/02/22-rdf-syntax-ns#", lines[0])
}

func TestRun_MissingConfigFile(t *testing.T) {
	_, err := runCLI(t, "-config", filepath.Join(t.TempDir(), "missing.yaml"), "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
