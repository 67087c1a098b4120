package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// cliResult captures one run of the command.
type cliResult struct {
	stdout string
	stderr string
	err    error
}

func (r cliResult) lines() []string {
	out := strings.TrimRight(r.stdout, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// writeManifest writes content to name inside a fresh temp dir and returns its path.
func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// mustGraph parses a YAML manifest and builds it with a no-op logger.
func mustGraph(t *testing.T, content string) (*graph, *Manifest) {
	t.Helper()
	m, err := parseManifest([]byte(content), false)
	require.NoError(t, err)
	g, err := buildGraph(m, zap.NewNop())
	require.NoError(t, err)
	return g, m
}
