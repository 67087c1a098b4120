package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// run: happy paths
// -------------------------

func TestRun_YAMLManifest(t *testing.T) {
	t.Parallel()

	res := runCLI(t, "-manifest", filepath.Join("testdata", "app.yaml"))
	require.NoError(t, res.err)

	assert.Equal(t, []string{
		"request/message = hello, world!",
		"request/name = request",
		"request/name = world",
		"request/plugins = [audit, Metrics(), trace]",
		"request/handler = Handler(Service(hello, world!, [audit, Metrics()]), request)",
		"app/msg = hello, world!",
		"app/tracer = <nil>",
		"destroyed request/handler (Handler)",
		"destroyed app/service (Service)",
		"destroyed app/plugins (Metrics)",
	}, res.lines())
}

func TestRun_JSONManifest(t *testing.T) {
	t.Parallel()

	res := runCLI(t, "-manifest", filepath.Join("testdata", "app.json"), "-log-format", "json")
	require.NoError(t, res.err)
	assert.Equal(t, []string{"app/message = hi json"}, res.lines())
	assert.Contains(t, res.stderr, `"msg":"graph built"`)
}

func TestRun_DebugLogsConstruction(t *testing.T) {
	t.Parallel()

	res := runCLI(t, "-manifest", filepath.Join("testdata", "app.json"), "-log-level", "debug")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "provider constructed")
	assert.Contains(t, res.stderr, "injector destroyed")
}

// -------------------------
// run: failures
// -------------------------

func TestRun_FailedLookupsAreReported(t *testing.T) {
	t.Parallel()

	res := runCLI(t, "-manifest", filepath.Join("testdata", "cycle.yaml"))
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, errLookupsFailed))
	assert.EqualError(t, res.err, "2 of 2: one or more lookups failed")

	assert.Equal(t, []string{
		"app/a: cyclic deps: a@0 → b@0 → a@0",
		"app/missing: missing provider: missing",
	}, res.lines())
}

func TestRun_ArgumentErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown_flag", args: []string{"-nope"}, wantErr: "flag provided but not defined: -nope"},
		{name: "bad_log_format", args: []string{"-manifest", "x.yaml", "-log-format", "xml"}, wantErr: `unknown log format "xml"`},
		{name: "bad_log_level", args: []string{"-manifest", "x.yaml", "-log-level", "loud"}, wantErr: "log level"},
		{name: "missing_manifest_file", args: []string{"-manifest", filepath.Join("testdata", "nope.yaml")}, wantErr: "reading manifest"},
		{name: "missing_env_file", args: []string{"-env", filepath.Join("testdata", "nope.env")}, wantErr: "loading env file"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := runCLI(t, tc.args...)
			require.Error(t, res.err)
			assert.Contains(t, res.err.Error(), tc.wantErr)
		})
	}
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	res := runCLI(t, "-h")
	assert.True(t, errors.Is(res.err, flag.ErrHelp))
	assert.Contains(t, res.stderr, "-manifest")
}

// -------------------------
// configuration
// -------------------------

func TestRun_ManifestFromEnvFile(t *testing.T) {
	// t.Setenv is incompatible with t.Parallel. The variables are unset
	// afterwards because godotenv keeps values that are already present.
	for _, k := range []string{envManifest, envLogLevel, envLogFormat} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	manifest, err := filepath.Abs(filepath.Join("testdata", "app.json"))
	require.NoError(t, err)
	envFile := writeManifest(t, "test.env", envManifest+"="+manifest+"\n"+envLogFormat+"=json\n")

	res := runCLI(t, "-env", envFile)
	require.NoError(t, res.err)
	assert.Equal(t, []string{"app/message = hi json"}, res.lines())
	assert.Contains(t, res.stderr, `"level":"info"`)
}

func TestConfig_WithEnvDefaults(t *testing.T) {
	t.Setenv(envManifest, "from-env.yaml")
	t.Setenv(envLogLevel, "")
	t.Setenv(envLogFormat, "json")

	got := Config{LogLevel: "warn"}.withEnvDefaults()
	assert.Equal(t, Config{Manifest: "from-env.yaml", LogLevel: "warn", LogFormat: "json"}, got)

	got = Config{Manifest: "flag.yaml"}.withEnvDefaults()
	assert.Equal(t, "flag.yaml", got.Manifest, "flags win over the environment")
	assert.Equal(t, "info", got.LogLevel)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	assert.EqualError(t, Config{}.validate(), "missing -manifest (or INJGRAPH_MANIFEST)")
	assert.NoError(t, Config{Manifest: "m.yaml", LogFormat: "console"}.validate())
	assert.NoError(t, Config{Manifest: "m.yaml", LogFormat: "json"}.validate())
}
