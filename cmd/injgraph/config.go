package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Environment variables read as flag defaults.
const (
	envManifest  = "INJGRAPH_MANIFEST"
	envLogLevel  = "INJGRAPH_LOG_LEVEL"
	envLogFormat = "INJGRAPH_LOG_FORMAT"
)

// Config is the resolved command configuration: flags win over the
// environment, which wins over built-in defaults.
type Config struct {
	Manifest  string
	LogLevel  string // debug | info | warn | error
	LogFormat string // console | json
}

// loadEnv loads envFile into the process environment. Without a file it
// loads ./.env when present. Variables already set are kept.
func loadEnv(envFile string) error {
	if envFile == "" {
		// .env is optional
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return errors.Wrapf(err, "loading env file %s", envFile)
	}
	return nil
}

// withEnvDefaults fills the fields left empty by flags.
func (c Config) withEnvDefaults() Config {
	c.Manifest = orDefault(c.Manifest, env(envManifest, ""))
	c.LogLevel = orDefault(c.LogLevel, env(envLogLevel, "info"))
	c.LogFormat = orDefault(c.LogFormat, env(envLogFormat, "console"))
	return c
}

func (c Config) validate() error {
	if c.Manifest == "" {
		return errors.New("missing -manifest (or " + envManifest + ")")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return errors.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
