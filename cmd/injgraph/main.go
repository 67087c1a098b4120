package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// errLookupsFailed is returned after all output is written when at least
// one lookup failed.
var errLookupsFailed = errors.New("one or more lookups failed")

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("injgraph", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cfg Config
	envFile := fs.String("env", "", "path to a .env file (default ./.env when present)")
	fs.StringVar(&cfg.Manifest, "manifest", "", "path to a YAML or JSON manifest")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "debug | info | warn | error")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "console | json")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := loadEnv(*envFile); err != nil {
		return err
	}
	cfg = cfg.withEnvDefaults()
	if err := cfg.validate(); err != nil {
		return err
	}

	log, err := newLogger(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	m, err := loadManifest(cfg.Manifest)
	if err != nil {
		return err
	}
	g, err := buildGraph(m, log)
	if err != nil {
		return err
	}
	log.Info("graph built",
		zap.String("manifest", cfg.Manifest),
		zap.Int("scopes", len(g.scopes)),
		zap.Int("lookups", len(m.Resolve)))

	failed := 0
	for _, r := range m.Resolve {
		line, err := g.resolve(r)
		if err != nil {
			failed++
			log.Debug("lookup failed", zap.String("scope", r.Scope), zap.String("token", r.Token), zap.Error(err))
		}
		fmt.Fprintln(stdout, line)
	}
	for _, line := range g.destroy() {
		fmt.Fprintln(stdout, line)
	}

	if failed > 0 {
		return errors.Wrapf(errLookupsFailed, "%d of %d", failed, len(m.Resolve))
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "injgraph:", err)
		}
		os.Exit(1)
	}
}
