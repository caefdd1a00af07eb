// Package cli implements the command line application around the
// reconciliation usecase.
package cli

import (
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/google/subcommands"

	"ledger-reconciler/internal/config"
	"ledger-reconciler/internal/engine"
	"ledger-reconciler/internal/gateway"
	"ledger-reconciler/internal/usecase"
)

// Register the subcommands.
// The main package calls Register() and then Execute() on the user-selected
// one.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "")
	c.Register(&serveCmd{}, "")
}

// As a CLI application the lifecycle is short lived, so globals are fine here.

var configPath = flag.String("config", "", "Path to the YAML configuration file")
var debug = flag.Bool("debug", false, "Enable debug logging")

// loadConfig resolves the application configuration from the -config flag,
// config.yaml or the environment.
func loadConfig() (*config.Config, error) {
	return config.LoadOrEnv(*configPath)
}

// newLogger builds the application logger from the configured level. The
// -debug flag always wins.
func newLogger(cfg *config.Config) *slog.Logger {
	level := logLevel(cfg.Logging.Level)
	if *debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newUseCase wires the production dependencies of the reconciliation usecase.
func newUseCase(cfg *config.Config, logger *slog.Logger) *usecase.ReconcileUseCase {
	return usecase.NewReconcileUseCase(gateway.NewTableLoader(), engine.New(cfg.EngineConfig()), logger)
}

func logLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
