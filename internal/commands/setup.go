package commands

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/diogo/medilingua/internal/api"
	"github.com/diogo/medilingua/internal/config"
	"github.com/diogo/medilingua/internal/logging"
)

// globalOptions are the persistent flags shared by every subcommand
type globalOptions struct {
	backend string
	verbose bool
}

// runtime is what a command needs to talk to the backend
type runtime struct {
	cfg    config.Config
	logger *zap.Logger
	client api.BackendClient
	close  func()
}

// loadSettings resolves the effective configuration: .env, then the config
// file and environment, then command-line overrides
func loadSettings(opts *globalOptions) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	if opts != nil {
		if opts.backend != "" {
			cfg.BackendURL = strings.TrimRight(opts.backend, "/")
		}
		if opts.verbose {
			cfg.Verbose = true
			cfg.LogLevel = "debug"
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger opens the log file under the config dir. Logging never blocks a
// command: any failure falls back to a no-op logger.
func newLogger(cfg config.Config) *zap.Logger {
	if _, err := config.EnsureConfigDir(); err != nil {
		return logging.Nop()
	}
	path, err := config.GetLogPath()
	if err != nil {
		return logging.Nop()
	}
	logger, err := logging.New(path, cfg.LogLevel)
	if err != nil {
		return logging.Nop()
	}
	return logger
}

// open loads settings and returns a ready backend client. The injected
// client, when present, is used as is and never closed here.
func (d *Dependencies) open(opts *globalOptions) (*runtime, error) {
	cfg, err := loadSettings(opts)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg)
	rt := &runtime{cfg: cfg, logger: logger}

	if d != nil && d.Client != nil {
		rt.client = d.Client
		rt.close = func() { _ = logger.Sync() }
		return rt, nil
	}

	client, err := api.NewClient(
		api.WithBaseURL(cfg.BackendURL),
		api.WithLogger(logger),
	)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	rt.client = client
	rt.close = func() {
		client.Close()
		_ = logger.Sync()
	}
	return rt, nil
}
