package app

import (
	"context"
	"fmt"

	"ondus/internal/adapters/http"
	"ondus/internal/adapters/terminal"
	"ondus/internal/apiclient"
	"ondus/internal/config"
	"ondus/internal/logging"
)

// NewAppWithConfig creates a new App with the given configuration, wiring all dependencies.
func NewAppWithConfig(ctx context.Context, cfg *Config) (*App, error) {
	settings, err := config.Load(cfg.Viper)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	// Verbose and explicit levels win over log_level.
	if !cfg.logLevelSet {
		level, err := logging.ParseLevel(settings.LogLevel)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}
	logger := logging.NewLoggerTo(cfg.Stderr, cfg.LogLevel)

	// One transport per process; the client only borrows it.
	transport := http.NewAdapter(http.Options{
		Timeout:            settings.Timeout,
		InsecureSkipVerify: settings.InsecureSkipVerify,
		RequestsPerSecond:  settings.RateLimit,
		Burst:              settings.RateBurst,
	}, logger)
	client := apiclient.New(settings.BaseURL, transport, logger)

	tokenReader := terminal.NewAdapter(cfg.Stdin, cfg.Stderr)

	logger.DebugContext(ctx, "Initializing ondus with configuration",
		"logLevel", cfg.LogLevel.String(),
		"verbose", cfg.Verbose,
		"baseURL", settings.BaseURL,
		"timeout", settings.Timeout,
		"configPath", cfg.ConfigPath)

	return &App{
		Settings:    settings,
		Client:      client,
		TokenReader: tokenReader,
		Logger:      logger,
		Config:      cfg,
	}, nil
}
