package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"ondus/internal/apiclient"
	"ondus/internal/config"
	"ondus/internal/domain"
)

// App contains all application dependencies.
type App struct {
	// Resolved settings
	Settings *config.Settings

	// Core client
	Client *apiclient.Client

	// I/O dependencies
	TokenReader domain.TokenReader

	// Logging
	Logger *slog.Logger

	// Configuration
	Config *Config
}

// Config holds application configuration.
type Config struct {
	LogLevel    slog.Level
	logLevelSet bool
	Verbose     bool

	// Viper is the settings source; flags and the config file are bound to it by the caller.
	Viper *viper.Viper
	// ConfigPath is the YAML file that was merged into Viper, for diagnostics.
	ConfigPath string

	Stdin  io.Reader
	Stderr io.Writer
}

// Option is a functional option for configuring the App.
type Option func(*Config)

// WithLogLevel sets the logging level, overriding the configured log_level.
func WithLogLevel(level slog.Level) Option {
	return func(cfg *Config) {
		cfg.LogLevel = level
		cfg.logLevelSet = true
	}
}

// WithVerbose enables verbose logging.
func WithVerbose(verbose bool) Option {
	return func(cfg *Config) {
		cfg.Verbose = verbose
		if verbose {
			cfg.LogLevel = slog.LevelDebug
			cfg.logLevelSet = true
		}
	}
}

// WithViper sets the settings source.
func WithViper(v *viper.Viper) Option {
	return func(cfg *Config) {
		cfg.Viper = v
	}
}

// WithConfigPath records the config file the caller merged into Viper.
func WithConfigPath(path string) Option {
	return func(cfg *Config) {
		cfg.ConfigPath = path
	}
}

// WithIO overrides the terminal streams used for token prompts and logs.
func WithIO(stdin io.Reader, stderr io.Writer) Option {
	return func(cfg *Config) {
		cfg.Stdin = stdin
		cfg.Stderr = stderr
	}
}

// NewApp creates a new App with the given options.
func NewApp(ctx context.Context, opts ...Option) (*App, error) {
	cfg := &Config{
		LogLevel: slog.LevelInfo,
		Verbose:  false,
		Stdin:    os.Stdin,
		Stderr:   os.Stderr,
	}

	// Apply options.
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Viper == nil {
		cfg.Viper = viper.New()
		config.SetDefaults(cfg.Viper)
	}

	return NewAppWithConfig(ctx, cfg)
}
