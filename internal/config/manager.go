package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"ondus/internal/domain"
	ondusErrors "ondus/internal/errors"
	"ondus/internal/logging"
)

const (
	dirPermissions  = 0o700 // Owner-only access, the file may hold a token
	filePermissions = 0o600
)

// DefaultPath returns $HOME/.config/ondus/config.yaml.
func DefaultPath(fs domain.FileSystemAdapter) (string, error) {
	homeDir, err := fs.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "ondus", "config.yaml"), nil
}

// Manager reads and writes the YAML config file.
type Manager struct {
	fs     domain.FileSystemAdapter
	path   string
	logger *slog.Logger
}

// NewManager creates a manager for the file at path.
func NewManager(fs domain.FileSystemAdapter, path string, logger *slog.Logger) *Manager {
	return &Manager{
		fs:     fs,
		path:   path,
		logger: logger,
	}
}

// Path returns the managed file path.
func (m *Manager) Path() string {
	return m.path
}

// Load returns the stored key/value pairs. A missing or empty file yields
// an empty map.
func (m *Manager) Load(ctx context.Context) (map[string]string, error) {
	values := map[string]string{}

	data, err := m.fs.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.logger.DebugContext(ctx, "Config file does not exist yet", "path", m.path)
			return values, nil
		}
		return nil, ondusErrors.NewConfigurationError("config_path", m.path, "failed to read config file", err)
	}

	if len(data) == 0 {
		return values, nil
	}

	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, ondusErrors.NewConfigurationError("config_format", "yaml", "failed to unmarshal config", err)
	}
	return values, nil
}

// Save writes values, creating the parent directory if needed.
func (m *Manager) Save(ctx context.Context, values map[string]string) error {
	dir := filepath.Dir(m.path)
	if err := m.fs.MkdirAll(dir, dirPermissions); err != nil {
		return ondusErrors.NewConfigurationError("config_directory", dir, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return ondusErrors.NewConfigurationError("config_format", "yaml", "failed to marshal config", err)
	}

	if err := m.fs.WriteFile(m.path, data, filePermissions); err != nil {
		return ondusErrors.NewConfigurationError("config_path", m.path, "failed to write config file", err)
	}

	m.logger.DebugContext(ctx, "Saved config file", "path", m.path, "keys", len(values))
	return nil
}

// Set validates value for key and persists it.
func (m *Manager) Set(ctx context.Context, key, value string) error {
	if err := ValidateValue(key, value); err != nil {
		return err
	}

	values, err := m.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	values[key] = value
	if err := m.Save(ctx, values); err != nil {
		return err
	}

	m.logger.InfoContext(ctx, "Updated setting", "key", key, "path", m.path)
	return nil
}

// ValidateValue checks that value parses for the type behind key.
func ValidateValue(key, value string) error {
	if !IsKnownKey(key) {
		return ondusErrors.NewValidationError("key", key, "supported_values", fmt.Sprintf("unknown setting %q", key))
	}

	var err error
	switch key {
	case KeyBaseURL:
		return ValidateBaseURL(value)
	case KeyTimeout:
		var d time.Duration
		if d, err = time.ParseDuration(value); err == nil && d <= 0 {
			err = errors.New("must be greater than zero")
		}
	case KeyInsecureSkipVerify:
		_, err = strconv.ParseBool(value)
	case KeyRateLimit:
		var f float64
		if f, err = strconv.ParseFloat(value, 64); err == nil && f <= 0 {
			err = errors.New("must be greater than zero")
		}
	case KeyRateBurst:
		var n int
		if n, err = strconv.Atoi(value); err == nil && n <= 0 {
			err = errors.New("must be greater than zero")
		}
	case KeyLogLevel:
		_, err = logging.ParseLevel(value)
	}

	if err != nil {
		return ondusErrors.NewValidationError(key, value, "format", fmt.Sprintf("invalid value for %s: %v", key, err))
	}
	return nil
}
