// Package config loads ondus settings from flags, environment and the
// YAML config file.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"ondus/internal/errors"
	"ondus/internal/logging"
)

// EnvPrefix namespaces environment overrides, e.g. ONDUS_BASE_URL.
const EnvPrefix = "ONDUS"

// Setting keys shared by viper, the config file and `ondus config set`.
const (
	KeyBaseURL            = "base_url"
	KeyTimeout            = "timeout"
	KeyInsecureSkipVerify = "insecure_skip_verify"
	KeyRateLimit          = "rate_limit"
	KeyRateBurst          = "rate_burst"
	KeyLogLevel           = "log_level"
	KeyToken              = "token"
)

const (
	DefaultBaseURL   = "https://idp2-apigw.cloud.grohe.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10.0
	DefaultRateBurst = 20
	DefaultLogLevel  = "info"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	BaseURL            string        `mapstructure:"base_url"`
	Timeout            time.Duration `mapstructure:"timeout"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
	RateLimit          float64       `mapstructure:"rate_limit"`
	RateBurst          int           `mapstructure:"rate_burst"`
	LogLevel           string        `mapstructure:"log_level"`
	Token              string        `mapstructure:"token"`
}

// Keys lists every supported setting in display order.
func Keys() []string {
	return []string{
		KeyBaseURL,
		KeyTimeout,
		KeyInsecureSkipVerify,
		KeyRateLimit,
		KeyRateBurst,
		KeyLogLevel,
		KeyToken,
	}
}

// IsKnownKey reports whether key is a supported setting.
func IsKnownKey(key string) bool {
	for _, known := range Keys() {
		if known == key {
			return true
		}
	}
	return false
}

// SetDefaults registers defaults and environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyInsecureSkipVerify, false)
	v.SetDefault(KeyRateLimit, DefaultRateLimit)
	v.SetDefault(KeyRateBurst, DefaultRateBurst)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyToken, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load resolves and validates settings from v.
func Load(v *viper.Viper) (*Settings, error) {
	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, errors.NewConfigurationError("", "", "failed to unmarshal settings", err)
	}

	settings.BaseURL = strings.TrimSuffix(strings.TrimSpace(settings.BaseURL), "/")

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks every setting and reports all problems at once.
func (s *Settings) Validate() error {
	var problems []error

	if err := ValidateBaseURL(s.BaseURL); err != nil {
		problems = append(problems, err)
	}
	if s.Timeout <= 0 {
		problems = append(problems, errors.NewValidationError(
			KeyTimeout, s.Timeout.String(), "positive", "timeout must be greater than zero"))
	}
	if s.RateLimit <= 0 {
		problems = append(problems, errors.NewValidationError(
			KeyRateLimit, fmt.Sprint(s.RateLimit), "positive", "rate limit must be greater than zero"))
	}
	if s.RateBurst <= 0 {
		problems = append(problems, errors.NewValidationError(
			KeyRateBurst, fmt.Sprint(s.RateBurst), "positive", "rate burst must be greater than zero"))
	}
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		problems = append(problems, errors.NewValidationError(
			KeyLogLevel, s.LogLevel, "supported_values", "log level must be one of: debug, info, warn, error"))
	}

	return errors.Join(problems...)
}

// ValidateBaseURL requires an absolute http or https URL.
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return errors.NewValidationError(KeyBaseURL, raw, "required", "base URL must not be empty")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return errors.NewValidationError(KeyBaseURL, raw, "url", fmt.Sprintf("base URL is not a valid URL: %v", err))
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.NewValidationError(KeyBaseURL, raw, "scheme", "base URL must use http or https")
	}
	if parsed.Host == "" {
		return errors.NewValidationError(KeyBaseURL, raw, "host", "base URL must include a host")
	}
	return nil
}
