package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"ondus/internal/adapters/filesystem"
	"ondus/internal/app"
	"ondus/internal/config"
	ondusErrors "ondus/internal/errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// skipAppAnnotation marks commands that run without an initialized App.
const skipAppAnnotation = "ondus/skip-app"

//nolint:gochecknoglobals // Cobra CLI pattern for persistent flag variables
var (
	cfgFile string
	verbose bool

	settings = viper.New()

	application *app.App
)

// VersionInfo holds build information.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

//nolint:gochecknoglobals // Package-level version info for CLI commands
var versionInfo = VersionInfo{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
	BuiltBy: "unknown",
}

// SetVersionInfo updates the build information.
func SetVersionInfo(v, c, d, b string) {
	versionInfo.Version = v
	versionInfo.Commit = c
	versionInfo.Date = d
	versionInfo.BuiltBy = b
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionInfo {
	return versionInfo
}

// GetApp returns the initialized application instance.
func GetApp() *app.App {
	return application
}

//nolint:gochecknoglobals // Cobra CLI pattern for root command
var rootCmd = &cobra.Command{
	Use:   "ondus",
	Short: "A CLI client for the Grohe Ondus API",
	Long: `Ondus sends authenticated GET and POST requests to the Grohe Ondus API
and prints the JSON a successful (HTTP 200) call returns.

Any other status is reported as "no result" and is not treated as a failure.`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra CLI pattern for flag initialization
func init() {
	config.SetDefaults(settings)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/ondus/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.String("base-url", config.DefaultBaseURL, "Ondus API base URL")
	flags.Duration("timeout", config.DefaultTimeout, "HTTP request timeout")
	flags.Bool("insecure", false, "Skip TLS certificate verification")

	_ = settings.BindPFlag(config.KeyBaseURL, flags.Lookup("base-url"))
	_ = settings.BindPFlag(config.KeyTimeout, flags.Lookup("timeout"))
	_ = settings.BindPFlag(config.KeyInsecureSkipVerify, flags.Lookup("insecure"))
}

func initApp(cmd *cobra.Command, _ []string) error {
	if _, skip := cmd.Annotations[skipAppAnnotation]; skip {
		return nil
	}

	configPath, err := readConfigFile()
	if err != nil {
		return err
	}

	application, err = app.NewApp(cmd.Context(),
		app.WithViper(settings),
		app.WithConfigPath(configPath),
		app.WithVerbose(verbose),
		app.WithIO(cmd.InOrStdin(), cmd.ErrOrStderr()),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return nil
}

// configFilePath returns --config or the default location.
func configFilePath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.DefaultPath(filesystem.New())
}

// readConfigFile merges the YAML config file into settings and returns its path.
// A missing file is not an error.
func readConfigFile() (string, error) {
	path, err := configFilePath()
	if err != nil {
		return "", err
	}

	settings.SetConfigFile(path)
	settings.SetConfigType("yaml")

	err = settings.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
	case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
		// Drop values from a file read by an earlier run.
		if err := settings.ReadConfig(strings.NewReader("")); err != nil {
			return "", ondusErrors.NewConfigurationError("config_path", path, "failed to reset config", err)
		}
	default:
		return "", ondusErrors.NewConfigurationError("config_path", path, "failed to read config file", err)
	}
	return path, nil
}
