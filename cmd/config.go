package cmd

import (
	"fmt"
	"log/slog"

	"ondus/internal/adapters/filesystem"
	"ondus/internal/config"
	"ondus/internal/logging"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the ondus config file",
	Long: `Inspect and edit the ondus config file.

These commands do not require valid settings, so they can repair a file
or environment that stops the other commands from starting.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show the effective settings",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipAppAnnotation: "true"},
	RunE:        runConfigShow,
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var configSetCmd = &cobra.Command{
	Use:         "set <key> <value>",
	Short:       "Store a setting in the config file",
	Long:        "Store a setting in the config file. Supported keys: " + fmt.Sprint(config.Keys()),
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{skipAppAnnotation: "true"},
	RunE:        runConfigSet,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// runConfigShow prints the merged values as configured, then reports any
// that would keep the other commands from starting.
func runConfigShow(cmd *cobra.Command, _ []string) error {
	path, err := readConfigFile()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config file: %s\n", path)
	for _, key := range config.Keys() {
		value := fmt.Sprint(settings.Get(key))
		if key == config.KeyToken {
			value = maskToken(value)
		}
		fmt.Fprintf(out, "%s: %s\n", key, value)
	}

	if _, err := config.Load(settings); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "invalid settings: %v\n", err)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	manager, err := newConfigManager(cmd)
	if err != nil {
		return err
	}

	if err := manager.Set(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s in %s\n", args[0], manager.Path())
	return nil
}

// newConfigManager builds only what `config set` needs, bypassing settings validation.
func newConfigManager(cmd *cobra.Command) (*config.Manager, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewLoggerTo(cmd.ErrOrStderr(), level)

	return config.NewManager(filesystem.New(), path, logger), nil
}

func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	return "(set)"
}
