package cmd

import (
	"errors"
	"fmt"

	"ondus/internal/commands"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Send an authenticated GET request",
	Long: `Send GET <base-url><path> with the token as the Authorization header.

The token comes from --token, then ONDUS_TOKEN or the config file. With
--prompt-token and no token configured, it is read from the terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringP("token", "t", "", "Authorization token, sent verbatim")
	getCmd.Flags().Bool("prompt-token", false, "Prompt for the token when none is configured")
}

func runGet(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return errors.New("application not initialized")
	}

	token, _ := cmd.Flags().GetString("token")
	promptToken, _ := cmd.Flags().GetBool("prompt-token")
	if token == "" {
		token = app.Settings.Token
	}

	getCommand := commands.NewGetCommand(app.Client, app.TokenReader, app.Logger)
	result, err := getCommand.Execute(cmd.Context(), commands.GetRequest{
		Path:        args[0],
		Token:       token,
		PromptToken: promptToken,
	})
	if err != nil {
		return err
	}

	printResult(cmd, result)
	return nil
}

func printResult(cmd *cobra.Command, result *commands.Result) {
	if !result.Present {
		fmt.Fprintln(cmd.ErrOrStderr(), "no result (non-200 response)")
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(result.Body))
}
