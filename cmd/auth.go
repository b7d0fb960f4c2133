package cmd

import (
	"errors"
	"fmt"

	"ondus/internal/commands"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var authCmd = &cobra.Command{
	Use:     "auth [path]",
	Aliases: []string{"login-token"},
	Short:   "Request a token and print it",
	Long: `POST to an auth endpoint (default ` + commands.DefaultAuthPath + `) and print the "token"
field of the response. Nothing is printed to stdout when the server does not answer 200.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAuth,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return errors.New("application not initialized")
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	}

	authCommand := commands.NewAuthCommand(app.Client, app.Logger)
	result, err := authCommand.Execute(cmd.Context(), commands.AuthRequest{Path: path})
	if err != nil {
		return err
	}

	if !result.Present {
		fmt.Fprintln(cmd.ErrOrStderr(), "no result (non-200 response)")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Token)
	return nil
}
