package cmd

import (
	"errors"

	"ondus/internal/commands"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var postCmd = &cobra.Command{
	Use:   "post <path>",
	Short: "Send a POST request without a body",
	Long:  `Send POST <base-url><path> with no body and no Authorization header.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPost,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(postCmd)
}

func runPost(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return errors.New("application not initialized")
	}

	postCommand := commands.NewPostCommand(app.Client, app.Logger)
	result, err := postCommand.Execute(cmd.Context(), commands.PostRequest{Path: args[0]})
	if err != nil {
		return err
	}

	printResult(cmd, result)
	return nil
}
