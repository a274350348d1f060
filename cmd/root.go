package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	return newRootCmdFor(&app{})
}

func newRootCmdFor(app *app) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "intake",
		Short:         "Platform intake: collect resource requests and publish them as pull requests",
		Long:          "intake collects Glue database, S3 bucket and IAM role requests through a conversation, validates them against the governance catalog, and publishes them to the infrastructure repository as a pull request.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.load(configPath, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/intake/config.toml, or $INTAKE_CONFIG)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(app),
		newChatCmd(app),
		newValidateCmd(app),
		newLoginCmd(app),
		newTokenCmd(app),
	)

	return rootCmd
}
