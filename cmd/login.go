package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/platform-intake/internal/adapters/auth"
)

func newLoginCmd(app *app) *cobra.Command {
	var scopes []string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authorize intake against GitHub with the device flow",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flow := app.deviceFlow()
			if flow.ClientID == "" {
				return errors.New("github.client_id is not configured")
			}

			out := cmd.OutOrStdout()
			token, err := flow.Login(cmd.Context(), scopes, func(code auth.DeviceCode) {
				_, _ = fmt.Fprintf(out, "Open %s and enter the code %s\n", code.VerificationURL, code.UserCode)
			})
			if err != nil {
				return fmt.Errorf("github login: %w", err)
			}

			if err := app.tokens.Save(cmd.Context(), token.AccessToken); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "Logged in; token stored under %s\n", app.tokens.Key())
			if err == nil && app.tokens.Static() {
				_, err = fmt.Fprintln(out, "Note: github.token is set and takes precedence over the stored token.")
			}
			return err
		},
	}

	cmd.Flags().StringSliceVar(&scopes, "scope", auth.DefaultScopes, "OAuth scopes to request")

	return cmd
}
