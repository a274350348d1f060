package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTokenCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored GitHub token",
	}

	cmd.AddCommand(newTokenSetCmd(app), newTokenClearCmd(app))

	return cmd
}

func newTokenSetCmd(app *app) *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store a GitHub token (read from stdin when --value is omitted)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if value == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no token given on stdin")
				}
				value = strings.TrimSpace(line)
			}

			if err := app.tokens.Save(cmd.Context(), value); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Token stored under %s\n", app.tokens.Key())
			return err
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Token value")

	return cmd
}

func newTokenClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored GitHub token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.tokens.Clear(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Token removed from %s\n", app.tokens.Key())
			return err
		},
	}
}
