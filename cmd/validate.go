package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/platform-intake/internal/application"
	"github.com/bnema/platform-intake/internal/domain"
)

var errValidationFailed = errors.New("validation failed")

func newValidateCmd(app *app) *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:   "validate --kind KIND FILE",
		Short: "Validate a resource definition offline",
		Long:  "Validate reads key/value lines, positional values or an artifact file and checks them against the governance catalog. Use - to read from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseKind(kindName)
			if err != nil {
				return err
			}

			text, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			catalog, err := app.catalog()
			if err != nil {
				return err
			}

			var record domain.Record
			fields, err := application.Parse(text, kind)
			if err == nil {
				record, err = domain.Validate(catalog, kind, fields)
			}

			rendered, renderErr := app.validations(kind, record, err)
			if renderErr != nil {
				return renderErr
			}
			if _, writeErr := fmt.Fprintln(cmd.OutOrStdout(), rendered); writeErr != nil {
				return writeErr
			}
			if err != nil {
				return errValidationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kindName, "kind", "", "Resource kind (database|bucket|role)")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

func readInput(stdin io.Reader, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}
