package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bnema/platform-intake/internal/application"
	"github.com/bnema/platform-intake/internal/domain"
)

const chatHint = "Describe what you need; end each message with an empty line. Type /quit to leave."

func newChatCmd(app *app) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the intake assistant in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := app.buildRuntime(cmd.Context())
			if err != nil {
				return err
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
			}
			app.logger.Debug().Str("session_id", sessionID).Msg("chat session started")

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), chatHint)
			return runChat(cmd, app, rt.intake, sessionID)
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session id (random when empty)")

	return cmd
}

func runChat(cmd *cobra.Command, app *app, intake *application.IntakeService, sessionID string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	phase := domain.PhaseIdle
	var counts domain.Counts

	for message, err := range readMessages(cmd.InOrStdin()) {
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if strings.TrimSpace(message) == "/quit" {
			return nil
		}

		var reply application.Reply
		handle := func(ctx context.Context) (application.Reply, error) {
			return intake.Handle(ctx, sessionID, message)
		}
		if phase == domain.PhaseAwaitingTitle {
			reply, err = runPublishProgress(ctx, cmd.ErrOrStderr(), publishLabel(counts, message), handle)
		} else {
			reply, err = handle(ctx)
		}
		if err != nil {
			return err
		}
		phase = reply.Phase
		counts = reply.Counts

		rendered, err := app.replies(reply)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, rendered+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// readMessages yields blank-line separated messages. Nested role blocks
// need several lines, so a single newline does not end a message.
func readMessages(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		scanner := bufio.NewScanner(r)
		var lines []string
		flush := func() bool {
			if len(lines) == 0 {
				return true
			}
			message := strings.Join(lines, "\n")
			lines = lines[:0]
			return yield(message, nil)
		}

		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), "\r")
			if strings.TrimSpace(line) == "" {
				if !flush() {
					return
				}
				continue
			}
			lines = append(lines, line)
		}
		if err := scanner.Err(); err != nil {
			yield("", err)
			return
		}
		flush()
	}
}
