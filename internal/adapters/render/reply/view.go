package reply

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/platform-intake/internal/application"
	"github.com/bnema/platform-intake/internal/domain"
)

// Render formats one assistant reply for the terminal chat client.
func Render(r application.Reply) (string, error) {
	return run(func(s styles) string { return renderReply(r, s) })
}

// RenderValidation formats the outcome of an offline validation run: the
// normalized record when err is nil, otherwise the problems found.
func RenderValidation(kind domain.Kind, record domain.Record, err error) (string, error) {
	return run(func(s styles) string { return renderValidation(kind, record, err, s) })
}

func renderReply(r application.Reply, s styles) string {
	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, s.speaker.Render("intake"), " ", s.phase.Render(phaseLabel(r.Phase, r.PendingKind))),
		s.body.Render(r.Text),
	}

	if r.Result != nil {
		lines = append(lines, s.section.Render(outcomeLine(*r.Result, s)))
	} else if r.Counts.Total() > 0 {
		lines = append(lines, s.counts.Render("holding: "+strings.Join(r.Counts.Lines(), ", ")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func phaseLabel(phase domain.Phase, pending domain.Kind) string {
	switch phase {
	case domain.PhaseCollecting:
		if pending != "" {
			return fmt.Sprintf("[collecting %s]", pending)
		}
		return "[collecting]"
	case domain.PhaseConfirming:
		return "[next resource?]"
	case domain.PhaseAwaitingTitle:
		return "[awaiting title]"
	default:
		return "[ready]"
	}
}

func outcomeLine(result domain.PublishResult, s styles) string {
	switch result.Outcome {
	case domain.OutcomeCreated:
		return s.created.Render("created") + " " + s.link.Render(result.URL)
	case domain.OutcomeConflict:
		line := s.conflict.Render("already open")
		if result.URL != "" {
			line += " " + s.link.Render(result.URL)
		}
		return line
	default:
		label := fmt.Sprintf("failed at %s", result.Stage)
		if result.Category != "" {
			label += fmt.Sprintf(" (%s)", result.Category)
		}
		if result.Pushed() {
			label += ", changes pushed"
		}
		return s.failed.Render(label)
	}
}

func renderValidation(kind domain.Kind, record domain.Record, err error, s styles) string {
	if err != nil {
		lines := []string{s.failed.Render(fmt.Sprintf("%s is invalid", kind.Label()))}
		lines = append(lines, problemLines(err, s)...)
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines := []string{s.created.Render(fmt.Sprintf("%s %s is valid", kind.Label(), record.Name()))}
	for _, field := range record.Fields() {
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.field.Render(field.Name+":"),
			" ",
			s.value.Render(formatValue(field.Value)),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func problemLines(err error, s styles) []string {
	var validation *domain.ValidationError
	if !errors.As(err, &validation) {
		return []string{s.body.Render("- " + err.Error())}
	}

	lines := make([]string, 0, len(validation.Fields))
	for _, field := range validation.Fields {
		lines = append(lines, s.body.Render("- "+field.String()))
	}
	return lines
}

func formatValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", value)
	}
}
