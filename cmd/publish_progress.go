package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/platform-intake/internal/application"
	"github.com/bnema/platform-intake/internal/domain"
)

var (
	progressOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("✓")
	progressWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("!")
	progressFail = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
)

type publishDoneMsg struct {
	reply   application.Reply
	err     error
	elapsed time.Duration
}

// publishProgressModel shows what is being published and for how long, then
// leaves a one-line summary of the outcome on screen.
type publishProgressModel struct {
	spinner spinner.Model
	label   string
	started time.Time
	elapsed time.Duration
	publish tea.Cmd
	reply   application.Reply
	err     error
	done    bool
}

func newPublishProgressModel(label string, started time.Time, publish tea.Cmd) publishProgressModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return publishProgressModel{
		spinner: s,
		label:   label,
		started: started,
		publish: publish,
	}
}

func (m publishProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.publish)
}

func (m publishProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !msg.Time.IsZero() && msg.Time.After(m.started) {
			m.elapsed = msg.Time.Sub(m.started)
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case publishDoneMsg:
		m.done = true
		m.reply = msg.reply
		m.err = msg.err
		m.elapsed = msg.elapsed
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m publishProgressModel) View() string {
	if !m.done {
		return fmt.Sprintf("%s %s (%s)", m.spinner.View(), m.label, roundElapsed(m.elapsed))
	}
	return publishSummary(m.reply, m.err, m.elapsed)
}

// publishSummary is empty when the title message did not start a publish,
// for example when the user cancelled instead.
func publishSummary(reply application.Reply, err error, elapsed time.Duration) string {
	took := roundElapsed(elapsed)
	switch {
	case err != nil:
		return fmt.Sprintf("%s publish interrupted after %s\n", progressFail, took)
	case reply.Result == nil:
		return ""
	}

	switch reply.Result.Outcome {
	case domain.OutcomeCreated:
		return fmt.Sprintf("%s pull request ready in %s\n", progressOK, took)
	case domain.OutcomeConflict:
		return fmt.Sprintf("%s pushed in %s but a conflicting pull request is open\n", progressWarn, took)
	default:
		return fmt.Sprintf("%s publish failed at the %s step after %s\n", progressFail, reply.Result.Stage, took)
	}
}

func publishLabel(counts domain.Counts, title string) string {
	label := "Publishing"
	if lines := counts.Lines(); len(lines) > 0 {
		label += " " + strings.Join(lines, ", ")
	}
	if title = strings.TrimSpace(title); title != "" {
		label += fmt.Sprintf(" as %q", title)
	}
	return label + "..."
}

func roundElapsed(d time.Duration) time.Duration {
	if d < time.Second {
		return d.Round(100 * time.Millisecond)
	}
	return d.Round(time.Second)
}

// runPublishProgress runs publish while rendering progress on output.
// Publishing syncs, pushes and calls GitHub, so it can take a while.
func runPublishProgress(ctx context.Context, output io.Writer, label string, publish func(context.Context) (application.Reply, error)) (application.Reply, error) {
	started := time.Now()
	publishCmd := func() tea.Msg {
		reply, err := publish(ctx)
		return publishDoneMsg{reply: reply, err: err, elapsed: time.Since(started)}
	}

	p := tea.NewProgram(
		newPublishProgressModel(label, started, publishCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return application.Reply{}, err
	}

	result, ok := finalModel.(publishProgressModel)
	if !ok {
		return application.Reply{}, fmt.Errorf("unexpected final progress model type %T", finalModel)
	}
	return result.reply, result.err
}
