package reply

import "github.com/charmbracelet/lipgloss"

type styles struct {
	speaker  lipgloss.Style
	phase    lipgloss.Style
	body     lipgloss.Style
	counts   lipgloss.Style
	created  lipgloss.Style
	conflict lipgloss.Style
	failed   lipgloss.Style
	link     lipgloss.Style
	field    lipgloss.Style
	value    lipgloss.Style
	section  lipgloss.Style
}

func newStyles() styles {
	return styles{
		speaker:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		phase:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		body:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		counts:   lipgloss.NewStyle().Faint(true),
		created:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		conflict: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		failed:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		link:     lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("159")),
		field:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		value:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		section:  lipgloss.NewStyle().MarginTop(1),
	}
}
