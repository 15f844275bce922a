package tui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	HabitName lipgloss.Style
	Selected  lipgloss.Style
	Done      lipgloss.Style
	Missed    lipgloss.Style
	Footer    lipgloss.Style
	Error     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		HabitName: lipgloss.NewStyle().Width(22),
		Selected:  lipgloss.NewStyle().Reverse(true),
		Done:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Missed:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginTop(1),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}
