package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	statusStyles = map[string]lipgloss.Style{
		"playing": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		"paused":  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		"stopped": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8")),
	}

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Width(12)

	partStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("8")).
				Italic(true).
				Padding(1, 2).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			MarginTop(1)

	panelStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("10"))
)
