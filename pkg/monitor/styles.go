package monitor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/modalfocus/pkg/monitor/modal"
)

var (
	primaryColor = modal.Primary
	errorColor   = modal.Error
	mutedColor   = modal.Muted
	successColor = lipgloss.Color("42")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	helpStyle = lipgloss.NewStyle().Foreground(mutedColor)

	panelButton = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 2)

	panelButtonFocused = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(primaryColor).
				Bold(true).
				Padding(0, 2)

	statusStyle      = lipgloss.NewStyle().Foreground(successColor)
	statusErrorStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
)
