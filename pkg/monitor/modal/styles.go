package modal

import "github.com/charmbracelet/lipgloss"

// Colors shared with the monitor.
var (
	Primary      = lipgloss.Color("212")
	Error        = lipgloss.Color("196")
	Warning      = lipgloss.Color("214")
	Info         = lipgloss.Color("45")
	Muted        = lipgloss.Color("241")
	BgSecondary  = lipgloss.Color("235") // modal background
	BorderNormal = lipgloss.Color("240")
)

// Button styles
var (
	Button = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("238")).
		Padding(0, 2)

	ButtonFocused = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(Primary).
			Bold(true).
			Padding(0, 2)

	ButtonHover = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("245")).
			Padding(0, 2)

	ButtonDisabled = lipgloss.NewStyle().
			Foreground(Muted).
			Background(lipgloss.Color("236")).
			Padding(0, 2)

	ButtonDangerFocused = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(Error).
				Bold(true).
				Padding(0, 2)

	ButtonDangerHover = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("203")).
				Padding(0, 2)
)

// Text styles
var (
	ModalTitle = lipgloss.NewStyle().Bold(true)
	MutedText  = lipgloss.NewStyle().Foreground(Muted)
	Body       = lipgloss.NewStyle()
	FocusMark  = lipgloss.NewStyle().Foreground(Primary).Bold(true)
)

// List styles
var (
	ListItemNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	ListItemSelected = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255"))

	ListItemFocused = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	ListCursor = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// borderColor returns the frame color for a variant.
func borderColor(v Variant) lipgloss.Color {
	switch v {
	case VariantDanger:
		return Error
	case VariantWarning:
		return Warning
	case VariantInfo:
		return Info
	default:
		return Primary
	}
}

func frameStyle(v Variant, innerWidth int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor(v)).
		Background(BgSecondary).
		Padding(0, 1).
		Width(innerWidth)
}
