package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/modalfocus/pkg/monitor/screen"
)

// ButtonDef describes one button of a Buttons row.
type ButtonDef struct {
	Label    string
	ID       string // action returned when the button is pressed
	Danger   bool
	Disabled bool
}

// ButtonOption configures a ButtonDef.
type ButtonOption func(*ButtonDef)

// Btn creates a button definition.
func Btn(label, id string, opts ...ButtonOption) ButtonDef {
	b := ButtonDef{Label: label, ID: id}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// BtnDanger styles the button as destructive.
func BtnDanger() ButtonOption {
	return func(b *ButtonDef) { b.Danger = true }
}

// BtnDisabled renders the button muted and removes it from the tab order.
func BtnDisabled() ButtonOption {
	return func(b *ButtonDef) { b.Disabled = true }
}

const buttonGap = 2

type buttonsSection struct {
	buttons []ButtonDef
}

// Buttons creates a row of buttons.
func Buttons(btns ...ButtonDef) Section {
	return &buttonsSection{buttons: btns}
}

func (s *buttonsSection) Render(_ int, focusID, hoverID string) RenderedSection {
	var sb strings.Builder
	var focusables []FocusableInfo
	x := 0

	for i, b := range s.buttons {
		if i > 0 {
			sb.WriteString(strings.Repeat(" ", buttonGap))
			x += buttonGap
		}

		rendered := buttonStyle(b, b.ID == focusID, b.ID == hoverID).Render(b.Label)
		w := lipgloss.Width(rendered)
		sb.WriteString(rendered)

		focusables = append(focusables, FocusableInfo{
			ID:       b.ID,
			Kind:     screen.KindButton,
			Label:    strings.TrimSpace(b.Label),
			OffsetX:  x,
			Width:    w,
			Height:   1,
			Disabled: b.Disabled,
		})
		x += w
	}

	return RenderedSection{Content: sb.String(), Focusables: focusables}
}

func buttonStyle(b ButtonDef, focused, hovered bool) lipgloss.Style {
	switch {
	case b.Disabled:
		return ButtonDisabled
	case focused && b.Danger:
		return ButtonDangerFocused
	case focused:
		return ButtonFocused
	case hovered && b.Danger:
		return ButtonDangerHover
	case hovered:
		return ButtonHover
	default:
		return Button
	}
}

func (s *buttonsSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}
	switch keyMsg.String() {
	case "enter", " ":
		for _, b := range s.buttons {
			if b.ID == focusID && !b.Disabled {
				return b.ID, nil
			}
		}
	}
	return "", nil
}

// owns reports whether id is one of the section's buttons.
func (s *buttonsSection) owns(id string) bool {
	for _, b := range s.buttons {
		if b.ID == id {
			return true
		}
	}
	return false
}
