package modal

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/modalfocus/pkg/monitor/screen"
)

type checkboxSection struct {
	id      string
	label   string
	checked *bool
}

// Checkbox creates a toggleable checkbox bound to checked.
func Checkbox(id, label string, checked *bool) Section {
	return &checkboxSection{id: id, label: label, checked: checked}
}

func (s *checkboxSection) Render(_ int, focusID, hoverID string) RenderedSection {
	box := "[ ] "
	if s.checked != nil && *s.checked {
		box = "[x] "
	}

	style := ListItemNormal
	switch s.id {
	case focusID:
		style = ListItemFocused
	case hoverID:
		style = ListItemSelected
	}
	content := style.Render(box + s.label)

	return RenderedSection{
		Content: content,
		Focusables: []FocusableInfo{{
			ID:     s.id,
			Kind:   screen.KindCheckbox,
			Label:  s.label,
			Width:  lipgloss.Width(content),
			Height: 1,
		}},
	}
}

func (s *checkboxSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id || s.checked == nil {
		return "", nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == " " {
		*s.checked = !*s.checked
	}
	return "", nil
}

// Toggle flips the checkbox; used for mouse clicks.
func (s *checkboxSection) Toggle() {
	if s.checked != nil {
		*s.checked = !*s.checked
	}
}
