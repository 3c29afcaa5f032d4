package modal

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/modalfocus/pkg/focustrap"
	"github.com/marcus/modalfocus/pkg/monitor/screen"
)

// InputOption configures an Input section.
type InputOption func(*inputSection)

type inputSection struct {
	id     string
	model  *textinput.Model
	label  string
	hidden bool
}

// Input creates a single-line text input backed by model.
func Input(id string, model *textinput.Model, opts ...InputOption) Section {
	s := &inputSection{id: id, model: model}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithLabel shows label above the input.
func WithLabel(label string) InputOption {
	return func(s *inputSection) { s.label = label }
}

// InputHidden makes the input a hidden field: it keeps its value, renders
// nothing and is never part of the tab order.
func InputHidden() InputOption {
	return func(s *inputSection) { s.hidden = true }
}

func (s *inputSection) Render(contentWidth int, _, _ string) RenderedSection {
	if s.hidden {
		return RenderedSection{
			Skip: true,
			Focusables: []FocusableInfo{{
				ID:        s.id,
				Kind:      screen.KindInput,
				Label:     s.label,
				InputType: focustrap.InputTypeHidden,
			}},
		}
	}

	s.model.Width = max(1, contentWidth-len(s.model.Prompt)-1)
	content := s.model.View()
	offsetY := 0
	if s.label != "" {
		content = MutedText.Render(s.label) + "\n" + content
		offsetY = 1
	}

	return RenderedSection{
		Content: content,
		Focusables: []FocusableInfo{{
			ID:        s.id,
			Kind:      screen.KindInput,
			Label:     s.label,
			OffsetY:   offsetY,
			Width:     contentWidth,
			Height:    1,
			InputType: "text",
		}},
	}
}

func (s *inputSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id || s.hidden {
		return "", nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		return "", nil
	}
	var cmd tea.Cmd
	*s.model, cmd = s.model.Update(msg)
	return "", cmd
}

func (s *inputSection) FocusChanged(id string, focused bool) tea.Cmd {
	if id != s.id {
		return nil
	}
	if focused {
		return s.model.Focus()
	}
	s.model.Blur()
	return nil
}
