package screen

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/modalfocus/pkg/focustrap"
)

// KeyEvent adapts a bubbletea key message to focustrap.KeyEvent.
type KeyEvent struct {
	Msg tea.KeyMsg

	key   string
	shift bool

	defaultPrevented   bool
	propagationStopped bool
	defaultApplied     bool
}

var _ focustrap.KeyEvent = (*KeyEvent)(nil)

// NewKeyEvent normalises msg. Shift+Tab becomes Tab with the shift flag set.
func NewKeyEvent(msg tea.KeyMsg) *KeyEvent {
	e := &KeyEvent{Msg: msg}
	switch msg.Type {
	case tea.KeyTab:
		e.key = focustrap.KeyTab
	case tea.KeyShiftTab:
		e.key = focustrap.KeyTab
		e.shift = true
	case tea.KeyEsc:
		e.key = focustrap.KeyEscape
	default:
		e.key = msg.String()
	}
	return e
}

func (e *KeyEvent) Key() string      { return e.key }
func (e *KeyEvent) ShiftKey() bool   { return e.shift }
func (e *KeyEvent) PreventDefault()  { e.defaultPrevented = true }
func (e *KeyEvent) StopPropagation() { e.propagationStopped = true }

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *KeyEvent) DefaultPrevented() bool { return e.defaultPrevented }

// PropagationStopped reports whether a handler called StopPropagation.
func (e *KeyEvent) PropagationStopped() bool { return e.propagationStopped }

// Handled reports whether anything reacted to the event: a handler prevented
// the default or stopped propagation, or the screen moved focus itself.
func (e *KeyEvent) Handled() bool {
	return e.defaultPrevented || e.propagationStopped || e.defaultApplied
}
