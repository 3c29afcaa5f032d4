package screen

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/modalfocus/pkg/focustrap"
	"github.com/marcus/modalfocus/pkg/monitor/mouse"
)

type listener struct {
	id int
	fn focustrap.ClickListener
}

// Screen owns a node tree and the state a document would hold.
type Screen struct {
	root    *Node
	active  *Node
	hovered *Node

	mouse     *mouse.Handler
	listeners []listener
	nextID    int

	logger *slog.Logger
}

var _ focustrap.Document = (*Screen)(nil)

// Option configures a Screen.
type Option func(*Screen)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Screen) {
		if l != nil {
			s.logger = l
		}
	}
}

// New attaches root to a new screen.
func New(root *Node, opts ...Option) *Screen {
	s := &Screen{
		root:   root,
		mouse:  mouse.NewHandler(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	root.screen = s
	return s
}

// Root returns the root node.
func (s *Screen) Root() *Node { return s.root }

// Active returns the focused node, or nil.
func (s *Screen) Active() *Node { return s.active }

// Hovered returns the node under the pointer after the last motion, or nil.
func (s *Screen) Hovered() *Node { return s.hovered }

// ActiveElement implements focustrap.Document.
func (s *Screen) ActiveElement() focustrap.Element {
	if s.active == nil {
		return nil
	}
	return s.active
}

// AddClickListener implements focustrap.Document.
func (s *Screen) AddClickListener(fn focustrap.ClickListener) func() {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of registered click listeners.
func (s *Screen) ListenerCount() int {
	return len(s.listeners)
}

// Focus makes n the active element. Nodes of another screen are ignored.
func (s *Screen) Focus(n *Node) {
	if n == nil || n.Screen() != s || s.active == n {
		return
	}
	prev := s.active
	s.active = n
	if prev != nil && prev.OnBlur != nil {
		prev.OnBlur()
	}
	if n.OnFocus != nil {
		n.OnFocus()
	}
}

// Blur clears the active element.
func (s *Screen) Blur() {
	prev := s.active
	s.active = nil
	if prev != nil && prev.OnBlur != nil {
		prev.OnBlur()
	}
}

// forget drops references to a detached subtree.
func (s *Screen) forget(n *Node) {
	if s.active != nil && n.Contains(s.active) {
		s.Blur()
	}
	if s.hovered != nil && n.Contains(s.hovered) {
		s.hovered = nil
	}
}

// Layout rebuilds hit regions from node rectangles. Nodes are registered in
// document order, so descendants and later siblings win overlapping hits.
// Hidden subtrees are skipped.
func (s *Screen) Layout() {
	s.mouse.Clear()
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.hidden {
			return
		}
		if !n.rect.Empty() {
			s.mouse.HitMap.Add(mouse.Region{ID: n.ID, Rect: n.rect, Data: n})
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(s.root)
}

// NodeAt returns the topmost node at (x, y), or nil.
func (s *Screen) NodeAt(x, y int) *Node {
	return regionNode(s.mouse.HitMap.Test(x, y))
}

func regionNode(r *mouse.Region) *Node {
	if r == nil {
		return nil
	}
	n, _ := r.Data.(*Node)
	return n
}

// Click delivers a click at (x, y). A focusable target takes focus, OnClick
// hooks run from the target up to the root, and then document listeners see
// the target. Listeners removed during dispatch are skipped; listeners added
// during dispatch wait for the next click.
func (s *Screen) Click(x, y int) *Node {
	target := s.NodeAt(x, y)
	s.clickNode(target)
	return target
}

func (s *Screen) clickNode(target *Node) {
	if target != nil {
		if focustrap.IsFocusable(target) {
			s.Focus(target)
		}
		for n := target; n != nil; n = n.parent {
			if n.OnClick != nil {
				if !n.disabled {
					n.OnClick()
				}
				break
			}
		}
	}

	var el focustrap.Element
	if target != nil {
		el = target
	}

	snapshot := make([]listener, len(s.listeners))
	copy(snapshot, s.listeners)
	for _, l := range snapshot {
		if s.hasListener(l.id) {
			l.fn(el)
		}
	}
}

func (s *Screen) hasListener(id int) bool {
	for _, l := range s.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

// HandleMouse routes a bubbletea mouse message. Left clicks are dispatched
// through Click and motion updates the hovered node.
func (s *Screen) HandleMouse(msg tea.MouseMsg) mouse.MouseAction {
	action := s.mouse.HandleMouse(msg)
	switch action.Type {
	case mouse.ActionClick, mouse.ActionDoubleClick:
		s.clickNode(regionNode(action.Region))
	case mouse.ActionHover:
		s.hovered = regionNode(action.Region)
	}
	return action
}

// HandleKey dispatches a key message. The event bubbles from the active
// element (or the root) through OnKeyDown hooks until one stops propagation.
// When no hook prevented the default, Tab and Shift+Tab move focus across
// every focusable node on the screen.
func (s *Screen) HandleKey(msg tea.KeyMsg) *KeyEvent {
	start := s.active
	if start == nil {
		start = s.root
	}
	return s.DispatchKey(start, msg)
}

// DispatchKey is HandleKey with an explicit target node.
func (s *Screen) DispatchKey(target *Node, msg tea.KeyMsg) *KeyEvent {
	e := NewKeyEvent(msg)

	for n := target; n != nil && !e.propagationStopped; n = n.parent {
		if n.OnKeyDown != nil {
			n.OnKeyDown(e)
		}
	}

	if !e.defaultPrevented && e.key == focustrap.KeyTab {
		movement := 1
		if e.shift {
			movement = -1
		}
		items := focustrap.Focusables(s.root)
		if next := focustrap.Step(items, s.ActiveElement(), movement); next != nil {
			next.Focus()
			e.defaultApplied = true
		}
	}

	s.logger.Debug("key dispatched",
		"key", e.key,
		"shift", e.shift,
		"prevented", e.defaultPrevented,
		"stopped", e.propagationStopped)
	return e
}
