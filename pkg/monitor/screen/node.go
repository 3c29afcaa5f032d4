// Package screen is a retained element tree for a terminal frame. It plays the
// part of a document for pkg/focustrap: nodes carry tab order, disabled and
// hidden state and a measured rectangle, and the Screen tracks the active
// element, dispatches key events up the tree and delivers clicks to document
// listeners.
package screen

import (
	"github.com/marcus/modalfocus/pkg/focustrap"
	"github.com/marcus/modalfocus/pkg/monitor/mouse"
)

// Kind identifies what a node renders as.
type Kind int

const (
	KindContainer Kind = iota
	KindText
	KindButton
	KindCheckbox
	KindInput
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindButton:
		return "button"
	case KindCheckbox:
		return "checkbox"
	case KindInput:
		return "input"
	case KindList:
		return "list"
	default:
		return "container"
	}
}

// interactive kinds take focus by default.
func (k Kind) interactive() bool {
	return k == KindButton || k == KindCheckbox || k == KindInput || k == KindList
}

// Node is one element of the tree.
type Node struct {
	ID    string
	Kind  Kind
	Label string

	// Event hooks. OnKeyDown receives bubbling key events. For a click, only
	// the OnClick nearest the target runs.
	OnKeyDown func(focustrap.KeyEvent)
	OnClick   func()
	OnFocus   func()
	OnBlur    func()

	tabIndex  int
	disabled  bool
	hidden    bool
	inputType string
	rect      mouse.Rect

	parent   *Node
	children []*Node
	screen   *Screen
}

var _ focustrap.Element = (*Node)(nil)

// NewNode creates a detached node. Interactive kinds get tab index 0, others -1.
func NewNode(id string, kind Kind) *Node {
	n := &Node{ID: id, Kind: kind, tabIndex: -1}
	if kind.interactive() {
		n.tabIndex = 0
	}
	return n
}

// WithLabel sets the label and returns n.
func (n *Node) WithLabel(label string) *Node {
	n.Label = label
	return n
}

// SetTabIndex sets the tab index and returns n.
func (n *Node) SetTabIndex(i int) *Node {
	n.tabIndex = i
	return n
}

// SetDisabled sets the disabled flag and returns n.
func (n *Node) SetDisabled(d bool) *Node {
	n.disabled = d
	return n
}

// SetHidden sets the hidden flag and returns n.
func (n *Node) SetHidden(h bool) *Node {
	n.hidden = h
	return n
}

// SetInputType sets the input type and returns n.
func (n *Node) SetInputType(t string) *Node {
	n.inputType = t
	return n
}

// SetRect records where the node was rendered.
func (n *Node) SetRect(r mouse.Rect) {
	n.rect = r
}

// Rect returns the last rendered rectangle.
func (n *Node) Rect() mouse.Rect {
	return n.rect
}

// Append adds children in document order and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Remove detaches child from n.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			if s := n.Screen(); s != nil {
				s.forget(child)
			}
			return
		}
	}
}

// SetChildren replaces the children of n, in order. Dropped children are
// detached; children that stay keep focus and hooks.
func (n *Node) SetChildren(children ...*Node) {
	keep := make(map[*Node]bool, len(children))
	for _, c := range children {
		keep[c] = true
	}
	for _, c := range append([]*Node(nil), n.children...) {
		if !keep[c] {
			n.Remove(c)
		}
	}

	next := make([]*Node, 0, len(children))
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.parent != nil && c.parent != n {
			c.parent.Remove(c)
		}
		c.parent = n
		next = append(next, c)
	}
	n.children = next
}

// RemoveChildren detaches every child.
func (n *Node) RemoveChildren() {
	for len(n.children) > 0 {
		n.Remove(n.children[0])
	}
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the direct children.
func (n *Node) Children() []*Node { return n.children }

// Find returns the first node with the given ID in n's subtree, n included.
func (n *Node) Find(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Screen returns the screen n is attached to, or nil.
func (n *Node) Screen() *Screen {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root.screen
}

// Walk visits n and its descendants in document order until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// TabIndex implements focustrap.Element.
func (n *Node) TabIndex() int { return n.tabIndex }

// Disabled implements focustrap.Element.
func (n *Node) Disabled() bool { return n.disabled }

// Hidden implements focustrap.Element. It reports the node's own flag only.
func (n *Node) Hidden() bool { return n.hidden }

// InputType implements focustrap.Element.
func (n *Node) InputType() string { return n.inputType }

// Size implements focustrap.Element. Nodes inside a hidden subtree have no
// rendered size.
func (n *Node) Size() (int, int) {
	for p := n; p != nil; p = p.parent {
		if p.hidden {
			return 0, 0
		}
	}
	return n.rect.W, n.rect.H
}

// Contains implements focustrap.Element. A node contains itself.
func (n *Node) Contains(other focustrap.Element) bool {
	o, ok := other.(*Node)
	if !ok {
		return false
	}
	for ; o != nil; o = o.parent {
		if o == n {
			return true
		}
	}
	return false
}

// Descendants implements focustrap.Element.
func (n *Node) Descendants() []focustrap.Element {
	var out []focustrap.Element
	for _, c := range n.children {
		c.Walk(func(d *Node) bool {
			out = append(out, d)
			return true
		})
	}
	return out
}

// Focus implements focustrap.Element. It is a no-op for detached nodes.
func (n *Node) Focus() {
	if s := n.Screen(); s != nil {
		s.Focus(n)
	}
}

// Focused reports whether n is the active element of its screen.
func (n *Node) Focused() bool {
	s := n.Screen()
	return s != nil && s.active == n
}
