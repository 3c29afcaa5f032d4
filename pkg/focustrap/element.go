package focustrap

// Key names reported by KeyEvent.Key. They match bubbletea's key strings.
const (
	KeyTab    = "tab"
	KeyEscape = "esc"
)

// InputTypeHidden is the input type that is never focusable.
const InputTypeHidden = "hidden"

// Element is the capability set the controller needs from a host element.
// Implementations must be comparable (pointer types), since the active
// element is located by identity.
type Element interface {
	TabIndex() int
	Disabled() bool
	Hidden() bool
	// InputType is the input type of form fields, or "" for other elements.
	InputType() string
	// Size is the rendered width and height.
	Size() (width, height int)
	// Contains reports whether other is this element or one of its descendants.
	Contains(other Element) bool
	// Descendants returns every descendant in document order, excluding the
	// element itself.
	Descendants() []Element
	Focus()
}

// ClickListener receives the target of a document click. target may be nil
// when the click hit no element.
type ClickListener func(target Element)

// Document is the host document the controller reads focus from and listens
// for clicks on.
type Document interface {
	ActiveElement() Element
	// AddClickListener registers fn and returns a function that removes it.
	AddClickListener(fn ClickListener) (remove func())
}

// KeyEvent is a keydown event delivered to the dialog root.
type KeyEvent interface {
	Key() string
	ShiftKey() bool
	PreventDefault()
	StopPropagation()
}

// IsFocusable reports whether el can take keyboard focus: a non-negative tab
// index, not disabled, and visible.
func IsFocusable(el Element) bool {
	if el == nil {
		return false
	}
	return el.TabIndex() >= 0 && !el.Disabled() && isVisible(el)
}

func isVisible(el Element) bool {
	if el.Hidden() || el.InputType() == InputTypeHidden {
		return false
	}
	w, h := el.Size()
	return w > 0 || h > 0
}

// Focusables returns the focusable descendants of container in document
// order. The result is computed from the current tree on every call.
func Focusables(container Element) []Element {
	if container == nil {
		return nil
	}
	var items []Element
	for _, el := range container.Descendants() {
		if IsFocusable(el) {
			items = append(items, el)
		}
	}
	return items
}

// Step returns the item movement positions away from current in items,
// wrapping to the first item when moving forward past the end and to the last
// item when moving backward past the start. A current that is not in items
// counts as position -1. Step returns nil when items is empty.
func Step(items []Element, current Element, movement int) Element {
	if len(items) == 0 {
		return nil
	}
	return items[nextIndex(indexOf(items, current), movement, len(items))]
}

// indexOf returns the position of el in items, or -1.
func indexOf(items []Element, el Element) int {
	if el == nil {
		return -1
	}
	for i, item := range items {
		if item == el {
			return i
		}
	}
	return -1
}

// nextIndex moves from index by movement and wraps out-of-range results to
// the first item (forward) or the last item (backward).
func nextIndex(index, movement, n int) int {
	next := index + movement
	if next >= 0 && next < n {
		return next
	}
	if movement > 0 {
		return 0
	}
	return n - 1
}
