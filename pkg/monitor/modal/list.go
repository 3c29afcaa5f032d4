package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/marcus/modalfocus/pkg/monitor/screen"
)

// ListItem represents an item in a list section.
type ListItem struct {
	ID    string // Unique identifier for this item
	Label string // Display text
	Data  any    // Optional associated data
}

// ListOption is a functional option for List sections.
type ListOption func(*listSection)

// listSection renders a scrollable list of items.
type listSection struct {
	id           string
	items        []ListItem
	selectedIdx  *int    // index into the visible (filtered) items
	filter       *string // fuzzy filter query, nil for none
	maxVisible   int
	scrollOffset int
}

// List creates a list section with selectable items.
// selectedIdx is a pointer to the currently selected index (can be nil for no selection).
func List(id string, items []ListItem, selectedIdx *int, opts ...ListOption) Section {
	s := &listSection{
		id:          id,
		items:       items,
		selectedIdx: selectedIdx,
		maxVisible:  5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithMaxVisible sets the maximum number of visible items.
func WithMaxVisible(n int) ListOption {
	return func(s *listSection) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

// WithFilter fuzzy-filters the items by *query on every render.
func WithFilter(query *string) ListOption {
	return func(s *listSection) {
		s.filter = query
	}
}

// Visible returns the items that pass the filter, best match first.
func (s *listSection) Visible() []ListItem {
	if s.filter == nil || strings.TrimSpace(*s.filter) == "" {
		return s.items
	}
	labels := make([]string, len(s.items))
	for i, it := range s.items {
		labels[i] = it.Label
	}
	matches := fuzzy.Find(strings.TrimSpace(*s.filter), labels)
	out := make([]ListItem, 0, len(matches))
	for _, m := range matches {
		out = append(out, s.items[m.Index])
	}
	return out
}

func (s *listSection) Render(contentWidth int, focusID, _ string) RenderedSection {
	items := s.Visible()
	if len(items) == 0 {
		// An empty list still renders a line but cannot take focus
		return RenderedSection{
			Content: MutedText.Render("(no items)"),
			Focusables: []FocusableInfo{{
				ID:       s.id,
				Kind:     screen.KindList,
				Width:    contentWidth,
				Height:   1,
				Disabled: true,
			}},
		}
	}

	visibleCount := min(s.maxVisible, len(items))
	selectedIdx := 0
	if s.selectedIdx != nil {
		*s.selectedIdx = clamp(*s.selectedIdx, 0, len(items)-1)
		selectedIdx = *s.selectedIdx
	}

	// Keep the selection in view
	if selectedIdx < s.scrollOffset {
		s.scrollOffset = selectedIdx
	} else if selectedIdx >= s.scrollOffset+visibleCount {
		s.scrollOffset = selectedIdx - visibleCount + 1
	}
	s.scrollOffset = clamp(s.scrollOffset, 0, max(0, len(items)-visibleCount))

	listIsFocused := focusID == s.id

	var sb strings.Builder
	for i := 0; i < visibleCount; i++ {
		itemIdx := s.scrollOffset + i
		item := items[itemIdx]
		isSelected := s.selectedIdx != nil && *s.selectedIdx == itemIdx

		style := ListItemNormal
		switch {
		case isSelected && listIsFocused:
			style = ListItemFocused
		case isSelected:
			style = ListItemSelected
		}

		cursor := "  "
		if isSelected {
			cursor = ListCursor.Render("> ")
		}

		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(cursor + style.Render(item.Label))
	}

	content := sb.String()
	height := visibleCount
	if s.scrollOffset > 0 {
		content = MutedText.Render("↑ more above") + "\n" + content
		height++
	}
	if s.scrollOffset+visibleCount < len(items) {
		content = content + "\n" + MutedText.Render("↓ more below")
		height++
	}

	// The list is one focusable, so Tab moves past it rather than through
	// its items.
	return RenderedSection{
		Content: content,
		Focusables: []FocusableInfo{{
			ID:     s.id,
			Kind:   screen.KindList,
			Width:  contentWidth,
			Height: height,
		}},
	}
}

func (s *listSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id || s.selectedIdx == nil {
		return "", nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}
	items := s.Visible()
	if len(items) == 0 {
		return "", nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if *s.selectedIdx > 0 {
			*s.selectedIdx--
		}
	case "down", "j":
		if *s.selectedIdx < len(items)-1 {
			*s.selectedIdx++
		}
	case "home":
		*s.selectedIdx = 0
	case "end":
		*s.selectedIdx = len(items) - 1
	case "enter":
		if *s.selectedIdx >= 0 && *s.selectedIdx < len(items) {
			return items[*s.selectedIdx].ID, nil
		}
	}
	return "", nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
