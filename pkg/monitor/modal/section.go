package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/modalfocus/pkg/monitor/screen"
)

// FocusableInfo describes a focusable area of a rendered section, relative to
// the section's top-left corner.
type FocusableInfo struct {
	ID        string
	Kind      screen.Kind
	Label     string
	OffsetX   int
	OffsetY   int
	Width     int
	Height    int
	Disabled  bool
	InputType string
}

// RenderedSection is the output of Section.Render.
type RenderedSection struct {
	Content    string
	Focusables []FocusableInfo
	// Skip drops the section from the layout entirely.
	Skip bool
}

// Section is one block of modal content.
type Section interface {
	// Render draws the section. focusID and hoverID name the focused and
	// hovered element of the modal, if any.
	Render(contentWidth int, focusID, hoverID string) RenderedSection
	// Update handles a message while focusID is focused and returns an action
	// ID when the message completes an action.
	Update(msg tea.Msg, focusID string) (string, tea.Cmd)
}

// focusAware sections react to their elements gaining or losing focus.
type focusAware interface {
	FocusChanged(id string, focused bool) tea.Cmd
}

// textSection renders wrapped static text.
type textSection struct {
	text string
}

// Text creates a static text section, wrapped to the content width.
func Text(s string) Section {
	return &textSection{text: s}
}

func (s *textSection) Render(contentWidth int, _, _ string) RenderedSection {
	return RenderedSection{Content: Body.Width(contentWidth).Render(s.text)}
}

func (s *textSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

// markdownSection renders markdown through glamour, cached per width.
type markdownSection struct {
	src      string
	width    int
	rendered string
}

// Markdown creates a section rendering src as markdown.
func Markdown(src string) Section {
	return &markdownSection{src: src}
}

func (s *markdownSection) Render(contentWidth int, _, _ string) RenderedSection {
	if s.rendered == "" || s.width != contentWidth {
		s.width = contentWidth
		s.rendered = renderMarkdown(s.src, contentWidth)
	}
	return RenderedSection{Content: s.rendered}
}

func (s *markdownSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

// renderMarkdown falls back to the plain source when glamour fails.
func renderMarkdown(src string, width int) string {
	if src == "" {
		return ""
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return src
	}
	out, err := renderer.Render(src)
	if err != nil {
		return src
	}
	// glamour pads every line to the wrap width and adds blank margins
	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(lines, "\n"))
}

// spacerSection is a blank line.
type spacerSection struct{}

// Spacer creates a blank line.
func Spacer() Section {
	return spacerSection{}
}

func (spacerSection) Render(int, string, string) RenderedSection {
	return RenderedSection{Content: ""}
}

func (spacerSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

// whenSection renders inner only while cond holds.
type whenSection struct {
	cond  func() bool
	inner Section
}

// When renders section only while condition returns true. A hidden section
// contributes no lines and no focusable elements.
func When(condition func() bool, section Section) Section {
	return &whenSection{cond: condition, inner: section}
}

func (s *whenSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	if !s.cond() {
		return RenderedSection{Skip: true}
	}
	return s.inner.Render(contentWidth, focusID, hoverID)
}

func (s *whenSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if !s.cond() {
		return "", nil
	}
	return s.inner.Update(msg, focusID)
}

func (s *whenSection) FocusChanged(id string, focused bool) tea.Cmd {
	if fa, ok := s.inner.(focusAware); ok {
		return fa.FocusChanged(id, focused)
	}
	return nil
}
