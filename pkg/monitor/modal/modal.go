package modal

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/modalfocus/pkg/focustrap"
	"github.com/marcus/modalfocus/pkg/monitor/mouse"
	"github.com/marcus/modalfocus/pkg/monitor/screen"
)

// ActionDismiss is returned when the modal is dismissed with Escape or a
// backdrop click.
const ActionDismiss = "dismiss"

const (
	defaultWidth   = 50
	minWidth       = 20
	defaultScreenW = 80
	defaultScreenH = 24

	// Content starts inside the border and the horizontal padding.
	frameOffsetX = 2
	frameOffsetY = 1
	// Title and the blank line under it.
	headerLines = 2
)

// Variant selects the frame color.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDanger
	VariantWarning
	VariantInfo
)

// ParseVariant maps a config string to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return VariantDefault, nil
	case "danger":
		return VariantDanger, nil
	case "warning":
		return VariantWarning, nil
	case "info":
		return VariantInfo, nil
	}
	return VariantDefault, fmt.Errorf("unknown variant %q", s)
}

func (v Variant) String() string {
	switch v {
	case VariantDanger:
		return "danger"
	case VariantWarning:
		return "warning"
	case VariantInfo:
		return "info"
	default:
		return "default"
	}
}

// Option configures a Modal.
type Option func(*Modal)

// WithID sets the node ID of the modal container. The overlay gets the same
// ID with an "-overlay" suffix.
func WithID(id string) Option {
	return func(m *Modal) {
		if id != "" {
			m.id = id
		}
	}
}

// WithWidth sets the modal width, border included.
func WithWidth(w int) Option {
	return func(m *Modal) {
		if w > 0 {
			m.width = max(w, minWidth)
		}
	}
}

// WithVariant sets the visual style.
func WithVariant(v Variant) Option {
	return func(m *Modal) { m.variant = v }
}

// WithHints shows or hides the keyboard hints at the bottom.
func WithHints(show bool) Option {
	return func(m *Modal) { m.showHints = show }
}

// WithPrimaryAction sets the action returned by Enter when the focused
// element does not produce one itself.
func WithPrimaryAction(actionID string) Option {
	return func(m *Modal) { m.primaryAction = actionID }
}

// WithInitialFocus names the element focused when the modal opens. Without
// it, or when the element is missing or cannot take focus (disabled, hidden
// input, not rendered), the first enabled button is focused.
func WithInitialFocus(id string) Option {
	return func(m *Modal) { m.initialFocus = id }
}

// WithLogger sets the logger for the modal and its focus controller.
func WithLogger(l *slog.Logger) Option {
	return func(m *Modal) {
		if l != nil {
			m.logger = l
		}
	}
}

// Modal is a dialog drawn over a screen. Its element tree lives under an
// overlay node appended to the screen root; a focustrap.Controller keeps
// focus inside it while open.
type Modal struct {
	id            string
	title         string
	width         int
	variant       Variant
	showHints     bool
	primaryAction string
	initialFocus  string
	logger        *slog.Logger

	sections []Section

	scr     *screen.Screen
	overlay *screen.Node
	box     *screen.Node
	nodes   map[string]*screen.Node // focusable nodes by ID
	owners  map[string]Section      // section owning each focusable

	ctrl *focustrap.Controller

	open        bool
	onDismiss   func()
	returnFocus *screen.Node
	pending     string
	cmds        []tea.Cmd

	screenW, screenH int
	bounds           mouse.Rect
}

// New creates a modal with the given title.
func New(title string, opts ...Option) *Modal {
	m := &Modal{
		id:        "modal",
		title:     title,
		width:     defaultWidth,
		showHints: true,
		logger:    slog.Default(),
		nodes:     make(map[string]*screen.Node),
		owners:    make(map[string]Section),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSection appends a section and returns the modal for chaining.
func (m *Modal) AddSection(s Section) *Modal {
	m.sections = append(m.sections, s)
	return m
}

// Attach mounts the modal on scr. The overlay is appended to the screen root
// and starts hidden.
func (m *Modal) Attach(scr *screen.Screen) *Modal {
	if m.scr != nil {
		m.Detach()
	}
	m.scr = scr
	m.overlay = screen.NewNode(m.id+"-overlay", screen.KindContainer).SetHidden(true)
	m.box = screen.NewNode(m.id, screen.KindContainer).WithLabel(m.title)
	m.overlay.Append(m.box)
	scr.Root().Append(m.overlay)
	m.ctrl = focustrap.New(scr, focustrap.WithLogger(m.logger))
	m.bind()
	return m
}

// Detach closes the modal and removes its nodes from the screen.
func (m *Modal) Detach() {
	if m.scr == nil {
		return
	}
	m.open = false
	m.ctrl.Close()
	if p := m.overlay.Parent(); p != nil {
		p.Remove(m.overlay)
	}
	m.scr = nil
	m.ctrl = nil
	m.nodes = make(map[string]*screen.Node)
	m.owners = make(map[string]Section)
}

// Container returns the modal container node.
func (m *Modal) Container() *screen.Node { return m.box }

// Overlay returns the backdrop node.
func (m *Modal) Overlay() *screen.Node { return m.overlay }

// Node returns the element with the given ID, or nil.
func (m *Modal) Node(id string) *screen.Node { return m.nodes[id] }

// Controller returns the focus controller, nil before Attach.
func (m *Modal) Controller() *focustrap.Controller { return m.ctrl }

// IsOpen reports whether the modal is open.
func (m *Modal) IsOpen() bool { return m.open }

// Bounds returns where the modal was last rendered.
func (m *Modal) Bounds() mouse.Rect { return m.bounds }

// Open shows the modal. onDismiss runs when the modal is dismissed by
// Escape or a backdrop click. The element focused before opening gets focus
// back on close. The returned command comes from the initially focused
// element, e.g. a text input's cursor blink.
func (m *Modal) Open(onDismiss func()) tea.Cmd {
	if m.scr == nil || m.open {
		return nil
	}
	m.open = true
	m.onDismiss = onDismiss
	m.returnFocus = m.scr.Active()
	m.overlay.SetHidden(false)
	m.layout()
	m.logger.Debug("modal opened", "id", m.id)
	return m.takeCmds()
}

// Close hides the modal without calling the dismiss callback.
func (m *Modal) Close() {
	if m.scr == nil || !m.open {
		return
	}
	m.open = false
	m.onDismiss = nil
	m.overlay.SetHidden(true)
	m.bind()
	m.scr.Layout()

	if ret := m.returnFocus; ret != nil && ret.Screen() == m.scr {
		ret.Focus()
	} else if active := m.scr.Active(); active != nil && m.box.Contains(active) {
		m.scr.Blur()
	}
	m.returnFocus = nil
	m.logger.Debug("modal closed", "id", m.id)
}

// dismiss is the controller's OnDismiss.
func (m *Modal) dismiss() {
	if !m.open {
		return
	}
	cb := m.onDismiss
	m.pending = ActionDismiss
	m.Close()
	if cb != nil {
		cb()
	}
}

// Render draws the modal for a screen of the given size, measures where each
// element landed and binds the focus controller. It returns the framed modal
// only; Bounds tells where to place it.
func (m *Modal) Render(screenW, screenH int) string {
	m.screenW, m.screenH = screenW, screenH

	width := min(m.width, max(screenW, minWidth))
	innerWidth := width - 2
	contentWidth := innerWidth - 2

	focusID, hoverID := m.focusedID(), m.hoveredID()

	type placed struct {
		section  Section
		rendered RenderedSection
		line     int
		height   int
	}
	var parts []string
	var layout []placed

	parts = append(parts, ModalTitle.Render(m.title), "")
	line := headerLines
	for _, s := range m.sections {
		r := s.Render(contentWidth, focusID, hoverID)
		p := placed{section: s, rendered: r, line: line}
		if !r.Skip {
			parts = append(parts, r.Content)
			p.height = lipgloss.Height(r.Content)
			line += p.height
		}
		layout = append(layout, p)
	}
	if m.showHints {
		parts = append(parts, "", MutedText.Render(m.hints()))
	}

	framed := frameStyle(m.variant, innerWidth).Render(strings.Join(parts, "\n"))
	boxW, boxH := lipgloss.Width(framed), lipgloss.Height(framed)
	x := max(0, (screenW-boxW)/2)
	y := max(0, (screenH-boxH)/2)
	m.bounds = mouse.Rect{X: x, Y: y, W: boxW, H: boxH}

	if m.scr == nil {
		return framed
	}

	m.overlay.SetRect(mouse.Rect{X: 0, Y: 0, W: screenW, H: screenH})
	m.box.SetRect(m.bounds)

	owners := make(map[string]Section)
	var sectionNodes []*screen.Node
	for i, p := range layout {
		if p.rendered.Skip && len(p.rendered.Focusables) == 0 {
			continue
		}
		sec := m.sectionNode(i, p.rendered.Skip)
		if !p.rendered.Skip {
			sec.SetRect(mouse.Rect{
				X: x + frameOffsetX,
				Y: y + frameOffsetY + p.line,
				W: contentWidth,
				H: p.height,
			})
		}

		var children []*screen.Node
		for _, f := range p.rendered.Focusables {
			n := m.focusableNode(f)
			if f.Width > 0 || f.Height > 0 {
				n.SetRect(mouse.Rect{
					X: x + frameOffsetX + f.OffsetX,
					Y: y + frameOffsetY + p.line + f.OffsetY,
					W: f.Width,
					H: f.Height,
				})
			} else {
				n.SetRect(mouse.Rect{})
			}
			owners[f.ID] = p.section
			children = append(children, n)
		}
		sec.SetChildren(children...)
		sectionNodes = append(sectionNodes, sec)
	}
	m.box.SetChildren(sectionNodes...)

	for id := range m.nodes {
		if _, ok := owners[id]; !ok {
			delete(m.nodes, id)
		}
	}
	m.owners = owners

	m.scr.Layout()
	m.bind()
	return framed
}

// layout renders at the last known size so the tree exists before focus is
// placed.
func (m *Modal) layout() {
	w, h := m.screenW, m.screenH
	if w == 0 || h == 0 {
		w, h = defaultScreenW, defaultScreenH
	}
	m.Render(w, h)
}

func (m *Modal) sectionNode(i int, skipped bool) *screen.Node {
	id := fmt.Sprintf("%s/section-%d", m.id, i)
	for _, c := range m.box.Children() {
		if c.ID == id {
			if skipped {
				c.SetRect(mouse.Rect{})
			}
			return c
		}
	}
	return screen.NewNode(id, screen.KindContainer)
}

func (m *Modal) focusableNode(f FocusableInfo) *screen.Node {
	n, ok := m.nodes[f.ID]
	if !ok || n.Kind != f.Kind {
		n = screen.NewNode(f.ID, f.Kind)
		id := f.ID
		n.OnFocus = func() { m.focusChanged(id, true) }
		n.OnBlur = func() { m.focusChanged(id, false) }
		n.OnClick = func() { m.clicked(id) }
		m.nodes[f.ID] = n
	}
	n.Label = f.Label
	n.SetDisabled(f.Disabled)
	n.SetInputType(f.InputType)
	return n
}

func (m *Modal) focusChanged(id string, focused bool) {
	if fa, ok := m.owners[id].(focusAware); ok {
		if cmd := fa.FocusChanged(id, focused); cmd != nil {
			m.cmds = append(m.cmds, cmd)
		}
	}
}

func (m *Modal) clicked(id string) {
	switch s := m.owners[id].(type) {
	case *buttonsSection:
		m.pending = id
	case *checkboxSection:
		s.Toggle()
	}
}

// bind hands the current tree to the focus controller.
func (m *Modal) bind() {
	if m.ctrl == nil {
		return
	}
	props := m.ctrl.Bind(focustrap.Context{
		Modal:         element(m.box),
		Overlay:       element(m.overlay),
		Open:          m.open,
		OnDismiss:     m.dismiss,
		InitialFocus:  m.initialElement(),
		FallbackFocus: element(m.firstButton()),
	})
	m.box.OnKeyDown = props.OnKeyDown
}

// initialElement returns the WithInitialFocus node when it can take focus.
func (m *Modal) initialElement() focustrap.Element {
	n := m.nodes[m.initialFocus]
	if n == nil || !focustrap.IsFocusable(n) {
		return nil
	}
	return n
}

// element avoids handing a typed nil to the controller.
func element(n *screen.Node) focustrap.Element {
	if n == nil {
		return nil
	}
	return n
}

func (m *Modal) firstButton() *screen.Node {
	if m.box == nil {
		return nil
	}
	var found *screen.Node
	m.box.Walk(func(n *screen.Node) bool {
		if n.Kind == screen.KindButton && !n.Disabled() {
			found = n
			return false
		}
		return true
	})
	return found
}

func (m *Modal) focusedID() string {
	if m.scr == nil {
		return ""
	}
	if a := m.scr.Active(); a != nil && m.box.Contains(a) {
		return a.ID
	}
	return ""
}

func (m *Modal) hoveredID() string {
	if m.scr == nil {
		return ""
	}
	if h := m.scr.Hovered(); h != nil && m.box.Contains(h) {
		return h.ID
	}
	return ""
}

func (m *Modal) hints() string {
	hints := "Tab focus · Esc close"
	if m.primaryAction != "" {
		hints = "Tab focus · Enter confirm · Esc close"
	}
	return hints
}

// HandleKey routes a key message while the modal is open and returns the
// action it completed, if any.
func (m *Modal) HandleKey(msg tea.KeyMsg) (string, tea.Cmd) {
	if m.scr == nil || !m.open {
		return "", nil
	}
	m.pending = ""

	// Keys reach the trap even when focus is outside the modal, e.g. when
	// there was nothing to focus on open.
	target := m.box
	if a := m.scr.Active(); a != nil && m.box.Contains(a) {
		target = a
	}
	ev := m.scr.DispatchKey(target, msg)
	if ev.Handled() || !m.open {
		return m.takePending(), m.takeCmds()
	}

	focusID := m.focusedID()
	var action string
	var cmd tea.Cmd
	if s, ok := m.owners[focusID]; ok {
		action, cmd = s.Update(msg, focusID)
	}
	if action == "" && msg.Type == tea.KeyEnter && m.primaryAction != "" && !m.focusOwnsEnter(focusID) {
		action = m.primaryAction
	}
	if action == "" {
		action = m.takePending()
	}
	return action, tea.Batch(cmd, m.takeCmds())
}

// focusOwnsEnter reports whether Enter on the focused element is consumed by
// its section.
func (m *Modal) focusOwnsEnter(id string) bool {
	switch s := m.owners[id].(type) {
	case *buttonsSection:
		return s.owns(id)
	case *listSection:
		return true
	}
	return false
}

// HandleMouse routes a mouse message while the modal is open and returns the
// action it completed, if any.
func (m *Modal) HandleMouse(msg tea.MouseMsg) (string, tea.Cmd) {
	if m.scr == nil || !m.open {
		return "", nil
	}
	m.pending = ""
	m.scr.HandleMouse(msg)
	return m.takePending(), m.takeCmds()
}

func (m *Modal) takePending() string {
	a := m.pending
	m.pending = ""
	return a
}

func (m *Modal) takeCmds() tea.Cmd {
	if len(m.cmds) == 0 {
		return nil
	}
	cmds := m.cmds
	m.cmds = nil
	return tea.Batch(cmds...)
}
