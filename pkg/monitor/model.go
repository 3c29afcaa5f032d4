package monitor

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/modalfocus/pkg/focustrap"
	"github.com/marcus/modalfocus/pkg/monitor/modal"
	"github.com/marcus/modalfocus/pkg/monitor/mouse"
	"github.com/marcus/modalfocus/pkg/monitor/screen"
)

// Background button IDs.
const (
	buttonOpen = "open"
	buttonQuit = "quit"
)

const (
	panelX       = 2
	panelButtonY = 2
	panelGap     = 2
)

// Options configures the monitor.
type Options struct {
	Mouse        bool
	ModalWidth   int
	Variant      modal.Variant
	InitialFocus string
	Logger       *slog.Logger
}

// Model is the bubbletea model: a background panel with a save dialog that
// traps focus while it is open.
type Model struct {
	Width  int
	Height int

	StatusMessage string
	StatusIsError bool

	opts   Options
	logger *slog.Logger

	scr     *screen.Screen
	root    *screen.Node
	buttons []*screen.Node

	dialog *modal.Modal
	help   *modal.Modal
	form   *dialogForm

	// bgAction is set by background click hooks during a mouse dispatch.
	bgAction   string
	escPresses int
}

// NewModel builds the monitor.
func NewModel(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := &Model{
		opts:   opts,
		logger: opts.Logger,
		form:   newDialogForm(),
	}

	m.root = screen.NewNode("root", screen.KindContainer)
	m.root.OnKeyDown = m.onBackgroundKey
	for _, b := range []struct{ id, label string }{
		{buttonOpen, "Open dialog"},
		{buttonQuit, "Quit"},
	} {
		n := screen.NewNode(b.id, screen.KindButton).WithLabel(b.label)
		id := b.id
		n.OnClick = func() { m.bgAction = id }
		m.buttons = append(m.buttons, n)
		m.root.Append(n)
	}

	m.scr = screen.New(m.root, screen.WithLogger(m.logger))
	m.dialog = createSaveDialog(opts, m.form).Attach(m.scr)
	m.help = createHelpModal(opts).Attach(m.scr)
	m.buttons[0].Focus()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Screen returns the element tree host.
func (m *Model) Screen() *screen.Screen { return m.scr }

// Dialog returns the save dialog.
func (m *Model) Dialog() *modal.Modal { return m.dialog }

// openModal returns the modal currently open, or nil.
func (m *Model) openModal() *modal.Modal {
	for _, md := range []*modal.Modal{m.dialog, m.help} {
		if md.IsOpen() {
			return md
		}
	}
	return nil
}

// onBackgroundKey handles keys that bubble to the root. The dialog stops
// Escape before it gets here while open.
func (m *Model) onBackgroundKey(e focustrap.KeyEvent) {
	if e.Key() != focustrap.KeyEscape {
		return
	}
	m.escPresses++
	m.setStatus("Press q to quit", false)
	e.StopPropagation()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if md := m.openModal(); md != nil {
			action, cmd := md.HandleKey(msg)
			return m, tea.Batch(cmd, m.handleModalAction(md, action))
		}
		return m, m.handleBackgroundKey(msg)

	case tea.MouseMsg:
		if !m.opts.Mouse {
			return m, nil
		}
		if md := m.openModal(); md != nil {
			action, cmd := md.HandleMouse(msg)
			return m, tea.Batch(cmd, m.handleModalAction(md, action))
		}
		m.bgAction = ""
		m.scr.HandleMouse(msg)
		return m, m.runBackgroundAction(m.bgAction)
	}
	return m, nil
}

func (m *Model) handleBackgroundKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "o":
		return m.openDialog()
	case "?":
		m.layout()
		return m.help.Open(nil)
	}

	ev := m.scr.HandleKey(msg)
	if ev.Handled() {
		return nil
	}
	if msg.Type == tea.KeyEnter || msg.Type == tea.KeySpace {
		if a := m.scr.Active(); a != nil {
			return m.runBackgroundAction(a.ID)
		}
	}
	return nil
}

func (m *Model) runBackgroundAction(id string) tea.Cmd {
	switch id {
	case buttonOpen:
		return m.openDialog()
	case buttonQuit:
		return tea.Quit
	}
	return nil
}

func (m *Model) openDialog() tea.Cmd {
	m.layout()
	m.setStatus("", false)
	cmd := m.dialog.Open(func() {
		m.setStatus("Dialog dismissed", false)
	})
	m.logger.Info("dialog opened", "focus", activeID(m.scr))
	return cmd
}

func (m *Model) handleModalAction(md *modal.Modal, action string) tea.Cmd {
	if md == m.help {
		if action == actionCloseHelp {
			m.help.Close()
		}
		return nil
	}
	return m.handleDialogAction(action)
}

// handleDialogAction reacts to an action completed inside the dialog.
func (m *Model) handleDialogAction(action string) tea.Cmd {
	if action == "" {
		return nil
	}
	m.logger.Info("dialog action", "action", action)

	switch action {
	case modal.ActionDismiss:
		// onDismiss already updated the status
	case actionSave:
		if strings.TrimSpace(m.form.name.Value()) == "" {
			m.setStatus("File name is required", true)
			if n := m.dialog.Node("name"); n != nil {
				n.Focus()
			}
			return nil
		}
		m.dialog.Close()
		msg := "Saved " + m.form.fileName()
		if m.form.remember {
			msg += " (remembered)"
		}
		m.setStatus(msg, false)
	case actionDiscard:
		m.dialog.Close()
		m.setStatus("Changes discarded", false)
	case actionCancel:
		m.dialog.Close()
		m.setStatus("Cancelled", false)
	default:
		for _, f := range formats {
			if f.ID == action {
				m.setStatus("Format: "+f.Label, false)
			}
		}
	}
	return nil
}

func (m *Model) setStatus(msg string, isError bool) {
	m.StatusMessage = msg
	m.StatusIsError = isError
}

func activeID(scr *screen.Screen) string {
	if a := scr.Active(); a != nil {
		return a.ID
	}
	return ""
}

// layout places the background nodes for the current size.
func (m *Model) layout() {
	m.root.SetRect(mouse.Rect{W: m.Width, H: m.Height})
	x := panelX
	for _, n := range m.buttons {
		w := lipgloss.Width(panelButton.Render(n.Label))
		n.SetRect(mouse.Rect{X: x, Y: panelButtonY, W: w, H: 1})
		x += w + panelGap
	}
	m.scr.Layout()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}
	m.layout()
	bg := m.renderBackground()
	md := m.openModal()
	if md == nil {
		return bg
	}
	box := md.Render(m.Width, m.Height)
	b := md.Bounds()
	return overlayAt(bg, box, b.X, b.Y, m.Width, m.Height)
}

func (m *Model) renderBackground() string {
	lines := make([]string, m.Height)
	lines[0] = titleStyle.Render(" modalfocus")

	var row strings.Builder
	row.WriteString(strings.Repeat(" ", panelX))
	for i, n := range m.buttons {
		if i > 0 {
			row.WriteString(strings.Repeat(" ", panelGap))
		}
		style := panelButton
		if n.Focused() && m.openModal() == nil {
			style = panelButtonFocused
		}
		row.WriteString(style.Render(n.Label))
	}
	if m.Height > panelButtonY {
		lines[panelButtonY] = row.String()
	}

	if m.Height > panelButtonY+2 {
		lines[panelButtonY+2] = helpStyle.Render("  tab:focus  enter/o:open dialog  ?:keys  q:quit")
	}

	if m.Height > panelButtonY+3 {
		status := m.StatusMessage
		if status == "" {
			status = fmt.Sprintf("focus: %s", activeID(m.scr))
		}
		style := statusStyle
		if m.StatusIsError {
			style = statusErrorStyle
		}
		lines[m.Height-1] = style.Render(" " + status)
	}
	return strings.Join(lines, "\n")
}
