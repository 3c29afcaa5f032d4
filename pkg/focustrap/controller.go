package focustrap

import (
	"log/slog"
)

// Context is the dialog state supplied on every Bind.
type Context struct {
	Modal   Element // container focus is trapped in
	Overlay Element // backdrop around Modal
	Open    bool

	// OnDismiss is called for Escape and for outside clicks.
	OnDismiss func()

	InitialFocus  Element // focused on open when present
	FallbackFocus Element // focused on open when InitialFocus is absent, e.g. a close button
}

// Props is what the dialog root wires to its own events.
type Props struct {
	OnKeyDown func(KeyEvent)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller is a single-dialog focus trap. It is not safe for concurrent use;
// hosts call it from their event loop.
type Controller struct {
	doc    Document
	logger *slog.Logger

	ctx   Context
	props Props

	removeClick func()
	disposed    bool

	// Inputs of the last initial-focus pass.
	focusRan     bool
	lastOpen     bool
	lastInitial  Element
	lastFallback Element
}

// New creates a controller for doc.
func New(doc Document, opts ...Option) *Controller {
	c := &Controller{
		doc:    doc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.props = Props{OnKeyDown: c.onKeyDown}
	return c
}

// Bind applies ctx and returns the dialog props. Hosts call it on every
// render; open/close transitions attach and detach the click listener and
// place initial focus.
func (c *Controller) Bind(ctx Context) Props {
	c.ctx = ctx
	if c.disposed {
		return c.props
	}

	c.syncClickListener()
	c.syncInitialFocus()

	return c.props
}

// Props returns the props of the last Bind.
func (c *Controller) Props() Props {
	return c.props
}

// Listening reports whether the outside-click listener is attached.
func (c *Controller) Listening() bool {
	return c.removeClick != nil
}

// Close detaches the click listener. Later Binds only update the context.
func (c *Controller) Close() {
	c.detach()
	c.disposed = true
}

func (c *Controller) syncClickListener() {
	if !c.ctx.Open {
		c.detach()
		return
	}
	if c.removeClick != nil || c.doc == nil {
		return
	}
	c.removeClick = c.doc.AddClickListener(c.onClick)
	c.logger.Debug("dialog opened, click listener attached")
}

func (c *Controller) detach() {
	if c.removeClick == nil {
		return
	}
	remove := c.removeClick
	c.removeClick = nil
	remove()
	c.logger.Debug("click listener detached")
}

func (c *Controller) syncInitialFocus() {
	open, initial, fallback := c.ctx.Open, c.ctx.InitialFocus, c.ctx.FallbackFocus
	if c.focusRan && open == c.lastOpen && initial == c.lastInitial && fallback == c.lastFallback {
		return
	}
	c.focusRan = true
	c.lastOpen, c.lastInitial, c.lastFallback = open, initial, fallback

	if !open {
		return
	}
	switch {
	case initial != nil:
		initial.Focus()
	case fallback != nil:
		fallback.Focus()
	default:
		c.logger.Debug("no initial focus target")
	}
}

func (c *Controller) onClick(target Element) {
	modal, overlay := c.ctx.Modal, c.ctx.Overlay
	if modal == nil || overlay == nil {
		return
	}
	if !modal.Contains(target) && overlay.Contains(target) {
		c.logger.Debug("outside click, dismissing dialog")
		c.dismiss()
	}
}

func (c *Controller) onKeyDown(e KeyEvent) {
	switch e.Key() {
	case KeyTab:
		movement := 1
		if e.ShiftKey() {
			movement = -1
		}
		c.cycle(e, movement)
	case KeyEscape:
		c.dismiss()
		e.StopPropagation()
	}
}

// cycle moves focus by movement among the modal's focusable descendants.
func (c *Controller) cycle(e KeyEvent, movement int) {
	items := Focusables(c.ctx.Modal)
	if len(items) == 0 {
		c.logger.Debug("tab with no focusable items")
		return
	}
	e.PreventDefault()

	var active Element
	if c.doc != nil {
		active = c.doc.ActiveElement()
	}
	Step(items, active, movement).Focus()
}

func (c *Controller) dismiss() {
	if c.ctx.OnDismiss != nil {
		c.ctx.OnDismiss()
	}
}
