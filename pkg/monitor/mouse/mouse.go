// Package mouse provides hit regions and mouse event classification for
// terminal UIs.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DoubleClickThreshold is the maximum gap between two clicks on the same
// region for them to count as a double-click.
const DoubleClickThreshold = 400 * time.Millisecond

// Rect is a screen rectangle. W and H are exclusive extents.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Region is a named hit area with optional payload.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds regions in registration order. Later regions win when they
// overlap, so register back to front.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers a region.
func (h *HitMap) Add(r Region) {
	h.regions = append(h.regions, r)
}

// AddRect registers a region from coordinates.
func (h *HitMap) AddRect(id string, x, y, w, hgt int, data any) {
	h.Add(Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: hgt}, Data: data})
}

// Test returns the topmost region containing (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			return &h.regions[i]
		}
	}
	return nil
}

// Clear removes all regions.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Regions returns the registered regions.
func (h *HitMap) Regions() []Region {
	return h.regions
}

// ActionType classifies a mouse message.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionHover
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionDrag
	ActionDragEnd
)

func (a ActionType) String() string {
	switch a {
	case ActionClick:
		return "click"
	case ActionDoubleClick:
		return "double-click"
	case ActionHover:
		return "hover"
	case ActionScrollUp:
		return "scroll-up"
	case ActionScrollDown:
		return "scroll-down"
	case ActionScrollLeft:
		return "scroll-left"
	case ActionScrollRight:
		return "scroll-right"
	case ActionDrag:
		return "drag"
	case ActionDragEnd:
		return "drag-end"
	default:
		return "none"
	}
}

// MouseAction is the result of HandleMouse.
type MouseAction struct {
	Type   ActionType
	Region *Region
	X, Y   int
	DragDX int
	DragDY int
}

// ClickResult is the result of HandleClick.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler tracks click timing and drag state on top of a HitMap.
type Handler struct {
	HitMap *HitMap

	lastClickID   string
	lastClickTime time.Time

	dragging       bool
	dragStartX     int
	dragStartY     int
	dragRegion     string
	dragStartValue int

	now func() time.Time
}

// NewHandler returns a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{
		HitMap: NewHitMap(),
		now:    time.Now,
	}
}

// HandleClick hit-tests a click and detects double-clicks. A double-click
// resets the detector, so a third click starts over.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	now := h.now()

	var id string
	if region != nil {
		id = region.ID
	}

	double := region != nil &&
		id == h.lastClickID &&
		!h.lastClickTime.IsZero() &&
		now.Sub(h.lastClickTime) <= DoubleClickThreshold

	if double {
		h.lastClickID = ""
		h.lastClickTime = time.Time{}
	} else {
		h.lastClickID = id
		h.lastClickTime = now
	}

	return ClickResult{Region: region, IsDoubleClick: double}
}

// StartDrag begins a drag on region, remembering the value being dragged.
func (h *Handler) StartDrag(x, y int, region string, startValue int) {
	h.dragging = true
	h.dragStartX = x
	h.dragStartY = y
	h.dragRegion = region
	h.dragStartValue = startValue
}

// IsDragging reports whether a drag is in progress.
func (h *Handler) IsDragging() bool { return h.dragging }

// DragRegion returns the region ID of the current drag.
func (h *Handler) DragRegion() string { return h.dragRegion }

// DragStartValue returns the value recorded by StartDrag.
func (h *Handler) DragStartValue() int { return h.dragStartValue }

// DragDelta returns the offset of (x, y) from the drag start.
func (h *Handler) DragDelta(x, y int) (int, int) {
	return x - h.dragStartX, y - h.dragStartY
}

// EndDrag stops the current drag.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
	h.dragStartValue = 0
}

// Clear removes all hit regions. Drag and click state is kept.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// HandleMouse classifies a bubbletea mouse message.
func (h *Handler) HandleMouse(msg tea.MouseMsg) MouseAction {
	action := MouseAction{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			action.Type = ActionScrollUp
			if msg.Shift {
				action.Type = ActionScrollLeft
			}
		case tea.MouseButtonWheelDown:
			action.Type = ActionScrollDown
			if msg.Shift {
				action.Type = ActionScrollRight
			}
		case tea.MouseButtonWheelLeft:
			action.Type = ActionScrollLeft
		case tea.MouseButtonWheelRight:
			action.Type = ActionScrollRight
		case tea.MouseButtonLeft:
			res := h.HandleClick(msg.X, msg.Y)
			action.Region = res.Region
			action.Type = ActionClick
			if res.IsDoubleClick {
				action.Type = ActionDoubleClick
			}
			return action
		}
		action.Region = h.HitMap.Test(msg.X, msg.Y)

	case tea.MouseActionMotion:
		if h.dragging {
			action.Type = ActionDrag
			action.DragDX, action.DragDY = h.DragDelta(msg.X, msg.Y)
			return action
		}
		action.Type = ActionHover
		action.Region = h.HitMap.Test(msg.X, msg.Y)

	case tea.MouseActionRelease:
		if h.dragging {
			action.Type = ActionDragEnd
			action.DragDX, action.DragDY = h.DragDelta(msg.X, msg.Y)
			h.EndDrag()
		}
	}

	return action
}
