package mouse

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// dialogHitMap mirrors a modal laid out on an 80x24 screen: backdrop first,
// then the dialog frame, then its buttons.
func dialogHitMap() *Handler {
	h := NewHandler()
	h.HitMap.AddRect("modal-overlay", 0, 0, 80, 24, nil)
	h.HitMap.AddRect("modal", 15, 6, 50, 12, nil)
	h.HitMap.AddRect("save", 17, 15, 8, 1, "primary")
	h.HitMap.AddRect("cancel", 27, 15, 10, 1, nil)
	return h
}

func leftPress(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestRectContains(t *testing.T) {
	button := Rect{X: 17, Y: 15, W: 8, H: 1}

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"left edge", 17, 15, true},
		{"last cell", 24, 15, true},
		{"past right edge", 25, 15, false},
		{"before left edge", 16, 15, false},
		{"row above", 20, 14, false},
		{"row below", 20, 16, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := button.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRectEmpty(t *testing.T) {
	tests := []struct {
		r    Rect
		want bool
	}{
		{Rect{W: 0, H: 3}, true},
		{Rect{W: 4, H: -1}, true},
		{Rect{W: 1, H: 1}, false},
	}
	for _, tt := range tests {
		if got := tt.r.Empty(); got != tt.want {
			t.Errorf("%+v.Empty() = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestHitMapLaterRegionsWin(t *testing.T) {
	h := dialogHitMap()

	tests := []struct {
		name string
		x, y int
		want string
	}{
		{"backdrop corner", 0, 0, "modal-overlay"},
		{"backdrop beside dialog", 70, 10, "modal-overlay"},
		{"dialog body", 30, 8, "modal"},
		{"save button", 20, 15, "save"},
		{"gap between buttons", 26, 15, "modal"},
		{"cancel button", 30, 15, "cancel"},
		{"off screen", 90, 30, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ""
			if r := h.HitMap.Test(tt.x, tt.y); r != nil {
				got = r.ID
			}
			if got != tt.want {
				t.Errorf("Test(%d, %d) = %q, want %q", tt.x, tt.y, got, tt.want)
			}
		})
	}

	if r := h.HitMap.Test(20, 15); r == nil || r.Data != "primary" {
		t.Errorf("save region data = %v, want primary", r)
	}
}

func TestHitMapClearKeepsHandlerState(t *testing.T) {
	h := dialogHitMap()
	h.StartDrag(0, 0, "modal", 50)

	if n := len(h.HitMap.Regions()); n != 4 {
		t.Fatalf("got %d regions, want 4", n)
	}
	h.Clear()
	if n := len(h.HitMap.Regions()); n != 0 {
		t.Errorf("got %d regions after Clear, want 0", n)
	}
	if !h.IsDragging() {
		t.Error("Clear should not end a drag")
	}
	if r := h.HitMap.Test(20, 15); r != nil {
		t.Errorf("hit %q after Clear", r.ID)
	}
}

func TestHandleClickDoubleClick(t *testing.T) {
	h := dialogHitMap()
	now := time.Now()
	h.now = func() time.Time { return now }

	steps := []struct {
		name       string
		x, y       int
		advance    time.Duration
		wantRegion string
		wantDouble bool
	}{
		{"first click", 20, 15, 0, "save", false},
		{"quick second click", 20, 15, 100 * time.Millisecond, "save", true},
		{"third click starts over", 20, 15, 100 * time.Millisecond, "save", false},
		{"other region does not pair", 30, 15, 100 * time.Millisecond, "cancel", false},
		{"slow click does not pair", 30, 15, DoubleClickThreshold + time.Millisecond, "cancel", false},
		{"miss", 90, 30, 0, "", false},
		{"miss never pairs", 90, 30, 0, "", false},
	}

	for _, s := range steps {
		now = now.Add(s.advance)
		res := h.HandleClick(s.x, s.y)
		got := ""
		if res.Region != nil {
			got = res.Region.ID
		}
		if got != s.wantRegion || res.IsDoubleClick != s.wantDouble {
			t.Errorf("%s: region %q double %v, want %q %v", s.name, got, res.IsDoubleClick, s.wantRegion, s.wantDouble)
		}
	}
}

func TestHandleMouseClassifies(t *testing.T) {
	tests := []struct {
		name       string
		msg        tea.MouseMsg
		want       ActionType
		wantRegion string
	}{
		{"left press", leftPress(30, 15), ActionClick, "cancel"},
		{"motion", tea.MouseMsg{X: 20, Y: 15, Action: tea.MouseActionMotion}, ActionHover, "save"},
		{"wheel up", tea.MouseMsg{X: 30, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}, ActionScrollUp, "modal"},
		{"wheel down", tea.MouseMsg{X: 30, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}, ActionScrollDown, "modal"},
		{"shift wheel up", tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp, Shift: true}, ActionScrollLeft, "modal-overlay"},
		{"shift wheel down", tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown, Shift: true}, ActionScrollRight, "modal-overlay"},
		{"wheel right", tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelRight}, ActionScrollRight, "modal-overlay"},
		{"release without drag", tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionRelease}, ActionNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := dialogHitMap().HandleMouse(tt.msg)
			if a.Type != tt.want {
				t.Errorf("type = %v, want %v", a.Type, tt.want)
			}
			got := ""
			if a.Region != nil {
				got = a.Region.ID
			}
			if got != tt.wantRegion {
				t.Errorf("region = %q, want %q", got, tt.wantRegion)
			}
			if a.X != tt.msg.X || a.Y != tt.msg.Y {
				t.Errorf("position = (%d, %d), want (%d, %d)", a.X, a.Y, tt.msg.X, tt.msg.Y)
			}
		})
	}
}

func TestHandleMouseDoubleClick(t *testing.T) {
	h := dialogHitMap()

	if a := h.HandleMouse(leftPress(20, 15)); a.Type != ActionClick {
		t.Fatalf("first press = %v, want click", a.Type)
	}
	if a := h.HandleMouse(leftPress(20, 15)); a.Type != ActionDoubleClick {
		t.Errorf("second press = %v, want double-click", a.Type)
	}
}

func TestHandleMouseDrag(t *testing.T) {
	h := dialogHitMap()
	h.StartDrag(40, 6, "modal", 15)

	if h.DragRegion() != "modal" || h.DragStartValue() != 15 {
		t.Errorf("drag = %q from %d, want modal from 15", h.DragRegion(), h.DragStartValue())
	}

	a := h.HandleMouse(tea.MouseMsg{X: 44, Y: 4, Action: tea.MouseActionMotion})
	if a.Type != ActionDrag || a.DragDX != 4 || a.DragDY != -2 {
		t.Errorf("motion = %v (%d, %d), want drag (4, -2)", a.Type, a.DragDX, a.DragDY)
	}

	a = h.HandleMouse(tea.MouseMsg{X: 46, Y: 5, Action: tea.MouseActionRelease})
	if a.Type != ActionDragEnd || a.DragDX != 6 || a.DragDY != -1 {
		t.Errorf("release = %v (%d, %d), want drag-end (6, -1)", a.Type, a.DragDX, a.DragDY)
	}
	if h.IsDragging() || h.DragRegion() != "" {
		t.Error("release should end the drag")
	}

	if a := h.HandleMouse(tea.MouseMsg{X: 20, Y: 15, Action: tea.MouseActionMotion}); a.Type != ActionHover {
		t.Errorf("motion after drag = %v, want hover", a.Type)
	}
}

func TestActionTypeString(t *testing.T) {
	tests := map[ActionType]string{
		ActionNone:        "none",
		ActionClick:       "click",
		ActionDoubleClick: "double-click",
		ActionScrollLeft:  "scroll-left",
		ActionDragEnd:     "drag-end",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(a), got, want)
		}
	}
}
