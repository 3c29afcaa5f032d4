package modal

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/modalfocus/pkg/focustrap"
	"github.com/marcus/modalfocus/pkg/monitor/mouse"
	"github.com/marcus/modalfocus/pkg/monitor/screen"
)

const screenW, screenH = 80, 24

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// host is a screen with one background button and a root key handler.
type host struct {
	scr       *screen.Screen
	bg        *screen.Node
	rootKeys  int
	dismissed int
}

func newHost() *host {
	h := &host{}
	root := screen.NewNode("root", screen.KindContainer)
	root.SetRect(mouse.Rect{W: screenW, H: screenH})
	h.bg = screen.NewNode("bg", screen.KindButton)
	h.bg.SetRect(mouse.Rect{X: 0, Y: 0, W: 10, H: 1})
	root.Append(h.bg)
	root.OnKeyDown = func(focustrap.KeyEvent) { h.rootKeys++ }
	h.scr = screen.New(root, screen.WithLogger(quietLogger()))
	h.scr.Layout()
	return h
}

func (h *host) activeID() string {
	if a := h.scr.Active(); a != nil {
		return a.ID
	}
	return ""
}

type fixture struct {
	*host
	m        *Modal
	name     textinput.Model
	token    textinput.Model
	remember bool
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{host: newHost(), name: textinput.New(), token: textinput.New()}
	f.token.SetValue("csrf")

	opts = append([]Option{WithLogger(quietLogger()), WithPrimaryAction("save")}, opts...)
	f.m = New("Save changes", opts...).
		AddSection(Text("Save before closing?")).
		AddSection(Input("name", &f.name, WithLabel("Name"))).
		AddSection(Input("token", &f.token, InputHidden())).
		AddSection(Checkbox("remember", "Remember choice", &f.remember)).
		AddSection(Spacer()).
		AddSection(Buttons(
			Btn("Save", "save"),
			Btn("Discard", "discard", BtnDanger()),
			Btn("Later", "later", BtnDisabled()),
			Btn("Cancel", "cancel"),
		))
	f.m.Attach(f.scr)
	return f
}

func (f *fixture) open() {
	f.bg.Focus()
	f.m.Open(func() { f.dismissed++ })
	f.m.Render(screenW, screenH)
}

func (f *fixture) key(t tea.KeyType) string {
	action, _ := f.m.HandleKey(tea.KeyMsg{Type: t})
	return action
}

func (f *fixture) clickAt(x, y int) string {
	action, _ := f.m.HandleMouse(tea.MouseMsg{
		X:      x,
		Y:      y,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	return action
}

func (f *fixture) click(id string) string {
	r := f.m.Node(id).Rect()
	return f.clickAt(r.X, r.Y)
}

func TestOpenFocusesFirstButton(t *testing.T) {
	f := newFixture()
	f.open()

	if got := f.activeID(); got != "save" {
		t.Errorf("active after open = %q, want save", got)
	}
	if f.scr.ListenerCount() != 1 {
		t.Errorf("ListenerCount = %d, want 1", f.scr.ListenerCount())
	}
	if !f.m.IsOpen() {
		t.Error("expected modal to be open")
	}
}

func TestOpenFocusesInitialElement(t *testing.T) {
	f := newFixture(WithInitialFocus("name"))
	f.open()

	if got := f.activeID(); got != "name" {
		t.Fatalf("active after open = %q, want name", got)
	}
	if !f.name.Focused() {
		t.Error("text input should be focused")
	}
}

func TestUnknownInitialFocusFallsBack(t *testing.T) {
	f := newFixture(WithInitialFocus("missing"))
	f.open()

	if got := f.activeID(); got != "save" {
		t.Errorf("active after open = %q, want save", got)
	}
}

func TestUnfocusableInitialFocusFallsBack(t *testing.T) {
	for _, id := range []string{"token", "later"} {
		t.Run(id, func(t *testing.T) {
			f := newFixture(WithInitialFocus(id))
			f.open()

			if got := f.activeID(); got != "save" {
				t.Errorf("active after open = %q, want save", got)
			}
			if a := f.scr.Active(); a != nil && !focustrap.IsFocusable(a) {
				t.Errorf("focused %q cannot take focus", a.ID)
			}
		})
	}
}

func TestTabCyclesInsideModal(t *testing.T) {
	f := newFixture()
	f.open()

	want := []string{"discard", "cancel", "name", "remember", "save", "discard"}
	for i, id := range want {
		f.key(tea.KeyTab)
		if got := f.activeID(); got != id {
			t.Fatalf("tab %d: active = %q, want %q", i+1, got, id)
		}
	}
	if f.rootKeys != len(want) {
		t.Errorf("root saw %d tab events, want %d", f.rootKeys, len(want))
	}
}

func TestShiftTabWrapsBackward(t *testing.T) {
	f := newFixture(WithInitialFocus("name"))
	f.open()

	f.key(tea.KeyShiftTab)
	if got := f.activeID(); got != "cancel" {
		t.Errorf("shift+tab from first = %q, want cancel", got)
	}
	if f.name.Focused() {
		t.Error("text input should blur when focus leaves it")
	}
}

func TestHiddenAndDisabledAreNotFocusable(t *testing.T) {
	f := newFixture()
	f.open()

	var ids []string
	for _, el := range focustrap.Focusables(f.m.Container()) {
		ids = append(ids, el.(*screen.Node).ID)
	}
	got := strings.Join(ids, ",")
	if got != "name,remember,save,discard,cancel" {
		t.Errorf("focusables = %s", got)
	}

	token := f.m.Node("token")
	if token == nil || token.InputType() != focustrap.InputTypeHidden {
		t.Fatal("hidden input should still have a node")
	}
	if f.token.Value() != "csrf" {
		t.Error("hidden input lost its value")
	}
}

func TestEscapeDismisses(t *testing.T) {
	f := newFixture()
	f.open()

	if action := f.key(tea.KeyEsc); action != ActionDismiss {
		t.Errorf("action = %q, want %q", action, ActionDismiss)
	}
	if f.dismissed != 1 {
		t.Errorf("dismiss callback ran %d times, want 1", f.dismissed)
	}
	if f.rootKeys != 0 {
		t.Error("escape propagated to the root handler")
	}
	if f.m.IsOpen() {
		t.Error("modal still open")
	}
	if f.scr.ListenerCount() != 0 {
		t.Errorf("ListenerCount after close = %d, want 0", f.scr.ListenerCount())
	}
	if got := f.activeID(); got != "bg" {
		t.Errorf("focus after close = %q, want bg", got)
	}
}

func TestBackdropClickDismisses(t *testing.T) {
	f := newFixture()
	f.open()

	b := f.m.Bounds()
	if action := f.clickAt(b.X+1, b.Y); action != "" {
		t.Errorf("click on the frame returned %q", action)
	}
	if f.dismissed != 0 || !f.m.IsOpen() {
		t.Fatal("click inside the modal dismissed it")
	}

	if action := f.clickAt(0, screenH-1); action != ActionDismiss {
		t.Errorf("backdrop click returned %q, want %q", action, ActionDismiss)
	}
	if f.dismissed != 1 {
		t.Errorf("dismiss callback ran %d times, want 1", f.dismissed)
	}
	if f.m.IsOpen() {
		t.Error("modal still open after backdrop click")
	}
}

func TestBackgroundIsCoveredWhileOpen(t *testing.T) {
	f := newFixture()
	f.open()

	// The background button sits under the overlay
	if action := f.clickAt(1, 0); action != ActionDismiss {
		t.Errorf("click over background button returned %q, want dismiss", action)
	}
	if got := f.activeID(); got != "bg" {
		t.Errorf("active = %q, want focus returned to bg", got)
	}
}

func TestButtonClickReturnsAction(t *testing.T) {
	f := newFixture()
	f.open()

	if action := f.click("discard"); action != "discard" {
		t.Errorf("click returned %q, want discard", action)
	}
	if got := f.activeID(); got != "discard" {
		t.Errorf("clicked button should take focus, active = %q", got)
	}
	if f.dismissed != 0 {
		t.Error("button click dismissed the modal")
	}

	if action := f.click("later"); action != "" {
		t.Errorf("disabled button returned %q", action)
	}
}

func TestCheckboxToggles(t *testing.T) {
	f := newFixture()
	f.open()

	f.click("remember")
	if !f.remember {
		t.Fatal("click should toggle the checkbox")
	}
	f.m.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if f.remember {
		t.Error("space should toggle the checkbox back")
	}
}

func TestEnterActions(t *testing.T) {
	f := newFixture()
	f.open()

	f.key(tea.KeyTab) // discard
	if action := f.key(tea.KeyEnter); action != "discard" {
		t.Errorf("enter on discard = %q", action)
	}

	f.m.Node("name").Focus()
	f.m.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("draft")})
	if f.name.Value() != "draft" {
		t.Errorf("input value = %q, want draft", f.name.Value())
	}
	if action := f.key(tea.KeyEnter); action != "save" {
		t.Errorf("enter in input = %q, want primary action save", action)
	}
}

func TestReopenKeepsOneListener(t *testing.T) {
	f := newFixture()
	for i := 0; i < 3; i++ {
		f.open()
		f.m.Render(screenW, screenH)
		if f.scr.ListenerCount() != 1 {
			t.Fatalf("cycle %d: ListenerCount = %d, want 1", i, f.scr.ListenerCount())
		}
		f.m.Close()
		if f.scr.ListenerCount() != 0 {
			t.Fatalf("cycle %d: ListenerCount after close = %d", i, f.scr.ListenerCount())
		}
	}
	if f.dismissed != 0 {
		t.Error("Close should not call the dismiss callback")
	}
}

func TestDetachRemovesListener(t *testing.T) {
	f := newFixture()
	f.open()

	f.m.Detach()

	if f.scr.ListenerCount() != 0 {
		t.Errorf("ListenerCount after detach = %d", f.scr.ListenerCount())
	}
	if f.scr.Root().Find("modal") != nil {
		t.Error("modal nodes still attached")
	}
}

func TestWhenSectionLeavesTabOrder(t *testing.T) {
	h := newHost()
	show := false
	m := New("Options", WithLogger(quietLogger())).
		AddSection(Buttons(Btn(" OK ", "ok"))).
		AddSection(When(func() bool { return show }, Buttons(Btn(" Extra ", "extra"))))
	m.Attach(h.scr)
	m.Open(nil)

	m.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	if got := h.activeID(); got != "ok" {
		t.Fatalf("with extra hidden, tab kept focus on %q, want ok", got)
	}

	show = true
	m.Render(screenW, screenH)
	m.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	if got := h.activeID(); got != "extra" {
		t.Errorf("with extra shown, tab focused %q, want extra", got)
	}

	show = false
	m.Render(screenW, screenH)
	if h.scr.Active() != nil {
		t.Errorf("hiding the focused section should blur it, active = %q", h.activeID())
	}
}

func TestModalWithoutFocusables(t *testing.T) {
	h := newHost()
	m := New("Notice", WithLogger(quietLogger())).AddSection(Text("Nothing to press."))
	m.Attach(h.scr)
	h.bg.Focus()
	m.Open(nil)

	if got := h.activeID(); got != "bg" {
		t.Fatalf("open without targets moved focus to %q", got)
	}
	if len(focustrap.Focusables(m.Container())) != 0 {
		t.Fatal("expected no focusables")
	}

	m.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	if got := h.activeID(); got != "bg" {
		t.Errorf("tab moved focus to %q", got)
	}

	if action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}); action != ActionDismiss {
		t.Errorf("escape with focus outside returned %q", action)
	}
}

func TestListFilterAndSelect(t *testing.T) {
	h := newHost()
	query := ""
	selected := 0
	items := []ListItem{
		{ID: "a", Label: "Alpha"},
		{ID: "b", Label: "Beta"},
		{ID: "c", Label: "Gamma"},
	}
	m := New("Pick", WithLogger(quietLogger()), WithInitialFocus("list")).
		AddSection(List("list", items, &selected, WithFilter(&query), WithMaxVisible(2)))
	m.Attach(h.scr)
	m.Open(nil)

	if got := h.activeID(); got != "list" {
		t.Fatalf("active = %q, want list", got)
	}

	m.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	if action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}); action != "b" {
		t.Errorf("enter on second item = %q, want b", action)
	}

	query = "gam"
	m.Render(screenW, screenH)
	if selected != 0 {
		t.Errorf("selection should clamp to the filtered items, got %d", selected)
	}
	if action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}); action != "c" {
		t.Errorf("enter on filtered item = %q, want c", action)
	}

	query = "zzz"
	m.Render(screenW, screenH)
	if focustrap.IsFocusable(m.Node("list")) {
		t.Error("empty list should not be focusable")
	}
}

func TestRenderLayout(t *testing.T) {
	f := newFixture(WithWidth(60))
	f.open()
	out := f.m.Render(screenW, screenH)

	if !strings.Contains(out, "Save changes") {
		t.Error("render should include the title")
	}
	b := f.m.Bounds()
	if b.W != 60 {
		t.Errorf("modal width = %d, want 60", b.W)
	}
	if b.X != (screenW-b.W)/2 || b.Y != (screenH-b.H)/2 {
		t.Errorf("modal not centred: %+v", b)
	}

	for _, id := range []string{"name", "remember", "save", "cancel"} {
		r := f.m.Node(id).Rect()
		if r.Empty() {
			t.Errorf("%s has no rect", id)
			continue
		}
		if r.X < b.X || r.Y < b.Y || r.X+r.W > b.X+b.W || r.Y+r.H > b.Y+b.H {
			t.Errorf("%s rect %+v outside modal %+v", id, r, b)
		}
	}

	save, discard := f.m.Node("save").Rect(), f.m.Node("discard").Rect()
	if save.Y != discard.Y || discard.X != save.X+save.W+buttonGap {
		t.Errorf("buttons misplaced: save %+v discard %+v", save, discard)
	}
}

func TestRenderWithoutScreen(t *testing.T) {
	m := New("Detached").AddSection(Text("body"))
	out := m.Render(screenW, screenH)
	if !strings.Contains(out, "Detached") || !strings.Contains(out, "body") {
		t.Errorf("unexpected render: %q", out)
	}
}

func TestParseVariant(t *testing.T) {
	cases := map[string]Variant{
		"":        VariantDefault,
		"default": VariantDefault,
		"Danger":  VariantDanger,
		"warning": VariantWarning,
		" info ":  VariantInfo,
	}
	for in, want := range cases {
		got, err := ParseVariant(in)
		if err != nil || got != want {
			t.Errorf("ParseVariant(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseVariant("loud"); err == nil {
		t.Error("expected error for unknown variant")
	}
}
