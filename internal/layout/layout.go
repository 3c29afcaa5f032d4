// Package layout builds modals from JSON dialog definitions and describes
// the element tree they produce.
package layout

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/marcus/modalfocus/internal/output"
	"github.com/marcus/modalfocus/pkg/focustrap"
	"github.com/marcus/modalfocus/pkg/monitor/modal"
	"github.com/marcus/modalfocus/pkg/monitor/mouse"
	"github.com/marcus/modalfocus/pkg/monitor/screen"
)

// Screen size used when laying out a definition.
const (
	ScreenWidth  = 80
	ScreenHeight = 24
)

// Definition is a dialog described in JSON.
type Definition struct {
	Title         string    `json:"title"`
	Width         int       `json:"width,omitempty"`
	Variant       string    `json:"variant,omitempty"`
	InitialFocus  string    `json:"initial_focus,omitempty"`
	PrimaryAction string    `json:"primary_action,omitempty"`
	Sections      []Section `json:"sections"`
}

// Section is one entry of Definition.Sections. Type selects which of the
// other fields apply.
type Section struct {
	Type    string   `json:"type"`
	ID      string   `json:"id,omitempty"`
	Text    string   `json:"text,omitempty"`
	Label   string   `json:"label,omitempty"`
	Value   string   `json:"value,omitempty"`
	Hidden  bool     `json:"hidden,omitempty"`
	Checked bool     `json:"checked,omitempty"`
	Filter  string   `json:"filter,omitempty"`
	Items   []Item   `json:"items,omitempty"`
	Buttons []Button `json:"buttons,omitempty"`
}

// Item is a list entry.
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Button is one button of a buttons section.
type Button struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Danger   bool   `json:"danger,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Load reads and validates a definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks section types and element IDs.
func (d *Definition) Validate() error {
	if _, err := modal.ParseVariant(d.Variant); err != nil {
		return err
	}

	seen := make(map[string]bool)
	unfocusable := make(map[string]bool)
	claim := func(i int, id string) error {
		if id == "" {
			return fmt.Errorf("section %d: missing id", i)
		}
		if seen[id] {
			return fmt.Errorf("section %d: duplicate id %q", i, id)
		}
		seen[id] = true
		return nil
	}

	for i, s := range d.Sections {
		switch s.Type {
		case "text", "markdown", "spacer":
		case "input", "checkbox", "list":
			if err := claim(i, s.ID); err != nil {
				return err
			}
			unfocusable[s.ID] = s.Type == "input" && s.Hidden
		case "buttons":
			if len(s.Buttons) == 0 {
				return fmt.Errorf("section %d: buttons section has no buttons", i)
			}
			for _, b := range s.Buttons {
				if err := claim(i, b.ID); err != nil {
					return err
				}
				unfocusable[b.ID] = b.Disabled
			}
		default:
			return fmt.Errorf("section %d: unknown type %q", i, s.Type)
		}
	}

	if d.InitialFocus != "" && !seen[d.InitialFocus] {
		return fmt.Errorf("initial_focus %q does not name an element", d.InitialFocus)
	}
	if unfocusable[d.InitialFocus] {
		return fmt.Errorf("initial_focus %q cannot take focus (hidden or disabled)", d.InitialFocus)
	}
	return nil
}

// Build creates the modal described by d. The modal is not attached.
func Build(d *Definition, opts ...modal.Option) *modal.Modal {
	variant, _ := modal.ParseVariant(d.Variant)
	base := []modal.Option{
		modal.WithWidth(d.Width),
		modal.WithVariant(variant),
		modal.WithInitialFocus(d.InitialFocus),
		modal.WithPrimaryAction(d.PrimaryAction),
	}
	m := modal.New(d.Title, append(base, opts...)...)

	for _, s := range d.Sections {
		switch s.Type {
		case "text":
			m.AddSection(modal.Text(s.Text))
		case "markdown":
			m.AddSection(modal.Markdown(s.Text))
		case "spacer":
			m.AddSection(modal.Spacer())
		case "input":
			ti := textinput.New()
			ti.SetValue(s.Value)
			var inputOpts []modal.InputOption
			if s.Label != "" {
				inputOpts = append(inputOpts, modal.WithLabel(s.Label))
			}
			if s.Hidden {
				inputOpts = append(inputOpts, modal.InputHidden())
			}
			m.AddSection(modal.Input(s.ID, &ti, inputOpts...))
		case "checkbox":
			checked := s.Checked
			m.AddSection(modal.Checkbox(s.ID, s.Label, &checked))
		case "list":
			items := make([]modal.ListItem, len(s.Items))
			for i, it := range s.Items {
				items[i] = modal.ListItem{ID: it.ID, Label: it.Label}
			}
			selected := 0
			filter := s.Filter
			m.AddSection(modal.List(s.ID, items, &selected, modal.WithFilter(&filter)))
		case "buttons":
			btns := make([]modal.ButtonDef, len(s.Buttons))
			for i, b := range s.Buttons {
				var bopts []modal.ButtonOption
				if b.Danger {
					bopts = append(bopts, modal.BtnDanger())
				}
				if b.Disabled {
					bopts = append(bopts, modal.BtnDisabled())
				}
				btns[i] = modal.Btn(b.Label, b.ID, bopts...)
			}
			m.AddSection(modal.Buttons(btns...))
		}
	}
	return m
}

// Result is an opened, laid out definition.
type Result struct {
	Modal  *modal.Modal
	Screen *screen.Screen
	View   string
}

// Open builds d, attaches it to an empty screen, opens it and renders it at
// ScreenWidth x ScreenHeight. A nil logger means slog.Default().
func Open(d *Definition, logger *slog.Logger) *Result {
	if logger == nil {
		logger = slog.Default()
	}
	root := screen.NewNode("root", screen.KindContainer)
	root.SetRect(mouse.Rect{W: ScreenWidth, H: ScreenHeight})
	scr := screen.New(root, screen.WithLogger(logger))

	m := Build(d, modal.WithLogger(logger)).Attach(scr)
	m.Open(nil)
	view := m.Render(ScreenWidth, ScreenHeight)
	return &Result{Modal: m, Screen: scr, View: view}
}

// Tree describes the modal container and its descendants. Focusable
// elements are numbered in tab order.
func (r *Result) Tree() output.TreeNode {
	order := make(map[*screen.Node]int)
	for i, el := range focustrap.Focusables(r.Modal.Container()) {
		if n, ok := el.(*screen.Node); ok {
			order[n] = i + 1
		}
	}
	return describe(r.Modal.Container(), order)
}

func describe(n *screen.Node, order map[*screen.Node]int) output.TreeNode {
	t := output.TreeNode{
		ID:        n.ID,
		Kind:      n.Kind.String(),
		Label:     n.Label,
		Focusable: order[n] > 0,
		Order:     order[n],
		Disabled:  n.Disabled(),
		Hidden:    n.InputType() == focustrap.InputTypeHidden,
	}
	for _, c := range n.Children() {
		t.Children = append(t.Children, describe(c, order))
	}
	return t
}

// InitialFocus returns the ID of the element focused on open, or "".
func (r *Result) InitialFocus() string {
	if a := r.Screen.Active(); a != nil {
		return a.ID
	}
	return ""
}
