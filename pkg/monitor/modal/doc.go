// Package modal provides a declarative modal dialog for the monitor with
// automatic hit region management and a focus trap.
//
// Sections are rendered first and then measured: every section reports its
// focusable areas relative to its own top-left corner, and the modal turns
// those into screen nodes with absolute rectangles. The nodes feed both mouse
// hit-testing and the focustrap controller, so Tab/Shift+Tab cycle only
// through what was actually drawn, Esc dismisses, and a click on the backdrop
// outside the frame dismisses.
//
// # Quick Start
//
//	m := modal.New("Confirm Delete", modal.WithVariant(modal.VariantDanger)).
//	    AddSection(modal.Text("Are you sure you want to delete this item?")).
//	    AddSection(modal.Spacer()).
//	    AddSection(modal.Buttons(
//	        modal.Btn(" Delete ", "delete", modal.BtnDanger()),
//	        modal.Btn(" Cancel ", "cancel"),
//	    ))
//	m.Attach(scr)
//	cmd := m.Open(onDismiss)
//
//	// In View():
//	box := m.Render(screenW, screenH) // place at m.Bounds()
//
//	// In Update():
//	if action, cmd := m.HandleKey(keyMsg); action != "" {
//	    switch action {
//	    case "delete":
//	        return performDelete()
//	    case "cancel", modal.ActionDismiss:
//	        return closeModal()
//	    }
//	}
//
// # Built-in Sections
//
//   - Text(s string) - static text, auto-wrapped
//   - Markdown(src string) - markdown rendered with glamour
//   - Spacer() - blank line
//   - Buttons(btns ...ButtonDef) - button row with focus/hover styling
//   - Checkbox(id, label string, checked *bool) - toggleable checkbox
//   - Input(id string, model *textinput.Model, opts...) - text input
//   - List(id string, items []ListItem, selectedIdx *int, opts...) - scrollable, filterable list
//   - When(condition func() bool, section) - conditional rendering
//
// # Options
//
//   - WithWidth(w int) - set modal width (default: 50)
//   - WithVariant(v Variant) - set visual style (Default, Danger, Warning, Info)
//   - WithHints(show bool) - show/hide keyboard hints at bottom
//   - WithPrimaryAction(actionID string) - action for implicit Enter submit
//   - WithInitialFocus(id string) - element focused on open (default: first button)
package modal
