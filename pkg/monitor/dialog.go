package monitor

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/marcus/modalfocus/pkg/monitor/modal"
)

// Dialog action IDs.
const (
	actionSave    = "save"
	actionDiscard = "discard"
	actionCancel  = "cancel"
)

var formats = []modal.ListItem{
	{ID: "md", Label: "Markdown"},
	{ID: "json", Label: "JSON"},
	{ID: "txt", Label: "Plain text"},
}

// dialogForm holds the values edited in the save dialog.
type dialogForm struct {
	name     textinput.Model
	token    textinput.Model
	remember bool
	format   int
}

func newDialogForm() *dialogForm {
	name := textinput.New()
	name.Placeholder = "notes"
	name.CharLimit = 64

	token := textinput.New()
	token.SetValue("session-token")

	return &dialogForm{name: name, token: token}
}

func (f *dialogForm) fileName() string {
	ext := formats[0].ID
	if f.format >= 0 && f.format < len(formats) {
		ext = formats[f.format].ID
	}
	return f.name.Value() + "." + ext
}

// createSaveDialog builds the save dialog.
func createSaveDialog(opts Options, form *dialogForm) *modal.Modal {
	md := modal.New("Save changes",
		modal.WithID("save-dialog"),
		modal.WithWidth(opts.ModalWidth),
		modal.WithVariant(opts.Variant),
		modal.WithPrimaryAction(actionSave),
		modal.WithInitialFocus(opts.InitialFocus),
		modal.WithLogger(opts.Logger),
	)

	md.AddSection(modal.Markdown("You have **unsaved changes**. Save them before closing?"))
	md.AddSection(modal.Input("name", &form.name, modal.WithLabel("File name")))
	md.AddSection(modal.Input("token", &form.token, modal.InputHidden()))
	md.AddSection(modal.Spacer())
	md.AddSection(modal.Text("Format"))
	md.AddSection(modal.List("format", formats, &form.format, modal.WithMaxVisible(3)))
	md.AddSection(modal.Spacer())
	md.AddSection(modal.Checkbox("remember", "Remember my choice", &form.remember))
	md.AddSection(modal.When(func() bool { return form.remember },
		modal.Text("Next time this answer is used without asking.")))
	md.AddSection(modal.Spacer())
	md.AddSection(modal.Buttons(
		modal.Btn("Save", actionSave),
		modal.Btn("Discard", actionDiscard, modal.BtnDanger()),
		modal.Btn("Cancel", actionCancel),
	))

	return md
}
