package monitor

import (
	"github.com/marcus/modalfocus/pkg/monitor/modal"
)

const actionCloseHelp = "close-help"

const helpMarkdown = `**Background**

- ` + "`tab`" + ` moves between the panel buttons
- ` + "`o`" + ` or ` + "`enter`" + ` opens the save dialog
- ` + "`q`" + ` quits

**Inside a dialog**

- ` + "`tab`" + ` and ` + "`shift+tab`" + ` cycle without leaving it
- ` + "`esc`" + ` or a click outside dismisses it`

// createHelpModal builds the key help shown by '?'.
func createHelpModal(opts Options) *modal.Modal {
	md := modal.New("Keys",
		modal.WithID("help"),
		modal.WithWidth(56),
		modal.WithVariant(modal.VariantInfo),
		modal.WithLogger(opts.Logger),
	)
	md.AddSection(modal.Markdown(helpMarkdown))
	md.AddSection(modal.Spacer())
	md.AddSection(modal.Buttons(
		modal.Btn("Close", actionCloseHelp),
	))
	return md
}
