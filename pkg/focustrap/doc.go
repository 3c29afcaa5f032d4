// Package focustrap manages keyboard focus for a modal dialog.
//
// A Controller is bound to a dialog's modal container, the overlay around it,
// an open flag and a dismiss callback. While the dialog is open it keeps a
// single document click listener that dismisses the dialog on clicks that land
// on the overlay but outside the modal, and it places initial focus once per
// opening. The Props returned by Bind carry a keydown handler that the dialog
// root must receive its key events from:
//
//   - Tab / Shift+Tab cycle focus through the focusable descendants of the
//     modal, wrapping at both ends.
//   - Escape dismisses the dialog and stops the event from reaching ancestors.
//
// The host environment is described by the Element, Document and KeyEvent
// interfaces. pkg/monitor/screen implements them for terminal UIs.
//
// # Usage
//
//	ctrl := focustrap.New(doc)
//	defer ctrl.Close()
//
//	// On every render:
//	props := ctrl.Bind(focustrap.Context{
//	    Modal:         modalNode,
//	    Overlay:       overlayNode,
//	    Open:          open,
//	    OnDismiss:     closeDialog,
//	    FallbackFocus: closeButton,
//	})
//	modalNode.OnKeyDown = props.OnKeyDown
package focustrap
