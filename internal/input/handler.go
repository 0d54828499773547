// Package input routes keyboard and mouse events into the desktop.
//
// Keys bound to a desktop action are handled here; everything else goes to
// the app in the active window. Mouse events are resolved with the desktop
// hit test and turned into window manager operations.
package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskos/internal/app"
)

// HandleInput is the main input coordinator that routes messages to appropriate handlers
func HandleInput(msg tea.Msg, d *app.Desktop) (tea.Model, tea.Cmd) {
	var result tea.Model
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		result, cmd = HandleKeyPress(msg, d)
	case tea.KeyReleaseMsg:
		result, cmd = HandleKeyRelease(msg, d)
	case tea.MouseClickMsg:
		result, cmd = handleMouseClick(msg, d)
	case tea.MouseMotionMsg:
		result, cmd = handleMouseMotion(msg, d)
	case tea.MouseReleaseMsg:
		result, cmd = handleMouseRelease(msg, d)
	case tea.MouseWheelMsg:
		result, cmd = handleMouseWheel(msg, d)
	case tea.PasteMsg:
		result, cmd = d, forwardToActive(msg, d)
	default:
		return d, nil
	}

	return result, cmd
}

// forwardToActive delivers msg to the app in the active window, if any.
func forwardToActive(msg tea.Msg, d *app.Desktop) tea.Cmd {
	id, ok := d.Store.ActiveID()
	if !ok {
		return nil
	}
	return d.SendToApp(id, msg)
}
