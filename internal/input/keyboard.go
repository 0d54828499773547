package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskos/internal/app"
	"github.com/Gaurav-Gosain/deskos/internal/config"
)

// HandleKeyPress resolves a key press to a desktop action, or forwards it
// to the active app when no action is bound to it.
func HandleKeyPress(msg tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	action, bound := d.KeybindRegistry.GetAction(msg.String())

	if d.Switcher.Open() {
		return handleSwitcherKey(msg, action, d)
	}

	if d.ShowStartMenu && msg.Code == tea.KeyEscape {
		d.ShowStartMenu = false
		return d, nil
	}

	if bound {
		return GetDispatcher().Dispatch(action, msg, d)
	}
	return d, forwardToActive(msg, d)
}

// handleSwitcherKey handles keys while the switcher overlay is showing.
// Arrows are matched on the key code since the modifier is usually still
// held. Keys with no meaning to the switcher are swallowed.
func handleSwitcherKey(msg tea.KeyPressMsg, action string, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	switch {
	case msg.Code == tea.KeyTab && msg.Mod.Contains(tea.ModShift):
		d.Switcher.Prev()
	case action == config.ActionSwitcherCycle:
		d.Switcher.Cycle()
	case msg.Code == tea.KeyRight:
		d.Switcher.Next()
	case msg.Code == tea.KeyLeft:
		d.Switcher.Prev()
	case msg.Code == tea.KeyEnter:
		commitSwitcher(d)
	case action == config.ActionQuit:
		return GetDispatcher().Dispatch(action, msg, d)
	}
	return d, nil
}

// HandleKeyRelease commits the switcher when the modifier is let go.
// Terminals that report modifier keys send a release of the modifier
// itself; others only show it missing from the next release event.
func HandleKeyRelease(msg tea.KeyReleaseMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if !d.Switcher.Open() {
		return d, nil
	}
	mod, keys := modifierKeys(d.KeybindRegistry.Modifier())
	released := false
	for _, k := range keys {
		if msg.Code == k {
			released = true
		}
	}
	if released || !msg.Mod.Contains(mod) {
		commitSwitcher(d)
	}
	return d, nil
}

func commitSwitcher(d *app.Desktop) {
	if id, ok := d.Switcher.Commit(); ok {
		d.LogInfo("Switched to %s", id)
	}
}

// modifierKeys returns the modifier bit and the physical keys of a
// normalized modifier name.
func modifierKeys(modifier string) (tea.KeyMod, []rune) {
	switch modifier {
	case "super":
		return tea.ModSuper, []rune{tea.KeyLeftSuper, tea.KeyRightSuper}
	case "ctrl":
		return tea.ModCtrl, []rune{tea.KeyLeftCtrl, tea.KeyRightCtrl}
	default:
		return tea.ModAlt, []rune{tea.KeyLeftAlt, tea.KeyRightAlt}
	}
}
