package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskos/internal/app"
	"github.com/Gaurav-Gosain/deskos/internal/layout"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
)

// handleMouseClick resolves a press with the desktop hit test. Overlays get
// the first look: a click outside the switcher dismisses it, a click outside
// the start menu closes it and is then handled normally.
func handleMouseClick(msg tea.MouseClickMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	pointer := layout.Point{X: mouse.X, Y: mouse.Y}
	hit := d.HitTest(mouse.X, mouse.Y)

	if d.Switcher.Open() {
		switch hit.Kind {
		case app.HitSwitcherEntry:
			if id, ok := d.Switcher.Select(hit.Index); ok {
				d.LogInfo("Switched to %s", id)
			}
		case app.HitSwitcher:
		default:
			d.Switcher.Dismiss()
		}
		return d, nil
	}

	if d.ShowStartMenu {
		switch hit.Kind {
		case app.HitStartMenuItem:
			d.ShowStartMenu = false
			_ = d.OpenApp(hit.App, nil)
			return d, nil
		case app.HitStartMenu:
			return d, nil
		case app.HitStartButton:
			d.ShowStartMenu = false
			return d, nil
		}
		d.ShowStartMenu = false
	}

	left := mouse.Button == tea.MouseLeft
	right := mouse.Button == tea.MouseRight

	switch hit.Kind {
	case app.HitStartButton:
		if left {
			d.ShowStartMenu = true
		}

	case app.HitTaskbarEntry:
		if left {
			d.Store.Activate(hit.App)
		}

	case app.HitDockItem:
		if !left {
			break
		}
		if _, open := d.Store.Get(hit.App); open {
			d.Store.Activate(hit.App)
		} else {
			_ = d.OpenApp(hit.App, nil)
		}

	case app.HitDesktopIcon:
		if left && d.IsDoubleClick("icon-"+string(hit.App)) {
			_ = d.OpenApp(hit.App, nil)
		}

	case app.HitCloseButton:
		if left {
			d.Store.Close(hit.App)
		}

	case app.HitMaximizeButton:
		if left {
			d.Store.Maximize(hit.App)
		}

	case app.HitMinimizeButton:
		if left {
			d.Store.Minimize(hit.App)
		}

	case app.HitTitleBar:
		d.Store.Focus(hit.App)
		switch {
		case right:
			startResize(d, hit.App, pointer)
		case left && d.IsDoubleClick("title-"+string(hit.App)):
			d.Store.Maximize(hit.App)
		case left:
			startDrag(d, hit.App, pointer)
		}

	case app.HitResizeHandle:
		d.Store.Focus(hit.App)
		if left || right {
			startResize(d, hit.App, pointer)
		}

	case app.HitBorder:
		d.Store.Focus(hit.App)
		if right {
			startResize(d, hit.App, pointer)
		}

	case app.HitClient:
		d.Store.Focus(hit.App)
		if right {
			startResize(d, hit.App, pointer)
			break
		}
		if left {
			return d, d.ClickApp(hit.App, hit.Local.X, hit.Local.Y)
		}
	}

	return d, nil
}

// startDrag begins moving a floating window. Maximized and docked windows
// only take focus.
func startDrag(d *app.Desktop, id registry.AppID, pointer layout.Point) {
	w, ok := d.Store.Get(id)
	if !ok || !w.Floating() {
		return
	}
	d.Dragging = true
	d.GestureWindow = id
	d.Drag = layout.StartDrag(pointer, w.Position, w.Size)
}

// startResize begins resizing a floating window from its bottom-right
// corner.
func startResize(d *app.Desktop, id registry.AppID, pointer layout.Point) {
	w, ok := d.Store.Get(id)
	if !ok || !w.Floating() {
		return
	}
	d.Resizing = true
	d.GestureWindow = id
	d.Resize = layout.StartResize(pointer, d.Frame(w), d.Store.MinSize())
}

func handleMouseMotion(msg tea.MouseMotionMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	pointer := layout.Point{X: mouse.X, Y: mouse.Y}

	switch {
	case d.Dragging:
		p := d.Drag.Position(pointer, d.Viewport(), d.Chrome())
		d.Store.Move(d.GestureWindow, p.X, p.Y)
	case d.Resizing:
		s := d.Resize.Size(pointer, d.Viewport(), d.Chrome())
		d.Store.Resize(d.GestureWindow, s.Width, s.Height)
	}
	return d, nil
}

func handleMouseRelease(_ tea.MouseReleaseMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if d.Dragging || d.Resizing {
		if w, ok := d.Store.Get(d.GestureWindow); ok {
			d.LogInfo("Window %s at (%d,%d) %dx%d",
				w.ID, w.Position.X, w.Position.Y, w.Size.Width, w.Size.Height)
		}
	}
	d.EndGesture()
	return d, nil
}

// handleMouseWheel scrolls the active window's app by sending it arrow
// keys. Wheel events over other windows are ignored.
func handleMouseWheel(msg tea.MouseWheelMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	hit := d.HitTest(mouse.X, mouse.Y)
	active, ok := d.Store.ActiveID()
	if hit.Kind != app.HitClient || !ok || hit.App != active {
		return d, nil
	}

	switch mouse.Button {
	case tea.MouseWheelUp:
		return d, d.SendToApp(active, tea.KeyPressMsg{Code: tea.KeyUp})
	case tea.MouseWheelDown:
		return d, d.SendToApp(active, tea.KeyPressMsg{Code: tea.KeyDown})
	}
	return d, nil
}
