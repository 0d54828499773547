package app

import (
	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/Gaurav-Gosain/deskos/internal/layout"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
	"github.com/charmbracelet/x/ansi"
)

// HitKind names what lies under a screen cell.
type HitKind int

const (
	HitNone HitKind = iota
	HitWallpaper
	HitDesktopIcon
	HitTitleBar
	HitMinimizeButton
	HitMaximizeButton
	HitCloseButton
	HitResizeHandle
	HitBorder
	HitClient
	HitShellBar
	HitStartButton
	HitTaskbarEntry
	HitDockItem
	HitStartMenu
	HitStartMenuItem
	HitSwitcher
	HitSwitcherEntry
)

// Hit is the result of a hit test. App is set for window, taskbar, dock,
// menu and icon hits; Index for switcher entries; Local holds client
// coordinates for HitClient.
type Hit struct {
	Kind  HitKind
	App   registry.AppID
	Index int
	Local layout.Point
}

// ItemRect pairs an app with the cells it occupies.
type ItemRect struct {
	App  registry.AppID
	Rect layout.Rect
}

// Cells per desktop icon block.
const (
	desktopIconWidth  = 10
	desktopIconHeight = 3
)

// StartButtonRect is the start button in taskbar style, or the menu bar
// logo in dock style.
func (m *Desktop) StartButtonRect() layout.Rect {
	if m.ShellStyle == config.ShellDock {
		return layout.Rect{X: 0, Y: 0, Width: ansi.StringWidth(config.GetMenuBarLogo()), Height: 1}
	}
	return layout.Rect{
		X: 0, Y: m.Height - config.TaskbarHeight,
		Width: ansi.StringWidth(config.GetStartButton()), Height: 1,
	}
}

func (m *Desktop) clockWidth() int {
	if config.HideClock {
		return 0
	}
	return config.ClockWidth
}

// TaskbarEntries lays out one entry per open window, in opening order.
// Entries that do not fit before the clock are left out.
func (m *Desktop) TaskbarEntries() []ItemRect {
	if m.ShellStyle == config.ShellDock {
		return nil
	}
	start := m.StartButtonRect()
	x := start.X + start.Width + 1
	limit := m.Width - m.clockWidth()

	var out []ItemRect
	for _, w := range m.Store.Windows() {
		if x+config.TaskbarEntryWidth > limit {
			break
		}
		out = append(out, ItemRect{
			App:  w.ID,
			Rect: layout.Rect{X: x, Y: start.Y, Width: config.TaskbarEntryWidth, Height: 1},
		})
		x += config.TaskbarEntryWidth + 1
	}
	return out
}

// DockItems lays out one launcher cell per registered app, centered in the
// dock.
func (m *Desktop) DockItems() []ItemRect {
	if m.ShellStyle != config.ShellDock {
		return nil
	}
	all := m.Registry.All()
	x := max((m.Width-len(all)*config.DockItemWidth)/2, 0)
	y := m.Height - config.DockHeight

	out := make([]ItemRect, 0, len(all))
	for _, d := range all {
		out = append(out, ItemRect{
			App:  d.ID,
			Rect: layout.Rect{X: x, Y: y, Width: config.DockItemWidth, Height: config.DockHeight},
		})
		x += config.DockItemWidth
	}
	return out
}

// StartMenuRect is the start menu or launchpad panel.
func (m *Desktop) StartMenuRect() layout.Rect {
	h := m.Registry.Len() + 2
	if m.ShellStyle == config.ShellDock {
		return layout.Rect{X: 0, Y: config.MenuBarHeight, Width: config.StartMenuWidth, Height: h}
	}
	return layout.Rect{X: 0, Y: max(m.Height-config.TaskbarHeight-h, 0), Width: config.StartMenuWidth, Height: h}
}

// StartMenuItems lays out one row per registered app inside the menu border.
func (m *Desktop) StartMenuItems() []ItemRect {
	r := m.StartMenuRect()
	all := m.Registry.All()
	out := make([]ItemRect, len(all))
	for i, d := range all {
		out[i] = ItemRect{App: d.ID, Rect: layout.Rect{X: r.X + 1, Y: r.Y + 1 + i, Width: r.Width - 2, Height: 1}}
	}
	return out
}

// SwitcherRect is the overlay box for n entries, centered on screen.
func (m *Desktop) SwitcherRect(n int) (box layout.Rect, entryWidth int) {
	entryWidth = config.SwitcherEntryWidth
	if n > 0 {
		entryWidth = max(min(entryWidth, (m.Width-2)/n), 4)
	}
	w := n*entryWidth + 2
	return layout.Rect{
		X:      max((m.Width-w)/2, 0),
		Y:      max((m.Height-config.SwitcherHeight)/2, 0),
		Width:  w,
		Height: config.SwitcherHeight,
	}, entryWidth
}

// SwitcherEntryRects lays out the tiles of the open switcher.
func (m *Desktop) SwitcherEntryRects() []layout.Rect {
	entries := m.Switcher.Entries()
	box, ew := m.SwitcherRect(len(entries))
	out := make([]layout.Rect, len(entries))
	for i := range entries {
		out[i] = layout.Rect{X: box.X + 1 + i*ew, Y: box.Y + 1, Width: ew, Height: box.Height - 2}
	}
	return out
}

// DesktopIcons lays out the wallpaper shortcuts in a column at the left.
// Icons that do not fit the usable height are left out.
func (m *Desktop) DesktopIcons() []ItemRect {
	c := m.Chrome()
	y := c.Top + 1
	bottom := m.Height - c.Bottom

	var out []ItemRect
	for _, d := range m.Registry.All() {
		if y+desktopIconHeight > bottom {
			break
		}
		out = append(out, ItemRect{App: d.ID, Rect: layout.Rect{X: 1, Y: y, Width: desktopIconWidth, Height: desktopIconHeight}})
		y += desktopIconHeight
	}
	return out
}

// frameHit classifies a point inside a window frame.
func frameHit(id registry.AppID, f layout.Rect, x, y int) Hit {
	right := f.X + f.Width
	switch {
	case y == f.Y:
		switch {
		case x >= right+config.CloseButtonLeft && x <= right+config.CloseButtonRight:
			return Hit{Kind: HitCloseButton, App: id}
		case x >= right+config.MaximizeButtonLeft && x <= right+config.MaximizeButtonRight:
			return Hit{Kind: HitMaximizeButton, App: id}
		case x >= right+config.MinimizeButtonLeft && x <= right+config.MinimizeButtonRight:
			return Hit{Kind: HitMinimizeButton, App: id}
		}
		return Hit{Kind: HitTitleBar, App: id}
	case x == right-1 && y == f.Y+f.Height-1:
		return Hit{Kind: HitResizeHandle, App: id}
	case x > f.X && x < right-1 && y < f.Y+f.Height-1:
		return Hit{Kind: HitClient, App: id, Local: layout.Point{X: x - f.X - 1, Y: y - f.Y - 1}}
	}
	return Hit{Kind: HitBorder, App: id}
}

// HitTest reports what is drawn at (x, y), topmost first: the switcher,
// the start menu, the shell bars, windows by z-order, then the wallpaper.
func (m *Desktop) HitTest(x, y int) Hit {
	if m.Switcher.Open() {
		for i, r := range m.SwitcherEntryRects() {
			if r.Contains(x, y) {
				return Hit{Kind: HitSwitcherEntry, Index: i}
			}
		}
		box, _ := m.SwitcherRect(len(m.Switcher.Entries()))
		if box.Contains(x, y) {
			return Hit{Kind: HitSwitcher}
		}
	}

	if m.ShowStartMenu {
		for _, it := range m.StartMenuItems() {
			if it.Rect.Contains(x, y) {
				return Hit{Kind: HitStartMenuItem, App: it.App}
			}
		}
		if m.StartMenuRect().Contains(x, y) {
			return Hit{Kind: HitStartMenu}
		}
	}

	c := m.Chrome()
	if y < c.Top || y >= m.Height-c.Bottom {
		if m.StartButtonRect().Contains(x, y) {
			return Hit{Kind: HitStartButton}
		}
		for _, it := range m.TaskbarEntries() {
			if it.Rect.Contains(x, y) {
				return Hit{Kind: HitTaskbarEntry, App: it.App}
			}
		}
		for _, it := range m.DockItems() {
			if it.Rect.Contains(x, y) {
				return Hit{Kind: HitDockItem, App: it.App}
			}
		}
		return Hit{Kind: HitShellBar}
	}

	for _, w := range m.Store.Sorted() {
		if w.Minimized {
			continue
		}
		if f := m.Frame(w); f.Contains(x, y) {
			return frameHit(w.ID, f, x, y)
		}
	}

	for _, it := range m.DesktopIcons() {
		if it.Rect.Contains(x, y) {
			return Hit{Kind: HitDesktopIcon, App: it.App}
		}
	}
	return Hit{Kind: HitWallpaper}
}
