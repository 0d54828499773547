package wm

import (
	"github.com/Gaurav-Gosain/deskos/internal/layout"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
)

// Window is one open application window.
type Window struct {
	ID        registry.AppID
	Title     string
	Icon      string
	Minimized bool
	Maximized bool
	Dock      layout.DockSide
	Position  layout.Point
	Size      layout.Size
	ZIndex    int
	Payload   Payload
}

// Geometry returns the layout inputs of the window.
func (w Window) Geometry() layout.Geometry {
	return layout.Geometry{
		Position:  w.Position,
		Size:      w.Size,
		Maximized: w.Maximized,
		Dock:      w.Dock,
	}
}

// Frame returns the on-screen bounds of the window. Maximized and docked
// windows ignore their stored position and size.
func (w Window) Frame(vp layout.Viewport, c layout.Chrome) layout.Rect {
	return layout.FrameBounds(w.Geometry(), vp, c)
}

// Floating reports whether the window uses its own position and size.
func (w Window) Floating() bool {
	return !w.Maximized && w.Dock == layout.DockNone
}
