// Package layout provides the geometry used by the window manager: frame
// rectangles, shell chrome reservations, drag and resize gestures, and the
// bounds of maximized and docked windows.
package layout

// Point is a cell position on the desktop.
type Point struct {
	X int
	Y int
}

// Size is a width and height in cells.
type Size struct {
	Width  int
	Height int
}

// Rect is a positioned rectangle.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Origin returns the top-left corner of the rectangle.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Contains reports whether the cell at (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Viewport is the size of the whole desktop surface.
type Viewport struct {
	Width  int
	Height int
}

// Chrome is the number of rows reserved by shell chrome at the top
// (menu bar) and bottom (taskbar or dock) of the viewport.
type Chrome struct {
	Top    int
	Bottom int
}

// UsableHeight returns the rows left between top and bottom chrome.
func (c Chrome) UsableHeight(vp Viewport) int {
	return max(vp.Height-c.Top-c.Bottom, 0)
}

// DockSide describes which half of the screen a window is docked to.
type DockSide int

const (
	// DockNone means the window floats freely.
	DockNone DockSide = iota
	// DockLeft pins the window to the left half of the screen.
	DockLeft
	// DockRight pins the window to the right half of the screen.
	DockRight
)

// String returns the lowercase name of the side.
func (d DockSide) String() string {
	switch d {
	case DockLeft:
		return "left"
	case DockRight:
		return "right"
	default:
		return "none"
	}
}

// ClampPosition keeps a frame of the given size on screen. The x axis is
// limited to [0, vw-w] and the y axis to [top, vh-h-bottom]. When the frame
// is larger than the available space the lower bound wins, so the title bar
// never slides under the menu bar or off the left edge.
func ClampPosition(p Point, s Size, vp Viewport, c Chrome) Point {
	maxX := vp.Width - s.Width
	maxY := vp.Height - s.Height - c.Bottom

	x := max(min(p.X, maxX), 0)
	y := max(min(p.Y, maxY), c.Top)
	return Point{X: x, Y: y}
}

// MaximizedBounds returns the frame of a maximized window: the full width
// of the viewport and every row not reserved by chrome.
func MaximizedBounds(vp Viewport, c Chrome) Rect {
	return Rect{
		X:      0,
		Y:      c.Top,
		Width:  vp.Width,
		Height: c.UsableHeight(vp),
	}
}

// DockedBounds returns the half-width column for the given side. The right
// column takes the odd cell on viewports with an odd width.
func DockedBounds(side DockSide, vp Viewport, c Chrome) Rect {
	half := vp.Width / 2
	r := Rect{
		Y:      c.Top,
		Height: c.UsableHeight(vp),
	}
	switch side {
	case DockLeft:
		r.X = 0
		r.Width = half
	case DockRight:
		r.X = half
		r.Width = vp.Width - half
	default:
		return MaximizedBounds(vp, c)
	}
	return r
}

// Geometry is the subset of window state that decides where a frame is drawn.
type Geometry struct {
	Position  Point
	Size      Size
	Maximized bool
	Dock      DockSide
}

// FrameBounds returns the rendered frame for a window. Maximized and docked
// windows ignore their stored position and size; those are kept so the
// window returns to them when restored.
func FrameBounds(g Geometry, vp Viewport, c Chrome) Rect {
	switch {
	case g.Maximized:
		return MaximizedBounds(vp, c)
	case g.Dock != DockNone:
		return DockedBounds(g.Dock, vp, c)
	default:
		return Rect{
			X:      g.Position.X,
			Y:      g.Position.Y,
			Width:  g.Size.Width,
			Height: g.Size.Height,
		}
	}
}
