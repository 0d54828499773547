package layout

// Drag tracks a title-bar drag. The pointer-to-origin offset is captured
// when the gesture starts so the grabbed cell stays under the pointer.
type Drag struct {
	offset Point
	size   Size
}

// StartDrag begins a drag of a frame at origin with the given size, grabbed
// at pointer.
func StartDrag(pointer, origin Point, size Size) Drag {
	return Drag{
		offset: Point{X: pointer.X - origin.X, Y: pointer.Y - origin.Y},
		size:   size,
	}
}

// Offset returns the pointer offset captured at the start of the drag.
func (d Drag) Offset() Point {
	return d.offset
}

// Position returns the clamped frame origin for the current pointer.
func (d Drag) Position(pointer Point, vp Viewport, c Chrome) Point {
	p := Point{X: pointer.X - d.offset.X, Y: pointer.Y - d.offset.Y}
	return ClampPosition(p, d.size, vp, c)
}

// Resize tracks a resize gesture anchored at the frame's top-left corner.
type Resize struct {
	start  Point
	origin Rect
	min    Size
}

// StartResize begins resizing frame from pointer. The frame never shrinks
// below minSize.
func StartResize(pointer Point, frame Rect, minSize Size) Resize {
	return Resize{start: pointer, origin: frame, min: minSize}
}

// Size returns the new frame size for the current pointer. The frame is
// kept inside the viewport above the bottom chrome; the minimum size wins
// when the viewport is too small for both.
func (r Resize) Size(pointer Point, vp Viewport, c Chrome) Size {
	w := r.origin.Width + pointer.X - r.start.X
	h := r.origin.Height + pointer.Y - r.start.Y

	w = min(w, vp.Width-r.origin.X)
	h = min(h, vp.Height-c.Bottom-r.origin.Y)

	return Size{
		Width:  max(w, r.min.Width),
		Height: max(h, r.min.Height),
	}
}
