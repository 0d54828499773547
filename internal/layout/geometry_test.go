package layout

import "testing"

func TestClampPosition(t *testing.T) {
	vp := Viewport{Width: 100, Height: 40}
	chrome := Chrome{Top: 1, Bottom: 3}
	size := Size{Width: 30, Height: 10}

	tests := []struct {
		name string
		in   Point
		want Point
	}{
		{"inside", Point{10, 10}, Point{10, 10}},
		{"negative x", Point{-5, 10}, Point{0, 10}},
		{"past right edge", Point{90, 10}, Point{70, 10}},
		{"under menu bar", Point{10, 0}, Point{10, 1}},
		{"over dock", Point{10, 35}, Point{10, 27}},
		{"corner", Point{500, -500}, Point{70, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampPosition(tt.in, size, vp, chrome)
			if got != tt.want {
				t.Errorf("ClampPosition(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClampPositionOversizedFrame(t *testing.T) {
	vp := Viewport{Width: 20, Height: 10}
	chrome := Chrome{Top: 1, Bottom: 1}
	got := ClampPosition(Point{5, 5}, Size{Width: 40, Height: 20}, vp, chrome)
	if got != (Point{X: 0, Y: 1}) {
		t.Errorf("oversized frame clamped to %v, want {0 1}", got)
	}
}

func TestMaximizedBounds(t *testing.T) {
	tests := []struct {
		name   string
		chrome Chrome
		want   Rect
	}{
		{"taskbar", Chrome{Top: 0, Bottom: 1}, Rect{0, 0, 80, 23}},
		{"dock", Chrome{Top: 1, Bottom: 3}, Rect{0, 1, 80, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaximizedBounds(Viewport{80, 24}, tt.chrome)
			if got != tt.want {
				t.Errorf("MaximizedBounds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDockedBounds(t *testing.T) {
	vp := Viewport{Width: 81, Height: 24}
	chrome := Chrome{Top: 1, Bottom: 3}

	left := DockedBounds(DockLeft, vp, chrome)
	right := DockedBounds(DockRight, vp, chrome)

	if left != (Rect{0, 1, 40, 20}) {
		t.Errorf("left = %v", left)
	}
	if right != (Rect{40, 1, 41, 20}) {
		t.Errorf("right = %v", right)
	}
	if left.Width+right.Width != vp.Width {
		t.Errorf("columns do not cover the viewport: %d + %d", left.Width, right.Width)
	}
}

func TestFrameBounds(t *testing.T) {
	vp := Viewport{Width: 80, Height: 24}
	chrome := Chrome{Top: 0, Bottom: 1}
	g := Geometry{Position: Point{5, 3}, Size: Size{30, 10}}

	if got := FrameBounds(g, vp, chrome); got != (Rect{5, 3, 30, 10}) {
		t.Errorf("floating frame = %v", got)
	}

	g.Dock = DockRight
	if got := FrameBounds(g, vp, chrome); got != DockedBounds(DockRight, vp, chrome) {
		t.Errorf("docked frame = %v", got)
	}

	g.Maximized = true
	if got := FrameBounds(g, vp, chrome); got != MaximizedBounds(vp, chrome) {
		t.Errorf("maximized frame = %v", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 4, Height: 2}
	for _, tt := range []struct {
		x, y int
		want bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 4, false},
		{5, 5, false},
		{1, 3, false},
	} {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
