package layout

import "testing"

func TestDragKeepsGrabOffset(t *testing.T) {
	vp := Viewport{Width: 100, Height: 40}
	chrome := Chrome{Top: 0, Bottom: 1}

	d := StartDrag(Point{15, 6}, Point{10, 5}, Size{30, 10})
	if d.Offset() != (Point{5, 1}) {
		t.Fatalf("offset = %v, want {5 1}", d.Offset())
	}

	got := d.Position(Point{40, 20}, vp, chrome)
	if got != (Point{35, 19}) {
		t.Errorf("Position = %v, want {35 19}", got)
	}
}

func TestDragClampsToViewport(t *testing.T) {
	vp := Viewport{Width: 100, Height: 40}
	chrome := Chrome{Top: 1, Bottom: 3}
	d := StartDrag(Point{12, 5}, Point{10, 5}, Size{30, 10})

	tests := []struct {
		name    string
		pointer Point
		want    Point
	}{
		{"far left", Point{-20, 10}, Point{0, 10}},
		{"far right", Point{200, 10}, Point{70, 10}},
		{"above menu bar", Point{20, -3}, Point{18, 1}},
		{"below dock", Point{20, 100}, Point{18, 27}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Position(tt.pointer, vp, chrome); got != tt.want {
				t.Errorf("Position(%v) = %v, want %v", tt.pointer, got, tt.want)
			}
		})
	}
}

func TestResize(t *testing.T) {
	vp := Viewport{Width: 80, Height: 24}
	chrome := Chrome{Top: 0, Bottom: 1}
	frame := Rect{X: 10, Y: 5, Width: 30, Height: 10}
	minSize := Size{Width: 12, Height: 5}

	tests := []struct {
		name    string
		pointer Point
		want    Size
	}{
		{"grow", Point{50, 20}, Size{40, 15}},
		{"shrink below minimum", Point{0, 0}, Size{12, 5}},
		{"past viewport", Point{200, 200}, Size{70, 18}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := StartResize(Point{40, 15}, frame, minSize)
			if got := r.Size(tt.pointer, vp, chrome); got != tt.want {
				t.Errorf("Size(%v) = %v, want %v", tt.pointer, got, tt.want)
			}
		})
	}
}
