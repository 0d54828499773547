package wm

import "github.com/Gaurav-Gosain/deskos/internal/registry"

// DefaultZSeed is the first z-index handed to a window. Wallpaper and
// desktop icons paint below it.
const DefaultZSeed = 100

// FocusController tracks the active window and owns the z-index counter.
// Every raise goes through Raise so z-order reflects raise order.
type FocusController struct {
	active registry.AppID
	next   int
}

// NewFocusController returns a controller whose first raise assigns seed.
func NewFocusController(seed int) *FocusController {
	return &FocusController{next: seed}
}

// Active returns the active window id; ok is false when nothing is focused.
func (f *FocusController) Active() (id registry.AppID, ok bool) {
	return f.active, f.active != ""
}

// Next returns the z-index the next raise will assign.
func (f *FocusController) Next() int {
	return f.next
}

// Raise puts w on top and makes it active.
func (f *FocusController) Raise(w *Window) {
	w.ZIndex = f.next
	f.next++
	f.active = w.ID
}

// Clear drops focus if id is the active window.
func (f *FocusController) Clear(id registry.AppID) {
	if f.active == id {
		f.active = ""
	}
}
