// Package switcher implements the modifier+tab window switcher.
//
// The controller keeps no window data of its own. It reads the
// recency-ordered window list from its source each time and stores only an
// index into it, so the selection always refers to the current window set.
package switcher

import (
	"github.com/Gaurav-Gosain/deskos/internal/registry"
	"github.com/Gaurav-Gosain/deskos/internal/wm"
)

// Source is the window set the switcher cycles through.
type Source interface {
	// Sorted returns the open windows, most recently raised first.
	Sorted() []wm.Window
	// Focus raises the window and makes it active.
	Focus(id registry.AppID)
}

// Controller is the switcher state machine: closed, or open with a
// selected index.
type Controller struct {
	src      Source
	open     bool
	selected int
}

// New returns a closed switcher over src.
func New(src Source) *Controller {
	return &Controller{src: src}
}

// entries returns the current window list, treating an open switcher over
// an empty set as closed.
func (c *Controller) entries() []wm.Window {
	sorted := c.src.Sorted()
	if len(sorted) == 0 {
		c.reset()
	}
	return sorted
}

func (c *Controller) reset() {
	c.open = false
	c.selected = 0
}

// Open reports whether the overlay is showing.
func (c *Controller) Open() bool {
	c.entries()
	return c.open
}

// Cycle handles a press of the cycle key with the modifier held. The first
// press opens the switcher on the window behind the current one; later
// presses advance the selection.
func (c *Controller) Cycle() {
	sorted := c.entries()
	if len(sorted) == 0 {
		return
	}
	if !c.open {
		c.open = true
		c.selected = 0
		if len(sorted) > 1 {
			c.selected = 1
		}
		return
	}
	c.step(len(sorted), 1)
}

// Next moves the selection forward, wrapping.
func (c *Controller) Next() {
	if sorted := c.entries(); c.open {
		c.step(len(sorted), 1)
	}
}

// Prev moves the selection backward, wrapping.
func (c *Controller) Prev() {
	if sorted := c.entries(); c.open {
		c.step(len(sorted), -1)
	}
}

func (c *Controller) step(n, delta int) {
	c.selected = ((c.selected+delta)%n + n) % n
}

// Selected returns the selected index, always within the current window list.
func (c *Controller) Selected() int {
	n := len(c.entries())
	if n == 0 {
		return 0
	}
	return c.selected % n
}

// Entries returns the windows the overlay lists, or nil when closed.
func (c *Controller) Entries() []wm.Window {
	sorted := c.entries()
	if !c.open {
		return nil
	}
	return sorted
}

// Commit focuses the selected window and closes the switcher. It returns
// the focused id; ok is false when the switcher was not open.
func (c *Controller) Commit() (id registry.AppID, ok bool) {
	sorted := c.entries()
	if !c.open {
		return "", false
	}
	id = sorted[c.selected%len(sorted)].ID
	c.reset()
	c.src.Focus(id)
	return id, true
}

// Select commits the entry at index i, as a click on the overlay does.
// Out of range indices are ignored.
func (c *Controller) Select(i int) (id registry.AppID, ok bool) {
	sorted := c.entries()
	if !c.open || i < 0 || i >= len(sorted) {
		return "", false
	}
	c.selected = i
	return c.Commit()
}

// Dismiss closes the switcher without changing focus.
func (c *Controller) Dismiss() {
	c.reset()
}
