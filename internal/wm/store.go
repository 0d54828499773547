// Package wm implements the window manager: the set of open windows, the
// focus and z-order counter, and the operations that mutate them.
//
// All mutators are synchronous and called from the Bubble Tea update loop.
// Mutators that name a window which is not open are silent no-ops.
package wm

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Gaurav-Gosain/deskos/internal/layout"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
)

var (
	// ErrUnknownApp is returned by OpenApp for an id missing from the registry.
	ErrUnknownApp = errors.New("unknown app")
	// ErrPermissionDenied is returned by OpenApp when the session lacks the
	// capability the app requires.
	ErrPermissionDenied = errors.New("permission denied")
)

// Capabilities answers the permission check in OpenApp.
type Capabilities interface {
	HasCapability(name string) bool
}

type noCapabilities struct{}

func (noCapabilities) HasCapability(string) bool { return false }

// Defaults for new window placement.
var (
	DefaultCascadeOrigin = layout.Point{X: 4, Y: 2}
	DefaultCascadeStep   = layout.Point{X: 3, Y: 1}
	DefaultMinSize       = layout.Size{Width: 20, Height: 6}
)

// Option configures a Store.
type Option func(*Store)

// WithCapabilities sets the role set consulted by OpenApp.
func WithCapabilities(c Capabilities) Option {
	return func(s *Store) {
		if c != nil {
			s.caps = c
		}
	}
}

// WithTitleStyle picks which descriptor title new windows copy.
func WithTitleStyle(style string) Option {
	return func(s *Store) { s.titleStyle = style }
}

// WithASCIIIcons makes new windows copy the ASCII icon.
func WithASCIIIcons(ascii bool) Option {
	return func(s *Store) { s.asciiIcons = ascii }
}

// WithCascade sets where windows without a preferred position are placed.
// The nth open window lands at origin + n*step.
func WithCascade(origin, step layout.Point) Option {
	return func(s *Store) {
		s.cascadeOrigin = origin
		s.cascadeStep = step
	}
}

// WithZSeed sets the first z-index the store assigns.
func WithZSeed(seed int) Option {
	return func(s *Store) { s.focus = NewFocusController(seed) }
}

// WithMinSize sets the smallest size Resize accepts.
func WithMinSize(size layout.Size) Option {
	return func(s *Store) { s.minSize = size }
}

// WithLogger receives one line per lifecycle event.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(s *Store) { s.logf = logf }
}

// Store owns the open windows. It is not safe for concurrent use.
type Store struct {
	reg     *registry.Registry
	windows []*Window
	focus   *FocusController

	caps          Capabilities
	titleStyle    string
	asciiIcons    bool
	cascadeOrigin layout.Point
	cascadeStep   layout.Point
	minSize       layout.Size
	logf          func(format string, args ...any)
}

// NewStore returns an empty store backed by reg.
func NewStore(reg *registry.Registry, opts ...Option) *Store {
	s := &Store{
		reg:           reg,
		focus:         NewFocusController(DefaultZSeed),
		caps:          noCapabilities{},
		cascadeOrigin: DefaultCascadeOrigin,
		cascadeStep:   DefaultCascadeStep,
		minSize:       DefaultMinSize,
		logf:          func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the catalog the store opens windows from.
func (s *Store) Registry() *registry.Registry {
	return s.reg
}

// SetCapabilities replaces the role set for later OpenApp calls.
func (s *Store) SetCapabilities(c Capabilities) {
	if c == nil {
		c = noCapabilities{}
	}
	s.caps = c
}

// SetTitleStyle changes the title style for windows opened from now on and
// retitles the open ones.
func (s *Store) SetTitleStyle(style string) {
	s.titleStyle = style
	for _, w := range s.windows {
		if d, ok := s.reg.Lookup(w.ID); ok {
			w.Title = d.TitleFor(style)
		}
	}
}

func (s *Store) find(id registry.AppID) *Window {
	for _, w := range s.windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// OpenApp opens the app or, when it is already open, restores and raises
// its window and merges payload into it. The app becomes active either way.
func (s *Store) OpenApp(id registry.AppID, payload Payload) error {
	d, ok := s.reg.Lookup(id)
	if !ok {
		return fmt.Errorf("open %q: %w", id, ErrUnknownApp)
	}
	if d.RequiresCapability != "" && !s.caps.HasCapability(d.RequiresCapability) {
		return fmt.Errorf("open %q requires %q: %w", id, d.RequiresCapability, ErrPermissionDenied)
	}

	if w := s.find(id); w != nil {
		w.Minimized = false
		w.Payload = mergePayload(w.Payload, payload)
		s.focus.Raise(w)
		s.logf("Reactivated window %s (z=%d)", id, w.ZIndex)
		return nil
	}

	w := &Window{
		ID:      id,
		Title:   d.TitleFor(s.titleStyle),
		Icon:    d.IconFor(s.asciiIcons),
		Size:    d.DefaultSize,
		Payload: mergePayload(initialPayload(d), payload),
	}
	if d.PreferredPosition != nil {
		w.Position = *d.PreferredPosition
	} else {
		n := len(s.windows)
		w.Position = layout.Point{
			X: s.cascadeOrigin.X + n*s.cascadeStep.X,
			Y: s.cascadeOrigin.Y + n*s.cascadeStep.Y,
		}
	}
	s.focus.Raise(w)
	s.windows = append(s.windows, w)
	s.logf("Opened window %s at (%d,%d) z=%d", id, w.Position.X, w.Position.Y, w.ZIndex)
	return nil
}

// initialPayload is the empty payload of the descriptor's kind, so the
// first OpenApp merges through the same rule as later ones.
func initialPayload(d registry.Descriptor) Payload {
	if d.Tabbed {
		return Tabs{}
	}
	return nil
}

// Close removes the window. Focus is cleared, not handed to another window.
func (s *Store) Close(id registry.AppID) {
	i := slices.IndexFunc(s.windows, func(w *Window) bool { return w.ID == id })
	if i < 0 {
		return
	}
	s.windows = slices.Delete(s.windows, i, i+1)
	s.focus.Clear(id)
	s.logf("Closed window %s", id)
}

// Minimize hides the window and clears focus if it was active.
func (s *Store) Minimize(id registry.AppID) {
	w := s.find(id)
	if w == nil {
		return
	}
	w.Minimized = true
	s.focus.Clear(id)
	s.logf("Minimized window %s", id)
}

// Maximize toggles the maximized state, undocks and raises the window.
func (s *Store) Maximize(id registry.AppID) {
	w := s.find(id)
	if w == nil {
		return
	}
	w.Maximized = !w.Maximized
	w.Dock = layout.DockNone
	w.Minimized = false
	s.focus.Raise(w)
	s.logf("Window %s maximized=%t", id, w.Maximized)
}

// Dock snaps the window to a screen half, or undocks it with DockNone.
// Docking clears maximized and raises the window.
func (s *Store) Dock(id registry.AppID, side layout.DockSide) {
	w := s.find(id)
	if w == nil {
		return
	}
	w.Dock = side
	w.Maximized = false
	w.Minimized = false
	s.focus.Raise(w)
	s.logf("Window %s docked %s", id, side)
}

// Focus raises the window and makes it active.
func (s *Store) Focus(id registry.AppID) {
	w := s.find(id)
	if w == nil {
		return
	}
	w.Minimized = false
	s.focus.Raise(w)
}

// Move overwrites the stored position. Callers clamp.
func (s *Store) Move(id registry.AppID, x, y int) {
	if w := s.find(id); w != nil {
		w.Position = layout.Point{X: x, Y: y}
	}
}

// Resize overwrites the stored size, raised to the minimum window size.
func (s *Store) Resize(id registry.AppID, width, height int) {
	w := s.find(id)
	if w == nil {
		return
	}
	w.Size = layout.Size{
		Width:  max(width, s.minSize.Width),
		Height: max(height, s.minSize.Height),
	}
}

// MinSize returns the smallest size Resize accepts.
func (s *Store) MinSize() layout.Size {
	return s.minSize
}

// UpdatePayload replaces the window's payload without merging.
func (s *Store) UpdatePayload(id registry.AppID, p Payload) {
	if w := s.find(id); w != nil {
		w.Payload = p
	}
}

// Activate implements a taskbar click: a minimized window is restored, the
// active window is minimized, any other window is focused.
func (s *Store) Activate(id registry.AppID) {
	w := s.find(id)
	if w == nil {
		return
	}
	active, _ := s.focus.Active()
	switch {
	case w.Minimized:
		s.Focus(id)
	case active == id:
		s.Minimize(id)
	default:
		s.Focus(id)
	}
}

// Windows returns copies of the open windows in opening order.
func (s *Store) Windows() []Window {
	out := make([]Window, len(s.windows))
	for i, w := range s.windows {
		out[i] = *w
	}
	return out
}

// Sorted returns copies of the open windows, most recently raised first.
func (s *Store) Sorted() []Window {
	out := s.Windows()
	slices.SortFunc(out, func(a, b Window) int { return b.ZIndex - a.ZIndex })
	return out
}

// Get returns a copy of the window with id.
func (s *Store) Get(id registry.AppID) (Window, bool) {
	if w := s.find(id); w != nil {
		return *w, true
	}
	return Window{}, false
}

// ActiveID returns the active window id; ok is false when nothing is focused.
func (s *Store) ActiveID() (registry.AppID, bool) {
	return s.focus.Active()
}

// Active returns a copy of the active window.
func (s *Store) Active() (Window, bool) {
	id, ok := s.focus.Active()
	if !ok {
		return Window{}, false
	}
	return s.Get(id)
}

// TopZ returns the highest z-index handed out so far.
func (s *Store) TopZ() int {
	return s.focus.Next() - 1
}

// Len returns the number of open windows.
func (s *Store) Len() int {
	return len(s.windows)
}

// Icons maps every registered app id to its icon.
func (s *Store) Icons() map[registry.AppID]string {
	return s.reg.Icons(s.asciiIcons)
}
