package wm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Gaurav-Gosain/deskos/internal/layout"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
)

type roles map[string]bool

func (r roles) HasCapability(name string) bool { return r[name] }

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	reg, err := registry.Load()
	if err != nil {
		t.Fatalf("failed to load registry: %v", err)
	}
	return NewStore(reg, opts...)
}

func mustOpen(t *testing.T, s *Store, id registry.AppID, p Payload) {
	t.Helper()
	if err := s.OpenApp(id, p); err != nil {
		t.Fatalf("OpenApp(%s) failed: %v", id, err)
	}
}

func activeID(s *Store) registry.AppID {
	id, _ := s.ActiveID()
	return id
}

func TestOpenFocusClose(t *testing.T) {
	s := newTestStore(t)
	z0 := DefaultZSeed

	mustOpen(t, s, registry.Notepad, nil)
	if s.Len() != 1 || activeID(s) != registry.Notepad {
		t.Fatalf("after first open: len=%d active=%q", s.Len(), activeID(s))
	}
	if w, _ := s.Get(registry.Notepad); w.ZIndex != z0 {
		t.Errorf("notepad z = %d, want %d", w.ZIndex, z0)
	}

	mustOpen(t, s, registry.Vault, nil)
	if s.Len() != 2 || activeID(s) != registry.Vault {
		t.Fatalf("after second open: len=%d active=%q", s.Len(), activeID(s))
	}
	if w, _ := s.Get(registry.Vault); w.ZIndex != z0+1 {
		t.Errorf("vault z = %d, want %d", w.ZIndex, z0+1)
	}

	s.Focus(registry.Notepad)
	if w, _ := s.Get(registry.Notepad); w.ZIndex != z0+2 {
		t.Errorf("notepad z after focus = %d, want %d", w.ZIndex, z0+2)
	}
	if activeID(s) != registry.Notepad {
		t.Errorf("active = %q, want notepad", activeID(s))
	}

	s.Close(registry.Notepad)
	if s.Len() != 1 {
		t.Errorf("len after close = %d, want 1", s.Len())
	}
	if _, ok := s.Get(registry.Vault); !ok {
		t.Error("vault should still be open")
	}
	if _, ok := s.ActiveID(); ok {
		t.Errorf("active should be cleared after closing it, got %q", activeID(s))
	}
}

func TestOpenAppIsUnique(t *testing.T) {
	s := newTestStore(t)
	for range 5 {
		mustOpen(t, s, registry.Notepad, nil)
		mustOpen(t, s, registry.Vault, nil)
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	seen := map[registry.AppID]bool{}
	for _, w := range s.Windows() {
		if seen[w.ID] {
			t.Errorf("duplicate window %q", w.ID)
		}
		seen[w.ID] = true
	}
}

func TestOpenAppRestoresMinimized(t *testing.T) {
	s := newTestStore(t)
	mustOpen(t, s, registry.Notepad, nil)
	s.Minimize(registry.Notepad)

	mustOpen(t, s, registry.Notepad, nil)
	w, _ := s.Get(registry.Notepad)
	if w.Minimized {
		t.Error("reopening should un-minimize")
	}
	if activeID(s) != registry.Notepad {
		t.Errorf("active = %q", activeID(s))
	}
}

func TestOpenAppReplacesOpaquePayload(t *testing.T) {
	s := newTestStore(t)
	mustOpen(t, s, registry.Browser, Opaque{"url": "https://a.example"})
	mustOpen(t, s, registry.Browser, Opaque{"url": "https://b.example"})

	w, _ := s.Get(registry.Browser)
	if got := w.Payload.(Opaque).Get("url"); got != "https://b.example" {
		t.Errorf("url = %q", got)
	}

	mustOpen(t, s, registry.Browser, nil)
	w, _ = s.Get(registry.Browser)
	if got := w.Payload.(Opaque).Get("url"); got != "https://b.example" {
		t.Errorf("nil payload should keep the old one, url = %q", got)
	}
}

func TestOpenAppPermission(t *testing.T) {
	t.Run("denied", func(t *testing.T) {
		s := newTestStore(t, WithCapabilities(roles{"user": true}))
		mustOpen(t, s, registry.Notepad, nil)
		before := s.Windows()

		err := s.OpenApp(registry.Admin, nil)
		if !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("err = %v, want ErrPermissionDenied", err)
		}
		if s.Len() != len(before) || activeID(s) != registry.Notepad {
			t.Errorf("denied open mutated the store")
		}
		if w, _ := s.Get(registry.Notepad); w.ZIndex != before[0].ZIndex {
			t.Errorf("denied open raised another window")
		}
	})

	t.Run("granted", func(t *testing.T) {
		s := newTestStore(t, WithCapabilities(roles{"admin": true}))
		mustOpen(t, s, registry.Admin, nil)
		if activeID(s) != registry.Admin {
			t.Errorf("active = %q", activeID(s))
		}
	})

	t.Run("unknown app", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.OpenApp("solitaire", nil); !errors.Is(err, ErrUnknownApp) {
			t.Errorf("err = %v, want ErrUnknownApp", err)
		}
		if s.Len() != 0 {
			t.Error("unknown app opened a window")
		}
	})
}

func TestPlacement(t *testing.T) {
	s := newTestStore(t, WithCascade(layout.Point{X: 2, Y: 1}, layout.Point{X: 4, Y: 2}))
	mustOpen(t, s, registry.Notepad, nil)
	mustOpen(t, s, registry.Vault, nil)
	mustOpen(t, s, registry.Settings, nil)

	n, _ := s.Get(registry.Notepad)
	v, _ := s.Get(registry.Vault)
	st, _ := s.Get(registry.Settings)

	if n.Position != (layout.Point{X: 2, Y: 1}) {
		t.Errorf("first window at %v", n.Position)
	}
	if v.Position != (layout.Point{X: 6, Y: 3}) {
		t.Errorf("second window at %v", v.Position)
	}
	d, _ := s.Registry().Lookup(registry.Settings)
	if st.Position != *d.PreferredPosition {
		t.Errorf("settings at %v, want preferred %v", st.Position, *d.PreferredPosition)
	}
	nd, _ := s.Registry().Lookup(registry.Notepad)
	if n.Size != nd.DefaultSize {
		t.Errorf("notepad size %v, want default %v", n.Size, nd.DefaultSize)
	}
}

func TestZOrderIsMonotonic(t *testing.T) {
	s := newTestStore(t)
	last := 0
	check := func(op string, id registry.AppID) {
		t.Helper()
		w, _ := s.Get(id)
		if w.ZIndex <= last {
			t.Errorf("%s: z = %d, not above previous %d", op, w.ZIndex, last)
		}
		last = w.ZIndex
	}

	mustOpen(t, s, registry.Notepad, nil)
	check("open", registry.Notepad)
	mustOpen(t, s, registry.Vault, nil)
	check("open", registry.Vault)
	s.Focus(registry.Notepad)
	check("focus", registry.Notepad)
	s.Maximize(registry.Vault)
	check("maximize", registry.Vault)
	s.Dock(registry.Notepad, layout.DockLeft)
	check("dock", registry.Notepad)
	mustOpen(t, s, registry.Vault, nil)
	check("reopen", registry.Vault)

	if s.TopZ() != last {
		t.Errorf("TopZ = %d, want %d", s.TopZ(), last)
	}
}

func TestMinimizeClearsFocus(t *testing.T) {
	s := newTestStore(t)
	mustOpen(t, s, registry.Notepad, nil)
	mustOpen(t, s, registry.Vault, nil)

	s.Minimize(registry.Notepad)
	if activeID(s) != registry.Vault {
		t.Errorf("minimizing an inactive window changed focus to %q", activeID(s))
	}
	s.Minimize(registry.Vault)
	if _, ok := s.ActiveID(); ok {
		t.Error("minimizing the active window should clear focus")
	}
}

func TestMaximizeAndDockAreExclusive(t *testing.T) {
	s := newTestStore(t)
	mustOpen(t, s, registry.Notepad, nil)

	s.Dock(registry.Notepad, layout.DockRight)
	s.Maximize(registry.Notepad)
	w, _ := s.Get(registry.Notepad)
	if !w.Maximized || w.Dock != layout.DockNone {
		t.Errorf("after maximize: maximized=%t dock=%s", w.Maximized, w.Dock)
	}

	s.Dock(registry.Notepad, layout.DockLeft)
	w, _ = s.Get(registry.Notepad)
	if w.Maximized || w.Dock != layout.DockLeft {
		t.Errorf("after dock: maximized=%t dock=%s", w.Maximized, w.Dock)
	}

	s.Maximize(registry.Notepad)
	s.Maximize(registry.Notepad)
	w, _ = s.Get(registry.Notepad)
	if w.Maximized {
		t.Error("second maximize should restore")
	}
}

func TestMaximizeClearsMinimized(t *testing.T) {
	s := newTestStore(t)
	mustOpen(t, s, registry.Notepad, nil)
	s.Minimize(registry.Notepad)
	s.Maximize(registry.Notepad)

	w, _ := s.Get(registry.Notepad)
	if w.Minimized || activeID(s) != registry.Notepad {
		t.Errorf("minimized=%t active=%q", w.Minimized, activeID(s))
	}
}

func TestMoveAndResize(t *testing.T) {
	s := newTestStore(t, WithMinSize(layout.Size{Width: 10, Height: 4}))
	mustOpen(t, s, registry.Notepad, nil)

	s.Move(registry.Notepad, -50, 900)
	w, _ := s.Get(registry.Notepad)
	if w.Position != (layout.Point{X: -50, Y: 900}) {
		t.Errorf("Move should not clamp, got %v", w.Position)
	}

	s.Resize(registry.Notepad, 3, 40)
	w, _ = s.Get(registry.Notepad)
	if w.Size != (layout.Size{Width: 10, Height: 40}) {
		t.Errorf("size = %v", w.Size)
	}
}

func TestTaskbarActivate(t *testing.T) {
	s := newTestStore(t)
	mustOpen(t, s, registry.Notepad, nil)
	mustOpen(t, s, registry.Settings, nil)

	s.Activate(registry.Settings)
	w, _ := s.Get(registry.Settings)
	if !w.Minimized {
		t.Error("clicking the active window should minimize it")
	}
	if _, ok := s.ActiveID(); ok {
		t.Error("focus should be cleared")
	}

	z := w.ZIndex
	s.Activate(registry.Settings)
	w, _ = s.Get(registry.Settings)
	if w.Minimized || activeID(s) != registry.Settings || w.ZIndex <= z {
		t.Errorf("restore: minimized=%t active=%q z=%d", w.Minimized, activeID(s), w.ZIndex)
	}

	s.Activate(registry.Notepad)
	if activeID(s) != registry.Notepad {
		t.Errorf("clicking an inactive window should focus it, active=%q", activeID(s))
	}
}

func TestAbsentIDIsNoOp(t *testing.T) {
	ops := map[string]func(*Store){
		"close":    func(s *Store) { s.Close("ghost") },
		"minimize": func(s *Store) { s.Minimize("ghost") },
		"maximize": func(s *Store) { s.Maximize("ghost") },
		"dock":     func(s *Store) { s.Dock("ghost", layout.DockLeft) },
		"focus":    func(s *Store) { s.Focus("ghost") },
		"move":     func(s *Store) { s.Move("ghost", 1, 1) },
		"resize":   func(s *Store) { s.Resize("ghost", 30, 30) },
		"payload":  func(s *Store) { s.UpdatePayload("ghost", Opaque{}) },
		"activate": func(s *Store) { s.Activate("ghost") },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t)
			mustOpen(t, s, registry.Notepad, nil)
			mustOpen(t, s, registry.Vault, nil)
			before := fmt.Sprint(s.Windows())
			topZ := s.TopZ()

			op(s)

			if after := fmt.Sprint(s.Windows()); after != before {
				t.Errorf("windows changed:\n%s\n%s", before, after)
			}
			if activeID(s) != registry.Vault {
				t.Errorf("active changed to %q", activeID(s))
			}
			if s.TopZ() != topZ {
				t.Errorf("z counter moved from %d to %d", topZ, s.TopZ())
			}
		})
	}
}

func TestSorted(t *testing.T) {
	s := newTestStore(t)
	mustOpen(t, s, registry.Notepad, nil)
	mustOpen(t, s, registry.Vault, nil)
	mustOpen(t, s, registry.Browser, nil)
	s.Focus(registry.Notepad)

	var got []registry.AppID
	for _, w := range s.Sorted() {
		got = append(got, w.ID)
	}
	want := []registry.AppID{registry.Notepad, registry.Browser, registry.Vault}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Sorted = %v, want %v", got, want)
	}

	var order []registry.AppID
	for _, w := range s.Windows() {
		order = append(order, w.ID)
	}
	if order[0] != registry.Notepad || order[2] != registry.Browser {
		t.Errorf("Windows should keep opening order, got %v", order)
	}
}

func TestTitleStyle(t *testing.T) {
	s := newTestStore(t, WithTitleStyle("dock"))
	mustOpen(t, s, registry.Vault, nil)
	if w, _ := s.Get(registry.Vault); w.Title != "Finder" {
		t.Errorf("dock title = %q", w.Title)
	}
	s.SetTitleStyle("taskbar")
	if w, _ := s.Get(registry.Vault); w.Title != "File Vault" {
		t.Errorf("taskbar title = %q", w.Title)
	}
}

func TestLogger(t *testing.T) {
	var lines []string
	s := newTestStore(t, WithLogger(func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}))
	mustOpen(t, s, registry.Notepad, nil)
	s.Close(registry.Notepad)
	if len(lines) != 2 {
		t.Errorf("logged %d lines, want 2: %v", len(lines), lines)
	}
}
