package theme

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

func writeTheme(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func allColors(th *tint.Tint) map[string]*tint.Color {
	return map[string]*tint.Color{
		"Fg": th.Fg, "Bg": th.Bg, "Cursor": th.Cursor,
		"Black": th.Black, "Red": th.Red, "Green": th.Green, "Yellow": th.Yellow,
		"Blue": th.Blue, "Purple": th.Purple, "Cyan": th.Cyan, "White": th.White,
		"BrightBlack": th.BrightBlack, "BrightRed": th.BrightRed,
		"BrightGreen": th.BrightGreen, "BrightYellow": th.BrightYellow,
		"BrightBlue": th.BrightBlue, "BrightPurple": th.BrightPurple,
		"BrightCyan": th.BrightCyan, "BrightWhite": th.BrightWhite,
	}
}

func TestLoadCustomThemeFile(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		body     string
		wantID   string
		wantName string
	}{
		{
			name:     "explicit id",
			file:     "whatever.json",
			body:     `{"id": "harbor", "display_name": "Harbor", "fg": "#d4d4d4", "bg": "#1e1e2e"}`,
			wantID:   "harbor",
			wantName: "Harbor",
		},
		{
			name:     "id from filename",
			file:     "Night-Shift.json",
			body:     `{"fg": "#c0c0c0"}`,
			wantID:   "night-shift",
			wantName: "night-shift",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTheme(t, t.TempDir(), tt.file, tt.body)
			th, err := LoadCustomThemeFile(path)
			if err != nil {
				t.Fatalf("LoadCustomThemeFile failed: %v", err)
			}
			if th.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", th.ID, tt.wantID)
			}
			if th.DisplayName != tt.wantName {
				t.Errorf("DisplayName = %q, want %q", th.DisplayName, tt.wantName)
			}
			for name, c := range allColors(th) {
				if c == nil {
					t.Errorf("%s was not filled", name)
				}
			}
		})
	}
}

func TestLoadCustomThemeFileInvalid(t *testing.T) {
	path := writeTheme(t, t.TempDir(), "broken.json", `{"fg": `)
	if _, err := LoadCustomThemeFile(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLoadCustomThemes(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "deskos-a.json", `{"id": "deskos-test-a"}`)
	writeTheme(t, dir, "deskos-b.JSON", `{"id": "deskos-test-b"}`)
	writeTheme(t, dir, "notes.txt", `not a theme`)
	writeTheme(t, dir, "bad.json", `{`)
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0750); err != nil {
		t.Fatal(err)
	}

	tint.NewDefaultRegistry()
	loaded, err := LoadCustomThemes(dir)
	if err != nil {
		t.Fatalf("LoadCustomThemes failed: %v", err)
	}
	slices.Sort(loaded)
	if !slices.Equal(loaded, []string{"deskos-test-a", "deskos-test-b"}) {
		t.Errorf("loaded = %v", loaded)
	}
	if !tint.SetTintID("deskos-test-a") {
		t.Error("registered theme cannot be selected")
	}

	if _, err := LoadCustomThemes(filepath.Join(dir, "missing")); err == nil {
		t.Error("missing directory should error")
	}
}

func TestFillDefaultsCopiesBaseColors(t *testing.T) {
	th := &tint.Tint{Fg: tint.FromHex("#112233"), Red: tint.FromHex("#aa0000")}
	fillDefaults(th)

	if *th.Cursor != *th.Fg {
		t.Error("cursor should copy fg")
	}
	if *th.BrightRed != *th.Red {
		t.Error("bright red should copy red")
	}
	if th.BrightRed == th.Red {
		t.Error("bright red should be a copy, not the same pointer")
	}
}

func TestAccessorsWithoutTheme(t *testing.T) {
	if err := Initialize(""); err != nil {
		t.Fatal(err)
	}
	if IsEnabled() || Current() != nil {
		t.Fatal("theming should be disabled")
	}
	if got := ColorToString(NotificationError()); got != "#dc2626" {
		t.Errorf("error toast color = %s", got)
	}
	if got := ColorToString(BorderFocused()); got != ColorToString(lipgloss.Color("#60a5fa")) {
		t.Errorf("focused border = %s", got)
	}
}

func TestColorToString(t *testing.T) {
	if got := ColorToString(nil); got != "#000000" {
		t.Errorf("nil = %s", got)
	}
	if got := ColorToString(lipgloss.Color("#1a2b3c")); got != "#1a2b3c" {
		t.Errorf("got %s", got)
	}
}
