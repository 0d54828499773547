// Package theme provides color themes and styling for the desktop shell.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	"charm.land/log/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming is disabled and the built-in palette is used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if themesDir, err := GetThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			log.Warn("Error loading custom themes", "dir", themesDir, "err", err)
		}
	}

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return fmt.Errorf("theme %q not found, using default", themeName)
	}
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// pick returns the themed color, or fallback when theming is off.
func pick(fallback string, themed func(*tint.Tint) color.Color) color.Color {
	if t := Current(); t != nil {
		if c := themed(t); c != nil {
			return c
		}
	}
	return lipgloss.Color(fallback)
}

// DesktopBg is the wallpaper color.
func DesktopBg() color.Color {
	return pick("#1e293b", func(t *tint.Tint) color.Color { return t.Bg })
}

// DesktopPattern is the wallpaper dot color.
func DesktopPattern() color.Color {
	return pick("#334155", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// DesktopIconFg colors desktop shortcut labels.
func DesktopIconFg() color.Color {
	return pick("#e2e8f0", func(t *tint.Tint) color.Color { return t.Fg })
}

// WindowBg is the client area background.
func WindowBg() color.Color {
	return pick("#0f172a", func(t *tint.Tint) color.Color { return t.Black })
}

// WindowFg is the client area text color.
func WindowFg() color.Color {
	return pick("#e2e8f0", func(t *tint.Tint) color.Color { return t.Fg })
}

// BorderFocused colors the active window frame.
func BorderFocused() color.Color {
	return pick("#60a5fa", func(t *tint.Tint) color.Color { return t.BrightBlue })
}

// BorderUnfocused colors inactive window frames.
func BorderUnfocused() color.Color {
	return pick("#64748b", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// TitleFg colors window titles.
func TitleFg() color.Color {
	return pick("#f8fafc", func(t *tint.Tint) color.Color { return t.BrightWhite })
}

// ButtonClose, ButtonMaximize and ButtonMinimize color the title bar buttons.
func ButtonClose() color.Color {
	return pick("#ef4444", func(t *tint.Tint) color.Color { return t.Red })
}

func ButtonMaximize() color.Color {
	return pick("#22c55e", func(t *tint.Tint) color.Color { return t.Green })
}

func ButtonMinimize() color.Color {
	return pick("#eab308", func(t *tint.Tint) color.Color { return t.Yellow })
}

// ButtonFg is the glyph color on title bar buttons.
func ButtonFg() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.Black })
}

// BarBg is the taskbar, menu bar and dock background.
func BarBg() color.Color {
	return lipgloss.Color("#111827")
}

// BarFg is the taskbar, menu bar and dock text color.
func BarFg() color.Color {
	return lipgloss.Color("#cbd5e1")
}

// BarActive highlights the active window's taskbar entry.
func BarActive() color.Color {
	return pick("#3b82f6", func(t *tint.Tint) color.Color { return t.Blue })
}

// BarDimmed colors minimized entries.
func BarDimmed() color.Color {
	return lipgloss.Color("#6b7280")
}

// Accent is used for the start button, running indicators and selections.
func Accent() color.Color {
	return pick("#38bdf8", func(t *tint.Tint) color.Color { return t.BrightCyan })
}

// MenuBg is the start menu background.
func MenuBg() color.Color {
	return lipgloss.Color("#1f2937")
}

// MenuDisabled colors apps the session may not open.
func MenuDisabled() color.Color {
	return lipgloss.Color("#4b5563")
}

// SwitcherBg is the switcher overlay background.
func SwitcherBg() color.Color {
	return lipgloss.Color("#0b1220")
}

// SwitcherSelected highlights the selected switcher tile.
func SwitcherSelected() color.Color {
	return pick("#2563eb", func(t *tint.Tint) color.Color { return t.BrightBlue })
}

// NotificationError returns the color for error notifications.
func NotificationError() color.Color {
	return pick("#dc2626", func(t *tint.Tint) color.Color { return t.Red })
}

// NotificationWarning returns the color for warning notifications.
func NotificationWarning() color.Color {
	return pick("#d97706", func(t *tint.Tint) color.Color { return t.Yellow })
}

// NotificationSuccess returns the color for success notifications.
func NotificationSuccess() color.Color {
	return pick("#16a34a", func(t *tint.Tint) color.Color { return t.Green })
}

// NotificationInfo returns the color for info notifications.
func NotificationInfo() color.Color {
	return pick("#2563eb", func(t *tint.Tint) color.Color { return t.Blue })
}

// NotificationFg returns the foreground color for notifications.
func NotificationFg() color.Color {
	return lipgloss.Color("#ffffff")
}

// LogError, LogWarn and LogInfo color log lines in the admin console.
func LogError() color.Color {
	return pick("#f87171", func(t *tint.Tint) color.Color { return t.BrightRed })
}

func LogWarn() color.Color {
	return pick("#fbbf24", func(t *tint.Tint) color.Color { return t.BrightYellow })
}

func LogInfo() color.Color {
	return pick("#93c5fd", func(t *tint.Tint) color.Color { return t.BrightBlue })
}

// Dim is secondary text inside apps.
func Dim() color.Color {
	return lipgloss.Color("8")
}

// CLITableHeader returns the color for CLI table headers.
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

// CLITableKey returns the color for CLI table keys.
func CLITableKey() color.Color {
	return lipgloss.Color("11")
}

// CLITableDim returns the dimmed color for CLI table elements.
func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString converts a color.Color to a hex string
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
