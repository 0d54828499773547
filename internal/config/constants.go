// Package config provides configuration constants, keybinding management, and user settings.
package config

import (
	"time"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskos/internal/layout"
)

// =============================================================================
// Window Defaults
// =============================================================================

const (
	// MinWindowWidth is the minimum width a window can be resized to
	MinWindowWidth = 20

	// MinWindowHeight is the minimum height a window can be resized to
	MinWindowHeight = 6

	// WindowZSeed is the first z-index handed to an application window.
	// Wallpaper and desktop icons sit below it.
	WindowZSeed = 100

	// CascadeOriginX and CascadeOriginY place the first window without a preferred position
	CascadeOriginX = 4
	CascadeOriginY = 2

	// CascadeStepX and CascadeStepY offset each following window
	CascadeStepX = 3
	CascadeStepY = 1
)

// =============================================================================
// Timeouts and Intervals
// =============================================================================

const (
	// DoubleClickThreshold is the max delay between two title bar clicks
	DoubleClickThreshold = 500 * time.Millisecond

	// TickInterval drives the clock and notification cleanup
	TickInterval = 250 * time.Millisecond

	// StatsInterval is the interval between system stats samples for the admin console
	StatsInterval = 2 * time.Second

	// NotificationDuration is the default duration notifications remain visible
	NotificationDuration = 3 * time.Second

	// NotificationFadeOutDuration is the fade out duration for notifications
	NotificationFadeOutDuration = 500 * time.Millisecond

	// ShutdownTimeout bounds graceful server shutdown
	ShutdownTimeout = 30 * time.Second
)

// =============================================================================
// FPS and Refresh Rates
// =============================================================================

const (
	// NormalFPS is the refresh rate during regular operation
	NormalFPS = 60
)

// =============================================================================
// Shell Layout
// =============================================================================

// Shell styles.
const (
	ShellTaskbar = "taskbar"
	ShellDock    = "dock"
)

const (
	// TaskbarHeight is the bottom bar height in taskbar style
	TaskbarHeight = 1

	// MenuBarHeight is the top bar height in dock style
	MenuBarHeight = 1

	// DockHeight is the bottom dock height in dock style
	DockHeight = 3

	// StartMenuWidth is the width of the start menu / launchpad panel
	StartMenuWidth = 30

	// SwitcherEntryWidth is the width of one switcher tile
	SwitcherEntryWidth = 16

	// SwitcherHeight is the height of the switcher overlay
	SwitcherHeight = 5

	// TaskbarEntryWidth is the max width of a taskbar window entry
	TaskbarEntryWidth = 18

	// DockItemWidth is the width of one dock icon cell
	DockItemWidth = 5

	// ClockWidth is the width reserved for the clock
	ClockWidth = 8

	// BorderWidth is the width of window borders (2 for left and right)
	BorderWidth = 2

	// BorderHeight is the height of window borders (2 for top and bottom)
	BorderHeight = 2
)

// ShellChrome returns the fixed chrome heights of a shell style.
func ShellChrome(style string) layout.Chrome {
	if style == ShellDock {
		return layout.Chrome{Top: MenuBarHeight, Bottom: DockHeight}
	}
	return layout.Chrome{Top: 0, Bottom: TaskbarHeight}
}

// =============================================================================
// Z-Index Layers
// =============================================================================

const (
	// ZIndexWallpaper is the z-index of the desktop background
	ZIndexWallpaper = 0

	// ZIndexDesktopIcons is the z-index of desktop shortcuts
	ZIndexDesktopIcons = 1
)

// Shell chrome paints above the topmost window. These offsets are added to
// the store's highest z-index each frame.
const (
	ZOffsetShell         = 1
	ZOffsetStartMenu     = 2
	ZOffsetSwitcher      = 3
	ZOffsetNotifications = 4
)

// =============================================================================
// Limits
// =============================================================================

const (
	// MaxLogMessages is the maximum number of log messages to keep in memory
	MaxLogMessages = 100

	// MaxNotifications is the number of toasts shown at once
	MaxNotifications = 3

	// NotificationSpacing is the vertical gap between stacked toasts
	NotificationSpacing = 4

	// NotificationMaxWidth caps the toast width
	NotificationMaxWidth = 48

	// MaxChatHistory is the number of chat lines kept by the assistant app
	MaxChatHistory = 200
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSSHPort is the default SSH server port
	DefaultSSHPort = "2222"

	// DefaultSSHHost is the default SSH server host
	DefaultSSHHost = "localhost"

	// DefaultWebPort is the default web terminal port
	DefaultWebPort = "7681"

	// DefaultTerminalWidth is the fallback terminal width when screen size unknown
	DefaultTerminalWidth = 80

	// DefaultTerminalHeight is the fallback terminal height when screen size unknown
	DefaultTerminalHeight = 24

	// DefaultModifier is the switcher and shortcut modifier
	DefaultModifier = "alt"
)

// =============================================================================
// Notification Styling
// =============================================================================

const (
	NotificationIconError   = "[X]"
	NotificationIconWarning = "[!]"
	NotificationIconSuccess = "[OK]"
	NotificationIconInfo    = "[i]"
)

// =============================================================================
// Runtime Configuration
// =============================================================================

// UseASCIIOnly controls whether to use ASCII fallback characters instead of Nerd Fonts
// Set via --ascii-only command-line flag
var UseASCIIOnly = false

// BorderStyle controls which border style to use for windows
// Set via --border-style flag or appearance.border_style config
var BorderStyle = "rounded"

// ShellStyle selects the taskbar or dock shell layout
// Set via --shell-style flag or appearance.shell_style config
var ShellStyle = ShellTaskbar

// HideClock controls whether the clock is hidden
// Set via --hide-clock flag or appearance.hide_clock config
var HideClock = false

// Modifier is the key held for the switcher and window shortcuts
// Set via keybindings.modifier config
var Modifier = DefaultModifier

// =============================================================================
// Window Decoration Characters
// =============================================================================

const (
	// WindowButtonClose is the close window button.
	WindowButtonClose = " ⤫ "
	// WindowButtonMaximize is the maximize/restore button.
	WindowButtonMaximize = " □ "
	// WindowButtonMinimize is the minimize button.
	WindowButtonMinimize = " — "
	// WindowPillLeft is the left pill-style character for window decorations.
	WindowPillLeft = string(rune(0xe0b6))
	// WindowPillRight is the right pill-style character for window decorations.
	WindowPillRight = string(rune(0xe0b4))

	// StartButton is the start menu glyph in taskbar style.
	StartButton = " ⊞ Start "
	// MenuBarLogo is the launchpad glyph in dock style.
	MenuBarLogo = "  "
)

const (
	WindowButtonCloseASCII    = " X "
	WindowButtonMaximizeASCII = " O "
	WindowButtonMinimizeASCII = " _ "
	WindowPillLeftASCII       = "["
	WindowPillRightASCII      = "]"
	StartButtonASCII          = " Start "
	MenuBarLogoASCII          = " @ "
)

// GetBorderForStyle returns the lipgloss Border for the current style
func GetBorderForStyle() lipgloss.Border {
	if UseASCIIOnly || BorderStyle == "ascii" {
		return lipgloss.ASCIIBorder()
	}
	switch BorderStyle {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// GetWindowButtonClose returns the appropriate close button
func GetWindowButtonClose() string {
	if UseASCIIOnly {
		return WindowButtonCloseASCII
	}
	return WindowButtonClose
}

// GetWindowButtonMaximize returns the appropriate maximize button
func GetWindowButtonMaximize() string {
	if UseASCIIOnly {
		return WindowButtonMaximizeASCII
	}
	return WindowButtonMaximize
}

// GetWindowButtonMinimize returns the appropriate minimize button
func GetWindowButtonMinimize() string {
	if UseASCIIOnly {
		return WindowButtonMinimizeASCII
	}
	return WindowButtonMinimize
}

// GetWindowPillLeft returns the appropriate pill left character
func GetWindowPillLeft() string {
	if UseASCIIOnly {
		return WindowPillLeftASCII
	}
	return WindowPillLeft
}

// GetWindowPillRight returns the appropriate pill right character
func GetWindowPillRight() string {
	if UseASCIIOnly {
		return WindowPillRightASCII
	}
	return WindowPillRight
}

// GetStartButton returns the taskbar start button label
func GetStartButton() string {
	if UseASCIIOnly {
		return StartButtonASCII
	}
	return StartButton
}

// GetMenuBarLogo returns the dock style menu bar logo
func GetMenuBarLogo() string {
	if UseASCIIOnly {
		return MenuBarLogoASCII
	}
	return MenuBarLogo
}

// =============================================================================
// Button Positions (relative offsets)
// =============================================================================

// Title bar buttons are placed relative to the right edge of the frame
// (x + width). Each range is inclusive.
const (
	MinimizeButtonLeft  = -11
	MinimizeButtonRight = -9
	MaximizeButtonLeft  = -8
	MaximizeButtonRight = -6
	CloseButtonLeft     = -5
	CloseButtonRight    = -3
)
