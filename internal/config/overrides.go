package config

import (
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/deskos/internal/theme"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII characters instead of Nerd Font icons
	ASCIIOnly bool

	// BorderStyle overrides the window border style
	BorderStyle string

	// ShellStyle overrides the shell layout (taskbar or dock)
	ShellStyle string

	// HideClock overrides hiding the clock
	HideClock bool

	// ThemeName is the theme to load
	ThemeName string
}

// ApplyOverrides applies CLI flag overrides to global config, falling back to user config defaults.
// If userConfig is nil, only CLI flag values (when set) are applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	// ASCII Only - OR of CLI flag and user config
	UseASCIIOnly = overrides.ASCIIOnly || (userConfig != nil && userConfig.Appearance.ASCIIOnly)

	// Border Style - CLI flag takes precedence, otherwise use user config
	if overrides.BorderStyle != "" {
		BorderStyle = overrides.BorderStyle
	} else if userConfig != nil && userConfig.Appearance.BorderStyle != "" {
		BorderStyle = userConfig.Appearance.BorderStyle
	}

	// Shell Style - CLI flag takes precedence, otherwise use user config
	if overrides.ShellStyle != "" {
		ShellStyle = overrides.ShellStyle
	} else if userConfig != nil && userConfig.Appearance.ShellStyle != "" {
		ShellStyle = userConfig.Appearance.ShellStyle
	}
	if ShellStyle != ShellDock {
		ShellStyle = ShellTaskbar
	}

	// Hide Clock - OR of CLI flag and user config
	HideClock = overrides.HideClock || (userConfig != nil && userConfig.Appearance.HideClock)

	// Modifier - only from user config
	if userConfig != nil && userConfig.Keybindings.Modifier != "" {
		Modifier = NormalizeModifier(userConfig.Keybindings.Modifier)
	}

	// Theme - CLI flag takes precedence, otherwise use user config
	themeName := overrides.ThemeName
	if themeName == "" && userConfig != nil && userConfig.Appearance.Theme != "" {
		themeName = userConfig.Appearance.Theme
	}
	if themeName != "" {
		if err := theme.Initialize(themeName); err != nil {
			log.Warn("Failed to load theme", "theme", themeName, "err", err)
		}
	}
}
