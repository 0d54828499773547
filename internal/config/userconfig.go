package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

const configRelPath = "deskos/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
	Session     SessionConfig     `toml:"session"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	Theme       string `toml:"theme"`        // Color theme name (e.g., dracula, nord, my-custom-theme)
	ShellStyle  string `toml:"shell_style"`  // Shell layout: taskbar, dock
	BorderStyle string `toml:"border_style"` // Border style: rounded, normal, thick, double, hidden, block, ascii
	ASCIIOnly   bool   `toml:"ascii_only"`   // Use ASCII instead of Nerd Font glyphs
	HideClock   bool   `toml:"hide_clock"`   // Hide the clock (default: false)
}

// KeybindingsConfig holds keybinding configuration
type KeybindingsConfig struct {
	Modifier string              `toml:"modifier"` // Switcher and shortcut modifier: alt, super, ctrl (default: alt)
	Desktop  map[string][]string `toml:"desktop"`  // action -> keys, "mod" expands to the modifier
}

// SessionConfig holds the signed-in user and the roles granted to it
type SessionConfig struct {
	User        string   `toml:"user"`         // Display name (default: $USER)
	Roles       []string `toml:"roles"`        // Roles for local sessions (default: [user])
	RemoteRoles []string `toml:"remote_roles"` // Roles for SSH and web sessions (default: [user])
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			ShellStyle:  ShellTaskbar,
			BorderStyle: "rounded",
		},
		Keybindings: KeybindingsConfig{
			Modifier: DefaultModifier,
			Desktop: map[string][]string{
				ActionSwitcherCycle:    {"mod+tab"},
				ActionCloseWindow:      {"mod+w"},
				ActionMinimizeWindow:   {"mod+m"},
				ActionMaximizeWindow:   {"mod+up"},
				ActionDockLeft:         {"mod+left"},
				ActionDockRight:        {"mod+right"},
				ActionUndock:           {"mod+down"},
				ActionStartMenu:        {"mod+space"},
				ActionToggleShellStyle: {"mod+s"},
				ActionQuit:             {"mod+q", "ctrl+c"},
			},
		},
		Session: SessionConfig{
			Roles:       []string{"user"},
			RemoteRoles: []string{"user"},
		},
	}
}

// LoadUserConfig loads the user configuration from XDG config directory
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		// Config doesn't exist, create default
		return createDefaultConfig()
	}
	return LoadUserConfigFile(configPath)
}

// LoadUserConfigFile reads, fills and validates the config at path.
func LoadUserConfigFile(configPath string) (*UserConfig, error) {
	// #nosec G304 - configPath is from XDG search or an explicit flag
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)
	fillMissingSession(&cfg, defaultCfg)

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		for _, err := range validation.Errors {
			fmt.Fprintf(os.Stderr, "Config error in [%s]: %s - %s\n", err.Field, err.Key, err.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s), please fix and restart", len(validation.Errors))
	}
	for _, warn := range validation.Warnings {
		fmt.Fprintf(os.Stderr, "Config warning in [%s]: %s - %s\n", warn.Field, warn.Key, warn.Message)
	}

	return &cfg, nil
}

// createDefaultConfig creates a default config file in the user's config directory
func createDefaultConfig() (*UserConfig, error) {
	configPath, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	cfg := DefaultConfig()
	if err := WriteConfig(configPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfig writes cfg to path with the documentation header.
func WriteConfig(configPath string, cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# DeskOS Configuration File\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n")
	sb.WriteString("# For keybindings, run: deskos keybinds list\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# APPEARANCE\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# shell_style: taskbar (bottom bar) or dock (top menu bar and bottom dock)\n")
	sb.WriteString("# border_style: rounded, normal, thick, double, hidden, block, ascii\n")
	sb.WriteString("# theme: bubbletint theme id, or a file in ~/.config/deskos/themes/*.json\n")
	sb.WriteString("#   Leave empty to use the built-in colors. CLI flag --theme overrides this.\n")
	sb.WriteString("#\n")
	sb.WriteString("# KEYBINDINGS\n")
	sb.WriteString("# modifier: alt, super or ctrl. \"mod\" in [keybindings.desktop] expands to it.\n")
	sb.WriteString("#\n")
	sb.WriteString("# SESSION\n")
	sb.WriteString("# roles: granted to local sessions. \"admin\" unlocks the admin console.\n")
	sb.WriteString("# remote_roles: granted to SSH and browser sessions.\n")
	sb.WriteString("# ============================================================================\n\n")

	sb.Write(data)

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// fillMissingAppearance fills in any missing appearance settings with defaults
func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.ShellStyle == "" {
		cfg.Appearance.ShellStyle = defaultCfg.Appearance.ShellStyle
	}
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
}

// fillMissingKeybinds fills in any missing keybindings with defaults
func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings.Modifier == "" {
		cfg.Keybindings.Modifier = defaultCfg.Keybindings.Modifier
	}
	if cfg.Keybindings.Desktop == nil {
		cfg.Keybindings.Desktop = make(map[string][]string)
	}
	for k, v := range defaultCfg.Keybindings.Desktop {
		if _, exists := cfg.Keybindings.Desktop[k]; !exists {
			cfg.Keybindings.Desktop[k] = v
		}
	}
}

// fillMissingSession fills in any missing session settings with defaults
func fillMissingSession(cfg, defaultCfg *UserConfig) {
	if len(cfg.Session.Roles) == 0 {
		cfg.Session.Roles = defaultCfg.Session.Roles
	}
	if len(cfg.Session.RemoteRoles) == 0 {
		cfg.Session.RemoteRoles = defaultCfg.Session.RemoteRoles
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		// Return where it would be created
		return xdg.ConfigFile(configRelPath)
	}
	return path, nil
}
