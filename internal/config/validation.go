package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationIssue is one problem found in the user config.
type ValidationIssue struct {
	Field   string
	Key     string
	Message string
}

// ValidationResult collects errors, which stop startup, and warnings, which don't.
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// HasErrors reports whether any error was recorded.
func (v *ValidationResult) HasErrors() bool { return len(v.Errors) > 0 }

// HasWarnings reports whether any warning was recorded.
func (v *ValidationResult) HasWarnings() bool { return len(v.Warnings) > 0 }

func (v *ValidationResult) addError(field, key, format string, args ...any) {
	v.Errors = append(v.Errors, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

func (v *ValidationResult) addWarning(field, key, format string, args ...any) {
	v.Warnings = append(v.Warnings, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

var (
	validShellStyles  = []string{ShellTaskbar, ShellDock}
	validBorderStyles = []string{"rounded", "normal", "thick", "double", "hidden", "block", "ascii"}
	validModifiers    = []string{"alt", "super", "ctrl"}
)

// ValidateConfig checks a filled config.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	v := &ValidationResult{}

	if !slices.Contains(validShellStyles, cfg.Appearance.ShellStyle) {
		v.addError("appearance", "shell_style", "%q is not one of %s",
			cfg.Appearance.ShellStyle, strings.Join(validShellStyles, ", "))
	}
	if !slices.Contains(validBorderStyles, cfg.Appearance.BorderStyle) {
		v.addWarning("appearance", "border_style", "unknown style %q, using rounded", cfg.Appearance.BorderStyle)
	}

	if !slices.Contains(validModifiers, cfg.Keybindings.Modifier) {
		v.addError("keybindings", "modifier", "%q is not one of %s",
			cfg.Keybindings.Modifier, strings.Join(validModifiers, ", "))
	}

	known := KnownActions()
	seen := make(map[string]string)
	for action, keys := range cfg.Keybindings.Desktop {
		if !slices.Contains(known, action) {
			v.addWarning("keybindings.desktop", action, "unknown action, ignored")
			continue
		}
		if len(keys) == 0 {
			v.addWarning("keybindings.desktop", action, "no keys bound")
		}
		for _, k := range keys {
			k = strings.ToLower(strings.TrimSpace(k))
			if k == "" {
				v.addError("keybindings.desktop", action, "empty key")
				continue
			}
			if other, dup := seen[k]; dup && other != action {
				v.addError("keybindings.desktop", action, "key %q is already bound to %s", k, other)
				continue
			}
			seen[k] = action
		}
	}

	for _, r := range cfg.Session.Roles {
		if strings.TrimSpace(r) == "" {
			v.addWarning("session", "roles", "empty role ignored")
		}
	}
	if slices.Contains(cfg.Session.RemoteRoles, "admin") {
		v.addWarning("session", "remote_roles", "remote sessions are granted admin")
	}

	return v
}
