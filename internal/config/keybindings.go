package config

import (
	"slices"
	"sort"
	"strings"
)

// Desktop actions that can be bound in [keybindings.desktop].
const (
	ActionSwitcherCycle    = "switcher_cycle"
	ActionCloseWindow      = "close_window"
	ActionMinimizeWindow   = "minimize_window"
	ActionMaximizeWindow   = "maximize_window"
	ActionDockLeft         = "dock_left"
	ActionDockRight        = "dock_right"
	ActionUndock           = "undock"
	ActionStartMenu        = "start_menu"
	ActionToggleShellStyle = "toggle_shell_style"
	ActionQuit             = "quit"
)

var actionDescriptions = map[string]string{
	ActionSwitcherCycle:    "Open / cycle the window switcher",
	ActionCloseWindow:      "Close active window",
	ActionMinimizeWindow:   "Minimize active window",
	ActionMaximizeWindow:   "Maximize / restore active window",
	ActionDockLeft:         "Dock active window left",
	ActionDockRight:        "Dock active window right",
	ActionUndock:           "Undock active window",
	ActionStartMenu:        "Toggle start menu",
	ActionToggleShellStyle: "Switch taskbar / dock style",
	ActionQuit:             "Quit",
}

// KnownActions returns every bindable action, sorted.
func KnownActions() []string {
	out := make([]string, 0, len(actionDescriptions))
	for a := range actionDescriptions {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// NormalizeModifier maps platform names onto the names Bubble Tea reports.
func NormalizeModifier(mod string) string {
	switch strings.ToLower(strings.TrimSpace(mod)) {
	case "opt", "option", "alt", "":
		return "alt"
	case "cmd", "command", "meta", "super", "win":
		return "super"
	case "ctrl", "control":
		return "ctrl"
	default:
		return strings.ToLower(mod)
	}
}

// KeybindRegistry resolves pressed keys to desktop actions.
type KeybindRegistry struct {
	modifier string
	byKey    map[string]string
	byAction map[string][]string
}

// NewKeybindRegistry builds a registry from the config. A nil config uses defaults.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	kr := &KeybindRegistry{
		modifier: NormalizeModifier(cfg.Keybindings.Modifier),
		byKey:    make(map[string]string),
		byAction: make(map[string][]string),
	}

	binds := cfg.Keybindings.Desktop
	if len(binds) == 0 {
		binds = DefaultConfig().Keybindings.Desktop
	}
	for _, action := range KnownActions() {
		for _, k := range binds[action] {
			key := kr.expand(k)
			if key == "" {
				continue
			}
			if _, taken := kr.byKey[key]; taken {
				continue
			}
			kr.byKey[key] = action
			kr.byAction[action] = append(kr.byAction[action], key)
		}
	}
	return kr
}

func (kr *KeybindRegistry) expand(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "mod" {
		return kr.modifier
	}
	if rest, ok := strings.CutPrefix(key, "mod+"); ok {
		return kr.modifier + "+" + rest
	}
	return key
}

// Modifier returns the normalized modifier name.
func (kr *KeybindRegistry) Modifier() string {
	return kr.modifier
}

// GetAction returns the action bound to a key string such as "alt+tab".
func (kr *KeybindRegistry) GetAction(key string) (string, bool) {
	a, ok := kr.byKey[key]
	return a, ok
}

// GetKeys returns the expanded keys bound to action.
func (kr *KeybindRegistry) GetKeys(action string) []string {
	return slices.Clone(kr.byAction[action])
}

// GetKeysForDisplay returns the keys bound to action formatted for help text.
func (kr *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := kr.byAction[action]
	if len(keys) == 0 {
		return ""
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		parts := strings.Split(k, "+")
		for j, p := range parts {
			if p != "" {
				parts[j] = strings.ToUpper(p[:1]) + p[1:]
			}
		}
		out[i] = strings.Join(parts, "+")
	}
	return strings.Join(out, ", ")
}

// GetKeybindings returns all keybinding sections for help output.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(nil)
	}

	windows := KeybindingSection{Title: "WINDOWS"}
	for _, a := range []string{
		ActionCloseWindow, ActionMinimizeWindow, ActionMaximizeWindow,
		ActionDockLeft, ActionDockRight, ActionUndock,
	} {
		addBinding(&windows, registry, a)
	}

	mod := strings.ToUpper(registry.modifier[:1]) + registry.modifier[1:]
	switcher := KeybindingSection{Title: "SWITCHER"}
	addBinding(&switcher, registry, ActionSwitcherCycle)
	switcher.Bindings = append(switcher.Bindings,
		Keybinding{"←/→", "Move selection"},
		Keybinding{"Enter", "Switch to selection"},
		Keybinding{"release " + mod, "Switch to selection"},
	)

	shell := KeybindingSection{Title: "SHELL"}
	addBinding(&shell, registry, ActionStartMenu)
	addBinding(&shell, registry, ActionToggleShellStyle)
	addBinding(&shell, registry, ActionQuit)

	mouse := KeybindingSection{
		Title: "MOUSE",
		Bindings: []Keybinding{
			{"Drag title bar", "Move window"},
			{"Double-click title bar", "Maximize / restore"},
			{"Right-drag window", "Resize"},
			{"Click taskbar entry", "Focus, minimize or restore"},
		},
	}

	sections := []KeybindingSection{}
	for _, s := range []KeybindingSection{windows, switcher, shell, mouse} {
		if len(s.Bindings) > 0 {
			sections = append(sections, s)
		}
	}
	return sections
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: actionDescriptions[action],
		})
	}
}
