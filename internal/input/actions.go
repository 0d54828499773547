package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskos/internal/app"
	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/Gaurav-Gosain/deskos/internal/layout"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd)

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

func (d *ActionDispatcher) registerHandlers() {
	d.Register(config.ActionSwitcherCycle, handleSwitcherCycle)

	// Window management
	d.Register(config.ActionCloseWindow, onActive(func(dt *app.Desktop, id registry.AppID) {
		dt.Store.Close(id)
	}))
	d.Register(config.ActionMinimizeWindow, onActive(func(dt *app.Desktop, id registry.AppID) {
		dt.Store.Minimize(id)
	}))
	d.Register(config.ActionMaximizeWindow, onActive(func(dt *app.Desktop, id registry.AppID) {
		dt.Store.Maximize(id)
	}))
	d.Register(config.ActionDockLeft, makeDockHandler(layout.DockLeft))
	d.Register(config.ActionDockRight, makeDockHandler(layout.DockRight))
	d.Register(config.ActionUndock, makeDockHandler(layout.DockNone))

	// Shell
	d.Register(config.ActionStartMenu, handleStartMenu)
	d.Register(config.ActionToggleShellStyle, handleToggleShellStyle)
	d.Register(config.ActionQuit, handleQuit)
}

// Register adds an action handler
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (d *ActionDispatcher) Dispatch(action string, msg tea.KeyPressMsg, dt *app.Desktop) (*app.Desktop, tea.Cmd) {
	if handler, ok := d.handlers[action]; ok {
		return handler(msg, dt)
	}
	return dt, nil
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

// Global action dispatcher instance
var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

// onActive wraps a window operation so it applies to the active window and
// does nothing when no window is active.
func onActive(op func(d *app.Desktop, id registry.AppID)) ActionHandler {
	return func(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
		if id, ok := d.Store.ActiveID(); ok {
			op(d, id)
		}
		return d, nil
	}
}

func makeDockHandler(side layout.DockSide) ActionHandler {
	return onActive(func(d *app.Desktop, id registry.AppID) {
		d.Store.Dock(id, side)
	})
}

func handleSwitcherCycle(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.ShowStartMenu = false
	d.Switcher.Cycle()
	return d, nil
}

func handleStartMenu(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.ShowStartMenu = !d.ShowStartMenu
	return d, nil
}

func handleToggleShellStyle(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.ToggleShellStyle()
	return d, nil
}

func handleQuit(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.LogInfo("Quit requested")
	return d, tea.Quit
}
