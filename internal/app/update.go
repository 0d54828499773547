package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskos/internal/apps"
	"github.com/Gaurav-Gosain/deskos/internal/config"
)

// TickerMsg represents a periodic tick event. It refreshes the clock and
// expires notifications.
type TickerMsg time.Time

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, d *Desktop) (tea.Model, tea.Cmd)

// inputHandler is the registered input handler function.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// TickCmd schedules the next tick.
func TickCmd() tea.Cmd {
	return tea.Tick(config.TickInterval, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Init starts the tick timer and any app opened before the program ran.
func (m *Desktop) Init() tea.Cmd {
	return m.flush(TickCmd())
}

// Update handles all incoming messages and updates the desktop state.
func (m *Desktop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		m.CleanupNotifications()
		return m, TickCmd()

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.ClampWindowsToView()
		return m, nil

	case apps.TargetedMsg:
		return m, m.flush(m.SendToApp(msg.ID, msg.Msg))

	case tea.KeyPressMsg, tea.KeyReleaseMsg, tea.MouseClickMsg, tea.MouseMotionMsg,
		tea.MouseReleaseMsg, tea.MouseWheelMsg, tea.PasteMsg:
		if inputHandler == nil {
			return m, nil
		}
		model, cmd := inputHandler(msg, m)
		return model, m.flush(cmd)

	case tea.KeyboardEnhancementsMsg:
		// Without release events the switcher hint asks for Enter.
		m.ReleaseEvents = msg.SupportsEventTypes()
		if m.ReleaseEvents {
			m.LogInfo("Terminal reports key release events")
		}
		return m, nil

	case tea.FocusMsg, tea.BlurMsg:
		return m, nil
	}

	return m, nil
}

// FilterMouseMotion drops motion events unless a drag or resize is in
// progress. It is installed with tea.WithFilter.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	if d, ok := model.(*Desktop); ok && (d.Dragging || d.Resizing) {
		return msg
	}
	return nil
}
