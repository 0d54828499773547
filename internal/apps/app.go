// Package apps contains the applications hosted in desktop windows and the
// catalog that maps an app id to its constructor.
//
// An app never touches the window manager directly. The window's payload is
// passed into Update and View; an app that changes its data returns the new
// payload from Update and the desktop writes it back.
package apps

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
	"github.com/Gaurav-Gosain/deskos/internal/session"
	"github.com/Gaurav-Gosain/deskos/internal/wm"
)

// App is one running application.
type App interface {
	Init() tea.Cmd
	// Update handles a key press or one of the app's own messages. A nil
	// payload result means the payload is unchanged.
	Update(msg tea.Msg, payload wm.Payload) (wm.Payload, tea.Cmd)
	// View renders the client area.
	View(width, height int, payload wm.Payload, focused bool) string
}

// Clickable apps receive left clicks inside their client area, in client
// coordinates.
type Clickable interface {
	Click(x, y int, payload wm.Payload) (wm.Payload, tea.Cmd)
}

// Focusable apps are told when their window gains or loses focus.
type Focusable interface {
	Focus() tea.Cmd
	Blur()
}

// Notification kinds accepted by Host.Notify.
const (
	NotifyInfo    = "info"
	NotifySuccess = "success"
	NotifyWarning = "warning"
	NotifyError   = "error"
)

// LogLine is one entry of the desktop log.
type LogLine struct {
	Time    time.Time
	Level   string
	Message string
}

// Host is what the desktop exposes to apps.
type Host interface {
	// OpenApp opens or re-activates another app. Permission errors are
	// returned and already surfaced to the user.
	OpenApp(id registry.AppID, payload wm.Payload) error
	Notify(message, kind string)
	Logs() []LogLine
	Session() session.Session
	Registry() *registry.Registry
}

// Factory builds an app for the given host.
type Factory func(host Host) App

// Catalog maps app ids to factories.
type Catalog map[registry.AppID]Factory

// DefaultCatalog returns the built-in apps.
func DefaultCatalog() Catalog {
	return Catalog{
		registry.Notepad:  NewNotepad,
		registry.Vault:    NewVault,
		registry.Preview:  NewPreview,
		registry.Browser:  NewBrowser,
		registry.Chat:     NewChat,
		registry.Messages: NewMessages,
		registry.Admin:    NewAdmin,
		registry.Settings: NewSettings,
	}
}

// New builds the app for id, or reports false when id has no factory.
func (c Catalog) New(id registry.AppID, host Host) (App, bool) {
	f, ok := c[id]
	if !ok {
		return nil, false
	}
	return f(host), true
}

// TargetedMsg carries a message produced by an app's command back to that
// app.
type TargetedMsg struct {
	ID  registry.AppID
	Msg tea.Msg
}

// Target wraps cmd so its result is delivered to the app with id. Batches
// are unwrapped so each command in them is targeted.
func Target(id registry.AppID, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		switch msg := msg.(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			wrapped := make(tea.BatchMsg, 0, len(msg))
			for _, c := range msg {
				if c != nil {
					wrapped = append(wrapped, Target(id, c))
				}
			}
			return wrapped
		default:
			return TargetedMsg{ID: id, Msg: msg}
		}
	}
}
