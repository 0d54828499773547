// Package app provides the desktop model: the window manager state, the
// running applications and the shell chrome drawn around them.
package app

import (
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskos/internal/apps"
	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/Gaurav-Gosain/deskos/internal/layout"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
	"github.com/Gaurav-Gosain/deskos/internal/session"
	"github.com/Gaurav-Gosain/deskos/internal/switcher"
	"github.com/Gaurav-Gosain/deskos/internal/wm"
	"github.com/google/uuid"
)

// Notification represents a temporary notification message.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "success", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// Config holds what a Desktop is built from. Zero fields get defaults.
type Config struct {
	Registry   *registry.Registry
	Catalog    apps.Catalog
	Session    session.Session
	Keybinds   *config.KeybindRegistry
	ShellStyle string
	Width      int
	Height     int
	Remote     bool
	Clock      func() time.Time
}

// Desktop represents the main application state and window manager.
type Desktop struct {
	Registry        *registry.Registry
	Store           *wm.Store
	Switcher        *switcher.Controller
	Catalog         apps.Catalog
	Session         session.Session
	KeybindRegistry *config.KeybindRegistry

	Width      int
	Height     int
	ShellStyle string
	Remote     bool // True when serving an SSH or web client

	ShowStartMenu bool

	// Gesture state. Motion events are only let through while one of these
	// is set.
	Dragging      bool
	Resizing      bool
	GestureWindow registry.AppID
	Drag          layout.Drag
	Resize        layout.Resize

	// Double-click tracking for title bars and desktop icons.
	LastClickTime   time.Time
	LastClickTarget string

	// ReleaseEvents is set once the terminal reports key release events.
	// The switcher hint then offers releasing the modifier instead of Enter.
	ReleaseEvents bool

	LogMessages   []apps.LogLine
	Notifications []Notification

	running map[registry.AppID]apps.App
	focused registry.AppID
	pending []tea.Cmd
	now     func() time.Time
}

// New builds a desktop with no open windows.
func New(cfg Config) *Desktop {
	if cfg.Registry == nil {
		cfg.Registry = registry.MustLoad()
	}
	if cfg.Catalog == nil {
		cfg.Catalog = apps.DefaultCatalog()
	}
	if cfg.Session.User == "" {
		cfg.Session = session.New("")
	}
	if cfg.Keybinds == nil {
		cfg.Keybinds = config.NewKeybindRegistry(nil)
	}
	if cfg.ShellStyle == "" {
		cfg.ShellStyle = config.ShellStyle
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = config.DefaultTerminalWidth, config.DefaultTerminalHeight
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	m := &Desktop{
		Registry:        cfg.Registry,
		Catalog:         cfg.Catalog,
		Session:         cfg.Session,
		KeybindRegistry: cfg.Keybinds,
		Width:           cfg.Width,
		Height:          cfg.Height,
		ShellStyle:      cfg.ShellStyle,
		Remote:          cfg.Remote,
		running:         make(map[registry.AppID]apps.App),
		now:             cfg.Clock,
	}
	m.Store = wm.NewStore(cfg.Registry,
		wm.WithCapabilities(cfg.Session),
		wm.WithTitleStyle(cfg.ShellStyle),
		wm.WithASCIIIcons(config.UseASCIIOnly),
		wm.WithZSeed(config.WindowZSeed),
		wm.WithMinSize(layout.Size{Width: config.MinWindowWidth, Height: config.MinWindowHeight}),
		wm.WithCascade(
			layout.Point{X: config.CascadeOriginX, Y: config.CascadeOriginY},
			layout.Point{X: config.CascadeStepX, Y: config.CascadeStepY},
		),
		wm.WithLogger(m.LogInfo),
	)
	m.Switcher = switcher.New(m.Store)
	m.LogInfo("Desktop started for %s, shell %s", cfg.Session, cfg.ShellStyle)
	if m.Remote {
		m.LogInfo("Serving a remote client at %dx%d", m.Width, m.Height)
	}
	return m
}

func createID() string {
	return uuid.New().String()
}

// Log adds a new log message to the log buffer.
func (m *Desktop) Log(level, format string, args ...any) {
	m.LogMessages = append(m.LogMessages, apps.LogLine{
		Time:    m.now(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
	if len(m.LogMessages) > config.MaxLogMessages {
		m.LogMessages = m.LogMessages[len(m.LogMessages)-config.MaxLogMessages:]
	}
}

// LogInfo logs an informational message.
func (m *Desktop) LogInfo(format string, args ...any) {
	m.Log("INFO", format, args...)
}

// LogWarn logs a warning message.
func (m *Desktop) LogWarn(format string, args ...any) {
	m.Log("WARN", format, args...)
}

// LogError logs an error message.
func (m *Desktop) LogError(format string, args ...any) {
	m.Log("ERROR", format, args...)
}

// ShowNotification displays a temporary notification.
func (m *Desktop) ShowNotification(message, notifType string, duration time.Duration) {
	m.Notifications = append(m.Notifications, Notification{
		ID:        createID(),
		Message:   message,
		Type:      notifType,
		StartTime: m.now(),
		Duration:  duration,
	})

	switch notifType {
	case apps.NotifyError:
		m.LogError("%s", message)
	case apps.NotifyWarning:
		m.LogWarn("%s", message)
	default:
		m.LogInfo("%s", message)
	}
}

// CleanupNotifications removes expired notifications.
func (m *Desktop) CleanupNotifications() {
	now := m.now()
	var active []Notification
	for _, notif := range m.Notifications {
		if now.Sub(notif.StartTime) < notif.Duration {
			active = append(active, notif)
		}
	}
	m.Notifications = active
}

// Viewport returns the terminal size.
func (m *Desktop) Viewport() layout.Viewport {
	return layout.Viewport{Width: m.Width, Height: m.Height}
}

// Chrome returns the rows taken by the current shell style.
func (m *Desktop) Chrome() layout.Chrome {
	return config.ShellChrome(m.ShellStyle)
}

// Frame returns the on-screen bounds of w.
func (m *Desktop) Frame(w wm.Window) layout.Rect {
	return w.Frame(m.Viewport(), m.Chrome())
}

// OpenApp opens or re-activates an app and starts its instance. A
// permission denial is shown to the user as an error notification.
func (m *Desktop) OpenApp(id registry.AppID, payload wm.Payload) error {
	if err := m.Store.OpenApp(id, payload); err != nil {
		if errors.Is(err, wm.ErrPermissionDenied) {
			d, _ := m.Registry.Lookup(id)
			m.ShowNotification(
				fmt.Sprintf("%s requires the %s role", d.Title, d.RequiresCapability),
				apps.NotifyError, config.NotificationDuration)
		} else {
			m.ShowNotification(err.Error(), apps.NotifyError, config.NotificationDuration)
		}
		return err
	}
	m.ensureApp(id)
	return nil
}

// Notify implements apps.Host.
func (m *Desktop) Notify(message, kind string) {
	m.ShowNotification(message, kind, config.NotificationDuration)
}

// Logs implements apps.Host.
func (m *Desktop) Logs() []apps.LogLine {
	return m.LogMessages
}

// host returns the view of the desktop handed to apps.
func (m *Desktop) host() apps.Host { return desktopHost{m} }

// desktopHost adapts Desktop to apps.Host, whose Session and Registry
// methods would clash with the Desktop fields of the same name.
type desktopHost struct{ *Desktop }

func (h desktopHost) Session() session.Session { return h.Desktop.Session }
func (h desktopHost) Registry() *registry.Registry { return h.Desktop.Registry }

// ensureApp starts the instance for an open window that has none.
func (m *Desktop) ensureApp(id registry.AppID) {
	if _, ok := m.running[id]; ok {
		return
	}
	a, ok := m.Catalog.New(id, m.host())
	if !ok {
		m.LogWarn("No app registered for %s", id)
		return
	}
	m.running[id] = a
	m.queue(apps.Target(id, a.Init()))
}

// App returns the running instance for id.
func (m *Desktop) App(id registry.AppID) (apps.App, bool) {
	a, ok := m.running[id]
	return a, ok
}

func (m *Desktop) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

// reconcile brings the app instances in line with the store: instances of
// closed windows are dropped, new windows get an instance, and the focus
// change, if any, is forwarded to the apps involved.
func (m *Desktop) reconcile() {
	for id, a := range m.running {
		if _, open := m.Store.Get(id); open {
			continue
		}
		if f, ok := a.(apps.Focusable); ok && id == m.focused {
			f.Blur()
		}
		delete(m.running, id)
	}
	for _, w := range m.Store.Windows() {
		m.ensureApp(w.ID)
	}

	active, _ := m.Store.ActiveID()
	if active == m.focused {
		return
	}
	if f, ok := m.running[m.focused].(apps.Focusable); ok {
		f.Blur()
	}
	m.focused = active
	if f, ok := m.running[active].(apps.Focusable); ok {
		m.queue(apps.Target(active, f.Focus()))
	}
}

// flush reconciles and returns cmd batched with everything queued.
func (m *Desktop) flush(cmd tea.Cmd) tea.Cmd {
	m.reconcile()
	cmds := append(m.pending, cmd)
	m.pending = nil
	return tea.Batch(cmds...)
}

// SendToApp delivers msg to the app in window id and writes back a changed
// payload. Messages for windows that are no longer open are dropped.
func (m *Desktop) SendToApp(id registry.AppID, msg tea.Msg) tea.Cmd {
	a, ok := m.running[id]
	if !ok {
		return nil
	}
	w, ok := m.Store.Get(id)
	if !ok {
		return nil
	}
	payload, cmd := a.Update(msg, w.Payload)
	if payload != nil {
		m.Store.UpdatePayload(id, payload)
	}
	return apps.Target(id, cmd)
}

// ClickApp forwards a left click in client coordinates to a clickable app.
func (m *Desktop) ClickApp(id registry.AppID, x, y int) tea.Cmd {
	c, ok := m.running[id].(apps.Clickable)
	if !ok {
		return nil
	}
	w, ok := m.Store.Get(id)
	if !ok {
		return nil
	}
	payload, cmd := c.Click(x, y, w.Payload)
	if payload != nil {
		m.Store.UpdatePayload(id, payload)
	}
	return apps.Target(id, cmd)
}

// ToggleShellStyle switches between the taskbar and dock layouts. Open
// windows keep their titles; new ones use the new style.
func (m *Desktop) ToggleShellStyle() {
	if m.ShellStyle == config.ShellDock {
		m.ShellStyle = config.ShellTaskbar
	} else {
		m.ShellStyle = config.ShellDock
	}
	m.Store.SetTitleStyle(m.ShellStyle)
	m.ShowStartMenu = false
	m.ClampWindowsToView()
	m.ShowNotification("Shell style: "+m.ShellStyle, apps.NotifyInfo, config.NotificationDuration)
}

// ClampWindowsToView moves floating windows back inside the usable area
// after the terminal or the chrome changed size.
func (m *Desktop) ClampWindowsToView() {
	vp, c := m.Viewport(), m.Chrome()
	for _, w := range m.Store.Windows() {
		if !w.Floating() {
			continue
		}
		size := layout.Size{Width: min(w.Size.Width, vp.Width), Height: min(w.Size.Height, c.UsableHeight(vp))}
		if size != w.Size {
			m.Store.Resize(w.ID, size.Width, size.Height)
		}
		p := layout.ClampPosition(w.Position, size, vp, c)
		if p != w.Position {
			m.Store.Move(w.ID, p.X, p.Y)
		}
	}
}

// EndGesture clears any drag or resize in progress.
func (m *Desktop) EndGesture() {
	m.Dragging = false
	m.Resizing = false
	m.GestureWindow = ""
}

// IsDoubleClick records a click on target and reports whether it completes
// a double click.
func (m *Desktop) IsDoubleClick(target string) bool {
	now := m.now()
	double := target == m.LastClickTarget && now.Sub(m.LastClickTime) <= config.DoubleClickThreshold
	if double {
		m.LastClickTarget = ""
		m.LastClickTime = time.Time{}
	} else {
		m.LastClickTarget = target
		m.LastClickTime = now
	}
	return double
}
