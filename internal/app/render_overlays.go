package app

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskos/internal/apps"
	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/Gaurav-Gosain/deskos/internal/layout"
	"github.com/Gaurav-Gosain/deskos/internal/theme"
)

// boxed draws rows inside a border of the given outer size.
func boxed(rows []string, r layout.Rect, fg, bg lipgloss.Style) string {
	border := config.GetBorderForStyle()
	innerW := max(r.Width-2, 0)

	out := make([]string, 0, r.Height)
	out = append(out, fg.Render(border.TopLeft+strings.Repeat(border.Top, innerW)+border.TopRight))
	for i := range max(r.Height-2, 0) {
		row := ""
		if i < len(rows) {
			row = rows[i]
		}
		out = append(out, fg.Render(border.Left)+bg.Render(padRight(row, innerW))+fg.Render(border.Right))
	}
	out = append(out, fg.Render(border.BottomLeft+strings.Repeat(border.Bottom, innerW)+border.BottomRight))
	return strings.Join(out, "\n")
}

// renderStartMenu lists every app. Apps the session may not open are
// drawn disabled but stay clickable, so the denial is explained.
func (m *Desktop) renderStartMenu(z int) *lipgloss.Layer {
	r := m.StartMenuRect()
	bg := lipgloss.NewStyle().Background(theme.MenuBg()).Foreground(theme.BarFg())
	fg := lipgloss.NewStyle().Foreground(theme.Accent()).Background(theme.MenuBg())

	var rows []string
	for _, d := range m.Registry.All() {
		label := " " + d.IconFor(config.UseASCIIOnly) + "  " + d.TitleFor(m.ShellStyle)
		if d.RequiresCapability != "" && !m.Session.HasCapability(d.RequiresCapability) {
			label = lipgloss.NewStyle().Foreground(theme.MenuDisabled()).
				Render(padRight(label, r.Width-10) + " locked")
		}
		rows = append(rows, label)
	}
	return lipgloss.NewLayer(boxed(rows, r, fg, bg)).X(r.X).Y(r.Y).Z(z).ID("startmenu")
}

// renderSwitcher draws the window switcher, most recent window first.
func (m *Desktop) renderSwitcher(z int) *lipgloss.Layer {
	entries := m.Switcher.Entries()
	box, ew := m.SwitcherRect(len(entries))
	selected := m.Switcher.Selected()

	bg := lipgloss.NewStyle().Background(theme.SwitcherBg()).Foreground(theme.BarFg())
	sel := bg.Background(theme.SwitcherSelected()).Bold(true)
	fg := lipgloss.NewStyle().Foreground(theme.Accent()).Background(theme.SwitcherBg())

	rows := make([]string, 3)
	for i, w := range entries {
		style := bg
		if i == selected {
			style = sel
		}
		state := ""
		if w.Minimized {
			state = "minimized"
		}
		rows[0] += style.Render(center(w.Icon, ew))
		rows[1] += style.Render(center(w.Title, ew))
		rows[2] += style.Render(center(state, ew))
	}
	hint := lipgloss.NewStyle().Foreground(theme.Dim()).Render(center(m.SwitcherHint(), box.Width))
	return lipgloss.NewLayer(boxed(rows, box, fg, bg)+"\n"+hint).X(box.X).Y(box.Y).Z(z).ID("switcher")
}

// SwitcherHint tells how to commit the selection. Releasing the modifier
// only works on terminals that report key release events.
func (m *Desktop) SwitcherHint() string {
	if !m.ReleaseEvents {
		return "Enter to switch"
	}
	mod := m.KeybindRegistry.Modifier()
	return "Release " + strings.ToUpper(mod[:1]) + mod[1:] + " to switch"
}

// renderNotifications stacks the newest toasts in the top right corner.
func (m *Desktop) renderNotifications(z int) []*lipgloss.Layer {
	if len(m.Notifications) == 0 {
		return nil
	}
	m.CleanupNotifications()

	var layers []*lipgloss.Layer
	notifY := m.Chrome().Top + 1
	for i, notif := range m.Notifications {
		if i >= config.MaxNotifications {
			break
		}

		var bg, icon string
		switch notif.Type {
		case apps.NotifyError:
			bg, icon = theme.ColorToString(theme.NotificationError()), config.NotificationIconError
		case apps.NotifyWarning:
			bg, icon = theme.ColorToString(theme.NotificationWarning()), config.NotificationIconWarning
		case apps.NotifySuccess:
			bg, icon = theme.ColorToString(theme.NotificationSuccess()), config.NotificationIconSuccess
		default:
			bg, icon = theme.ColorToString(theme.NotificationInfo()), config.NotificationIconInfo
		}

		maxWidth := min(max(m.Width-8, 20), config.NotificationMaxWidth)
		message := notif.Message
		if maxLen := maxWidth - 10; len([]rune(message)) > maxLen {
			message = string([]rune(message)[:max(maxLen-3, 0)]) + "..."
		}

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(bg)).
			Foreground(theme.NotificationFg()).
			Padding(1, 2).
			Bold(true).
			MaxWidth(maxWidth)
		if fading(notif, m.now()) {
			style = style.Faint(true)
		}
		box := style.Render(fmt.Sprintf(" %s  %s ", icon, message))

		x := max(m.Width-lipgloss.Width(box)-2, 0)
		layers = append(layers, lipgloss.NewLayer(box).
			X(x).Y(notifY+i*config.NotificationSpacing).Z(z).
			ID(fmt.Sprintf("notif-%s", notif.ID)))
	}
	return layers
}

// fading reports whether a toast is in its fade out window.
func fading(n Notification, now time.Time) bool {
	return n.Duration-now.Sub(n.StartTime) < config.NotificationFadeOutDuration
}
