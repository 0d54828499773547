package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/Gaurav-Gosain/deskos/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// padRight truncates or pads s to exactly width cells.
func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	return s + strings.Repeat(" ", width-ansi.StringWidth(s))
}

// center pads s on both sides to width cells.
func center(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	gap := max(width-ansi.StringWidth(s), 0)
	return strings.Repeat(" ", gap/2) + s + strings.Repeat(" ", gap-gap/2)
}

func (m *Desktop) renderWallpaper() *lipgloss.Layer {
	row := strings.Repeat(" ", max(m.Width, 0))
	rows := make([]string, max(m.Height, 0))
	for i := range rows {
		rows[i] = row
	}
	bg := lipgloss.NewStyle().Background(theme.DesktopBg())
	return lipgloss.NewLayer(bg.Render(strings.Join(rows, "\n"))).
		X(0).Y(0).Z(config.ZIndexWallpaper).ID("wallpaper")
}

func (m *Desktop) renderDesktopIcons() []*lipgloss.Layer {
	style := lipgloss.NewStyle().Foreground(theme.DesktopIconFg()).Background(theme.DesktopBg())
	var layers []*lipgloss.Layer
	for _, it := range m.DesktopIcons() {
		d, _ := m.Registry.Lookup(it.App)
		w := it.Rect.Width
		block := center("["+d.IconFor(config.UseASCIIOnly)+"]", w) + "\n" +
			center(d.TitleFor(m.ShellStyle), w)
		layers = append(layers, lipgloss.NewLayer(style.Render(block)).
			X(it.Rect.X).Y(it.Rect.Y).Z(config.ZIndexDesktopIcons).ID("icon-"+string(it.App)))
	}
	return layers
}

func (m *Desktop) clock() string {
	if config.HideClock {
		return ""
	}
	return center(m.now().Format("15:04"), config.ClockWidth)
}

func (m *Desktop) renderShell(z int) []*lipgloss.Layer {
	if m.ShellStyle == config.ShellDock {
		return []*lipgloss.Layer{m.renderMenuBar(z), m.renderDock(z)}
	}
	return []*lipgloss.Layer{m.renderTaskbar(z)}
}

// renderTaskbar draws the bottom bar: start button, one entry per window
// and the clock.
func (m *Desktop) renderTaskbar(z int) *lipgloss.Layer {
	bar := lipgloss.NewStyle().Background(theme.BarBg()).Foreground(theme.BarFg())
	active, _ := m.Store.ActiveID()

	var b strings.Builder
	start := lipgloss.NewStyle().Bold(true).Background(theme.Accent()).Foreground(theme.ButtonFg())
	if m.ShowStartMenu {
		start = start.Reverse(true)
	}
	b.WriteString(start.Render(config.GetStartButton()))
	used := m.StartButtonRect().Width

	for _, it := range m.TaskbarEntries() {
		w, ok := m.Store.Get(it.App)
		if !ok {
			continue
		}
		gap := it.Rect.X - used
		b.WriteString(bar.Render(strings.Repeat(" ", gap)))

		label := padRight(" "+w.Icon+" "+w.Title, it.Rect.Width)
		style := bar
		switch {
		case w.ID == active:
			style = bar.Background(theme.BarActive()).Bold(true)
		case w.Minimized:
			style = bar.Foreground(theme.BarDimmed())
		}
		b.WriteString(style.Render(label))
		used = it.Rect.X + it.Rect.Width
	}

	clock := m.clock()
	fill := max(m.Width-used-ansi.StringWidth(clock), 0)
	b.WriteString(bar.Render(strings.Repeat(" ", fill) + clock))

	return lipgloss.NewLayer(ansi.Truncate(b.String(), m.Width, "")).
		X(0).Y(m.Height - config.TaskbarHeight).Z(z).ID("taskbar")
}

// renderMenuBar draws the dock style top bar: logo, active app name, user
// and clock.
func (m *Desktop) renderMenuBar(z int) *lipgloss.Layer {
	bar := lipgloss.NewStyle().Background(theme.BarBg()).Foreground(theme.BarFg())
	logo := lipgloss.NewStyle().Bold(true).Background(theme.BarBg()).Foreground(theme.Accent())
	if m.ShowStartMenu {
		logo = logo.Reverse(true)
	}

	left := logo.Render(config.GetMenuBarLogo())
	if w, ok := m.Store.Active(); ok {
		left += bar.Bold(true).Render(" " + w.Title + " ")
	}
	right := bar.Render(m.Session.User + " " + m.clock())
	fill := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 0)

	line := left + bar.Render(strings.Repeat(" ", fill)) + right
	return lipgloss.NewLayer(ansi.Truncate(line, m.Width, "")).X(0).Y(0).Z(z).ID("menubar")
}

// renderDock draws the dock: a launcher cell per app with a dot under the
// ones that have a window.
func (m *Desktop) renderDock(z int) *lipgloss.Layer {
	bar := lipgloss.NewStyle().Background(theme.BarBg()).Foreground(theme.BarFg())
	active, _ := m.Store.ActiveID()
	items := m.DockItems()

	var icons, dots strings.Builder
	x := 0
	if len(items) > 0 {
		x = items[0].Rect.X
	}
	icons.WriteString(bar.Render(strings.Repeat(" ", x)))
	dots.WriteString(bar.Render(strings.Repeat(" ", x)))

	for _, it := range items {
		d, _ := m.Registry.Lookup(it.App)
		style := bar
		if it.App == active {
			style = bar.Foreground(theme.BarActive()).Bold(true)
		}
		icons.WriteString(style.Render(center(d.IconFor(config.UseASCIIOnly), it.Rect.Width)))

		dot := ""
		if _, open := m.Store.Get(it.App); open {
			dot = "•"
		}
		dots.WriteString(bar.Foreground(theme.Accent()).Render(center(dot, it.Rect.Width)))
		x += it.Rect.Width
	}
	tail := bar.Render(strings.Repeat(" ", max(m.Width-x, 0)))
	blank := bar.Render(strings.Repeat(" ", max(m.Width, 0)))

	content := blank + "\n" + ansi.Truncate(icons.String()+tail, m.Width, "") + "\n" +
		ansi.Truncate(dots.String()+tail, m.Width, "")
	return lipgloss.NewLayer(content).X(0).Y(m.Height - config.DockHeight).Z(z).ID("dock")
}
