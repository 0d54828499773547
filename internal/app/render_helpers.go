package app

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/Gaurav-Gosain/deskos/internal/layout"
	"github.com/Gaurav-Gosain/deskos/internal/theme"
	"github.com/Gaurav-Gosain/deskos/internal/wm"
	"github.com/charmbracelet/x/ansi"
)

// clip cuts a frame to the area between the shell bars.
func (m *Desktop) clip(content string, f layout.Rect) (string, bool) {
	c := m.Chrome()
	rows := m.Height - c.Bottom - f.Y
	cols := m.Width - f.X
	if rows <= 0 || cols <= 0 || f.X < 0 || f.Y < 0 {
		return "", false
	}
	lines := strings.Split(content, "\n")
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for i, l := range lines {
		if ansi.StringWidth(l) > cols {
			lines[i] = ansi.Truncate(l, cols, "")
		}
	}
	return strings.Join(lines, "\n"), true
}

func borderColor(focused bool) color.Color {
	if focused {
		return theme.BorderFocused()
	}
	return theme.BorderUnfocused()
}

// renderTitleBar draws the top border: the title badge on the left and
// the minimize, maximize and close buttons against the right corner.
func renderTitleBar(w wm.Window, width int, col color.Color, border lipgloss.Border) string {
	bs := lipgloss.NewStyle().Foreground(col)
	if width < 2 {
		return bs.Render(strings.Repeat(border.Top, max(width, 0)))
	}

	buttonFg := lipgloss.NewStyle().Foreground(theme.ButtonFg())
	buttons := bs.Render(config.GetWindowPillLeft()) +
		buttonFg.Background(theme.ButtonMinimize()).Render(config.GetWindowButtonMinimize()) +
		buttonFg.Background(theme.ButtonMaximize()).Render(config.GetWindowButtonMaximize()) +
		buttonFg.Background(theme.ButtonClose()).Render(config.GetWindowButtonClose()) +
		bs.Render(config.GetWindowPillRight())
	buttonsWidth := lipgloss.Width(buttons)

	room := width - 2 - buttonsWidth
	if room < 0 {
		return bs.Render(border.TopLeft + strings.Repeat(border.Top, width-2) + border.TopRight)
	}

	name := w.Title
	if w.Icon != "" {
		name = w.Icon + " " + name
	}
	badge := ""
	if room >= 6 {
		text := ansi.Truncate(" "+name+" ", room-3, "…")
		nameStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.TitleFg()).Background(col)
		badge = bs.Render(config.GetWindowPillLeft()) + nameStyle.Render(text) + bs.Render(config.GetWindowPillRight())
	}
	fill := room - lipgloss.Width(badge)

	return bs.Render(border.TopLeft) + badge +
		bs.Render(strings.Repeat(border.Top, fill)) +
		buttons +
		bs.Render(border.TopRight)
}
