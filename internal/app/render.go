package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/Gaurav-Gosain/deskos/internal/layout"
	"github.com/Gaurav-Gosain/deskos/internal/wm"
	"github.com/charmbracelet/x/ansi"
)

// GetCanvas composes the wallpaper, the windows and the shell chrome.
// Windows sit at their own z-index; chrome is stacked above the highest
// one so no window can cover it.
func (m *Desktop) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(m.Width, m.Height)

	layers := []*lipgloss.Layer{m.renderWallpaper()}
	layers = append(layers, m.renderDesktopIcons()...)

	active, _ := m.Store.ActiveID()
	for _, w := range m.Store.Windows() {
		if w.Minimized {
			continue
		}
		f := m.Frame(w)
		content, ok := m.clip(m.renderWindow(w, f, w.ID == active), f)
		if !ok {
			continue
		}
		layers = append(layers,
			lipgloss.NewLayer(content).X(f.X).Y(f.Y).Z(w.ZIndex).ID("window-"+string(w.ID)))
	}

	top := max(m.Store.TopZ(), config.WindowZSeed)
	layers = append(layers, m.renderShell(top+config.ZOffsetShell)...)
	if m.ShowStartMenu {
		layers = append(layers, m.renderStartMenu(top+config.ZOffsetStartMenu))
	}
	if m.Switcher.Open() {
		layers = append(layers, m.renderSwitcher(top+config.ZOffsetSwitcher))
	}
	layers = append(layers, m.renderNotifications(top+config.ZOffsetNotifications)...)

	for _, layer := range layers {
		canvas.Compose(layer)
	}
	return canvas
}

// View renders the desktop.
func (m *Desktop) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(m.GetCanvas().Render()))
	view.AltScreen = true
	// Cell motion only reports movement while a button is held, which is
	// all the drag and resize gestures need.
	view.MouseMode = tea.MouseModeCellMotion
	view.ReportFocus = true
	view.KeyboardEnhancements.ReportEventTypes = true
	return view
}

// renderWindow draws the frame, title bar and client area of w at the size
// of f. The borders are built by hand so the title bar buttons land on the
// cells the hit test expects.
func (m *Desktop) renderWindow(w wm.Window, f layout.Rect, focused bool) string {
	border := config.GetBorderForStyle()
	col := borderColor(focused)
	bs := lipgloss.NewStyle().Foreground(col)

	innerW := max(f.Width-config.BorderWidth, 0)
	innerH := max(f.Height-config.BorderHeight, 0)

	var body string
	if a, ok := m.running[w.ID]; ok {
		body = a.View(innerW, innerH, w.Payload, focused)
	}
	lines := strings.Split(body, "\n")

	out := make([]string, 0, f.Height)
	out = append(out, renderTitleBar(w, f.Width, col, border))
	left, right := bs.Render(border.Left), bs.Render(border.Right)
	for i := range innerH {
		line := ""
		if i < len(lines) {
			line = ansi.Truncate(lines[i], innerW, "")
		}
		out = append(out, left+line+strings.Repeat(" ", innerW-ansi.StringWidth(line))+right)
	}
	if f.Height > 1 {
		out = append(out, bs.Render(border.BottomLeft+strings.Repeat(border.Bottom, innerW)+border.BottomRight))
	}
	return strings.Join(out, "\n")
}
