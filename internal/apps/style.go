package apps

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskos/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.Accent())
}

func dimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Dim())
}

func selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Reverse(true)
}

// fit cuts or pads s to exactly height lines of at most width cells.
func fit(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "…")
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// wrap soft-wraps plain text to width and returns the lines.
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	return strings.Split(lipgloss.NewStyle().Width(width).Render(text), "\n")
}

// window returns at most n lines starting at offset, clamping offset so
// the last page stays full.
func window(lines []string, offset, n int) ([]string, int) {
	if n <= 0 {
		return nil, 0
	}
	offset = max(min(offset, len(lines)-n), 0)
	end := min(offset+n, len(lines))
	return lines[offset:end], offset
}
