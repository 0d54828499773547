package apps

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/Gaurav-Gosain/deskos/internal/theme"
	"github.com/Gaurav-Gosain/deskos/internal/wm"
)

// Settings is a read-only summary of the session and appearance.
type Settings struct {
	host Host
}

// NewSettings returns the settings panel.
func NewSettings(host Host) App {
	return &Settings{host: host}
}

func (s *Settings) Init() tea.Cmd { return nil }

func (s *Settings) Update(tea.Msg, wm.Payload) (wm.Payload, tea.Cmd) { return nil, nil }

// Rows returns the label/value pairs shown by the panel.
func (s *Settings) Rows() [][2]string {
	sess := s.host.Session()
	themeName := "default"
	if t := theme.Current(); t != nil {
		themeName = t.DisplayName
	}
	path, err := config.GetConfigPath()
	if err != nil {
		path = "unavailable"
	}
	return [][2]string{
		{"User", sess.User},
		{"Roles", strings.Join(sess.Roles, ", ")},
		{"Theme", themeName},
		{"Shell", config.ShellStyle},
		{"Borders", config.BorderStyle},
		{"Modifier", config.Modifier},
		{"ASCII", fmt.Sprint(config.UseASCIIOnly)},
		{"Config", path},
	}
}

func (s *Settings) View(width, height int, _ wm.Payload, _ bool) string {
	var b strings.Builder
	b.WriteString(headerStyle().Render("Settings"))
	for _, row := range s.Rows() {
		b.WriteString("\n" + dimStyle().Render(fmt.Sprintf("%-9s", row[0])) + row[1])
	}
	b.WriteString("\n\n" + dimStyle().Render("Edit with: deskos config edit"))
	return fit(b.String(), width, height)
}
