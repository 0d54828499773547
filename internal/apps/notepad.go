package apps

import (
	"path"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskos/internal/wm"
)

// Notepad edits one text document. Its payload is Opaque{"path", "body"};
// opening it with a different path loads that document.
type Notepad struct {
	host   Host
	area   textarea.Model
	path   string
	loaded bool
}

// NewNotepad returns an empty notepad.
func NewNotepad(host Host) App {
	ta := textarea.New()
	ta.Placeholder = "Start typing..."
	ta.ShowLineNumbers = false
	return &Notepad{host: host, area: ta}
}

func (n *Notepad) Init() tea.Cmd { return nil }

func (n *Notepad) Focus() tea.Cmd { return n.area.Focus() }

func (n *Notepad) Blur() { n.area.Blur() }

// sync loads the payload's document when it names a new path.
func (n *Notepad) sync(payload wm.Payload) {
	p, _ := payload.(wm.Opaque)
	if n.loaded && p.Get("path") == n.path {
		return
	}
	n.path = p.Get("path")
	n.area.SetValue(p.Get("body"))
	n.loaded = true
}

func (n *Notepad) Update(msg tea.Msg, payload wm.Payload) (wm.Payload, tea.Cmd) {
	n.sync(payload)

	if k, ok := msg.(tea.KeyPressMsg); ok && key.Matches(k, keys.Save) {
		n.host.Notify("Saved "+n.name(), NotifySuccess)
		return nil, nil
	}

	before := n.area.Value()
	var cmd tea.Cmd
	n.area, cmd = n.area.Update(msg)
	if n.area.Value() == before {
		return nil, cmd
	}
	return wm.Opaque{"path": n.path, "body": n.area.Value()}, cmd
}

func (n *Notepad) name() string {
	if n.path == "" {
		return "Untitled"
	}
	return path.Base(n.path)
}

func (n *Notepad) View(width, height int, payload wm.Payload, focused bool) string {
	n.sync(payload)
	if height < 2 {
		return fit(n.name(), width, height)
	}
	n.area.SetWidth(width)
	n.area.SetHeight(height - 1)

	status := dimStyle().Render(n.name() + " • " + helpLine(keys.Save))
	return fit(lipgloss.JoinVertical(lipgloss.Left, n.area.View(), status), width, height)
}
