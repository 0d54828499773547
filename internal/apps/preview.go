package apps

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskos/internal/theme"
	"github.com/Gaurav-Gosain/deskos/internal/wm"
	"github.com/charmbracelet/x/ansi"
)

const tabLabelWidth = 16

// Preview shows the documents of a wm.Tabs payload, one per tab.
type Preview struct {
	host   Host
	scroll map[string]int
}

// NewPreview returns an empty document viewer.
func NewPreview(host Host) App {
	return &Preview{host: host, scroll: make(map[string]int)}
}

func (p *Preview) Init() tea.Cmd { return nil }

func (p *Preview) Update(msg tea.Msg, payload wm.Payload) (wm.Payload, tea.Cmd) {
	tabs, _ := payload.(wm.Tabs)
	k, ok := msg.(tea.KeyPressMsg)
	if !ok || len(tabs.Docs) == 0 {
		return nil, nil
	}
	i := tabs.Index(tabs.Active)

	switch {
	case key.Matches(k, keys.PrevTab):
		return tabs.Activate(i - 1), nil
	case key.Matches(k, keys.NextTab):
		return tabs.Activate(i + 1), nil
	case key.Matches(k, keys.CloseTab):
		delete(p.scroll, tabs.Active)
		return tabs.Without(tabs.Active), nil
	case key.Matches(k, keys.Up):
		p.scroll[tabs.Active] = max(p.scroll[tabs.Active]-1, 0)
	case key.Matches(k, keys.Down):
		p.scroll[tabs.Active]++
	}
	return nil, nil
}

// Click on the tab strip activates the tab under the pointer.
func (p *Preview) Click(x, y int, payload wm.Payload) (wm.Payload, tea.Cmd) {
	tabs, _ := payload.(wm.Tabs)
	if y != 0 || len(tabs.Docs) == 0 {
		return nil, nil
	}
	i := x / (tabLabelWidth + 1)
	if i >= len(tabs.Docs) {
		return nil, nil
	}
	return tabs.Activate(i), nil
}

func (p *Preview) tabStrip(tabs wm.Tabs, width int) string {
	active := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent()).Reverse(true)
	idle := dimStyle()

	var parts []string
	for _, d := range tabs.Docs {
		label := ansi.Truncate(" "+d.Name+" ", tabLabelWidth, "…")
		label += strings.Repeat(" ", tabLabelWidth-ansi.StringWidth(label))
		if d.ID == tabs.Active {
			parts = append(parts, active.Render(label))
		} else {
			parts = append(parts, idle.Render(label))
		}
	}
	return ansi.Truncate(strings.Join(parts, "│"), width, "…")
}

func (p *Preview) View(width, height int, payload wm.Payload, focused bool) string {
	tabs, _ := payload.(wm.Tabs)
	doc, ok := tabs.ActiveDoc()
	if !ok {
		return fit(dimStyle().Render("No documents open.\nOpen one from the File Vault."), width, height)
	}

	body := wrap(doc.Body, width)
	visible, offset := window(body, p.scroll[doc.ID], height-2)
	p.scroll[doc.ID] = offset

	help := dimStyle().Render(helpLine(keys.PrevTab, keys.NextTab, keys.CloseTab))
	out := p.tabStrip(tabs, width) + "\n" + strings.Join(visible, "\n")
	out = fit(out, width, height-1) + "\n" + help
	return fit(out, width, height)
}
