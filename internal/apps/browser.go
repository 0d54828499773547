package apps

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskos/internal/wm"
)

// HomePage is shown when the browser opens without a URL.
const HomePage = "deskos://home"

// Pages is the mock web. Unknown URLs render a not-found page.
var Pages = map[string]string{
	HomePage:             "Welcome to the DeskOS browser.\n\nTry charm.sh or go.dev.",
	"https://charm.sh":   "Charm\n\nWe make the command line glamorous.",
	"https://go.dev":     "The Go Programming Language\n\nBuild simple, secure, scalable systems with Go.",
	"https://pkg.go.dev": "Go Packages\n\nSearch for a package.",
}

// NormalizeURL adds https:// to bare hosts and strips a trailing slash.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return HomePage
	}
	if !strings.Contains(u, "://") {
		u = "https://" + u
	}
	return strings.TrimSuffix(u, "/")
}

// Browser is a URL bar over the mock pages. Its payload is Opaque{"url"}.
type Browser struct {
	host  Host
	bar   textinput.Model
	shown string
}

// NewBrowser returns a browser on the home page.
func NewBrowser(host Host) App {
	ti := textinput.New()
	ti.Prompt = "URL › "
	ti.Placeholder = "enter an address"
	return &Browser{host: host, bar: ti}
}

func (b *Browser) Init() tea.Cmd { return nil }

func (b *Browser) Focus() tea.Cmd { return b.bar.Focus() }

func (b *Browser) Blur() { b.bar.Blur() }

func currentURL(payload wm.Payload) string {
	p, _ := payload.(wm.Opaque)
	if u := p.Get("url"); u != "" {
		return NormalizeURL(u)
	}
	return HomePage
}

// sync puts the payload's URL in the bar when it changes from outside.
func (b *Browser) sync(payload wm.Payload) string {
	u := currentURL(payload)
	if u != b.shown {
		b.shown = u
		b.bar.SetValue(u)
	}
	return u
}

func (b *Browser) Update(msg tea.Msg, payload wm.Payload) (wm.Payload, tea.Cmd) {
	u := b.sync(payload)

	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch {
		case key.Matches(k, keys.Open):
			next := NormalizeURL(b.bar.Value())
			b.shown = next
			b.bar.SetValue(next)
			if next == u {
				return nil, nil
			}
			return wm.Opaque{"url": next}, nil
		case key.Matches(k, keys.Reset):
			b.bar.SetValue(u)
			return nil, nil
		}
	}

	var cmd tea.Cmd
	b.bar, cmd = b.bar.Update(msg)
	return nil, cmd
}

func (b *Browser) View(width, height int, payload wm.Payload, focused bool) string {
	u := b.sync(payload)
	b.bar.SetWidth(max(width-len([]rune(b.bar.Prompt))-1, 1))

	page, ok := Pages[u]
	if !ok {
		page = "404 Not Found\n\n" + u + " does not exist in this network."
	}
	rule := dimStyle().Render(strings.Repeat("─", max(width, 0)))
	body := strings.Join(wrap(page, width), "\n")
	return fit(b.bar.View()+"\n"+rule+"\n"+body, width, height)
}
