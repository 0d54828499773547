package apps

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
	"github.com/Gaurav-Gosain/deskos/internal/wm"
)

// File is a document stored in the vault.
type File struct {
	Path string
	Body string
}

// Name returns the base name of the file.
func (f File) Name() string { return path.Base(f.Path) }

// Ext returns the lowercased extension without the dot.
func (f File) Ext() string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(f.Path)), ".")
}

// DefaultFiles is the mock vault content.
var DefaultFiles = []File{
	{Path: "/docs/readme.md", Body: "# DeskOS\n\nA desktop in your terminal.\n\nHold the modifier and press Tab to switch windows."},
	{Path: "/docs/roadmap.md", Body: "# Roadmap\n\n- Multiple workspaces\n- Window snapping\n- Shared sessions"},
	{Path: "/docs/notes.txt", Body: "Buy milk.\nCall the landlord.\nRenew the domain before Friday."},
	{Path: "/docs/contract.pdf", Body: "SERVICE AGREEMENT\n\nThis agreement is made between the parties named below.\n\n(page 1 of 3)"},
	{Path: "/links/charm.url", Body: "https://charm.sh"},
	{Path: "/links/go.url", Body: "https://go.dev"},
	{Path: "/media/photo.png", Body: ""},
}

// ErrUnsupportedFile is returned by RouteFile for types no app opens.
var ErrUnsupportedFile = errors.New("no app opens this file type")

// RouteFile picks the app that opens f and the payload to hand it. Text and
// documents go to the tabbed viewer, links to the browser.
func RouteFile(f File) (registry.AppID, wm.Payload, error) {
	switch f.Ext() {
	case "md", "txt", "pdf":
		return registry.Preview, wm.OpenDocument(wm.Document{
			ID:   f.Path,
			Name: f.Name(),
			Kind: f.Ext(),
			Body: f.Body,
		}), nil
	case "url":
		return registry.Browser, wm.Opaque{"url": strings.TrimSpace(f.Body)}, nil
	default:
		return "", nil, fmt.Errorf("%s: %w", f.Name(), ErrUnsupportedFile)
	}
}

// Vault lists files and opens them in the matching app.
type Vault struct {
	host     Host
	files    []File
	selected int
}

// NewVault returns a vault over DefaultFiles.
func NewVault(host Host) App {
	return &Vault{host: host, files: DefaultFiles}
}

func (v *Vault) Init() tea.Cmd { return nil }

func (v *Vault) Update(msg tea.Msg, _ wm.Payload) (wm.Payload, tea.Cmd) {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok || len(v.files) == 0 {
		return nil, nil
	}
	switch {
	case key.Matches(k, keys.Up):
		v.selected = max(v.selected-1, 0)
	case key.Matches(k, keys.Down):
		v.selected = min(v.selected+1, len(v.files)-1)
	case key.Matches(k, keys.Open):
		v.open(v.files[v.selected])
	case key.Matches(k, keys.Edit):
		f := v.files[v.selected]
		_ = v.host.OpenApp(registry.Notepad, wm.Opaque{"path": f.Path, "body": f.Body})
	}
	return nil, nil
}

// Click opens the row under the pointer. Row 0 is the header.
func (v *Vault) Click(_, y int, _ wm.Payload) (wm.Payload, tea.Cmd) {
	i := y - 1
	if i < 0 || i >= len(v.files) {
		return nil, nil
	}
	v.selected = i
	v.open(v.files[i])
	return nil, nil
}

func (v *Vault) open(f File) {
	id, payload, err := RouteFile(f)
	if err != nil {
		v.host.Notify(err.Error(), NotifyWarning)
		return
	}
	// Permission errors are already shown by the host.
	_ = v.host.OpenApp(id, payload)
}

func (v *Vault) View(width, height int, _ wm.Payload, focused bool) string {
	var b strings.Builder
	b.WriteString(headerStyle().Render(fmt.Sprintf("%d files", len(v.files))))
	for i, f := range v.files {
		b.WriteByte('\n')
		row := fmt.Sprintf(" %-4s %s", f.Ext(), f.Path)
		if i == v.selected && focused {
			row = selectedStyle().Render(row)
		}
		b.WriteString(row)
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle().Render(helpLine(keys.Open, keys.Edit)))
	return fit(b.String(), width, height)
}
