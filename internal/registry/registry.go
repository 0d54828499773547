// Package registry holds the static catalog of launchable applications.
//
// The catalog is embedded at build time and parsed once. Descriptors are
// immutable after loading; the window manager reads defaults from them
// when it creates a window.
package registry

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"maps"

	"github.com/Gaurav-Gosain/deskos/internal/layout"
	"gopkg.in/yaml.v3"
)

// AppID identifies an application. A window's id is always its app id.
type AppID string

// Known application ids.
const (
	Notepad  AppID = "notepad"
	Vault    AppID = "vault"
	Preview  AppID = "preview"
	Browser  AppID = "browser"
	Chat     AppID = "chat"
	Messages AppID = "messages"
	Admin    AppID = "admin"
	Settings AppID = "settings"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Descriptor is the static metadata for one application.
type Descriptor struct {
	ID                 AppID
	Title              string
	Titles             map[string]string // per shell style overrides of Title
	Icon               string
	IconASCII          string
	DefaultSize        layout.Size
	PreferredPosition  *layout.Point // nil means cascade
	RequiresCapability string        // empty means anyone may open it
	Tabbed             bool          // the app keeps a list of open documents
}

// TitleFor returns the title shown for the given shell style.
func (d Descriptor) TitleFor(style string) string {
	if t, ok := d.Titles[style]; ok && t != "" {
		return t
	}
	return d.Title
}

// IconFor returns the nerd-font icon, or the ASCII fallback when ascii is set.
func (d Descriptor) IconFor(ascii bool) string {
	if ascii || d.Icon == "" {
		return d.IconASCII
	}
	return d.Icon
}

// Registry is an ordered, read-only set of descriptors.
type Registry struct {
	order []AppID
	byID  map[AppID]Descriptor
}

type catalogFile struct {
	Apps []catalogEntry `yaml:"apps"`
}

type catalogEntry struct {
	ID        string            `yaml:"id"`
	Title     string            `yaml:"title"`
	Titles    map[string]string `yaml:"titles"`
	Icon      string            `yaml:"icon"`
	IconASCII string            `yaml:"icon_ascii"`
	Size      struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"size"`
	Position *struct {
		X int `yaml:"x"`
		Y int `yaml:"y"`
	} `yaml:"position"`
	Requires string `yaml:"requires"`
	Tabbed   bool   `yaml:"tabbed"`
}

// Load parses the embedded catalog.
func Load() (*Registry, error) {
	return Parse(catalogYAML)
}

// MustLoad is like Load but panics on a malformed catalog. The catalog is
// compiled in, so a failure here is a build defect.
func MustLoad() *Registry {
	r, err := Load()
	if err != nil {
		panic(err)
	}
	return r
}

// Parse builds a registry from catalog YAML. Unknown fields are rejected.
func Parse(data []byte) (*Registry, error) {
	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse app catalog: %w", err)
	}

	r := &Registry{byID: make(map[AppID]Descriptor, len(file.Apps))}
	for i, e := range file.Apps {
		if e.ID == "" {
			return nil, fmt.Errorf("app catalog entry %d has no id", i)
		}
		id := AppID(e.ID)
		if _, dup := r.byID[id]; dup {
			return nil, fmt.Errorf("app catalog has duplicate id %q", e.ID)
		}
		if e.Size.Width <= 0 || e.Size.Height <= 0 {
			return nil, fmt.Errorf("app %q has invalid size %dx%d", e.ID, e.Size.Width, e.Size.Height)
		}

		d := Descriptor{
			ID:                 id,
			Title:              e.Title,
			Titles:             e.Titles,
			Icon:               e.Icon,
			IconASCII:          e.IconASCII,
			DefaultSize:        layout.Size{Width: e.Size.Width, Height: e.Size.Height},
			RequiresCapability: e.Requires,
			Tabbed:             e.Tabbed,
		}
		if d.Title == "" {
			d.Title = e.ID
		}
		if d.IconASCII == "" {
			d.IconASCII = "*"
		}
		if e.Position != nil {
			d.PreferredPosition = &layout.Point{X: e.Position.X, Y: e.Position.Y}
		}

		r.order = append(r.order, id)
		r.byID[id] = d
	}
	return r, nil
}

// clone copies the descriptor's map and pointer fields so callers cannot
// change the catalog through it.
func (d Descriptor) clone() Descriptor {
	d.Titles = maps.Clone(d.Titles)
	if d.PreferredPosition != nil {
		p := *d.PreferredPosition
		d.PreferredPosition = &p
	}
	return d
}

// Lookup returns a copy of the descriptor for id.
func (r *Registry) Lookup(id AppID) (Descriptor, bool) {
	d, ok := r.byID[id]
	return d.clone(), ok
}

// All returns every descriptor in catalog order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].clone())
	}
	return out
}

// Len returns the number of registered apps.
func (r *Registry) Len() int {
	return len(r.order)
}

// Icons maps every app id to its icon.
func (r *Registry) Icons(ascii bool) map[AppID]string {
	icons := make(map[AppID]string, len(r.byID))
	for id, d := range r.byID {
		icons[id] = d.IconFor(ascii)
	}
	return icons
}
