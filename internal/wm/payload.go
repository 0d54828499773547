package wm

// MaxOpenTabs caps the number of documents a tabbed window holds.
const MaxOpenTabs = 20

// Payload is the per-window application data. The window manager treats it
// as opaque except for Merge, which decides how a payload passed to OpenApp
// combines with the one the window already carries.
type Payload interface {
	Merge(incoming Payload) Payload
}

// mergePayload applies the merge rule of the existing payload kind. A nil
// incoming payload leaves the window's data alone.
func mergePayload(existing, incoming Payload) Payload {
	if incoming == nil {
		return existing
	}
	if existing == nil {
		return incoming
	}
	return existing.Merge(incoming)
}

// Opaque is a plain key/value payload. Merging replaces it wholesale.
type Opaque map[string]string

// Merge returns incoming.
func (o Opaque) Merge(incoming Payload) Payload {
	return incoming
}

// Get returns the value for key, or "" when the payload is nil.
func (o Opaque) Get(key string) string {
	if o == nil {
		return ""
	}
	return o[key]
}

// Document is one entry in a tabbed window.
type Document struct {
	ID   string
	Name string
	Kind string
	Body string
}

// Tabs is the payload of apps that keep several documents open at once.
type Tabs struct {
	Docs   []Document
	Active string
}

// OpenDocument is the payload a caller passes to OpenApp to show doc in a
// tabbed app.
func OpenDocument(doc Document) Tabs {
	return Tabs{Docs: []Document{doc}, Active: doc.ID}
}

// Merge accumulates documents. A document that is already open becomes
// active; a new one is appended and made active unless the window already
// holds MaxOpenTabs, in which case it is dropped and the active tab stays.
// A non-Tabs payload replaces the tabs.
func (t Tabs) Merge(incoming Payload) Payload {
	in, ok := incoming.(Tabs)
	if !ok {
		return incoming
	}

	out := t.clone()
	for _, doc := range in.Docs {
		if out.Index(doc.ID) >= 0 {
			out.Active = doc.ID
			continue
		}
		if len(out.Docs) >= MaxOpenTabs {
			continue
		}
		out.Docs = append(out.Docs, doc)
		out.Active = doc.ID
	}
	if len(in.Docs) == 0 && in.Active != "" && out.Index(in.Active) >= 0 {
		out.Active = in.Active
	}
	return out
}

func (t Tabs) clone() Tabs {
	docs := make([]Document, len(t.Docs), len(t.Docs)+1)
	copy(docs, t.Docs)
	return Tabs{Docs: docs, Active: t.Active}
}

// Index returns the position of the document with id, or -1.
func (t Tabs) Index(id string) int {
	for i, d := range t.Docs {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// ActiveDoc returns the active document.
func (t Tabs) ActiveDoc() (Document, bool) {
	if i := t.Index(t.Active); i >= 0 {
		return t.Docs[i], true
	}
	return Document{}, false
}

// Activate returns a copy with the document at index i active. The index
// wraps so callers can step with i-1 and i+1.
func (t Tabs) Activate(i int) Tabs {
	if len(t.Docs) == 0 {
		return t
	}
	i = ((i % len(t.Docs)) + len(t.Docs)) % len(t.Docs)
	out := t.clone()
	out.Active = out.Docs[i].ID
	return out
}

// Without returns a copy with the document removed. Closing the active tab
// activates its right neighbour, or the new last tab.
func (t Tabs) Without(id string) Tabs {
	i := t.Index(id)
	if i < 0 {
		return t
	}
	out := Tabs{Docs: make([]Document, 0, len(t.Docs)-1), Active: t.Active}
	out.Docs = append(out.Docs, t.Docs[:i]...)
	out.Docs = append(out.Docs, t.Docs[i+1:]...)

	if t.Active == id {
		switch {
		case len(out.Docs) == 0:
			out.Active = ""
		case i < len(out.Docs):
			out.Active = out.Docs[i].ID
		default:
			out.Active = out.Docs[len(out.Docs)-1].ID
		}
	}
	return out
}
