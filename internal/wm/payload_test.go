package wm

import (
	"fmt"
	"testing"

	"github.com/Gaurav-Gosain/deskos/internal/registry"
)

func doc(n int) Document {
	id := fmt.Sprintf("doc-%02d", n)
	return Document{ID: id, Name: id + ".md"}
}

func previewTabs(t *testing.T, s *Store) Tabs {
	t.Helper()
	w, ok := s.Get(registry.Preview)
	if !ok {
		t.Fatal("preview is not open")
	}
	tabs, ok := w.Payload.(Tabs)
	if !ok {
		t.Fatalf("preview payload is %T", w.Payload)
	}
	return tabs
}

func TestTabMerge(t *testing.T) {
	s := newTestStore(t)

	mustOpen(t, s, registry.Preview, OpenDocument(doc(1)))
	mustOpen(t, s, registry.Preview, OpenDocument(doc(2)))
	tabs := previewTabs(t, s)
	if len(tabs.Docs) != 2 || tabs.Active != "doc-02" {
		t.Fatalf("after two opens: %d tabs, active %q", len(tabs.Docs), tabs.Active)
	}

	mustOpen(t, s, registry.Preview, OpenDocument(doc(1)))
	tabs = previewTabs(t, s)
	if len(tabs.Docs) != 2 {
		t.Errorf("reopening a document added a tab: %d", len(tabs.Docs))
	}
	if tabs.Active != "doc-01" {
		t.Errorf("active = %q, want doc-01", tabs.Active)
	}
}

func TestTabMergeCap(t *testing.T) {
	s := newTestStore(t)
	for i := 1; i <= MaxOpenTabs; i++ {
		mustOpen(t, s, registry.Preview, OpenDocument(doc(i)))
	}
	tabs := previewTabs(t, s)
	if len(tabs.Docs) != MaxOpenTabs {
		t.Fatalf("%d tabs, want %d", len(tabs.Docs), MaxOpenTabs)
	}
	if tabs.Active != doc(MaxOpenTabs).ID {
		t.Fatalf("active = %q", tabs.Active)
	}

	mustOpen(t, s, registry.Preview, OpenDocument(doc(MaxOpenTabs+1)))
	tabs = previewTabs(t, s)
	if len(tabs.Docs) != MaxOpenTabs {
		t.Errorf("cap exceeded: %d tabs", len(tabs.Docs))
	}
	if tabs.Active != doc(MaxOpenTabs).ID {
		t.Errorf("dropped document changed active to %q", tabs.Active)
	}

	mustOpen(t, s, registry.Preview, OpenDocument(doc(3)))
	if got := previewTabs(t, s).Active; got != doc(3).ID {
		t.Errorf("switching at the cap failed, active = %q", got)
	}
}

func TestTabMergeDoesNotAlias(t *testing.T) {
	base := Tabs{Docs: []Document{doc(1)}, Active: "doc-01"}
	merged := base.Merge(OpenDocument(doc(2))).(Tabs)
	if len(base.Docs) != 1 {
		t.Errorf("merge mutated the receiver: %d docs", len(base.Docs))
	}
	if len(merged.Docs) != 2 {
		t.Errorf("merged has %d docs", len(merged.Docs))
	}
}

func TestTabsMergeWithOtherKindReplaces(t *testing.T) {
	got := Tabs{Docs: []Document{doc(1)}}.Merge(Opaque{"k": "v"})
	if _, ok := got.(Opaque); !ok {
		t.Errorf("got %T, want Opaque", got)
	}
}

func TestTabsActivate(t *testing.T) {
	tabs := Tabs{Docs: []Document{doc(1), doc(2), doc(3)}, Active: "doc-01"}
	tests := []struct {
		i    int
		want string
	}{
		{0, "doc-01"},
		{2, "doc-03"},
		{3, "doc-01"},
		{-1, "doc-03"},
	}
	for _, tt := range tests {
		if got := tabs.Activate(tt.i).Active; got != tt.want {
			t.Errorf("Activate(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
	if (Tabs{}).Activate(1).Active != "" {
		t.Error("Activate on empty tabs should be a no-op")
	}
}

func TestTabsWithout(t *testing.T) {
	tabs := Tabs{Docs: []Document{doc(1), doc(2), doc(3)}, Active: "doc-02"}

	tests := []struct {
		name       string
		close      string
		wantActive string
		wantLen    int
	}{
		{"active middle", "doc-02", "doc-03", 2},
		{"inactive", "doc-01", "doc-02", 2},
		{"missing", "doc-99", "doc-02", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tabs.Without(tt.close)
			if got.Active != tt.wantActive || len(got.Docs) != tt.wantLen {
				t.Errorf("Without(%s) = active %q len %d", tt.close, got.Active, len(got.Docs))
			}
		})
	}

	last := Tabs{Docs: []Document{doc(1), doc(2)}, Active: "doc-02"}.Without("doc-02")
	if last.Active != "doc-01" {
		t.Errorf("closing the last tab should activate its left neighbour, got %q", last.Active)
	}
	if empty := (Tabs{Docs: []Document{doc(1)}, Active: "doc-01"}).Without("doc-01"); empty.Active != "" {
		t.Errorf("closing the only tab left active %q", empty.Active)
	}
}

func TestUpdatePayloadReplaces(t *testing.T) {
	s := newTestStore(t)
	mustOpen(t, s, registry.Preview, OpenDocument(doc(1)))
	mustOpen(t, s, registry.Preview, OpenDocument(doc(2)))

	s.UpdatePayload(registry.Preview, previewTabs(t, s).Without("doc-02"))
	tabs := previewTabs(t, s)
	if len(tabs.Docs) != 1 || tabs.Active != "doc-01" {
		t.Errorf("after update: %d tabs active %q", len(tabs.Docs), tabs.Active)
	}
}
