package apps

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
	"github.com/Gaurav-Gosain/deskos/internal/session"
	"github.com/Gaurav-Gosain/deskos/internal/wm"
)

type openCall struct {
	id      registry.AppID
	payload wm.Payload
}

type fakeHost struct {
	reg     *registry.Registry
	sess    session.Session
	opened  []openCall
	notices []string
	logs    []LogLine
}

func newFakeHost(roles ...string) *fakeHost {
	return &fakeHost{reg: registry.MustLoad(), sess: session.New("tester", roles...)}
}

func (h *fakeHost) OpenApp(id registry.AppID, payload wm.Payload) error {
	d, ok := h.reg.Lookup(id)
	if !ok {
		return wm.ErrUnknownApp
	}
	if d.RequiresCapability != "" && !h.sess.HasCapability(d.RequiresCapability) {
		h.notices = append(h.notices, "denied "+string(id))
		return wm.ErrPermissionDenied
	}
	h.opened = append(h.opened, openCall{id: id, payload: payload})
	return nil
}

func (h *fakeHost) Notify(message, kind string) {
	h.notices = append(h.notices, kind+": "+message)
}

func (h *fakeHost) Logs() []LogLine             { return h.logs }
func (h *fakeHost) Session() session.Session     { return h.sess }
func (h *fakeHost) Registry() *registry.Registry { return h.reg }

func press(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

type pingMsg struct{ n int }

func TestTarget(t *testing.T) {
	if Target(registry.Chat, nil) != nil {
		t.Fatal("nil command should stay nil")
	}

	msg := Target(registry.Chat, func() tea.Msg { return pingMsg{1} })()
	tm, ok := msg.(TargetedMsg)
	if !ok || tm.ID != registry.Chat || tm.Msg != (pingMsg{1}) {
		t.Fatalf("got %#v", msg)
	}

	if got := Target(registry.Chat, func() tea.Msg { return nil })(); got != nil {
		t.Errorf("nil result should not be wrapped, got %#v", got)
	}

	batch := tea.Batch(
		func() tea.Msg { return pingMsg{1} },
		func() tea.Msg { return pingMsg{2} },
	)
	out, ok := Target(registry.Admin, batch)().(tea.BatchMsg)
	if !ok || len(out) != 2 {
		t.Fatalf("batch not preserved: %#v", out)
	}
	for i, c := range out {
		tm, ok := c().(TargetedMsg)
		if !ok || tm.ID != registry.Admin || tm.Msg != (pingMsg{i + 1}) {
			t.Errorf("batch entry %d = %#v", i, tm)
		}
	}
}

func TestDefaultCatalogCoversRegistry(t *testing.T) {
	cat := DefaultCatalog()
	host := newFakeHost()
	for _, d := range registry.MustLoad().All() {
		app, ok := cat.New(d.ID, host)
		if !ok || app == nil {
			t.Errorf("no app for %s", d.ID)
		}
	}
	if _, ok := cat.New("missing", host); ok {
		t.Error("unknown id should not build an app")
	}
}

func TestRouteFile(t *testing.T) {
	tests := []struct {
		path   string
		app    registry.AppID
		wantOK bool
	}{
		{"/docs/a.md", registry.Preview, true},
		{"/docs/b.TXT", registry.Preview, true},
		{"/docs/c.pdf", registry.Preview, true},
		{"/links/d.url", registry.Browser, true},
		{"/media/e.png", "", false},
		{"/noext", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			id, payload, err := RouteFile(File{Path: tt.path, Body: " https://x.dev "})
			if !tt.wantOK {
				if !errors.Is(err, ErrUnsupportedFile) {
					t.Fatalf("err = %v", err)
				}
				return
			}
			if err != nil || id != tt.app {
				t.Fatalf("RouteFile = %s, %v", id, err)
			}
			switch p := payload.(type) {
			case wm.Tabs:
				if p.Active != tt.path || len(p.Docs) != 1 {
					t.Errorf("tabs payload = %#v", p)
				}
			case wm.Opaque:
				if p.Get("url") != "https://x.dev" {
					t.Errorf("url = %q", p.Get("url"))
				}
			default:
				t.Errorf("unexpected payload %T", payload)
			}
		})
	}
}

func TestVaultKeys(t *testing.T) {
	host := newFakeHost()
	v := NewVault(host).(*Vault)
	v.files = []File{
		{Path: "/a.md", Body: "alpha"},
		{Path: "/b.url", Body: "https://go.dev"},
		{Path: "/c.png"},
	}

	v.Update(press("enter"), nil)
	v.Update(press("down"), nil)
	v.Update(press("enter"), nil)
	v.Update(press("down"), nil)
	v.Update(press("down"), nil)
	v.Update(press("enter"), nil)

	if len(host.opened) != 2 {
		t.Fatalf("opened = %#v", host.opened)
	}
	if host.opened[0].id != registry.Preview || host.opened[1].id != registry.Browser {
		t.Errorf("routes = %s, %s", host.opened[0].id, host.opened[1].id)
	}
	if len(host.notices) != 1 || !strings.HasPrefix(host.notices[0], NotifyWarning) {
		t.Errorf("unsupported file should warn, got %v", host.notices)
	}

	v.Update(press("up"), nil)
	v.Update(press("e"), nil)
	last := host.opened[len(host.opened)-1]
	if last.id != registry.Notepad || last.payload.(wm.Opaque).Get("path") != "/b.url" {
		t.Errorf("edit opened %#v", last)
	}
}

func TestVaultClick(t *testing.T) {
	host := newFakeHost()
	v := NewVault(host).(*Vault)

	v.Click(3, 0, nil)
	if len(host.opened) != 0 {
		t.Fatal("header click should not open")
	}
	v.Click(3, 2, nil)
	if v.selected != 1 || len(host.opened) != 1 {
		t.Fatalf("selected = %d, opened = %d", v.selected, len(host.opened))
	}
}

func threeTabs() wm.Tabs {
	var tabs wm.Payload = wm.Tabs{}
	for _, id := range []string{"a", "b", "c"} {
		tabs = tabs.Merge(wm.OpenDocument(wm.Document{ID: id, Name: id, Body: id}))
	}
	return tabs.(wm.Tabs)
}

func TestPreviewTabs(t *testing.T) {
	p := NewPreview(newFakeHost())
	tabs := threeTabs()
	if tabs.Active != "c" {
		t.Fatalf("active = %s", tabs.Active)
	}

	next, _ := p.Update(press("right"), tabs)
	if next.(wm.Tabs).Active != "a" {
		t.Errorf("right from last tab should wrap, got %s", next.(wm.Tabs).Active)
	}
	prev, _ := p.Update(press("left"), tabs)
	if prev.(wm.Tabs).Active != "b" {
		t.Errorf("left = %s", prev.(wm.Tabs).Active)
	}

	closed, _ := p.Update(press("x"), tabs)
	ct := closed.(wm.Tabs)
	if len(ct.Docs) != 2 || ct.Active != "b" {
		t.Errorf("close = %#v", ct)
	}
	if len(tabs.Docs) != 3 {
		t.Error("closing must not modify the input payload")
	}

	if got, _ := p.Update(press("x"), wm.Tabs{}); got != nil {
		t.Error("keys on an empty viewer change nothing")
	}
}

func TestPreviewClickTab(t *testing.T) {
	p := NewPreview(newFakeHost()).(*Preview)
	got, _ := p.Click(tabLabelWidth+2, 0, threeTabs())
	if got.(wm.Tabs).Active != "b" {
		t.Errorf("click = %#v", got)
	}
	if got, _ := p.Click(1, 3, threeTabs()); got != nil {
		t.Error("click below the strip is ignored")
	}
}

func TestPreviewViewEmpty(t *testing.T) {
	p := NewPreview(newFakeHost())
	out := p.View(40, 5, nil, true)
	if !strings.Contains(out, "No documents open") {
		t.Errorf("view = %q", out)
	}
	if n := strings.Count(out, "\n"); n != 4 {
		t.Errorf("view has %d lines, want 5", n+1)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := map[string]string{
		"":                  HomePage,
		"go.dev":            "https://go.dev",
		" https://go.dev/ ": "https://go.dev",
		"deskos://home":     HomePage,
	}
	for in, want := range tests {
		if got := NormalizeURL(in); got != want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBrowserNavigate(t *testing.T) {
	b := NewBrowser(newFakeHost()).(*Browser)
	payload := wm.Opaque{"url": "https://charm.sh"}

	if got, _ := b.Update(press("enter"), payload); got != nil {
		t.Errorf("enter on the current url should not change the payload, got %#v", got)
	}

	b.bar.SetValue("go.dev")
	got, _ := b.Update(press("enter"), payload)
	if got.(wm.Opaque).Get("url") != "https://go.dev" {
		t.Fatalf("navigate = %#v", got)
	}

	b.bar.SetValue("garbage")
	b.Update(press("esc"), got)
	if b.bar.Value() != "https://go.dev" {
		t.Errorf("esc should restore the url, bar = %q", b.bar.Value())
	}
}

func TestBrowserFollowsPayload(t *testing.T) {
	b := NewBrowser(newFakeHost()).(*Browser)
	out := b.View(60, 8, wm.Opaque{"url": "https://go.dev"}, true)
	if !strings.Contains(out, "The Go Programming Language") {
		t.Errorf("view = %q", out)
	}
	out = b.View(60, 8, wm.Opaque{"url": "https://nowhere.example"}, true)
	if !strings.Contains(out, "404") {
		t.Errorf("unknown page should 404: %q", out)
	}
}

func TestChatRespond(t *testing.T) {
	tests := []struct {
		name   string
		roles  []string
		input  string
		want   string
		opened int
	}{
		{"opens by id", nil, "open notepad", "Opened Notepad.", 1},
		{"opens by title", nil, "open file vault", "Opened File Vault.", 1},
		{"denied", nil, "open admin", "needs the admin role", 0},
		{"admin allowed", []string{"admin"}, "open admin", "Opened Admin Console.", 1},
		{"unknown", nil, "open solitaire", "don't know", 0},
		{"help", nil, "help", "notepad", 0},
		{"fallback", nil, "hello", "hello", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newFakeHost(tt.roles...)
			c := NewChat(host).(*Chat)
			got := c.respond(tt.input)
			if !strings.Contains(got, tt.want) {
				t.Errorf("respond(%q) = %q, want it to contain %q", tt.input, got, tt.want)
			}
			if len(host.opened) != tt.opened {
				t.Errorf("opened %d apps, want %d", len(host.opened), tt.opened)
			}
		})
	}
}

func TestChatDelayedReply(t *testing.T) {
	old := ReplyDelay
	ReplyDelay = time.Millisecond
	t.Cleanup(func() { ReplyDelay = old })

	c := NewChat(newFakeHost()).(*Chat)
	c.input.SetValue("open notepad")
	_, cmd := c.Update(press("enter"), nil)
	if cmd == nil {
		t.Fatal("expected a reply command")
	}
	if c.pending != 1 || c.input.Value() != "" {
		t.Fatalf("pending = %d, input = %q", c.pending, c.input.Value())
	}

	c.Update(cmd(), nil)
	if c.pending != 0 {
		t.Error("reply should clear the typing indicator")
	}
	if last := c.history[len(c.history)-1]; last.fromUser || last.text != "Opened Notepad." {
		t.Errorf("last line = %#v", last)
	}

	if _, cmd := c.Update(press("enter"), nil); cmd != nil {
		t.Error("empty input should not send")
	}
}

func TestChatHistoryCap(t *testing.T) {
	c := NewChat(newFakeHost()).(*Chat)
	for range 500 {
		c.add(chatLine{text: "x"})
	}
	if len(c.history) != 200 {
		t.Errorf("history = %d", len(c.history))
	}
}

func TestNotepadPayload(t *testing.T) {
	host := newFakeHost()
	n := NewNotepad(host).(*Notepad)
	n.Focus()

	doc := wm.Opaque{"path": "/docs/notes.txt", "body": "hi"}
	got, _ := n.Update(press("!"), doc)
	if got.(wm.Opaque).Get("body") != "hi!" || got.(wm.Opaque).Get("path") != "/docs/notes.txt" {
		t.Fatalf("edit = %#v", got)
	}

	if got, _ := n.Update(press("ctrl+s"), doc); got != nil {
		t.Error("save should not change the payload")
	}
	if len(host.notices) != 1 || !strings.Contains(host.notices[0], "notes.txt") {
		t.Errorf("notices = %v", host.notices)
	}

	n.Update(tea.KeyPressMsg{Code: tea.KeyLeft}, wm.Opaque{"path": "/other.txt", "body": "fresh"})
	if n.area.Value() != "fresh" {
		t.Errorf("new path should load its body, got %q", n.area.Value())
	}
}

func TestMessagesSendAndDeliver(t *testing.T) {
	old := ReplyDelay
	ReplyDelay = time.Millisecond
	t.Cleanup(func() { ReplyDelay = old })

	host := newFakeHost()
	m := NewMessages(host).(*Messages)
	m.compose.SetValue("on it")
	_, cmd := m.Update(press("enter"), nil)
	if cmd == nil {
		t.Fatal("send should schedule an answer")
	}
	msgs := m.threads[0].Messages
	if msgs[len(msgs)-1].Text != "on it" {
		t.Fatalf("draft not appended: %#v", msgs)
	}

	m.Update(press("down"), nil)
	if m.selected != 1 {
		t.Fatalf("selected = %d", m.selected)
	}
	m.Update(cmd(), nil)
	if m.threads[0].Unread != 1 {
		t.Errorf("answer to a background thread should be unread")
	}
	if len(host.notices) != 1 {
		t.Errorf("notices = %v", host.notices)
	}
}

func TestAdminRefreshLoop(t *testing.T) {
	host := newFakeHost("admin")
	a := NewAdmin(host).(*Admin)
	calls := 0
	a.sample = func() (Stats, error) {
		calls++
		return Stats{CPUPercent: 12.5, MemPercent: 40, Hostname: "box"}, nil
	}

	_, next := a.Update(a.Init()(), nil)
	if next == nil {
		t.Fatal("a scheduled sample should schedule the next tick")
	}
	if a.stats.Hostname != "box" || calls != 1 {
		t.Errorf("stats = %#v, calls = %d", a.stats, calls)
	}

	_, fetch := a.Update(statsTickMsg{}, nil)
	if fetch == nil {
		t.Fatal("tick should fetch")
	}

	_, manual := a.Update(press("r"), nil)
	if _, follow := a.Update(manual(), nil); follow != nil {
		t.Error("a manual refresh must not start a second loop")
	}
	if calls != 2 {
		t.Errorf("calls = %d", calls)
	}
}

func TestAdminReportsSampleErrorOnce(t *testing.T) {
	host := newFakeHost("admin")
	a := NewAdmin(host).(*Admin)
	a.sample = func() (Stats, error) { return Stats{}, errors.New("no proc") }

	a.Update(a.fetch(true)(), nil)
	a.Update(a.fetch(true)(), nil)
	if len(host.notices) != 1 {
		t.Errorf("notices = %v", host.notices)
	}
}

func TestAdminViewShowsLogs(t *testing.T) {
	host := newFakeHost("admin")
	host.logs = []LogLine{
		{Time: time.Now(), Level: "INFO", Message: "desktop started"},
		{Time: time.Now(), Level: "ERROR", Message: "permission denied: admin"},
	}
	a := NewAdmin(host)
	out := a.View(70, 12, nil, true)
	for _, want := range []string{"desktop started", "permission denied", "sampling"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestSettingsRows(t *testing.T) {
	s := NewSettings(newFakeHost("admin", "user")).(*Settings)
	rows := s.Rows()
	if rows[0][1] != "tester" || rows[1][1] != "admin, user" {
		t.Errorf("rows = %v", rows)
	}
}
