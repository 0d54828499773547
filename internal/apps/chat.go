package apps

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
	"github.com/Gaurav-Gosain/deskos/internal/theme"
	"github.com/Gaurav-Gosain/deskos/internal/wm"
)

// ReplyDelay is how long the assistant "types" before answering.
var ReplyDelay = 600 * time.Millisecond

type chatLine struct {
	fromUser bool
	text     string
}

// replyMsg delivers an assistant answer after ReplyDelay.
type replyMsg struct{ text string }

// Chat is a mock assistant. It understands "open <app>" and "help";
// anything else gets a canned answer.
type Chat struct {
	host    Host
	input   textinput.Model
	history []chatLine
	pending int
}

// NewChat returns an assistant with a greeting.
func NewChat(host Host) App {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "ask something, or: open notepad"
	return &Chat{
		host:    host,
		input:   ti,
		history: []chatLine{{text: "Hi " + host.Session().User + ". Type help to see what I can do."}},
	}
}

func (c *Chat) Init() tea.Cmd { return nil }

func (c *Chat) Focus() tea.Cmd { return c.input.Focus() }

func (c *Chat) Blur() { c.input.Blur() }

func (c *Chat) add(line chatLine) {
	c.history = append(c.history, line)
	if over := len(c.history) - config.MaxChatHistory; over > 0 {
		c.history = c.history[over:]
	}
}

func (c *Chat) Update(msg tea.Msg, _ wm.Payload) (wm.Payload, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		c.pending = max(c.pending-1, 0)
		c.add(chatLine{text: msg.text})
		return nil, nil

	case tea.KeyPressMsg:
		if key.Matches(msg, keys.Open) {
			text := strings.TrimSpace(c.input.Value())
			if text == "" {
				return nil, nil
			}
			c.input.SetValue("")
			c.add(chatLine{fromUser: true, text: text})
			c.pending++
			reply := c.respond(text)
			return nil, tea.Tick(ReplyDelay, func(time.Time) tea.Msg {
				return replyMsg{text: reply}
			})
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return nil, cmd
}

// respond computes the answer to text. App launches happen immediately;
// only the answer is delayed.
func (c *Chat) respond(text string) string {
	lower := strings.ToLower(text)
	switch {
	case lower == "help":
		names := make([]string, 0)
		for _, d := range c.host.Registry().All() {
			names = append(names, string(d.ID))
		}
		return "Say \"open <app>\" to launch one of: " + strings.Join(names, ", ") + "."

	case strings.HasPrefix(lower, "open "):
		name := strings.TrimSpace(lower[len("open "):])
		d, ok := findApp(c.host.Registry(), name)
		if !ok {
			return fmt.Sprintf("I don't know an app called %q.", name)
		}
		err := c.host.OpenApp(d.ID, nil)
		switch {
		case errors.Is(err, wm.ErrPermissionDenied):
			return fmt.Sprintf("Sorry, %s needs the %s role.", d.Title, d.RequiresCapability)
		case err != nil:
			return "That didn't work: " + err.Error()
		}
		return "Opened " + d.Title + "."

	case strings.Contains(lower, "time"):
		return "It is " + time.Now().Format("15:04") + "."

	default:
		return "I'm only a demo, but I hear you: " + text
	}
}

// findApp matches name against app ids and titles.
func findApp(reg *registry.Registry, name string) (registry.Descriptor, bool) {
	if d, ok := reg.Lookup(registry.AppID(name)); ok {
		return d, true
	}
	for _, d := range reg.All() {
		if strings.EqualFold(d.Title, name) {
			return d, true
		}
		for _, t := range d.Titles {
			if strings.EqualFold(t, name) {
				return d, true
			}
		}
	}
	return registry.Descriptor{}, false
}

func (c *Chat) View(width, height int, _ wm.Payload, focused bool) string {
	if height < 2 {
		return fit(c.input.View(), width, height)
	}
	c.input.SetWidth(max(width-3, 1))

	you := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent())
	bot := lipgloss.NewStyle().Bold(true).Foreground(theme.LogInfo())

	var lines []string
	for _, l := range c.history {
		who := bot.Render("assistant")
		if l.fromUser {
			who = you.Render("you")
		}
		lines = append(lines, who)
		for _, w := range wrap(l.text, max(width-2, 1)) {
			lines = append(lines, "  "+w)
		}
	}
	if c.pending > 0 {
		lines = append(lines, dimStyle().Render("assistant is typing…"))
	}

	n := height - 1
	start := max(len(lines)-n, 0)
	return fit(strings.Join(lines[start:], "\n"), width, n) + "\n" + c.input.View()
}
