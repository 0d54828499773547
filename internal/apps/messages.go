package apps

import (
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskos/internal/theme"
	"github.com/Gaurav-Gosain/deskos/internal/wm"
)

const threadListWidth = 14

// Message is one line of a conversation.
type Message struct {
	From string
	Text string
}

// Thread is a conversation with one contact.
type Thread struct {
	Contact  string
	Messages []Message
	Unread   int
}

func defaultThreads() []Thread {
	return []Thread{
		{Contact: "Ada", Unread: 2, Messages: []Message{
			{From: "Ada", Text: "Did the build go green?"},
			{From: "Ada", Text: "Ping me when it does."},
		}},
		{Contact: "Linus", Messages: []Message{
			{From: "me", Text: "Patch is up for review."},
			{From: "Linus", Text: "Looks fine. Merging."},
		}},
		{Contact: "Grace", Unread: 1, Messages: []Message{
			{From: "Grace", Text: "Found a moth in relay 70."},
		}},
	}
}

type deliveredMsg struct {
	thread int
	msg    Message
}

// Messages is a mock messenger. Up and down pick a thread; typing composes
// into the selected one.
type Messages struct {
	host     Host
	threads  []Thread
	selected int
	compose  textinput.Model
}

// NewMessages returns the messenger with its mock threads.
func NewMessages(host Host) App {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "message"
	m := &Messages{host: host, threads: defaultThreads(), compose: ti}
	m.threads[0].Unread = 0
	return m
}

func (m *Messages) Init() tea.Cmd { return nil }

func (m *Messages) Focus() tea.Cmd { return m.compose.Focus() }

func (m *Messages) Blur() { m.compose.Blur() }

func (m *Messages) selectThread(i int) {
	m.selected = min(max(i, 0), len(m.threads)-1)
	m.threads[m.selected].Unread = 0
}

func (m *Messages) Update(msg tea.Msg, _ wm.Payload) (wm.Payload, tea.Cmd) {
	switch msg := msg.(type) {
	case deliveredMsg:
		t := &m.threads[msg.thread]
		t.Messages = append(t.Messages, msg.msg)
		if msg.thread != m.selected {
			t.Unread++
			m.host.Notify("New message from "+t.Contact, NotifyInfo)
		}
		return nil, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.PrevThread):
			m.selectThread(m.selected - 1)
			return nil, nil
		case key.Matches(msg, keys.NextThread):
			m.selectThread(m.selected + 1)
			return nil, nil
		case key.Matches(msg, keys.Open):
			return nil, m.send()
		}
	}

	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	return nil, cmd
}

// send appends the draft to the selected thread and schedules the
// contact's answer.
func (m *Messages) send() tea.Cmd {
	text := strings.TrimSpace(m.compose.Value())
	if text == "" {
		return nil
	}
	m.compose.SetValue("")
	i := m.selected
	t := &m.threads[i]
	t.Messages = append(t.Messages, Message{From: "me", Text: text})

	answer := Message{From: t.Contact, Text: "Got it: " + text}
	return tea.Tick(2*ReplyDelay, func(time.Time) tea.Msg {
		return deliveredMsg{thread: i, msg: answer}
	})
}

// Click selects a thread in the left column.
func (m *Messages) Click(x, y int, _ wm.Payload) (wm.Payload, tea.Cmd) {
	if x < threadListWidth && y < len(m.threads) {
		m.selectThread(y)
	}
	return nil, nil
}

func (m *Messages) View(width, height int, _ wm.Payload, focused bool) string {
	listW := min(threadListWidth, width/3)
	convW := max(width-listW-1, 1)

	var list []string
	for i, t := range m.threads {
		row := " " + t.Contact
		if t.Unread > 0 {
			row += " (" + strconv.Itoa(t.Unread) + ")"
		}
		row = lipgloss.NewStyle().Width(listW).Render(row)
		if i == m.selected {
			row = selectedStyle().Render(row)
		}
		list = append(list, row)
	}

	me := lipgloss.NewStyle().Foreground(theme.Accent())
	var conv []string
	for _, msg := range m.threads[m.selected].Messages {
		who := msg.From + ": "
		if msg.From == "me" {
			who = me.Render(who)
		} else {
			who = headerStyle().Render(who)
		}
		conv = append(conv, wrap(who+msg.Text, convW)...)
	}
	n := max(height-1, 0)
	conv = conv[max(len(conv)-n, 0):]

	m.compose.SetWidth(max(convW-3, 1))
	right := fit(strings.Join(conv, "\n"), convW, n) + "\n" + m.compose.View()

	sep := dimStyle().Render(strings.TrimSuffix(strings.Repeat("│\n", height), "\n"))
	left := fit(strings.Join(list, "\n"), listW, height)
	return fit(lipgloss.JoinHorizontal(lipgloss.Top, left, sep, right), width, height)
}
