package apps

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/Gaurav-Gosain/deskos/internal/theme"
	"github.com/Gaurav-Gosain/deskos/internal/wm"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one sample of the machine the desktop runs on.
type Stats struct {
	CPUPercent float64
	MemPercent float64
	Hostname   string
	Platform   string
	Uptime     time.Duration
}

type statsMsg struct {
	stats  Stats
	err    error
	manual bool
}

type statsTickMsg struct{}

// SampleStats reads CPU, memory and host info. Partial results are
// returned together with the first error.
func SampleStats() (Stats, error) {
	var (
		s        Stats
		firstErr error
	)
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	if pct, err := cpu.Percent(0, false); err != nil {
		keep(fmt.Errorf("cpu: %w", err))
	} else if len(pct) > 0 {
		s.CPUPercent = pct[0]
	}
	if vm, err := mem.VirtualMemory(); err != nil {
		keep(fmt.Errorf("memory: %w", err))
	} else {
		s.MemPercent = vm.UsedPercent
	}
	if info, err := host.Info(); err != nil {
		keep(fmt.Errorf("host: %w", err))
	} else {
		s.Hostname = info.Hostname
		s.Platform = strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
		s.Uptime = time.Duration(info.Uptime) * time.Second
	}
	return s, firstErr
}

// Admin shows live system stats and the desktop log. Opening it requires
// the admin role.
type Admin struct {
	host    Host
	sample  func() (Stats, error)
	stats   Stats
	err     error
	sampled bool
}

// NewAdmin returns the admin console.
func NewAdmin(host Host) App {
	return &Admin{host: host, sample: SampleStats}
}

func (a *Admin) fetch(manual bool) tea.Cmd {
	sample := a.sample
	return func() tea.Msg {
		s, err := sample()
		return statsMsg{stats: s, err: err, manual: manual}
	}
}

func (a *Admin) Init() tea.Cmd { return a.fetch(false) }

func (a *Admin) Update(msg tea.Msg, _ wm.Payload) (wm.Payload, tea.Cmd) {
	switch msg := msg.(type) {
	case statsMsg:
		if msg.err != nil && a.err == nil {
			a.host.Notify("Stats unavailable: "+msg.err.Error(), NotifyWarning)
		}
		a.stats, a.err, a.sampled = msg.stats, msg.err, true
		if msg.manual {
			return nil, nil
		}
		return nil, tea.Tick(config.StatsInterval, func(time.Time) tea.Msg { return statsTickMsg{} })

	case statsTickMsg:
		return nil, a.fetch(false)

	case tea.KeyPressMsg:
		if key.Matches(msg, keys.Refresh) {
			return nil, a.fetch(true)
		}
	}
	return nil, nil
}

func bar(pct float64, width int) string {
	width = max(width, 1)
	filled := min(max(int(pct/100*float64(width)+0.5), 0), width)
	return strings.Repeat("█", filled) + dimStyle().Render(strings.Repeat("░", width-filled))
}

func levelColor(level string) lipgloss.Style {
	switch level {
	case "ERROR":
		return lipgloss.NewStyle().Foreground(theme.LogError())
	case "WARN":
		return lipgloss.NewStyle().Foreground(theme.LogWarn())
	default:
		return lipgloss.NewStyle().Foreground(theme.LogInfo())
	}
}

func (a *Admin) View(width, height int, _ wm.Payload, focused bool) string {
	var b strings.Builder
	b.WriteString(headerStyle().Render("System"))
	b.WriteByte('\n')
	if !a.sampled {
		b.WriteString(dimStyle().Render("sampling…"))
	} else {
		barW := max(width-12, 4)
		fmt.Fprintf(&b, "cpu  %5.1f%% %s\n", a.stats.CPUPercent, bar(a.stats.CPUPercent, barW))
		fmt.Fprintf(&b, "mem  %5.1f%% %s\n", a.stats.MemPercent, bar(a.stats.MemPercent, barW))
		fmt.Fprintf(&b, "host %s (%s) up %s", a.stats.Hostname, a.stats.Platform, a.stats.Uptime.Truncate(time.Minute))
	}
	b.WriteString("\n\n")
	b.WriteString(headerStyle().Render("Desktop log"))

	header := strings.Count(b.String(), "\n") + 1
	logs := a.host.Logs()
	n := max(height-header-1, 0)
	for _, l := range logs[max(len(logs)-n, 0):] {
		b.WriteByte('\n')
		b.WriteString(dimStyle().Render(l.Time.Format("15:04:05")) + " ")
		b.WriteString(levelColor(l.Level).Render(fmt.Sprintf("%-5s", l.Level)) + " " + l.Message)
	}
	return fit(b.String(), width, height-1) + "\n" + dimStyle().Render(helpLine(keys.Refresh))
}
