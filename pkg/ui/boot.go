package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BootLines are the kernel-style messages played before the terminal opens.
var BootLines = []string{
	"[    0.000001] Booting BlogLabs...",
	"[    0.000004] Initializing kernel...",
	"[    0.000007] Mounting /dev/minimal-blog...",
	"[    0.000010] Loading content modules...",
	"[    0.000013] Starting user shell...",
}

const (
	DefaultBootInterval = 500 * time.Millisecond
	DefaultBootPause    = time.Second
)

// BootDoneMsg is sent exactly once per boot run, after the final pause
type BootDoneMsg struct{}

// bootTickMsg reveals the next boot line. Ticks from an earlier run carry
// a stale generation and are dropped.
type bootTickMsg struct{ gen int }

type bootFinishMsg struct{ gen int }

// BootModel plays the boot sequence. It accepts no input.
type BootModel struct {
	lines    []string
	interval time.Duration
	pause    time.Duration

	gen   int
	shown int
	done  bool

	bar   progress.Model
	theme Theme
	width int
}

// NewBootModel creates a boot sequence. Zero durations use the defaults.
func NewBootModel(theme Theme, interval, pause time.Duration) BootModel {
	if interval <= 0 {
		interval = DefaultBootInterval
	}
	if pause <= 0 {
		pause = DefaultBootPause
	}
	bar := progress.New(progress.WithSolidFill(colorHex(theme.Primary)), progress.WithoutPercentage())
	bar.Width = 40
	return BootModel{
		lines:    BootLines,
		interval: interval,
		pause:    pause,
		bar:      bar,
		theme:    theme,
	}
}

func colorHex(c lipgloss.TerminalColor) string {
	if hex, ok := c.(lipgloss.Color); ok {
		return string(hex)
	}
	return "#33FF66"
}

// Init schedules the first line
func (m BootModel) Init() tea.Cmd {
	return m.tick()
}

// Restart rewinds the sequence for a reboot. Ticks still in flight from the
// previous run are ignored.
func (m BootModel) Restart() (BootModel, tea.Cmd) {
	m.gen++
	m.shown = 0
	m.done = false
	return m, m.tick()
}

func (m BootModel) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return bootTickMsg{gen: gen}
	})
}

func (m BootModel) Update(msg tea.Msg) (BootModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 8
		if w > 60 {
			w = 60
		}
		if w < 10 {
			w = 10
		}
		m.bar.Width = w

	case bootTickMsg:
		if msg.gen != m.gen || m.done || m.shown >= len(m.lines) {
			return m, nil
		}
		m.shown++
		if m.shown == len(m.lines) {
			gen := m.gen
			return m, tea.Tick(m.pause, func(time.Time) tea.Msg {
				return bootFinishMsg{gen: gen}
			})
		}
		return m, m.tick()

	case bootFinishMsg:
		if msg.gen != m.gen || m.done {
			return m, nil
		}
		m.done = true
		return m, func() tea.Msg { return BootDoneMsg{} }
	}
	return m, nil
}

// Shown is the number of boot lines revealed so far
func (m BootModel) Shown() int { return m.shown }

// Done reports whether completion has been signalled
func (m BootModel) Done() bool { return m.done }

func (m BootModel) View() string {
	r := m.theme.Renderer
	lineStyle := r.NewStyle().Foreground(m.theme.Primary)

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range m.lines[:m.shown] {
		b.WriteString("  ")
		b.WriteString(lineStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n  ")
	pct := 0.0
	if len(m.lines) > 0 {
		pct = float64(m.shown) / float64(len(m.lines))
	}
	b.WriteString(m.bar.ViewAs(pct))
	b.WriteString("\n")
	return b.String()
}
