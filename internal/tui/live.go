package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmrivas/phasecrit/internal/sector"
)

// Progress is one update from a running sweep.
type Progress struct {
	Done     int
	Total    int
	Failures int
	Label    sector.Label
	MPhi     float64
	KRot     float64
}

type progressMsg Progress

type finishedMsg struct{}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
)

// Model is a bubbletea view of a running sweep fed through a channel; the
// channel closing signals completion.
type Model struct {
	updates  <-chan Progress
	progress Progress
	finished bool
}

func New(updates <-chan Progress) Model {
	return Model{updates: updates}
}

func (m Model) Init() tea.Cmd {
	return m.wait()
}

func (m Model) wait() tea.Cmd {
	return func() tea.Msg {
		p, ok := <-m.updates
		if !ok {
			return finishedMsg{}
		}
		return progressMsg(p)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.progress = Progress(msg)
		return m, m.wait()
	case finishedMsg:
		m.finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	p := m.progress

	var b strings.Builder
	b.WriteString(titleStyle.Render("phasecrit scan"))
	b.WriteString("\n\n")

	const barWidth = 40
	frac := 0.0
	if p.Total > 0 {
		frac = float64(p.Done) / float64(p.Total)
	}
	filled := int(frac * barWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	b.WriteString(fmt.Sprintf("  %s %d/%d\n", barStyle.Render(bar), p.Done, p.Total))

	if p.Done > 0 {
		b.WriteString(fmt.Sprintf("  last: m_phi=%.4g k_rot=%.4g → %s\n", p.MPhi, p.KRot, p.Label))
	}
	if p.Failures > 0 {
		b.WriteString("  " + failStyle.Render(fmt.Sprintf("%d failed points", p.Failures)) + "\n")
	}

	if m.finished {
		b.WriteString("\n  done\n")
	} else {
		b.WriteString("\n  " + dimStyle.Render("q to quit") + "\n")
	}
	return b.String()
}
