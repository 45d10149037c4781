package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

type tickMsg time.Time

// LiveModel replays a sampled trajectory in the terminal, one sample
// per frame.
type LiveModel struct {
	title    string
	species  []string
	times    []float64
	conc     [][]float64
	playHead int
	running  bool
	fps      int
}

func NewLive(title string, species []string, times []float64, conc [][]float64, fps int) LiveModel {
	if fps <= 0 {
		fps = 30
	}
	return LiveModel{
		title:   title,
		species: species,
		times:   times,
		conc:    conc,
		running: true,
		fps:     fps,
	}
}

func (m LiveModel) Init() tea.Cmd {
	return m.tick()
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "left", "h":
			m.running = false
			if m.playHead > 0 {
				m.playHead--
			}
		case "right", "l":
			m.running = false
			if m.playHead < len(m.times)-1 {
				m.playHead++
			}
		case "r":
			m.playHead = 0
			m.running = true
		}
		return m, nil
	case tickMsg:
		if m.running && m.playHead < len(m.times)-1 {
			m.playHead++
		}
		return m, m.tick()
	}
	return m, nil
}

func (m LiveModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.title))
	b.WriteString("\n")

	end := m.playHead + 1
	series := make([][]float64, 0, len(m.species))
	for i := range m.species {
		data := make([]float64, end)
		for j := 0; j < end; j++ {
			data[j] = m.conc[j][i]
		}
		series = append(series, data)
	}
	if end > 1 {
		graph := asciigraph.PlotMany(series,
			asciigraph.Height(14),
			asciigraph.Width(80),
			asciigraph.Caption(strings.Join(m.species, ", ")),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	status := fmt.Sprintf("t = %.4g / %.4g  (%d/%d samples)",
		m.times[m.playHead], m.times[len(m.times)-1], m.playHead+1, len(m.times))
	if !m.running {
		status += "  " + pausedStyle.Render("paused")
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString(helpStyle.Render("\nspace pause · ←/→ scrub · r restart · q quit"))
	return b.String()
}
