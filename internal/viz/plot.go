// Package viz renders sampled trajectories in the terminal. It only
// consumes the sampled run surface; nothing here feeds back into the
// numerical core.
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

// PlotSeries renders one chart per species, capped at maxPlots.
func PlotSeries(title string, species []string, times []float64, series [][]float64, maxPlots int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")

	n := len(species)
	if maxPlots > 0 && n > maxPlots {
		n = maxPlots
	}
	for i := 0; i < n; i++ {
		data := make([]float64, len(series))
		for j := range series {
			data[j] = series[j][i]
		}
		caption := fmt.Sprintf("[%s]  t = %.4g .. %.4g", species[i], times[0], times[len(times)-1])
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}
	if n < len(species) {
		b.WriteString(captionStyle.Render(fmt.Sprintf("(%d more species not shown)\n", len(species)-n)))
	}
	return b.String()
}
