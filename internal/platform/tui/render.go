package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridsim/internal/core"
)

// palette maps map elements to terminal styles.
var palette = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorWall:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorGround:       lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	core.ColorRail:         lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorIntersection: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorCart:         lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ColorElf:          lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorGoblin:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorWounded:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorCrash:        lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("13")).Bold(true),
	core.ColorFrame:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// RenderScreen converts a Screen buffer to a styled string.
// Each row is split into runs of equal color, one styled segment per run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		start := 0
		for start < s.Width() {
			color := s.GetCell(start, y).Color
			end := start
			var seg []rune
			for end < s.Width() && s.GetCell(end, y).Color == color {
				seg = append(seg, s.GetCell(end, y).Rune)
				end++
			}
			sb.WriteString(styleFor(color).Render(string(seg)))
			start = end
		}
	}
	return sb.String()
}

func styleFor(c core.Color) lipgloss.Style {
	if st, ok := palette[c]; ok {
		return st
	}
	return palette[core.ColorDefault]
}
