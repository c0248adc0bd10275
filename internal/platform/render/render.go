// Package render turns run state into styled terminal output.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/coopsim/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
}

// Cell runes used by grid previews.
const (
	CooperatorRune = '█'
	DefectorRune   = '░'
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// GridScreen lays out a population grid on a screen at most maxCols wide.
// Larger grids are subsampled with the same stride on both axes so the
// preview keeps the grid's aspect ratio. A non-positive maxCols disables
// subsampling.
func GridScreen(rows [][]core.Strategy, maxCols int) *core.Screen {
	if len(rows) == 0 {
		return core.NewScreen(0, 0)
	}
	side := len(rows[0])
	stride := 1
	if maxCols > 0 && side > maxCols {
		stride = (side + maxCols - 1) / maxCols
	}

	var sampled [][]core.Strategy
	for r := 0; r < len(rows); r += stride {
		var line []core.Strategy
		for c := 0; c < side; c += stride {
			line = append(line, rows[r][c])
		}
		sampled = append(sampled, line)
	}

	s := core.NewScreen(len(sampled[0]), len(sampled))
	s.DrawStrategies(0, 0, sampled, CooperatorRune, DefectorRune)
	return s
}

// Grid renders a styled grid preview at most maxCols wide.
func Grid(rows [][]core.Strategy, maxCols int) string {
	return RenderScreen(GridScreen(rows, maxCols))
}
