package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/coopsim/internal/core"
	"github.com/vovakirdan/coopsim/internal/engine"
)

// Theme contains the styles of the summary block.
type Theme struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Accent lipgloss.Style
	Muted  lipgloss.Style
	Border lipgloss.Style
}

// DefaultTheme returns the default summary styles.
func DefaultTheme() Theme {
	return Theme{
		Title:  lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Accent: lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
	}
}

// Summary describes a finished run for display.
type Summary struct {
	Title  string
	Params core.Params
	Result engine.Result
	RunID  string   // empty when the run was not stored
	Files  []string // result files written, if any
}

// Render draws the summary block with the given theme.
func (s Summary) Render(th Theme) string {
	type line struct {
		label, value string
		accent       bool
	}

	p, res := s.Params, s.Result
	lines := []line{
		{"b / c", fmt.Sprintf("%g / %g", p.Benefit, p.Cost), false},
		{"ratio c/(b-c)", fmt.Sprintf("%.4f", p.Ratio()), false},
	}
	if p.Selection > 0 {
		lines = append(lines, line{"k", fmt.Sprintf("%g", p.Selection), false})
	}
	lines = append(lines,
		line{"size", fmt.Sprintf("%d", p.Size), false},
		line{"generations", fmt.Sprintf("%d", p.Generations), false},
		line{"f0", fmt.Sprintf("%g", p.InitialCooperation), false},
		line{"seed", fmt.Sprintf("%d", p.Seed), false},
		line{"steps", fmt.Sprintf("%d", res.Steps), false},
		line{"adoptions", fmt.Sprintf("%d (%d flips)", res.Adoptions, res.Flips), false},
		line{"final fraction", fmt.Sprintf("%.6f", res.Final), true},
		line{"tail mean", fmt.Sprintf("%.6f", res.TailMean), false},
	)
	if res.Fixated {
		lines = append(lines, line{"fixated", "yes", false})
	}
	if res.HasSummary {
		lines = append(lines, line{"summary", fmt.Sprintf("%f", res.Summary), true})
	}
	if s.RunID != "" {
		lines = append(lines, line{"run id", s.RunID, false})
	}

	width := 0
	for _, l := range lines {
		width = max(width, len(l.label))
	}

	var b strings.Builder
	b.WriteString(th.Title.Render(s.Title))
	for _, l := range lines {
		b.WriteString("\n")
		b.WriteString(th.Label.Render(fmt.Sprintf("%-*s", width, l.label)))
		b.WriteString("  ")
		if l.accent {
			b.WriteString(th.Accent.Render(l.value))
		} else {
			b.WriteString(th.Value.Render(l.value))
		}
	}
	for _, f := range s.Files {
		b.WriteString("\n")
		b.WriteString(th.Muted.Render("wrote " + f))
	}

	return th.Border.Render(b.String())
}
