package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Colors used by grid previews.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
)

// StrategyColor returns the preview color of a strategy:
// cooperators green, defectors red.
func StrategyColor(s Strategy) Color {
	if s == Cooperator {
		return ColorGreen
	}
	return ColorRed
}
