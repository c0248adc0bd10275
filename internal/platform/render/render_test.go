package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/coopsim/internal/core"
	"github.com/vovakirdan/coopsim/internal/engine"
)

func checker(side int) [][]core.Strategy {
	rows := make([][]core.Strategy, side)
	for r := range rows {
		rows[r] = make([]core.Strategy, side)
		for c := range rows[r] {
			if (r+c)%2 == 0 {
				rows[r][c] = core.Cooperator
			}
		}
	}
	return rows
}

func TestGridScreenFullSize(t *testing.T) {
	s := GridScreen(checker(4), 80)
	if s.Width() != 4 || s.Height() != 4 {
		t.Fatalf("screen is %dx%d, expected 4x4", s.Width(), s.Height())
	}
	if s.String() != "█░█░\n░█░█\n█░█░\n░█░█" {
		t.Errorf("unexpected grid %q", s.String())
	}
	if s.GetCell(0, 0).Color != core.ColorGreen || s.GetCell(1, 0).Color != core.ColorRed {
		t.Error("cooperators should be green and defectors red")
	}
}

func TestGridScreenSubsamples(t *testing.T) {
	tests := []struct {
		name     string
		side     int
		maxCols  int
		expected int
	}{
		{"fits", 10, 10, 10},
		{"halved", 10, 5, 5},
		{"rounded up stride", 10, 4, 4},
		{"unbounded", 10, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := GridScreen(checker(tt.side), tt.maxCols)
			if s.Width() != tt.expected || s.Height() != tt.expected {
				t.Errorf("screen is %dx%d, expected %dx%d", s.Width(), s.Height(), tt.expected, tt.expected)
			}
		})
	}
}

func TestGridScreenEmpty(t *testing.T) {
	s := GridScreen(nil, 10)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("empty grid should give an empty screen, got %dx%d", s.Width(), s.Height())
	}
}

func TestRenderScreenPlain(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	s := core.NewScreen(3, 2)
	s.Set(0, 0, 'a', core.ColorGreen)
	s.Set(1, 0, 'b', core.ColorGreen)
	s.Set(2, 0, 'c', core.ColorRed)
	s.Set(0, 1, 'x', core.ColorDefault)
	s.Set(1, 1, 'y', core.ColorDefault)
	s.Set(2, 1, 'z', core.ColorDefault)

	if got := RenderScreen(s); got != "abc\nxyz" {
		t.Errorf("RenderScreen = %q, expected %q", got, "abc\nxyz")
	}
}

func TestSummaryRender(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	sum := Summary{
		Title:  "Spatial lattice (toroidal)",
		Params: core.Params{Benefit: 2, Cost: 1, Selection: 0.1, Size: 50, Generations: 1000, InitialCooperation: 0.5, Seed: 7},
		Result: engine.Result{Steps: 2500000, Final: 0.25, Summary: 6250, HasSummary: true, TailMean: 0.24},
		RunID:  "0f8fad5b-d9cb-469f-a165-70867728950e",
		Files:  []string{"COOP_FREQ_B_2.00__C_1.00.txt"},
	}
	out := sum.Render(DefaultTheme())

	for _, want := range []string{
		"Spatial lattice (toroidal)",
		"ratio c/(b-c)",
		"1.0000",
		"0.250000",
		"6250.000000",
		"0f8fad5b-d9cb-469f-a165-70867728950e",
		"wrote COOP_FREQ_B_2.00__C_1.00.txt",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryOmitsAbsentFields(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	sum := Summary{
		Title:  "Well-mixed population",
		Params: core.Params{Benefit: 2, Cost: 1, Size: 100, Generations: 5, InitialCooperation: 0.5},
		Result: engine.Result{Steps: 500},
	}
	out := sum.Render(DefaultTheme())

	for _, absent := range []string{"summary", "run id", "wrote"} {
		if strings.Contains(out, absent) {
			t.Errorf("summary should not contain %q:\n%s", absent, out)
		}
	}
	if strings.Contains(out, " k ") {
		t.Errorf("selection should be omitted when zero:\n%s", out)
	}
}
