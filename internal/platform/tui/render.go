package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/vovakirdan/merge2048/internal/core"
)

// palette maps core colors to ANSI 256-color codes.
var palette = map[core.Color]string{
	core.ColorGray:          "245",
	core.ColorWhite:         "7",
	core.ColorBrightWhite:   "15",
	core.ColorYellow:        "3",
	core.ColorBrightYellow:  "11",
	core.ColorOrange:        "208",
	core.ColorRed:           "1",
	core.ColorBrightRed:     "9",
	core.ColorGreen:         "2",
	core.ColorBrightGreen:   "10",
	core.ColorCyan:          "6",
	core.ColorBrightCyan:    "14",
	core.ColorBrightMagenta: "13",
}

var colorStyles = lo.MapValues(palette, func(code string, _ core.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
})

func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.Cell(x, y).Color

			var run strings.Builder
			for ; x < s.Width(); x++ {
				cell := s.Cell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}
