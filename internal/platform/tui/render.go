package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lumberjack/internal/core"
)

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// colorStyles maps core.Color to lipgloss styles (ANSI 256 palette).
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          fg("1"),
	core.ColorGreen:        fg("2"),
	core.ColorYellow:       fg("3"),
	core.ColorWhite:        fg("7"),
	core.ColorBrightRed:    fg("9"),
	core.ColorBrightYellow: fg("11"),
	core.ColorBrightWhite:  fg("15"),
	core.ColorOrange:       fg("208"),
	core.ColorGray:         fg("245"),
	core.ColorBrown:        fg("94"),
	core.ColorSienna:       fg("130"),
	core.ColorPeru:         fg("173"),
	core.ColorChocolate:    fg("166"),
	core.ColorBurlywood:    fg("180"),
	core.ColorGold:         fg("220"),
	core.ColorGoldenrod:    fg("178"),
	core.ColorKhaki:        fg("186"),
	core.ColorLightGold:    fg("228"),
	core.ColorAmber:        fg("214"),
	core.ColorDarkWood:     fg("58"),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
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
