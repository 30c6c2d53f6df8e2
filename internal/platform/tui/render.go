package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// tileStyle renders a tile with dark text on a colored background.
func tileStyle(bg string) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235")).Background(lipgloss.Color(bg))
}

// colorStyles maps core.Color to lipgloss styles. Tile colors use the
// 256-color palette closest to the classic 2048 theme.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorDim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorTitle:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
	core.ColorAccent:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
	core.ColorWin:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
	core.ColorLose:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	core.ColorTile2:     tileStyle("255"),
	core.ColorTile4:     tileStyle("230"),
	core.ColorTile8:     tileStyle("216"),
	core.ColorTile16:    tileStyle("209"),
	core.ColorTile32:    tileStyle("203"),
	core.ColorTile64:    tileStyle("196"),
	core.ColorTile128:   tileStyle("222"),
	core.ColorTile256:   tileStyle("221"),
	core.ColorTile512:   tileStyle("220"),
	core.ColorTile1024:  tileStyle("214"),
	core.ColorTile2048:  tileStyle("226"),
	core.ColorTileSuper: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("236")),
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
