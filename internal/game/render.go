package game

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)

	boardW    = engine.Size*cellWidth + 1  // +1 for right border
	boardH    = engine.Size*cellHeight + 1 // +1 for bottom border
	hudHeight = 3

	minScreenW = boardW + 2
	minScreenH = hudHeight + boardH + 2
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX)
	renderGridLines(dst, boardX, boardY)

	if g.anim.phase == phaseSlide {
		g.renderSliding(dst, boardX, boardY)
	} else {
		g.renderTiles(dst, boardX, boardY)
	}

	g.renderOverlays(dst, boardX, boardY)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and best score.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	snap := g.sess.Snapshot()

	title := g.Title()
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorTitle)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", snap.Score))

	best := fmt.Sprintf("Best: %d", snap.Best)
	dst.DrawText(boardX+boardW-len(best), 1, best)

	goal := g.preset.Goal()
	dst.DrawTextColored(boardX+(boardW-len(goal))/2, 2, goal, core.ColorDim)
}

// renderGridLines draws the 4x4 grid borders.
func renderGridLines(dst *core.Screen, boardX, boardY int) {
	for y := range engine.Size + 1 {
		for x := range engine.Size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == engine.Size:
				corner = '┐'
			case y == engine.Size && x == 0:
				corner = '└'
			case y == engine.Size && x == engine.Size:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == engine.Size:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == engine.Size:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorDim)

			if x < engine.Size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorDim)
				}
			}
			if y < engine.Size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorDim)
				}
			}
		}
	}
}

// renderTiles draws every tile at rest. During the pop phase the spawned
// tile is drawn in the accent color.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	grid := g.sess.Grid()
	for r := range engine.Size {
		for c := range engine.Size {
			val := grid[r][c]
			if val == 0 {
				continue
			}
			color := core.TileColor(val)
			if g.anim.phase == phasePop && g.anim.spawned != nil && *g.anim.spawned == (engine.Cell{Row: r, Col: c}) {
				color = core.ColorAccent
			}
			drawTile(dst, boardX, boardY, float64(r), float64(c), val, color)
		}
	}
}

// renderSliding draws tiles at their interpolated positions with their
// pre-merge values.
func (g *Game) renderSliding(dst *core.Screen, boardX, boardY int) {
	for _, t := range g.anim.tiles {
		r, c := t.position(g.anim.progress)
		drawTile(dst, boardX, boardY, r, c, t.value, core.TileColor(t.value))
	}
}

// drawTile draws a value centred in the cell at (row, col), which may be
// fractional while sliding.
func drawTile(dst *core.Screen, boardX, boardY int, row, col float64, val int, color core.Color) {
	cellX := boardX + int(math.Round(col*cellWidth)) + 1
	cellY := boardY + int(math.Round(row*cellHeight)) + 1

	valStr := strconv.Itoa(val)
	padLeft := max((cellWidth-1-len(valStr))/2, 0)
	dst.DrawTextColored(cellX+padLeft, cellY, valStr, color)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2
	snap := g.sess.Snapshot()

	switch {
	case g.paused:
		drawOverlay(dst, centerX, centerY, core.ColorAccent, "PAUSED", "Press P to resume")
	case snap.GameOver:
		maxStr := fmt.Sprintf("Max tile: %d", snap.Grid.MaxTile())
		drawOverlay(dst, centerX, centerY, core.ColorLose, "GAME OVER", maxStr, "Press R to restart")
	case g.showWin:
		drawOverlay(dst, centerX, centerY, core.ColorWin, "YOU WIN!", fmt.Sprintf("%d reached", g.preset.WinTile), "C: continue  R: restart")
	}
}

// drawOverlay draws a centered text overlay.
func drawOverlay(dst *core.Screen, centerX, centerY int, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.CenteredRect(centerX, centerY, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, color)
	}
}
