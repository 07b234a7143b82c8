package hexfall

import (
	"fmt"
	"math"

	"github.com/vovakirdan/hexfall/internal/core"
	"github.com/vovakirdan/hexfall/internal/games/hexfall/engine"
)

// Each board column is cellCols characters wide and each row cellLines
// lines tall. Odd columns sit one line higher than even ones.
const (
	cellCols     = 4
	cellLines    = 2
	hudHeight    = 3
	footerHeight = 2
)

var pieceColors = [engine.MaxPalette]core.Color{
	engine.Blue:   core.ColorBrightBlue,
	engine.Green:  core.ColorBrightGreen,
	engine.Red:    core.ColorBrightRed,
	engine.Yellow: core.ColorBrightYellow,
	engine.Purple: core.ColorMagenta,
	engine.White:  core.ColorBrightWhite,
	engine.Cyan:   core.ColorBrightCyan,
	engine.Grey:   core.ColorGray,
}

func (g *Game) boardWidth() int  { return g.cfg.Grid.Width * cellCols }
func (g *Game) boardHeight() int { return g.cfg.Grid.Height*cellLines + 1 }

// boardOrigin returns the screen position of the board's top-left corner.
func (g *Game) boardOrigin() (int, int) {
	return (g.screenW - g.boardWidth()) / 2, hudHeight + 1
}

// cellScreen returns where a cell's token is drawn.
func (g *Game) cellScreen(c engine.Coord) (int, int) {
	bx, by := g.boardOrigin()
	odd := 0
	if c.Odd() {
		odd = 1
	}
	x := bx + c.Col*cellCols + 1
	y := by + (g.cfg.Grid.Height-1-c.Row)*cellLines + 1 - odd
	return x, y
}

// worldScreen maps a layout position to the screen. Positions between
// cells round to the nearest character.
func (g *Game) worldScreen(p engine.Point) (int, int) {
	bx, by := g.boardOrigin()
	l := g.eng.Layout()
	colf := (p.X - l.Origin.X) / l.ColumnStep()
	rowf := (p.Y - l.Origin.Y) / l.RowStep()
	x := bx + int(math.Round(colf*cellCols)) + 1
	y := by + int(math.Round(float64(cellLines*g.cfg.Grid.Height-1)-cellLines*rowf))
	return x, y
}

// hitTest maps a screen position to the cell and quadrant under it.
func (g *Game) hitTest(x, y int) (engine.Coord, engine.Side, bool) {
	bx, by := g.boardOrigin()
	if x < bx || x >= bx+g.boardWidth() {
		return engine.Coord{}, 0, false
	}
	col := (x - bx) / cellCols
	odd := col % 2

	d := by + cellLines*g.cfg.Grid.Height - 1 - y - odd
	if d < -1 || d > cellLines*g.cfg.Grid.Height-2 {
		return engine.Coord{}, 0, false
	}
	row := (d + 1) / cellLines

	left := (x-bx)%cellCols < cellCols/2
	top := d%2 == 0
	var side engine.Side
	switch {
	case left && top:
		side = engine.SideLeftTop
	case left:
		side = engine.SideLeftBottom
	case top:
		side = engine.SideRightTop
	default:
		side = engine.SideRightBottom
	}
	return engine.C(col, row), side, true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	bx, by := g.boardOrigin()
	frame := core.NewRect(bx-1, by-1, g.boardWidth()+2, g.boardHeight()+2)

	g.renderHUD(dst, frame)
	dst.DrawBox(frame, core.ColorDim)
	g.renderGroup(dst)
	g.renderPieces(dst, by)
	g.renderFooter(dst, frame)
	g.renderOverlays(dst, frame)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorDim)
}

// renderHUD draws score, moves, best score and bomb status.
func (g *Game) renderHUD(dst *core.Screen, frame core.Rect) {
	dst.DrawTextCentered(0, g.Title(), core.ColorBrightWhite)

	left := fmt.Sprintf("Score: %d  Moves: %d", g.eng.Score(), g.eng.Moves())
	dst.DrawText(frame.X, 1, left)

	best := fmt.Sprintf("Best: %d", g.eng.HighScore())
	dst.DrawTextColored(frame.Right()-len(best), 1, best, core.ColorYellow)

	bombs := g.eng.Bombs()
	if len(bombs) == 0 {
		if g.cfg.Bombs.ScoreThreshold == 0 {
			dst.DrawTextColored(frame.X, 2, "No bombs", core.ColorDim)
		}
		return
	}
	minLife := bombs[0].Life
	for _, b := range bombs[1:] {
		minLife = core.Min(minLife, b.Life)
	}
	info := fmt.Sprintf("Bombs: %d  Next blast in %d", len(bombs), minLife)
	c := core.ColorDefault
	if minLife <= 2 {
		c = core.ColorAlert
	}
	dst.DrawTextColored(frame.X, 2, info, c)
}

// renderGroup brackets the swap group under the cursor, or the group
// being rotated.
func (g *Game) renderGroup(dst *core.Screen) {
	if g.gameOver {
		return
	}

	grp, ok := g.eng.Selection()
	if !ok || g.eng.State() != engine.StateRotating {
		var err error
		grp, err = engine.GroupAt(g.eng.Board(), g.cursor, g.side)
		if err != nil {
			return
		}
	}

	for _, c := range grp.Cells {
		x, y := g.cellScreen(c)
		l, r := '[', ']'
		if c == g.cursor {
			l, r = '<', '>'
		}
		dst.SetColored(x-1, y, l, core.ColorHighlight)
		dst.SetColored(x+2, y, r, core.ColorHighlight)
	}
}

// renderPieces draws every piece at its animated position.
// Pieces still above the board are hidden.
func (g *Game) renderPieces(dst *core.Screen, top int) {
	for _, p := range g.eng.Board().Pieces() {
		pos, ok := g.visual[p.ID]
		if !ok {
			pos = p.Spawn
		}
		x, y := g.worldScreen(pos)
		if y < top {
			continue
		}

		if g.clearing[p.ID] && (g.tick/flashPeriod)%2 == 0 {
			dst.DrawTextColored(x, y, "░░", core.ColorFlash)
			continue
		}

		if p.IsBomb() {
			life := '+'
			if p.Life < 10 {
				life = rune('0' + p.Life)
			}
			c := core.ColorBrightWhite
			if p.Life <= 2 {
				c = core.ColorAlert
			}
			dst.SetColored(x, y, '*', c)
			dst.SetColored(x+1, y, life, c)
			continue
		}

		dst.DrawTextColored(x, y, "██", pieceColors[p.Color])
	}
}

// renderFooter draws hints below the board.
func (g *Game) renderFooter(dst *core.Screen, frame core.Rect) {
	y := frame.Bottom()
	if g.failed > 0 {
		dst.DrawTextCentered(y, "No match, the group turned back", core.ColorYellow)
	}
	dst.DrawTextCentered(y+1, "Space: corner  X/Z: rotate  Mouse: click + swipe", core.ColorDim)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, frame core.Rect) {
	cx, cy := frame.Center()

	if g.paused {
		g.drawOverlay(dst, cx, cy, core.ColorDefault, "PAUSED", "Press P to resume")
		return
	}

	if g.gameOver {
		stats := fmt.Sprintf("Score: %d  Moves: %d", g.outcome.Score, g.outcome.Moves)
		g.drawOverlay(dst, cx, cy, core.ColorAlert, g.outcome.Message, stats, "Press R to restart")
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, c core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, c)

	for i, line := range lines {
		lc := core.ColorDefault
		if i == 0 {
			lc = c
		}
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, lc)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space: Corner | X/Z: Rotate | P: Pause | R: Restart | Q: Quit"
}
