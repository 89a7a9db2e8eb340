package lumberjack

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/lumberjack/internal/core"
)

const (
	minCols = 40
	minRows = 12
)

// orientation runes indexed by the rotation quantized to 45 degrees.
var orientRunes = [4]rune{'━', '╲', '┃', '╱'}

// orientSteps is the cell offset along each orientation.
var orientSteps = [4][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}}

// Render draws the current frame. A zero-size screen skips the frame without
// touching game state.
func (g *Game) Render(dst *core.Screen) {
	if dst.Empty() {
		return
	}
	dst.Clear()

	if dst.Width() < minCols || dst.Height() < minRows {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorDefault)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minCols, minRows), core.ColorGray)
		return
	}

	vp := g.Viewport(dst.Width(), dst.Height())

	g.renderGrain(dst, vp)
	g.renderParticles(dst, vp)
	g.renderObjects(dst, vp)
	g.renderTrail(dst, vp)
	g.renderHUD(dst)
	g.renderOverlay(dst)
}

// renderGrain draws a sparse wood-grain backdrop.
func (g *Game) renderGrain(dst *core.Screen, vp Viewport) {
	for row := vp.Top; row < vp.Rows; row++ {
		if row%3 != 0 {
			continue
		}
		for col := 0; col < vp.Cols; col++ {
			if (col*7+row*3)%11 == 0 {
				dst.SetColored(col, row, '~', core.ColorDarkWood)
			}
		}
	}
}

func (g *Game) renderObjects(dst *core.Screen, vp Viewport) {
	for _, o := range g.objects {
		t := g.traits.of(o.Category)
		col, row := vp.ToCell(o.X, o.Y)

		if o.Sliced {
			// Halves drift apart across the cut.
			dx, dy := perpStep(o.SliceAngle)
			dst.SetColored(col+dx, row+dy, t.HalfGlyph, t.Color)
			dst.SetColored(col-dx, row-dy, t.HalfGlyph, t.Color)
			continue
		}

		if t.Span > 0 {
			i := orientIndex(o.Rotation)
			step := orientSteps[i]
			for s := 1; s <= t.Span; s++ {
				dst.SetColored(col+step[0]*s, row+step[1]*s, orientRunes[i], t.Color)
				dst.SetColored(col-step[0]*s, row-step[1]*s, orientRunes[i], t.Color)
			}
		}
		dst.SetColored(col, row, t.Glyph, t.Color)

		if t.Penalizes && g.tick%8 < 4 {
			dst.SetColored(col+1, row-1, '*', core.ColorOrange)
		}
	}
}

func (g *Game) renderParticles(dst *core.Screen, vp Viewport) {
	for _, p := range g.particles {
		col, row := vp.ToCell(p.X, p.Y)
		r := '·'
		if p.Life > 0.5 {
			r = '*'
		}
		if p.Size*p.Life > 6 {
			r = '●'
		}
		dst.SetColored(col, row, r, p.Color)
	}
}

// renderTrail connects the visible swipe samples, newest brightest.
func (g *Game) renderTrail(dst *core.Screen, vp Viewport) {
	if g.trail == nil {
		return
	}
	pts := g.trail.Visible(g.sched.Now())
	for i := 1; i < len(pts); i++ {
		r, c := '░', core.ColorAmber
		if i*2 >= len(pts) {
			r, c = '▓', core.ColorBrightYellow
		}
		x0, y0 := vp.ToCell(pts[i-1].X, pts[i-1].Y)
		x1, y1 := vp.ToCell(pts[i].X, pts[i].Y)
		drawLine(dst, x0, y0, x1, y1, r, c)
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)

	dst.DrawTextColored(1, 0, "LIVES:", core.ColorBurlywood)
	for i := 0; i < g.cfg.Round.Lives; i++ {
		if i < g.round.Lives {
			dst.SetColored(8+i*2, 0, '♥', core.ColorBrightRed)
		} else {
			dst.SetColored(8+i*2, 0, '♡', core.ColorGray)
		}
	}

	score := fmt.Sprintf("SCORE: %d", g.round.Score)
	if g.round.Combo > 1 {
		score += fmt.Sprintf("  %dx COMBO!", g.round.Combo)
	}
	dst.DrawTextCentered(0, score, core.ColorBrightYellow)

	right := fmt.Sprintf("LOGS: %d  BEST: %dx", g.round.Cleared, g.round.MaxCombo)
	dst.DrawTextColored(dst.Width()-len(right)-1, 0, right, core.ColorBurlywood)
}

func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.phase == PhaseOver:
		drawPanel(dst, core.ColorBrightRed, []string{
			"GAME OVER",
			"",
			fmt.Sprintf("Final Score: %d", g.round.Score),
			fmt.Sprintf("Logs Sliced: %d", g.round.Cleared),
			fmt.Sprintf("Max Combo: %dx", g.round.MaxCombo),
			"",
			"R restart   Q quit",
		})
	case g.paused:
		drawPanel(dst, core.ColorYellow, []string{
			"PAUSED",
			"",
			"P resume   Q quit",
		})
	case g.phase == PhaseCountdown:
		drawPanel(dst, core.ColorGold, []string{
			"Get ready!",
			"",
			fmt.Sprintf("%d", g.countdown),
			"",
			"Drag the mouse to slice logs, avoid bombs",
		})
	}
}

// drawPanel draws a centered, cleared box holding the given lines.
func drawPanel(dst *core.Screen, c core.Color, lines []string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	w := min(width+4, dst.Width())
	h := min(len(lines)+2, dst.Height())
	r := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	dst.DrawRect(r, ' ')
	dst.DrawBox(r, c)
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		dst.DrawTextCentered(r.Y+1+i, l, c)
	}
}

// drawLine plots a Bresenham line between two cells.
func drawLine(dst *core.Screen, x0, y0, x1, y1 int, r rune, c core.Color) {
	dx := core.Abs(x1 - x0)
	dy := -core.Abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		dst.SetColored(x0, y0, r, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// orientIndex quantizes a rotation to one of four line orientations.
func orientIndex(rotation float64) int {
	a := math.Mod(rotation, math.Pi)
	if a < 0 {
		a += math.Pi
	}
	return int(math.Round(a/(math.Pi/4))) % 4
}

// perpStep returns the unit cell step perpendicular to a slice angle.
func perpStep(angle float64) (int, int) {
	p := angle + math.Pi/2
	return int(math.Round(math.Cos(p))), int(math.Round(math.Sin(p)))
}
