package lumberjack

import (
	"math"

	"github.com/vovakirdan/lumberjack/internal/core"
)

// hudRows is the number of screen rows above the play field.
const hudRows = 1

// Viewport maps between play-area units and terminal cells. The arena is
// stretched to fill the screen below the HUD.
type Viewport struct {
	Cols, Rows     int
	Top            int
	ArenaW, ArenaH float64
}

// NewViewport creates a viewport for a cols x rows screen.
func NewViewport(cols, rows int, arenaW, arenaH float64) Viewport {
	return Viewport{
		Cols:   cols,
		Rows:   rows,
		Top:    hudRows,
		ArenaW: arenaW,
		ArenaH: arenaH,
	}
}

// Viewport returns the mapping for a screen of the given size.
func (g *Game) Viewport(cols, rows int) Viewport {
	return NewViewport(cols, rows, g.cfg.Arena.Width, g.cfg.Arena.Height)
}

// FieldRows returns the number of rows showing the arena.
func (v Viewport) FieldRows() int {
	return max(v.Rows-v.Top, 0)
}

// Valid reports whether the viewport has any area to map.
func (v Viewport) Valid() bool {
	return v.Cols > 0 && v.FieldRows() > 0 && v.ArenaW > 0 && v.ArenaH > 0
}

// ToCell returns the cell containing the play-area point (x, y).
// Points outside the arena map to cells outside the field.
func (v Viewport) ToCell(x, y float64) (col, row int) {
	if !v.Valid() {
		return -1, -1
	}
	col = int(math.Floor(x / v.ArenaW * float64(v.Cols)))
	row = v.Top + int(math.Floor(y/v.ArenaH*float64(v.FieldRows())))
	return col, row
}

// ToLogical returns the play-area point at the center of a cell.
// ok is false for cells outside the field, such as the HUD row.
func (v Viewport) ToLogical(col, row int) (x, y float64, ok bool) {
	if !v.InField(col, row) {
		return 0, 0, false
	}
	x = (float64(col) + 0.5) * v.ArenaW / float64(v.Cols)
	y = (float64(row-v.Top) + 0.5) * v.ArenaH / float64(v.FieldRows())
	return x, y, true
}

// InField reports whether the cell lies on the play field.
func (v Viewport) InField(col, row int) bool {
	return v.Valid() && col >= 0 && col < v.Cols && row >= v.Top && row < v.Rows
}

// ClampCell moves a cell onto the nearest field cell. Drags that leave the
// field keep tracking along its edge.
func (v Viewport) ClampCell(col, row int) (int, int) {
	return core.Clamp(col, 0, v.Cols-1), core.Clamp(row, v.Top, v.Rows-1)
}
