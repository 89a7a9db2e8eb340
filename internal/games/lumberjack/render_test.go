package lumberjack

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/lumberjack/internal/config"
	"github.com/vovakirdan/lumberjack/internal/core"
)

func TestViewportMapping(t *testing.T) {
	vp := NewViewport(80, 25, 800, 600)
	require.Equal(t, 24, vp.FieldRows())

	col, row := vp.ToCell(0, 0)
	assert.Equal(t, 0, col)
	assert.Equal(t, 1, row, "row 0 is the HUD")

	col, row = vp.ToCell(799.9, 599.9)
	assert.Equal(t, 79, col)
	assert.Equal(t, 24, row)

	col, row = vp.ToCell(-50, 650)
	assert.Negative(t, col)
	assert.Greater(t, row, 24)

	x, y, ok := vp.ToLogical(10, 1)
	require.True(t, ok)
	assert.InDelta(t, 105, x, 1e-9)
	assert.InDelta(t, 12.5, y, 1e-9)

	_, _, ok = vp.ToLogical(10, 0)
	assert.False(t, ok, "HUD row is not part of the field")
	_, _, ok = vp.ToLogical(80, 5)
	assert.False(t, ok)
}

func TestViewportRoundTrip(t *testing.T) {
	vp := NewViewport(120, 40, 800, 600)
	for col := 0; col < vp.Cols; col += 7 {
		for row := vp.Top; row < vp.Rows; row += 3 {
			x, y, ok := vp.ToLogical(col, row)
			require.True(t, ok)
			c, r := vp.ToCell(x, y)
			assert.Equal(t, col, c)
			assert.Equal(t, row, r)
		}
	}
}

func TestViewportClampCell(t *testing.T) {
	vp := NewViewport(80, 24, 800, 600)
	tests := []struct {
		col, row         int
		wantCol, wantRow int
	}{
		{10, 10, 10, 10},
		{10, 0, 10, 1},
		{-5, 30, 0, 23},
		{100, 5, 79, 5},
	}
	for _, tt := range tests {
		c, r := vp.ClampCell(tt.col, tt.row)
		assert.Equal(t, tt.wantCol, c)
		assert.Equal(t, tt.wantRow, r)
	}
}

func TestViewportEmpty(t *testing.T) {
	vp := NewViewport(0, 0, 800, 600)
	assert.False(t, vp.Valid())
	_, _, ok := vp.ToLogical(0, 0)
	assert.False(t, ok)
}

func TestRenderSkipsEmptyScreen(t *testing.T) {
	g := activeGame(t)
	place(g, CategoryNormal, 100, 100)
	before := g.Snapshot()

	assert.NotPanics(t, func() {
		g.Render(core.NewScreen(0, 0))
		g.Render(core.NewScreen(80, 0))
	})
	after := g.Snapshot()
	assert.Equal(t, before.Hash(), after.Hash())
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t)
	s := core.NewScreen(30, 8)
	g.Render(s)
	assert.Contains(t, s.String(), "Window too small")
}

func TestRenderCountdownAndHUD(t *testing.T) {
	g := newTestGame(t)
	s := core.NewScreen(80, 24)
	g.Render(s)

	out := s.String()
	assert.Contains(t, s.Row(0), "SCORE: 0")
	assert.Contains(t, s.Row(0), "LIVES:")
	assert.Equal(t, 3, strings.Count(s.Row(0), "♥"))
	assert.Contains(t, out, "Get ready!")
	assert.Contains(t, out, "3")
}

func TestRenderObjectsAndTrail(t *testing.T) {
	g := activeGame(t)
	log := place(g, CategoryNormal, 400, 300)
	bomb := place(g, CategoryHazard, 100, 300)
	s := core.NewScreen(80, 25)

	g.Render(s)
	vp := g.Viewport(80, 25)
	col, row := vp.ToCell(log.X, log.Y)
	assert.Equal(t, '▮', s.Get(col, row))
	assert.Equal(t, core.ColorSienna, s.GetCell(col, row).Color)
	col, row = vp.ToCell(bomb.X, bomb.Y)
	assert.Equal(t, '☠', s.Get(col, row))

	g.HandleSwipeStart(300, 300)
	g.HandleSwipeMove(500, 300)
	require.True(t, log.Sliced)
	g.Render(s)

	col, row = vp.ToCell(log.X, log.Y)
	assert.NotEqual(t, '▮', s.Get(col, row), "sliced log splits in two")
	assert.Contains(t, s.Row(0), "SCORE: 10")
	assert.True(t, strings.ContainsRune(s.Row(row), '▓'), "trail is drawn")
}

func TestRenderGameOver(t *testing.T) {
	g := activeGame(t, func(c *config.LumberjackConfig) { c.Round.Lives = 1 })
	place(g, CategoryHazard, 100, 100)
	swipe(g, 50, 100, 150, 100)

	s := core.NewScreen(80, 24)
	g.Render(s)
	out := s.String()
	assert.Contains(t, out, "GAME OVER")
	assert.Contains(t, out, "Final Score: 0")
	assert.Contains(t, s.Row(0), "♡")
}

func TestRenderPaused(t *testing.T) {
	g := activeGame(t)
	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	g.Step(in)

	s := core.NewScreen(80, 24)
	g.Render(s)
	assert.Contains(t, s.String(), "PAUSED")
}

func TestOrientIndex(t *testing.T) {
	tests := []struct {
		rot  float64
		want int
	}{
		{0, 0},
		{math.Pi / 4, 1},
		{math.Pi / 2, 2},
		{3 * math.Pi / 4, 3},
		{math.Pi, 0},
		{-math.Pi / 4, 3},
		{2*math.Pi + 0.1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, orientIndex(tt.rot), "rotation %v", tt.rot)
	}
}

func TestDrawLine(t *testing.T) {
	s := core.NewScreen(10, 5)
	drawLine(s, 1, 1, 6, 1, '#', core.ColorWhite)
	assert.Equal(t, " ######   ", s.Row(1))

	s.Clear()
	drawLine(s, 0, 0, 4, 4, '#', core.ColorWhite)
	for i := 0; i < 5; i++ {
		assert.Equal(t, '#', s.Get(i, i))
	}
}
