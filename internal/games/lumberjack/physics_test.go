package lumberjack

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/lumberjack/internal/config"
)

func TestIntegrate(t *testing.T) {
	o := &FallingObject{X: 10, Y: 20, VX: 2, VY: -5, Rotation: 1, RotationSpeed: 0.1}
	integrate(o, 0.35)

	assert.InDelta(t, -4.65, o.VY, 1e-9)
	assert.InDelta(t, 12, o.X, 1e-9)
	assert.InDelta(t, 15.35, o.Y, 1e-9)
	assert.InDelta(t, 1.1, o.Rotation, 1e-9)
	assert.InDelta(t, 2, o.VX, 1e-9, "no horizontal drag")
}

func TestClassify(t *testing.T) {
	cfg := config.DefaultLumberjackConfig()
	table := newTraitTable(cfg)

	tests := []struct {
		name string
		obj  FallingObject
		want removal
	}{
		{"on screen", FallingObject{X: 400, Y: 300}, keep},
		{"above screen", FallingObject{X: 400, Y: -150}, keep},
		{"just above miss line", FallingObject{X: 400, Y: 700}, keep},
		{"log past miss line", FallingObject{X: 400, Y: 701}, miss},
		{"golden past miss line", FallingObject{X: 400, Y: 701, Category: CategoryBonus}, miss},
		{"bomb past miss line", FallingObject{X: 400, Y: 701, Category: CategoryHazard}, discard},
		{"sliced past miss line", FallingObject{X: 400, Y: 750, Sliced: true}, keep},
		{"sliced past discard line", FallingObject{X: 400, Y: 801, Sliced: true}, discard},
		{"far left", FallingObject{X: -201, Y: 300}, discard},
		{"far right", FallingObject{X: 1001, Y: 300}, discard},
		{"launch point left", FallingObject{X: -50, Y: 650}, keep},
		{"launch point right", FallingObject{X: 850, Y: 650}, keep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := tt.obj
			got := classify(&o, table.of(o.Category), cfg.Arena, cfg.Bounds)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParticlesFadeOut(t *testing.T) {
	g := activeGame(t)
	g.burst(400, 300, g.traits.of(CategoryNormal))
	require.Len(t, g.Particles(), 15)

	for _, p := range g.Particles() {
		assert.Equal(t, 1.0, p.Life)
		speed := math.Hypot(p.VX, p.VY)
		assert.GreaterOrEqual(t, speed, 2.0-1e-9)
		assert.LessOrEqual(t, speed, 10.0+1e-9)
		assert.Contains(t, g.traits.of(CategoryNormal).Palette, p.Color)
	}

	// Life decays 0.02 per frame, so particles last about 50 frames.
	for i := 0; i < 45; i++ {
		g.stepParticles()
	}
	assert.Len(t, g.Particles(), 15)
	for i := 0; i < 10; i++ {
		g.stepParticles()
	}
	assert.Empty(t, g.Particles())
}

func TestParticlesDoNotShiftSpawns(t *testing.T) {
	launch := func(withBurst bool) *FallingObject {
		g := activeGame(t)
		if withBurst {
			g.burst(0, 0, g.traits.of(CategoryHazard))
		}
		return g.spawner.Launch(0, 0, 0)
	}
	assert.Equal(t, launch(false), launch(true))
}

func TestSpawnerLaunch(t *testing.T) {
	cfg := config.DefaultLumberjackConfig()
	s := NewSpawner(rand.New(rand.NewSource(7)), cfg, config.NewDifficultyManager(cfg.Difficulty))

	seen := map[Category]int{}
	for i := 0; i < 2000; i++ {
		o := s.Launch(i, 0, 0)
		require.Equal(t, i, o.ID)
		require.False(t, o.Sliced)
		require.Equal(t, 650.0, o.Y)
		require.Less(t, o.VY, 0.0, "launched upward")

		switch o.X {
		case -50:
			require.Greater(t, o.VX, 0.0)
		case 850:
			require.Less(t, o.VX, 0.0)
		default:
			t.Fatalf("unexpected launch x %v", o.X)
		}

		speed := math.Hypot(o.VX, o.VY)
		require.GreaterOrEqual(t, speed, 12.0-1e-9)
		require.LessOrEqual(t, speed, 18.0+1e-9)
		require.GreaterOrEqual(t, o.Rotation, 0.0)
		require.Less(t, o.Rotation, 2*math.Pi)
		require.LessOrEqual(t, math.Abs(o.RotationSpeed), 0.1)

		seen[o.Category]++
	}

	// 8% bombs, 7% golden, 85% plain.
	assert.InDelta(t, 160, seen[CategoryHazard], 60)
	assert.InDelta(t, 140, seen[CategoryBonus], 60)
	assert.InDelta(t, 1700, seen[CategoryNormal], 80)
}

func TestSpawnerAimsIntoTargetBand(t *testing.T) {
	cfg := config.DefaultLumberjackConfig()
	s := NewSpawner(rand.New(rand.NewSource(3)), cfg, nil)

	for i := 0; i < 200; i++ {
		o := s.Launch(i, 0, 0)
		// Where the launch direction crosses the rise height.
		dy := -cfg.Arena.Height * cfg.Spawn.Rise
		x := o.X + o.VX/o.VY*dy
		assert.GreaterOrEqual(t, x, 160.0-1e-6)
		assert.LessOrEqual(t, x, 640.0+1e-6)
	}
}

func TestPickCategory(t *testing.T) {
	cfg := config.DefaultLumberjackConfig()
	s := NewSpawner(rand.New(rand.NewSource(1)), cfg, nil)

	tests := []struct {
		roll float64
		want Category
	}{
		{0, CategoryHazard},
		{0.079, CategoryHazard},
		{0.08, CategoryBonus},
		{0.149, CategoryBonus},
		{0.15, CategoryNormal},
		{0.99, CategoryNormal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.pickCategory(tt.roll), "roll %v", tt.roll)
	}
}

func TestSpawnerDifficultySpeedsLaunch(t *testing.T) {
	cfg := config.DefaultLumberjackConfig()
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.Progression.Type = "score"
	dm := config.NewDifficultyManager(cfg.Difficulty)

	base := NewSpawner(rand.New(rand.NewSource(5)), cfg, dm).Launch(0, 0, 0)
	fast := NewSpawner(rand.New(rand.NewSource(5)), cfg, dm).Launch(0, 2000, 0)

	ratio := math.Hypot(fast.VX, fast.VY) / math.Hypot(base.VX, base.VY)
	assert.InDelta(t, 1.5, ratio, 1e-9)
}

func TestRegisterHit(t *testing.T) {
	tests := []struct {
		combo int
		want  int
	}{
		{0, 10},
		{2, 10},
		{3, 15},
		{5, 15},
		{6, 20},
		{10, 25},
	}
	for _, tt := range tests {
		r := RoundState{Combo: tt.combo, MaxCombo: tt.combo}
		got := r.registerHit(10, 3, 5)
		assert.Equal(t, tt.want, got, "combo %d", tt.combo)
		assert.Equal(t, tt.want, r.Score)
		assert.Equal(t, tt.combo+1, r.Combo)
		assert.Equal(t, tt.combo+1, r.MaxCombo)
		assert.Equal(t, 1, r.Cleared)
	}
}

func TestLoseLifeFloorsAtZero(t *testing.T) {
	r := RoundState{Lives: 2}
	assert.False(t, r.loseLife())
	assert.True(t, r.loseLife())
	assert.True(t, r.loseLife())
	assert.Equal(t, 0, r.Lives)
}

func TestSwipeTrail(t *testing.T) {
	tr := newSwipeTrail(3, 150*time.Millisecond)
	for i := 0; i < 5; i++ {
		tr.Add(TrailPoint{X: float64(i), At: time.Duration(i) * 50 * time.Millisecond})
	}
	require.Equal(t, 3, tr.Len())
	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, 4.0, last.X)

	// Samples at 100, 150, 200ms; at 300ms only the 200ms one is inside the window.
	vis := tr.Visible(300 * time.Millisecond)
	require.Len(t, vis, 1)
	assert.Equal(t, 4.0, vis[0].X)

	tr.Prune(time.Second)
	assert.Equal(t, 1, tr.Len(), "newest sample survives pruning")
	assert.Empty(t, tr.Visible(time.Second))

	empty := newSwipeTrail(3, time.Second)
	_, ok = empty.Last()
	assert.False(t, ok)
}
