package lumberjack

import (
	"math"
	"time"

	"github.com/vovakirdan/lumberjack/internal/core"
)

// hits reports whether seg passes strictly inside radius of the object center.
// Zero-length segments never hit.
func hits(seg core.Segment, o *FallingObject, radius float64) bool {
	if seg.Len() == 0 {
		return false
	}
	return seg.DistanceTo(o.Pos()) < radius
}

// checkSlice tests one swipe segment against every unsliced object and
// applies the outcome of each hit. Returns the number of objects sliced.
func (g *Game) checkSlice(seg core.Segment) int {
	if seg.Len() == 0 {
		return 0
	}

	sliced := 0
	for _, o := range g.objects {
		if g.round.Over {
			break
		}
		if o.Sliced {
			continue
		}

		t := g.traits.of(o.Category)
		if !hits(seg, o, t.HitRadius) {
			continue
		}

		o.Sliced = true
		o.SliceAngle = seg.Angle()
		sliced++
		g.burst(o.X, o.Y, t)

		if t.Penalizes {
			g.hitHazard()
		} else {
			g.hitScoring(t)
		}
	}
	return sliced
}

// hitHazard costs a life and breaks the combo.
func (g *Game) hitHazard() {
	g.resetCombo()
	if g.round.loseLife() {
		g.finalize()
	}
}

// hitScoring awards points and re-arms the idle combo timer.
func (g *Game) hitScoring(t *traits) {
	g.round.registerHit(t.Points, g.cfg.Scoring.ComboStep, g.cfg.Scoring.ComboBonus)

	g.sched.Cancel(g.comboTask)
	timeout := time.Duration(g.cfg.Scoring.ComboTimeoutMS) * time.Millisecond
	g.comboTask = g.sched.After(timeout, func() {
		g.comboTask = 0
		g.round.Combo = 0
	})
}

func (g *Game) resetCombo() {
	g.round.Combo = 0
	g.sched.Cancel(g.comboTask)
	g.comboTask = 0
}

// burst sprays particles in the category palette from (x, y).
// Particles draw from their own RNG so effects never shift the spawn sequence.
func (g *Game) burst(x, y float64, t *traits) {
	p := g.cfg.Particles
	for i := 0; i < t.ParticleCount; i++ {
		angle := g.fx.Float64() * math.Pi * 2
		speed := p.MinSpeed + g.fx.Float64()*(p.MaxSpeed-p.MinSpeed)
		g.particles = append(g.particles, &Particle{
			X:     x,
			Y:     y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Life:  1,
			Color: t.Palette[g.fx.Intn(len(t.Palette))],
			Size:  p.MinSize + g.fx.Float64()*(p.MaxSize-p.MinSize),
		})
	}
}
