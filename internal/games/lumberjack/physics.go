package lumberjack

import (
	"github.com/vovakirdan/lumberjack/internal/config"
)

// removal says what the boundary policy wants done with an object.
type removal uint8

const (
	keep    removal = iota
	miss            // unsliced scoring object fell out: costs a life
	discard         // gone from view, no consequence
)

// integrate advances one object by one frame: gravity into velocity, then
// velocity into position.
func integrate(o *FallingObject, gravity float64) {
	o.VY += gravity
	o.X += o.VX
	o.Y += o.VY
	o.Rotation += o.RotationSpeed
}

// classify applies the two-tier boundary. Unsliced objects leave at the miss
// line, sliced halves keep falling until the wider discard margin.
func classify(o *FallingObject, t *traits, arena config.ArenaConfig, bounds config.BoundsConfig) removal {
	if !o.Sliced && o.Y > arena.Height+bounds.MissMargin {
		if t.Penalizes {
			return discard
		}
		return miss
	}
	if o.Y > arena.Height+bounds.DiscardMargin ||
		o.X < -bounds.DiscardMargin ||
		o.X > arena.Width+bounds.DiscardMargin {
		return discard
	}
	return keep
}

// stepObjects integrates every live object and applies the removal policy.
// Once the round ends mid-pass the remaining objects are left untouched.
func (g *Game) stepObjects() {
	kept := g.objects[:0]
	for i, o := range g.objects {
		if g.round.Over {
			kept = append(kept, g.objects[i:]...)
			break
		}

		integrate(o, g.cfg.Physics.Gravity)

		switch classify(o, g.traits.of(o.Category), g.cfg.Arena, g.cfg.Bounds) {
		case miss:
			g.handleMiss()
		case discard:
		default:
			kept = append(kept, o)
		}
	}
	clear(g.objects[len(kept):])
	g.objects = kept
}

// handleMiss charges a life for a scoring object that got away. The combo
// survives a miss; only hazards and the idle timer clear it.
func (g *Game) handleMiss() {
	if g.round.loseLife() {
		g.finalize()
	}
}

// stepParticles moves particles and fades them out.
func (g *Game) stepParticles() {
	p := g.cfg.Particles
	kept := g.particles[:0]
	for _, pt := range g.particles {
		pt.VY += p.Gravity
		pt.X += pt.VX
		pt.Y += pt.VY
		pt.Life -= p.Decay
		if pt.Life > 0 {
			kept = append(kept, pt)
		}
	}
	clear(g.particles[len(kept):])
	g.particles = kept
}
