package lumberjack

import (
	"math"
	"time"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Now       time.Duration
	Phase     Phase
	Paused    bool
	Countdown int
	Round     RoundState
	Objects   []ObjectSnapshot
	Particles int
	Pending   int // scheduled timers
}

// ObjectSnapshot is the gameplay-relevant part of a FallingObject.
type ObjectSnapshot struct {
	ID       int
	X, Y     float64
	Category Category
	Sliced   bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	objs := make([]ObjectSnapshot, len(g.objects))
	for i, o := range g.objects {
		objs[i] = ObjectSnapshot{
			ID:       o.ID,
			X:        o.X,
			Y:        o.Y,
			Category: o.Category,
			Sliced:   o.Sliced,
		}
	}

	pending := 0
	if g.sched != nil {
		pending = g.sched.Pending()
	}

	return Snapshot{
		Tick:      g.tick,
		Now:       g.Now(),
		Phase:     g.phase,
		Paused:    g.paused,
		Countdown: g.countdown,
		Round:     g.round,
		Objects:   objs,
		Particles: len(g.particles),
		Pending:   pending,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	var h uint64 = 17
	h = h*31 + snap.Tick
	h = h*31 + uint64(snap.Now)            //#nosec G115 -- hash computation
	h = h*31 + uint64(len(snap.Phase))     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Countdown)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Round.Score)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Round.Combo)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Round.MaxCombo) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Round.Cleared)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Round.Lives)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Particles)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Pending)        //#nosec G115 -- hash computation
	h = h*31 + uint64(len(snap.Objects))   //#nosec G115 -- hash computation
	for _, o := range snap.Objects {
		h = h*31 + uint64(o.ID) //#nosec G115 -- hash computation
		h = h*31 + math.Float64bits(o.X)
		h = h*31 + math.Float64bits(o.Y)
		h = h*31 + uint64(o.Category)
		if o.Sliced {
			h = h*31 + 1
		}
	}
	if snap.Paused {
		h = h*31 + 1
	}
	return h
}
