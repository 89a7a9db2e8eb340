package lumberjack

import (
	"time"

	"github.com/vovakirdan/lumberjack/internal/core"
)

// FallingObject is a launched log or bomb.
type FallingObject struct {
	ID            int
	X, Y          float64
	VX, VY        float64
	Rotation      float64
	RotationSpeed float64
	Category      Category
	Sliced        bool
	SliceAngle    float64 // Valid once Sliced is set
}

// Pos returns the object's center.
func (o *FallingObject) Pos() core.Vec {
	return core.Vec{X: o.X, Y: o.Y}
}

// Particle is a short-lived burst fragment.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // 1.0 when spawned, removed at 0
	Color  core.Color
	Size   float64
}

// TrailPoint is one pointer sample.
type TrailPoint struct {
	X, Y float64
	At   time.Duration
}

// SwipeTrail holds the recent samples of the active swipe.
type SwipeTrail struct {
	points    []TrailPoint
	maxPoints int
	window    time.Duration
}

func newSwipeTrail(maxPoints int, window time.Duration) *SwipeTrail {
	return &SwipeTrail{
		points:    make([]TrailPoint, 0, maxPoints),
		maxPoints: maxPoints,
		window:    window,
	}
}

// Add appends a sample, dropping the oldest once the trail is full.
func (t *SwipeTrail) Add(p TrailPoint) {
	if len(t.points) == t.maxPoints {
		copy(t.points, t.points[1:])
		t.points = t.points[:len(t.points)-1]
	}
	t.points = append(t.points, p)
}

// Last returns the most recent sample.
func (t *SwipeTrail) Last() (TrailPoint, bool) {
	if len(t.points) == 0 {
		return TrailPoint{}, false
	}
	return t.points[len(t.points)-1], true
}

// Prune drops samples older than the trail window. The newest sample is
// always kept so the next move still has a segment start.
func (t *SwipeTrail) Prune(now time.Duration) {
	keepFrom := 0
	for keepFrom < len(t.points)-1 && now-t.points[keepFrom].At >= t.window {
		keepFrom++
	}
	if keepFrom > 0 {
		t.points = append(t.points[:0], t.points[keepFrom:]...)
	}
}

// Visible returns the samples inside the trail window, oldest first.
func (t *SwipeTrail) Visible(now time.Duration) []TrailPoint {
	out := make([]TrailPoint, 0, len(t.points))
	for _, p := range t.points {
		if now-p.At < t.window {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of stored samples.
func (t *SwipeTrail) Len() int {
	return len(t.points)
}
