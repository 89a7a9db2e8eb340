package lumberjack

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/lumberjack/internal/config"
)

// Spawner launches objects from below the arena on arcs that cross the
// visible area.
type Spawner struct {
	rng        *rand.Rand
	arena      config.ArenaConfig
	spawn      config.SpawnConfig
	physics    config.PhysicsConfig
	difficulty *config.DifficultyManager
}

// NewSpawner creates a spawner that draws from rng.
func NewSpawner(rng *rand.Rand, cfg config.LumberjackConfig, difficulty *config.DifficultyManager) *Spawner {
	return &Spawner{
		rng:        rng,
		arena:      cfg.Arena,
		spawn:      cfg.Spawn,
		physics:    cfg.Physics,
		difficulty: difficulty,
	}
}

// BurstSize returns how many objects the next spawn tick launches.
func (s *Spawner) BurstSize() int {
	if s.rng.Float64() < s.spawn.DoubleChance {
		return 2
	}
	return 1
}

// Launch creates one object at a random bottom corner aimed at a random
// point in the upper arena. score and ticks feed the difficulty curve.
func (s *Spawner) Launch(id int, score int, ticks int) *FallingObject {
	w, h := s.arena.Width, s.arena.Height

	x := -s.spawn.EdgeOffset
	if s.rng.Float64() >= 0.5 {
		x = w + s.spawn.EdgeOffset
	}
	y := h + s.spawn.EdgeOffset

	targetX := w * (s.spawn.TargetMin + s.rng.Float64()*(s.spawn.TargetMax-s.spawn.TargetMin))
	angle := math.Atan2(-h*s.spawn.Rise, targetX-x)

	speed := s.physics.MinLaunchSpeed + s.rng.Float64()*(s.physics.MaxLaunchSpeed-s.physics.MinLaunchSpeed)
	if s.difficulty != nil {
		speed = s.difficulty.LaunchSpeed(speed, score, ticks)
	}

	return &FallingObject{
		ID:            id,
		X:             x,
		Y:             y,
		VX:            math.Cos(angle) * speed,
		VY:            math.Sin(angle) * speed,
		Rotation:      s.rng.Float64() * math.Pi * 2,
		RotationSpeed: (s.rng.Float64() - 0.5) * s.physics.MaxRotationSpeed,
		Category:      s.pickCategory(s.rng.Float64()),
	}
}

// pickCategory maps a uniform roll onto the cumulative category thresholds.
func (s *Spawner) pickCategory(roll float64) Category {
	switch {
	case roll < s.spawn.HazardThreshold:
		return CategoryHazard
	case roll < s.spawn.BonusThreshold:
		return CategoryBonus
	default:
		return CategoryNormal
	}
}
