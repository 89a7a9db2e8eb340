package config

import (
	"math"
	"time"
)

// DifficultyManager calculates dynamic round parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
// Without progression the level stays at the configured initial level.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.cfg.Enabled || d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// LaunchSpeed scales a base launch speed by the current difficulty level.
func (d *DifficultyManager) LaunchSpeed(base float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	return base * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// SpawnInterval shortens the base spawn interval as difficulty rises,
// never going below the configured floor.
func (d *DifficultyManager) SpawnInterval(base time.Duration, score int, ticks int) time.Duration {
	level := d.Level(score, ticks)
	if level == 0 {
		return base
	}
	reduction := time.Duration(level*float64(d.cfg.Scaling.IntervalReductionMS)) * time.Millisecond
	result := base - reduction

	floor := time.Duration(d.cfg.Scaling.MinIntervalMS) * time.Millisecond
	if floor <= 0 {
		floor = 100 * time.Millisecond
	}
	if result < floor {
		result = floor
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
