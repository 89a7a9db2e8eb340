// Package config provides YAML-based game configuration loading and
// difficulty management for Lumberjack.
package config

import (
	"errors"
	"fmt"
)

// LumberjackConfig contains all tuning for a round.
// Distances are in play-area units, velocities in units per frame.
type LumberjackConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Bounds     BoundsConfig     `yaml:"bounds"`
	Hit        HitConfig        `yaml:"hit"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Round      RoundConfig      `yaml:"round"`
	Trail      TrailConfig      `yaml:"trail"`
	Particles  ParticleConfig   `yaml:"particles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ArenaConfig defines the logical play-area resolution.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines object motion.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`
	MinLaunchSpeed   float64 `yaml:"min_launch_speed"`
	MaxLaunchSpeed   float64 `yaml:"max_launch_speed"`
	MaxRotationSpeed float64 `yaml:"max_rotation_speed"` // Spin is uniform in [-max/2, max/2)
}

// SpawnConfig defines when, where, and what gets launched.
type SpawnConfig struct {
	IntervalMS      int     `yaml:"interval_ms"`
	DoubleChance    float64 `yaml:"double_chance"`
	DoubleDelayMS   int     `yaml:"double_delay_ms"`
	HazardThreshold float64 `yaml:"hazard_threshold"` // roll < this => hazard
	BonusThreshold  float64 `yaml:"bonus_threshold"`  // roll < this => bonus
	EdgeOffset      float64 `yaml:"edge_offset"`      // launch distance outside the arena
	TargetMin       float64 `yaml:"target_min"`       // fraction of width
	TargetMax       float64 `yaml:"target_max"`       // fraction of width
	Rise            float64 `yaml:"rise"`             // fraction of height used for the aim angle
}

// BoundsConfig defines the two-tier removal boundaries.
type BoundsConfig struct {
	MissMargin    float64 `yaml:"miss_margin"`
	DiscardMargin float64 `yaml:"discard_margin"`
}

// HitConfig defines swipe hit radii per category.
type HitConfig struct {
	Radius       float64 `yaml:"radius"`
	HazardRadius float64 `yaml:"hazard_radius"`
}

// ScoringConfig defines points and combo rules.
type ScoringConfig struct {
	NormalPoints   int `yaml:"normal_points"`
	BonusPoints    int `yaml:"bonus_points"`
	ComboStep      int `yaml:"combo_step"`  // combo hits per bonus increment
	ComboBonus     int `yaml:"combo_bonus"` // points per increment
	ComboTimeoutMS int `yaml:"combo_timeout_ms"`
}

// RoundConfig defines lives and the countdown.
type RoundConfig struct {
	Lives           int `yaml:"lives"`
	CountdownSteps  int `yaml:"countdown_steps"`
	CountdownStepMS int `yaml:"countdown_step_ms"`
}

// TrailConfig bounds the swipe trail.
type TrailConfig struct {
	WindowMS  int `yaml:"window_ms"`
	MaxPoints int `yaml:"max_points"`
}

// ParticleConfig defines slice bursts.
type ParticleConfig struct {
	Gravity     float64 `yaml:"gravity"`
	Decay       float64 `yaml:"decay"` // life lost per frame
	MinSpeed    float64 `yaml:"min_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	MinSize     float64 `yaml:"min_size"`
	MaxSize     float64 `yaml:"max_size"`
	Count       int     `yaml:"count"`
	HazardCount int     `yaml:"hazard_count"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier     float64 `yaml:"speed_multiplier"`      // Added to launch speed factor at max difficulty
	IntervalReductionMS int     `yaml:"interval_reduction_ms"` // Spawn interval reduction at max difficulty
	MinIntervalMS       int     `yaml:"min_interval_ms"`       // Floor for the spawn interval
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset. Empty input yields an
// empty preset, meaning "leave the loaded config alone".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the configuration can drive a round.
func (c LumberjackConfig) Validate() error {
	switch {
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("%w: arena must have positive size", ErrInvalidConfig)
	case c.Round.Lives <= 0:
		return fmt.Errorf("%w: round.lives must be positive", ErrInvalidConfig)
	case c.Round.CountdownSteps < 0 || c.Round.CountdownStepMS < 0:
		return fmt.Errorf("%w: countdown must not be negative", ErrInvalidConfig)
	case c.Spawn.IntervalMS <= 0:
		return fmt.Errorf("%w: spawn.interval_ms must be positive", ErrInvalidConfig)
	case c.Spawn.HazardThreshold < 0 || c.Spawn.BonusThreshold < c.Spawn.HazardThreshold || c.Spawn.BonusThreshold > 1:
		return fmt.Errorf("%w: spawn thresholds must satisfy 0 <= hazard <= bonus <= 1", ErrInvalidConfig)
	case c.Spawn.TargetMin > c.Spawn.TargetMax:
		return fmt.Errorf("%w: spawn.target_min exceeds target_max", ErrInvalidConfig)
	case c.Physics.MinLaunchSpeed <= 0 || c.Physics.MaxLaunchSpeed < c.Physics.MinLaunchSpeed:
		return fmt.Errorf("%w: launch speed range is empty", ErrInvalidConfig)
	case c.Hit.Radius <= 0 || c.Hit.HazardRadius <= 0:
		return fmt.Errorf("%w: hit radii must be positive", ErrInvalidConfig)
	case c.Bounds.DiscardMargin < c.Bounds.MissMargin:
		return fmt.Errorf("%w: bounds.discard_margin must be at least miss_margin", ErrInvalidConfig)
	case c.Scoring.ComboStep <= 0:
		return fmt.Errorf("%w: scoring.combo_step must be positive", ErrInvalidConfig)
	case c.Scoring.ComboTimeoutMS <= 0:
		return fmt.Errorf("%w: scoring.combo_timeout_ms must be positive", ErrInvalidConfig)
	case c.Trail.MaxPoints < 2:
		return fmt.Errorf("%w: trail.max_points must be at least 2", ErrInvalidConfig)
	case c.Particles.Decay <= 0:
		return fmt.Errorf("%w: particles.decay must be positive", ErrInvalidConfig)
	}
	return nil
}
