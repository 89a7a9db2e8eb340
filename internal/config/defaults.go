package config

import (
	_ "embed"
)

//go:embed defaults/lumberjack.yaml
var defaultLumberjackYAML []byte

// DefaultLumberjackConfig returns the default Lumberjack configuration.
// It mirrors defaults/lumberjack.yaml and is used when the embedded file
// cannot be parsed.
func DefaultLumberjackConfig() LumberjackConfig {
	return LumberjackConfig{
		Arena: ArenaConfig{
			Width:  800,
			Height: 600,
		},
		Physics: PhysicsConfig{
			Gravity:          0.35,
			MinLaunchSpeed:   12,
			MaxLaunchSpeed:   18,
			MaxRotationSpeed: 0.2,
		},
		Spawn: SpawnConfig{
			IntervalMS:      1200,
			DoubleChance:    0.3,
			DoubleDelayMS:   200,
			HazardThreshold: 0.08,
			BonusThreshold:  0.15,
			EdgeOffset:      50,
			TargetMin:       0.2,
			TargetMax:       0.8,
			Rise:            0.7,
		},
		Bounds: BoundsConfig{
			MissMargin:    100,
			DiscardMargin: 200,
		},
		Hit: HitConfig{
			Radius:       45,
			HazardRadius: 35,
		},
		Scoring: ScoringConfig{
			NormalPoints:   10,
			BonusPoints:    50,
			ComboStep:      3,
			ComboBonus:     5,
			ComboTimeoutMS: 1500,
		},
		Round: RoundConfig{
			Lives:           3,
			CountdownSteps:  3,
			CountdownStepMS: 1000,
		},
		Trail: TrailConfig{
			WindowMS:  150,
			MaxPoints: 20,
		},
		Particles: ParticleConfig{
			Gravity:     0.2,
			Decay:       0.02,
			MinSpeed:    2,
			MaxSpeed:    10,
			MinSize:     3,
			MaxSize:     11,
			Count:       15,
			HazardCount: 30,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:     0.5,
				IntervalReductionMS: 600,
				MinIntervalMS:       500,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultLumberjackYAML
}
