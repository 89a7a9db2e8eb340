package lumberjack

import (
	"github.com/vovakirdan/lumberjack/internal/config"
	"github.com/vovakirdan/lumberjack/internal/core"
)

// Category is the kind of a falling object.
type Category uint8

const (
	CategoryNormal Category = iota // plain log
	CategoryBonus                  // golden log
	CategoryHazard                 // bomb

	categoryCount
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case CategoryNormal:
		return "log"
	case CategoryBonus:
		return "golden"
	case CategoryHazard:
		return "bomb"
	default:
		return "unknown"
	}
}

// traits holds everything that differs between categories. Hit testing,
// scoring and rendering all read from this table instead of branching on the
// category.
type traits struct {
	HitRadius     float64
	Points        int
	Penalizes     bool // costs a life when sliced; exempt from the miss penalty
	ParticleCount int
	Palette       []core.Color
	Glyph         rune
	HalfGlyph     rune
	Color         core.Color
	Span          int // cells drawn each side of the center along the rotation
}

type traitTable [categoryCount]traits

// newTraitTable builds the per-category table from config.
// Hazards get a smaller hit radius than logs so they are harder to clip by accident.
func newTraitTable(cfg config.LumberjackConfig) traitTable {
	return traitTable{
		CategoryNormal: {
			HitRadius:     cfg.Hit.Radius,
			Points:        cfg.Scoring.NormalPoints,
			ParticleCount: cfg.Particles.Count,
			Palette:       []core.Color{core.ColorBrown, core.ColorSienna, core.ColorPeru, core.ColorChocolate, core.ColorBurlywood},
			Glyph:         '▮',
			HalfGlyph:     '▪',
			Color:         core.ColorSienna,
			Span:          1,
		},
		CategoryBonus: {
			HitRadius:     cfg.Hit.Radius,
			Points:        cfg.Scoring.BonusPoints,
			ParticleCount: cfg.Particles.Count,
			Palette:       []core.Color{core.ColorGold, core.ColorLightGold, core.ColorGoldenrod, core.ColorKhaki},
			Glyph:         '▮',
			HalfGlyph:     '▪',
			Color:         core.ColorGold,
			Span:          1,
		},
		CategoryHazard: {
			HitRadius:     cfg.Hit.HazardRadius,
			Penalizes:     true,
			ParticleCount: cfg.Particles.HazardCount,
			Palette:       []core.Color{core.ColorRed, core.ColorBrightRed, core.ColorAmber, core.ColorOrange},
			Glyph:         '☠',
			HalfGlyph:     '✶',
			Color:         core.ColorBrightRed,
		},
	}
}

func (t *traitTable) of(c Category) *traits {
	return &t[c]
}
