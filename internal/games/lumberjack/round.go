package lumberjack

import (
	"time"

	"github.com/google/uuid"
)

// Phase is the round lifecycle state.
type Phase string

const (
	PhaseCountdown Phase = "countdown" // no interaction, counting down to start
	PhaseActive    Phase = "active"    // spawning, physics and input running
	PhaseOver      Phase = "over"      // terminal, state frozen and reported
)

// RoundState is the scoring state of one round.
type RoundState struct {
	Score    int
	Combo    int
	MaxCombo int
	Cleared  int
	Lives    int
	Over     bool
}

// RoundResult is reported once when a round ends.
type RoundResult struct {
	RoundID  uuid.UUID
	Player   string
	Score    int
	Cleared  int
	MaxCombo int
	Duration time.Duration // simulated time from the end of the countdown
	EndedAt  time.Time
}

// loseLife removes one life, never going below zero.
// Reports whether the round is out of lives.
func (r *RoundState) loseLife() bool {
	if r.Lives > 0 {
		r.Lives--
	}
	return r.Lives == 0
}

// registerHit applies a scoring hit worth base points and returns the points
// awarded. The combo bonus uses the combo count before this hit.
func (r *RoundState) registerHit(base, comboStep, comboBonus int) int {
	points := base + (r.Combo/comboStep)*comboBonus
	r.Score += points
	r.Combo++
	r.Cleared++
	if r.Combo > r.MaxCombo {
		r.MaxCombo = r.Combo
	}
	return points
}
