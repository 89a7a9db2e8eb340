// Package lumberjack implements the log-slicing arcade game.
// Logs and bombs are launched from below the arena; the player swipes through
// them with the pointer. Everything here is deterministic for a given seed and
// input sequence: timers run on a simulated clock advanced by Step.
package lumberjack

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/lumberjack/internal/config"
	"github.com/vovakirdan/lumberjack/internal/core"
)

// fxSeedSalt derives the particle RNG seed from the round seed.
const fxSeedSalt = 0x5eed_f00d

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// Game implements the Lumberjack round loop.
type Game struct {
	runtime  core.RuntimeConfig
	cfg      config.LumberjackConfig
	fixedCfg *config.LumberjackConfig // set by NewWithConfig, bypasses file loading

	traits     traitTable
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	fx         *rand.Rand
	spawner    *Spawner
	sched      *core.Scheduler
	frame      time.Duration

	phase     Phase
	paused    bool
	countdown int
	round     RoundState
	roundID   uuid.UUID
	activeAt  time.Duration

	objects   []*FallingObject
	particles []*Particle

	swiping     bool
	lastPointer core.Vec
	trail       *SwipeTrail

	spawnTask core.TaskID
	comboTask core.TaskID
	finalized bool
	result    *RoundResult
	onEnd     func(RoundResult)
	clock     func() time.Time

	tick   uint64
	nextID int
}

// New creates a Lumberjack game that loads its tuning on Reset.
func New() *Game {
	return &Game{clock: time.Now}
}

// NewWithConfig creates a game with fixed tuning. The difficulty preset set
// via SetDifficultyPreset is not applied.
func NewWithConfig(cfg config.LumberjackConfig) *Game {
	return &Game{fixedCfg: &cfg, clock: time.Now}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "lumberjack"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Lumberjack"
}

// OnRoundEnd registers the callback invoked exactly once when a round ends.
// The registration survives restarts.
func (g *Game) OnRoundEnd(fn func(RoundResult)) {
	g.onEnd = fn
}

// Reset applies a new runtime config, reloads tuning, reseeds the RNG and
// starts a fresh round.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()

	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.frame = time.Second / time.Duration(tickRate)

	g.traits = newTraitTable(g.cfg)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.fx = rand.New(rand.NewSource(runtime.Seed ^ fxSeedSalt))
	g.spawner = NewSpawner(g.rng, g.cfg, g.difficulty)

	g.StartRound()
}

func (g *Game) loadConfig() config.LumberjackConfig {
	if g.fixedCfg != nil {
		return *g.fixedCfg
	}

	cfg, err := config.LoadLumberjack(configPath)
	if err != nil {
		cfg = config.DefaultLumberjackConfig()
	}
	config.ApplyLumberjackPreset(&cfg, difficultyPreset)
	return cfg
}

// StartRound discards the current round and begins the countdown of a new
// one. Any timers of the previous round are dropped with its scheduler.
func (g *Game) StartRound() {
	if g.spawner == nil {
		g.Reset(g.runtime)
		return
	}

	g.sched = core.NewScheduler()
	g.objects = nil
	g.particles = nil
	g.endSwipe()

	g.round = RoundState{Lives: g.cfg.Round.Lives}
	g.roundID = uuid.New()
	g.phase = PhaseCountdown
	g.paused = false
	g.finalized = false
	g.result = nil
	g.spawnTask = 0
	g.comboTask = 0
	g.activeAt = 0
	g.tick = 0
	g.nextID = 0

	g.countdown = g.cfg.Round.CountdownSteps
	if g.countdown <= 0 {
		g.activate()
		return
	}
	g.sched.After(g.countdownStep(), g.countdownTick)
}

func (g *Game) countdownStep() time.Duration {
	return time.Duration(g.cfg.Round.CountdownStepMS) * time.Millisecond
}

func (g *Game) countdownTick() {
	g.countdown--
	if g.countdown <= 0 {
		g.activate()
		return
	}
	g.sched.After(g.countdownStep(), g.countdownTick)
}

func (g *Game) activate() {
	g.countdown = 0
	g.phase = PhaseActive
	g.activeAt = g.sched.Now()
	g.scheduleSpawn()
}

// scheduleSpawn arms the next spawn tick using the current difficulty.
func (g *Game) scheduleSpawn() {
	base := time.Duration(g.cfg.Spawn.IntervalMS) * time.Millisecond
	interval := g.difficulty.SpawnInterval(base, g.round.Score, int(g.tick))
	g.spawnTask = g.sched.After(interval, g.spawnTick)
}

func (g *Game) spawnTick() {
	n := g.spawner.BurstSize()
	delay := time.Duration(g.cfg.Spawn.DoubleDelayMS) * time.Millisecond
	for i := 0; i < n; i++ {
		if i == 0 {
			g.spawnOne()
			continue
		}
		g.sched.After(time.Duration(i)*delay, g.spawnOne)
	}
	g.scheduleSpawn()
}

func (g *Game) spawnOne() {
	if g.phase != PhaseActive {
		return
	}
	g.objects = append(g.objects, g.spawner.Launch(g.nextID, g.round.Score, int(g.tick)))
	g.nextID++
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.phase == PhaseOver {
		g.StartRound()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.phase != PhaseOver {
		g.paused = !g.paused
		if g.paused {
			g.endSwipe()
		}
	}

	if g.paused || g.phase == PhaseOver {
		return core.StepResult{State: g.State()}
	}

	g.tick++

	// Timers first: countdown, spawns and combo expiry for this frame.
	g.sched.Advance(g.frame)

	if g.phase == PhaseActive {
		g.stepObjects()
	}
	g.stepParticles()

	if g.trail != nil {
		g.trail.Prune(g.sched.Now())
	}

	return core.StepResult{State: g.State()}
}

// HandleSwipeStart begins a swipe at play-area coordinates (x, y).
// Ignored unless the round is active and unpaused.
func (g *Game) HandleSwipeStart(x, y float64) {
	if !g.acceptsInput() {
		return
	}
	g.swiping = true
	g.lastPointer = core.Vec{X: x, Y: y}
	g.trail = newSwipeTrail(g.cfg.Trail.MaxPoints, time.Duration(g.cfg.Trail.WindowMS)*time.Millisecond)
	g.trail.Add(TrailPoint{X: x, Y: y, At: g.sched.Now()})
}

// HandleSwipeMove extends the active swipe to (x, y) and slices everything
// the new segment passes through.
func (g *Game) HandleSwipeMove(x, y float64) {
	if !g.swiping || !g.acceptsInput() {
		return
	}

	cur := core.Vec{X: x, Y: y}
	g.checkSlice(core.Segment{A: g.lastPointer, B: cur})

	// A hazard may have ended the round and closed the swipe.
	if !g.swiping {
		return
	}
	g.lastPointer = cur
	g.trail.Add(TrailPoint{X: x, Y: y, At: g.sched.Now()})
}

// HandleSwipeEnd finishes the active swipe.
func (g *Game) HandleSwipeEnd() {
	g.endSwipe()
}

func (g *Game) endSwipe() {
	g.swiping = false
	g.trail = nil
}

func (g *Game) acceptsInput() bool {
	return g.phase == PhaseActive && !g.paused
}

// finalize freezes the round and reports it. Safe to call more than once;
// only the first call has any effect.
func (g *Game) finalize() {
	if g.finalized {
		return
	}
	g.finalized = true

	g.round.Over = true
	g.phase = PhaseOver
	g.sched.CancelAll()
	g.spawnTask = 0
	g.comboTask = 0
	g.endSwipe()

	result := RoundResult{
		RoundID:  g.roundID,
		Player:   g.runtime.Player,
		Score:    g.round.Score,
		Cleared:  g.round.Cleared,
		MaxCombo: g.round.MaxCombo,
		Duration: g.sched.Now() - g.activeAt,
		EndedAt:  g.clock(),
	}
	g.result = &result

	if g.onEnd != nil {
		g.onEnd(result)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.round.Score,
		GameOver: g.phase == PhaseOver,
		Paused:   g.paused,
	}
}

// Round returns a copy of the scoring state.
func (g *Game) Round() RoundState {
	return g.round
}

// Phase returns the lifecycle phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Countdown returns the remaining countdown steps (0 once active).
func (g *Game) Countdown() int {
	return g.countdown
}

// Result returns the report of the finished round, or nil while it runs.
func (g *Game) Result() *RoundResult {
	return g.result
}

// RoundID returns the identifier of the current round.
func (g *Game) RoundID() uuid.UUID {
	return g.roundID
}

// Objects returns the live objects. The slice must not be modified.
func (g *Game) Objects() []*FallingObject {
	return g.objects
}

// Particles returns the live particles. The slice must not be modified.
func (g *Game) Particles() []*Particle {
	return g.particles
}

// Arena returns the logical play-area size.
func (g *Game) Arena() (width, height float64) {
	return g.cfg.Arena.Width, g.cfg.Arena.Height
}

// Now returns the simulated round clock.
func (g *Game) Now() time.Duration {
	if g.sched == nil {
		return 0
	}
	return g.sched.Now()
}
