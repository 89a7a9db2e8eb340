package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lumberjack/internal/core"
	"github.com/vovakirdan/lumberjack/internal/games/lumberjack"
	"github.com/vovakirdan/lumberjack/internal/storage"
)

// saveTimeout bounds one persisted round, retries included.
const saveTimeout = 10 * time.Second

// Pointer receives swipes in play-area coordinates.
type Pointer interface {
	HandleSwipeStart(x, y float64)
	HandleSwipeMove(x, y float64)
	HandleSwipeEnd()
}

// Game is what the shell drives each frame.
type Game interface {
	Pointer
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
	OnRoundEnd(fn func(lumberjack.RoundResult))
	Viewport(cols, rows int) lumberjack.Viewport
}

// RoundSavedMsg reports the outcome of persisting a finished round.
type RoundSavedMsg struct {
	RoundID string
	Err     error
}

// endedRounds collects results reported by the game during an update.
// Shared by pointer so every copy of the model drains the same queue.
type endedRounds struct {
	results []lumberjack.RoundResult
}

// pendingSaves counts save commands whose RoundSavedMsg has not arrived.
// Quitting waits for it to reach zero so the store is not closed mid-write.
type pendingSaves struct {
	n int
}

func (p *pendingSaves) done() {
	if p.n > 0 {
		p.n--
	}
}

// GameModel is the Bubble Tea model for one game session.
type GameModel struct {
	game      Game
	screen    *core.Screen
	recorder  *storage.Recorder
	logger    *log.Logger
	config    core.RuntimeConfig
	keys      GameKeyMap
	input     core.InputFrame
	gameState core.GameState
	ended     *endedRounds
	saves     *pendingSaves
	loop      uint64
	status    string
	allowBack bool

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. recorder and logger may be nil.
func NewGameModel(game Game, recorder *storage.Recorder, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder: recorder,
		logger:   logger,
		config:   cfg,
		keys:     DefaultGameKeyMap(),
		input:    core.NewInputFrame(),
		ended:    &endedRounds{},
		saves:    &pendingSaves{},
		loop:     nextLoopID(),
	}
}

// WithBack enables returning to the menu with B after a round or while paused.
func (m GameModel) WithBack() GameModel {
	m.allowBack = true
	return m
}

// withSaves makes the model count its saves in p.
func (m GameModel) withSaves(p *pendingSaves) GameModel {
	m.saves = p
	return m
}

// Init starts the round and the tick loop.
func (m GameModel) Init() tea.Cmd {
	ended := m.ended
	m.game.OnRoundEnd(func(r lumberjack.RoundResult) {
		ended.results = append(ended.results, r)
	})
	m.game.Reset(m.config)
	m.logger.Debug("round started", "game", m.game.ID(), "player", m.config.Player, "seed", m.config.Seed)

	return tickCmd(m.loop, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.quitting {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		// The round keeps running; only the buffer changes size.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop || m.quitting {
			return m, nil
		}
		return m.handleTick()

	case RoundSavedMsg:
		m.saves.done()
		if msg.Err != nil {
			m.status = "Score could not be saved"
		} else {
			m.status = "Score saved"
		}
		if m.quitting {
			return m, m.quitCmd()
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, m.quitCmd()
	}

	switch action {
	case core.ActionBack:
		if m.allowBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.game.HandleSwipeEnd()
			m.backToMenu = true
		}
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.input.Set(action)
		}
	case core.ActionPause:
		m.input.Set(action)
	}

	return m, nil
}

// handleMouse turns drags into swipes. Hits resolve immediately, before the
// next frame moves anything.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	vp := m.game.Viewport(m.screen.Width(), m.screen.Height())
	applySwipe(m.game, mouseToSwipe(vp, msg))
	m.gameState = m.game.State()
	return m, m.drainEnded()
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.input.Has(core.ActionRestart) {
		m.status = ""
	}

	result := m.game.Step(m.input)
	m.gameState = result.State
	m.input.Clear()

	return m, tea.Batch(m.drainEnded(), tickCmd(m.loop, m.config.TickRate))
}

// drainEnded turns reported rounds into save commands.
func (m GameModel) drainEnded() tea.Cmd {
	if len(m.ended.results) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(m.ended.results))
	for _, r := range m.ended.results {
		m.logger.Info("round over", "round", r.RoundID, "player", r.Player, "score", r.Score,
			"cleared", r.Cleared, "max_combo", r.MaxCombo, "duration", r.Duration)
		if cmd := m.saveCmd(r); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m.ended.results = m.ended.results[:0]
	if len(cmds) == 0 {
		return nil
	}
	m.saves.n += len(cmds)
	return tea.Batch(cmds...)
}

// quitCmd quits once every issued save has reported back.
func (m GameModel) quitCmd() tea.Cmd {
	if m.saves.n > 0 {
		m.logger.Debug("waiting for round saves before quitting", "pending", m.saves.n)
		return nil
	}
	return tea.Quit
}

// saveCmd persists a round off the update loop.
func (m GameModel) saveCmd(r lumberjack.RoundResult) tea.Cmd {
	if m.recorder == nil {
		return nil
	}
	rec := roundRecord(r)
	recorder := m.recorder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		err := recorder.Record(ctx, rec)
		return RoundSavedMsg{RoundID: rec.RoundID.String(), Err: err}
	}
}

// roundRecord converts a game result to a storage row.
func roundRecord(r lumberjack.RoundResult) storage.RoundRecord {
	return storage.RoundRecord{
		RoundID:     r.RoundID,
		Player:      r.Player,
		DisplayName: r.Player,
		Score:       r.Score,
		Cleared:     r.Cleared,
		MaxCombo:    r.MaxCombo,
		Duration:    r.Duration,
		EndedAt:     r.EndedAt,
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".lumberjack", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.status != "" && m.gameState.GameOver && !m.screen.Empty() {
		m.screen.DrawTextCentered(m.screen.Height()-1, m.status, core.ColorGray)
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the current terminal until the user quits.
func Run(game Game, recorder *storage.Recorder, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, recorder, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // drags report motion, used for swipes
	)

	_, err := p.Run()
	return err
}
