package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lumberjack/internal/core"
	"github.com/vovakirdan/lumberjack/internal/storage"
)

// screen identifies which sub-model a session is showing.
type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScores
)

// SessionDeps are the shared services a session uses. Store and Recorder may
// be nil, in which case rounds are not persisted.
type SessionDeps struct {
	Store    ScoreReader
	Recorder *storage.Recorder
	Logger   *log.Logger
	NewGame  func() Game
}

// SessionModel manages the full flow: menu, game, scoreboard and back.
// It is the top-level model for both local play and SSH sessions.
type SessionModel struct {
	deps     SessionDeps
	config   core.RuntimeConfig
	current  screen
	menu     MenuModel
	game     GameModel
	scores   ScoreboardModel
	saves    *pendingSaves
	quitting bool
}

// NewSessionModel creates a session starting at the menu.
func NewSessionModel(deps SessionDeps, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		deps:   deps,
		config: cfg,
		menu:   NewMenuModel(deps.Store, cfg.Player, cfg.ScreenW, cfg.ScreenH),
		saves:  &pendingSaves{},
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	// Saves finish after the player may have left the game screen.
	if saved, ok := msg.(RoundSavedMsg); ok && m.current != screenGame {
		m.saves.done()
		if saved.Err != nil && m.deps.Logger != nil {
			m.deps.Logger.Warn("round not saved", "round", saved.RoundID, "error", saved.Err)
		}
		if m.quitting {
			return m, m.quit()
		}
		return m, nil
	}
	if _, ok := msg.(RoundSavedMsg); !ok && m.quitting {
		return m, nil
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch m.menu.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, m.quit()
	case ChoicePlay:
		return m.startGame()
	case ChoiceScores:
		m.scores = NewScoreboardModel(m.deps.Store, m.config.ScreenW, m.config.ScreenH)
		m.current = screenScores
		return m, m.scores.Init()
	}
	return m, cmd
}

func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	cfg := m.config
	cfg.Seed = time.Now().UnixNano()

	m.game = NewGameModel(m.deps.NewGame(), m.deps.Recorder, cfg, m.deps.Logger).
		WithBack().
		withSaves(m.saves)
	m.current = screenGame
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)

	if m.game.IsQuitting() {
		m.quitting = true
		return m, m.quit()
	}
	if m.game.BackToMenu() {
		// Outstanding saves are already queued; their reply is dropped above.
		return m.backToMenu(cmd)
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, m.quit()
	}
	if m.scores.IsGoingBack() {
		return m.backToMenu(cmd)
	}
	return m, cmd
}

// quit ends the program once no round save is outstanding. Until then the
// session stays blank and the last RoundSavedMsg triggers the quit.
func (m SessionModel) quit() tea.Cmd {
	if m.saves.n > 0 {
		return nil
	}
	return tea.Quit
}

func (m SessionModel) backToMenu(pending tea.Cmd) (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = NewMenuModel(m.deps.Store, m.config.Player, m.config.ScreenW, m.config.ScreenH)
	return m, tea.Batch(pending, m.menu.Init())
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven session in the current terminal.
func RunSession(deps SessionDeps, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(deps, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
