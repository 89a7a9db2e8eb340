package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lumberjack/internal/storage"
)

// queryTimeout bounds a single read against the score store.
const queryTimeout = 3 * time.Second

// ScoreReader is the read side of the score store.
type ScoreReader interface {
	HighScore(ctx context.Context) (int, error)
	Leaderboard(ctx context.Context, limit int) ([]storage.LeaderboardEntry, error)
	RecentRounds(ctx context.Context, player string, limit int) ([]storage.ScoreEntry, error)
}

// MenuChoice is what the player picked on the title screen.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

type menuItem struct {
	label  string
	choice MenuChoice
}

var menuItems = []menuItem{
	{"Play", ChoicePlay},
	{"Leaderboard", ChoiceScores},
	{"Quit", ChoiceQuit},
}

// bestScoreMsg carries the all-time best loaded from the store.
type bestScoreMsg struct {
	score int
	err   error
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("178"))
	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))
)

const logo = `
 _               _               _            _
| |_   _ _ __ _ | |__   ___ _ __(_) __ _  ___| | __
| | | | | '_ ' \| '_ \ / _ \ '__| |/ _' |/ __| |/ /
| | |_| | | | | | |_) |  __/ |  | | (_| | (__|   <
|_|\__,_|_| |_| |_.__/ \___|_| _/ |\__,_|\___|_|\_\
                              |__/`

// MenuModel is the title screen.
type MenuModel struct {
	store    ScoreReader
	player   string
	keys     MenuKeyMap
	help     help.Model
	cursor   int
	width    int
	height   int
	best     int
	hasBest  bool
	choice   MenuChoice
	quitting bool
}

// NewMenuModel creates a menu. store may be nil.
func NewMenuModel(store ScoreReader, player string, width, height int) MenuModel {
	return MenuModel{
		store:  store,
		player: player,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
}

// Init loads the best score.
func (m MenuModel) Init() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()
		score, err := store.HighScore(ctx)
		return bestScoreMsg{score: score, err: err}
	}
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case bestScoreMsg:
		if msg.err == nil {
			m.best = msg.score
			m.hasBest = msg.score > 0
		}
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.choice = ChoiceQuit
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Scores):
		m.choice = ChoiceScores

	case key.Matches(msg, m.keys.Select):
		m.choice = menuItems[m.cursor].choice
		if m.choice == ChoiceQuit {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(logo))
	b.WriteString("\n\n")
	b.WriteString(subtleStyle.Render("Slice the falling logs. Never touch a bomb."))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + item.label))
		} else {
			b.WriteString("  " + item.label)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.player != "" {
		b.WriteString(subtleStyle.Render("Player: " + m.player))
		b.WriteString("\n")
	}
	if m.hasBest {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("Best: %d", m.best)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

// Choice returns the pending selection, ChoiceNone until one is made.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}
