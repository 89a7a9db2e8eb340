package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/lumberjack/internal/games/lumberjack"
	"github.com/vovakirdan/lumberjack/internal/storage"
)

// fakeReader serves canned scoreboard data.
type fakeReader struct {
	best    int
	board   []storage.LeaderboardEntry
	recent  []storage.ScoreEntry
	err     error
	players []string
}

func (r *fakeReader) HighScore(context.Context) (int, error) { return r.best, r.err }

func (r *fakeReader) Leaderboard(context.Context, int) ([]storage.LeaderboardEntry, error) {
	return r.board, r.err
}

func (r *fakeReader) RecentRounds(_ context.Context, player string, _ int) ([]storage.ScoreEntry, error) {
	r.players = append(r.players, player)
	return r.recent, r.err
}

func testReader() *fakeReader {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &fakeReader{
		best: 340,
		board: []storage.LeaderboardEntry{
			{Player: "dave", DisplayName: "dave", HighScore: 340, TotalCleared: 51, GamesPlayed: 4, UpdatedAt: at},
			{Player: "erin", DisplayName: "Erin", HighScore: 120, TotalCleared: 12, GamesPlayed: 1, UpdatedAt: at},
		},
		recent: []storage.ScoreEntry{
			{ID: 2, RoundID: uuid.New(), Player: "erin", Score: 120, Cleared: 12, MaxCombo: 5, Duration: 61 * time.Second, CreatedAt: at},
		},
	}
}

func pump(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if msg == nil {
		return m
	}
	next, _ := m.Update(msg)
	return next
}

func TestMenuShowsBestScore(t *testing.T) {
	m := NewMenuModel(testReader(), "alice", 80, 30)
	next := pump(t, m, m.Init())

	view := next.View()
	assert.Contains(t, view, "Play")
	assert.Contains(t, view, "Leaderboard")
	assert.Contains(t, view, "Player: alice")
	assert.Contains(t, view, "Best: 340")
}

func TestMenuHidesBestOnError(t *testing.T) {
	m := NewMenuModel(&fakeReader{best: 99, err: errors.New("locked")}, "", 80, 30)
	next := pump(t, m, m.Init())
	assert.NotContains(t, next.View(), "Best:")
}

func TestMenuNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want MenuChoice
	}{
		{"enter plays", []tea.KeyMsg{{Type: tea.KeyEnter}}, ChoicePlay},
		{"down enter scores", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyEnter}}, ChoiceScores},
		{"tab scores", []tea.KeyMsg{{Type: tea.KeyTab}}, ChoiceScores},
		{"cursor stops at end", []tea.KeyMsg{runeKey("j"), runeKey("j"), runeKey("j"), {Type: tea.KeyEnter}}, ChoiceQuit},
		{"cursor stops at top", []tea.KeyMsg{runeKey("k"), {Type: tea.KeyEnter}}, ChoicePlay},
		{"q quits", []tea.KeyMsg{runeKey("q")}, ChoiceQuit},
		{"no selection", []tea.KeyMsg{{Type: tea.KeyDown}}, ChoiceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = NewMenuModel(nil, "", 80, 30)
			for _, k := range tt.keys {
				m, _ = m.Update(k)
			}
			assert.Equal(t, tt.want, m.(MenuModel).Choice())
		})
	}
}

func TestScoreboardTabs(t *testing.T) {
	r := testReader()
	m := NewScoreboardModel(r, 100, 30)
	next := pump(t, m, m.Init())

	view := next.View()
	assert.Contains(t, view, "#1")
	assert.Contains(t, view, "dave")
	assert.Contains(t, view, "Erin")

	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyTab})
	next = pump(t, next, cmd)
	view = next.View()
	assert.Contains(t, view, "erin")
	assert.Contains(t, view, "5x")
	assert.Contains(t, view, "61s")
	assert.Equal(t, []string{""}, r.players)

	next, _ = next.Update(runeKey("b"))
	assert.True(t, next.(ScoreboardModel).IsGoingBack())
}

func TestScoreboardDropsStaleLoad(t *testing.T) {
	m := NewScoreboardModel(testReader(), 100, 30)
	rows := leaderboardRows(testReader().board)

	next, _ := m.Update(scoresLoadedMsg{tab: tabRecent, rows: rows})
	assert.Empty(t, next.(ScoreboardModel).rows)

	next, _ = m.Update(scoresLoadedMsg{tab: tabLeaderboard, rows: rows})
	assert.Len(t, next.(ScoreboardModel).rows, 2)
}

func TestScoreboardPlaceholders(t *testing.T) {
	assert.Contains(t, NewScoreboardModel(nil, 80, 24).View(), "unavailable")

	m := NewScoreboardModel(&fakeReader{}, 80, 24)
	assert.Contains(t, pump(t, m, m.Init()).View(), "No rounds recorded yet")

	m = NewScoreboardModel(&fakeReader{err: errors.New("boom")}, 80, 24)
	assert.Contains(t, pump(t, m, m.Init()).View(), "Could not load scores")
}

func TestSessionFlow(t *testing.T) {
	var games []*fakeGame
	deps := SessionDeps{
		Store: testReader(),
		NewGame: func() Game {
			g := &fakeGame{}
			games = append(games, g)
			return g
		},
	}

	var m tea.Model = NewSessionModel(deps, testConfig)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, games, 1)
	assert.Equal(t, screenGame, m.(SessionModel).current)
	assert.Equal(t, 1, games[0].resets)
	assert.Contains(t, m.View(), "fake")

	// Pause, then back to the menu.
	games[0].state.Paused = true
	m, _ = m.Update(TickMsg{Loop: m.(SessionModel).game.loop})
	m, _ = m.Update(runeKey("b"))
	assert.Equal(t, screenMenu, m.(SessionModel).current)

	// Late save replies are swallowed outside the game.
	m, cmd := m.Update(RoundSavedMsg{RoundID: "x"})
	assert.Nil(t, cmd)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, screenScores, m.(SessionModel).current)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, m.(SessionModel).current)

	m, cmd = m.Update(runeKey("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestSessionQuitWaitsForSave(t *testing.T) {
	var game *fakeGame
	w := &fakeWriter{}
	deps := SessionDeps{
		Store:    testReader(),
		Recorder: storage.NewRecorder(w, nil).WithBackoff(time.Millisecond),
		NewGame: func() Game {
			game = &fakeGame{}
			return game
		},
	}

	var m tea.Model = NewSessionModel(deps, testConfig)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, game)

	game.finish(lumberjack.RoundResult{RoundID: uuid.New(), Player: "alice", Score: 50})
	m, saveCmd := m.Update(TickMsg{Loop: m.(SessionModel).game.loop})
	require.NotNil(t, saveCmd)

	// Leave for the menu and quit before the write lands.
	m, _ = m.Update(runeKey("b"))
	require.Equal(t, screenMenu, m.(SessionModel).current)
	m, cmd := m.Update(runeKey("q"))
	assert.Nil(t, cmd)
	assert.Empty(t, m.View())

	m, cmd = m.Update(runeKey("q"))
	assert.Nil(t, cmd, "keys are ignored while waiting to quit")

	saved := collect[RoundSavedMsg](saveCmd)
	require.Len(t, saved, 1)
	require.Len(t, w.recs, 1)

	_, cmd = m.Update(saved[0])
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
