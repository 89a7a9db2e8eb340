package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lumberjack/internal/storage"
)

// maxRows caps how many rows each tab loads.
const maxRows = 100

// scoreTab selects which list the scoreboard shows.
type scoreTab int

const (
	tabLeaderboard scoreTab = iota
	tabRecent
	tabCount
)

func (t scoreTab) title() string {
	if t == tabRecent {
		return "Recent Rounds"
	}
	return "Leaderboard"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Refresh, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Refresh, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev tab"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoresLoadedMsg carries rows for one tab.
type scoresLoadedMsg struct {
	tab  scoreTab
	rows []table.Row
	err  error
}

// ScoreboardModel shows the leaderboard and recent rounds.
type ScoreboardModel struct {
	store     ScoreReader
	tab       scoreTab
	rows      []table.Row
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model. store may be nil.
func NewScoreboardModel(store ScoreReader, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

// columnsFor returns the table layout for tab.
func columnsFor(tab scoreTab) []table.Column {
	if tab == tabRecent {
		return []table.Column{
			{Title: "Player", Width: 16},
			{Title: "Score", Width: 8},
			{Title: "Logs", Width: 6},
			{Title: "Combo", Width: 6},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: 13},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 16},
		{Title: "Best", Width: 8},
		{Title: "Logs", Width: 8},
		{Title: "Games", Width: 6},
	}
}

// createTable creates a table for the current tab.
func (m *ScoreboardModel) createTable() table.Model {
	height := m.height - 8
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columnsFor(m.tab)),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("94")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches rows for tab off the update loop.
func (m ScoreboardModel) load(tab scoreTab) tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		if tab == tabRecent {
			rounds, err := store.RecentRounds(ctx, "", maxRows)
			return scoresLoadedMsg{tab: tab, rows: recentRows(rounds), err: err}
		}
		entries, err := store.Leaderboard(ctx, maxRows)
		return scoresLoadedMsg{tab: tab, rows: leaderboardRows(entries), err: err}
	}
}

func leaderboardRows(entries []storage.LeaderboardEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			e.DisplayName,
			fmt.Sprintf("%d", e.HighScore),
			fmt.Sprintf("%d", e.TotalCleared),
			fmt.Sprintf("%d", e.GamesPlayed),
		}
	}
	return rows
}

func recentRows(rounds []storage.ScoreEntry) []table.Row {
	rows := make([]table.Row, len(rounds))
	for i, r := range rounds {
		rows[i] = table.Row{
			r.Player,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Cleared),
			fmt.Sprintf("%dx", r.MaxCombo),
			fmt.Sprintf("%.0fs", r.Duration.Seconds()),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init loads the first tab.
func (m ScoreboardModel) Init() tea.Cmd {
	return m.load(m.tab)
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			return m.switchTab((m.tab + 1) % tabCount)

		case key.Matches(msg, m.keys.PrevTab):
			return m.switchTab((m.tab + tabCount - 1) % tabCount)

		case key.Matches(msg, m.keys.Refresh):
			return m, m.load(m.tab)
		}

	case scoresLoadedMsg:
		if msg.tab != m.tab {
			return m, nil
		}
		m.loadErr = msg.err
		m.rows = msg.rows
		m.table.SetRows(m.rows)
		m.table.GotoTop()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(m.rows)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// switchTab rebuilds the table for tab and reloads it.
func (m ScoreboardModel) switchTab(tab scoreTab) (tea.Model, tea.Cmd) {
	m.tab = tab
	m.rows = nil
	m.loadErr = nil
	m.table = m.createTable()
	return m, m.load(tab)
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("HIGH SCORES"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(box.Render(m.renderTableContent()))

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(m.help.View(m.keys)))

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, b.String())
}

func (m ScoreboardModel) renderTabs() string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("94")).
		Padding(0, 1)
	inactive := subtleStyle.Padding(0, 1)

	tabs := make([]string, 0, tabCount)
	for t := range tabCount {
		if t == m.tab {
			tabs = append(tabs, active.Render(t.title()))
		} else {
			tabs = append(tabs, inactive.Render(t.title()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderTableContent renders the table or a placeholder.
func (m ScoreboardModel) renderTableContent() string {
	empty := subtleStyle.Italic(true).Padding(2, 4)

	switch {
	case m.store == nil:
		return empty.Render("Score storage is unavailable.")
	case m.loadErr != nil:
		return empty.Render("Could not load scores.")
	case len(m.rows) == 0:
		return empty.Render("No rounds recorded yet.\nPlay a round to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
