// Package storage provides SQLite-based persistence for rounds and the leaderboard.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a requested player has no recorded rounds.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// RoundRecord is one finished round as handed to the store.
type RoundRecord struct {
	RoundID     uuid.UUID
	Player      string // stable key, e.g. the SSH user or local login
	DisplayName string // shown on the leaderboard; defaults to Player
	Score       int
	Cleared     int
	MaxCombo    int
	Duration    time.Duration
	EndedAt     time.Time
}

// ScoreEntry is one row of round history.
type ScoreEntry struct {
	ID        int64
	RoundID   uuid.UUID
	Player    string
	Score     int
	Cleared   int
	MaxCombo  int
	Duration  time.Duration
	CreatedAt time.Time
}

// LeaderboardEntry is the running record of one player.
type LeaderboardEntry struct {
	Player       string
	DisplayName  string
	HighScore    int
	TotalCleared int
	GamesPlayed  int
	UpdatedAt    time.Time
}

// PlayerStats extends the leaderboard row with aggregates over round history.
type PlayerStats struct {
	LeaderboardEntry
	BestCombo  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// SSH sessions record concurrently; one connection serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			round_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			cleared INTEGER NOT NULL DEFAULT 0,
			max_combo INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player, id DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);

		CREATE TABLE IF NOT EXISTS leaderboard (
			player TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			high_score INTEGER NOT NULL DEFAULT 0,
			total_cleared INTEGER NOT NULL DEFAULT 0,
			games_played INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_leaderboard_rank ON leaderboard(high_score DESC, updated_at ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRound appends the round to the history and folds it into the
// player's leaderboard row, atomically. Recording the same round twice is a
// no-op, so callers may retry freely.
func (s *Store) RecordRound(ctx context.Context, rec RoundRecord) error {
	if rec.Player == "" {
		return fmt.Errorf("storage: round %s has no player", rec.RoundID)
	}
	if rec.DisplayName == "" {
		rec.DisplayName = rec.Player
	}
	if rec.EndedAt.IsZero() {
		rec.EndedAt = time.Now()
	}
	endedAt := rec.EndedAt.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO scores
		 (round_id, player, score, cleared, max_combo, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RoundID.String(), rec.Player, rec.Score, rec.Cleared, rec.MaxCombo,
		rec.Duration.Milliseconds(), endedAt,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save round: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot save round: %w", err)
	}
	if n == 0 {
		// Already recorded by an earlier attempt.
		return tx.Commit()
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO leaderboard (player, display_name, high_score, total_cleared, games_played, updated_at)
		 VALUES (?, ?, ?, ?, 1, ?)
		 ON CONFLICT(player) DO UPDATE SET
		   display_name = excluded.display_name,
		   high_score = MAX(high_score, excluded.high_score),
		   total_cleared = total_cleared + excluded.total_cleared,
		   games_played = games_played + 1,
		   updated_at = excluded.updated_at`,
		rec.Player, rec.DisplayName, rec.Score, rec.Cleared, endedAt,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update leaderboard: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit round: %w", err)
	}
	return nil
}

// Leaderboard returns the top players by high score. Equal scores rank the
// player who updated earlier first.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT player, display_name, high_score, total_cleared, games_played, updated_at
		 FROM leaderboard
		 ORDER BY high_score DESC, updated_at ASC, player ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var updatedAt any
		if err := rows.Scan(&e.Player, &e.DisplayName, &e.HighScore, &e.TotalCleared, &e.GamesPlayed, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// PlayerStats returns the player's leaderboard row with history aggregates.
// Returns ErrNotFound if the player has never finished a round.
func (s *Store) PlayerStats(ctx context.Context, player string) (*PlayerStats, error) {
	stats := &PlayerStats{}
	var updatedAt any

	err := s.db.QueryRowContext(ctx,
		`SELECT player, display_name, high_score, total_cleared, games_played, updated_at
		 FROM leaderboard WHERE player = ?`,
		player,
	).Scan(&stats.Player, &stats.DisplayName, &stats.HighScore, &stats.TotalCleared, &stats.GamesPlayed, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: player %q: %w", player, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player: %w", err)
	}
	stats.UpdatedAt = parseTime(updatedAt)

	var lastPlayed any
	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(max_combo), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM scores WHERE player = ?`,
		player,
	).Scan(&stats.BestCombo, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// RecentRounds returns the player's latest rounds, newest first.
// An empty player lists rounds of everyone.
func (s *Store) RecentRounds(ctx context.Context, player string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, round_id, player, score, cleared, max_combo, duration_ms, created_at
		 FROM scores`
	args := []any{}
	if player != "" {
		query += ` WHERE player = ?`
		args = append(args, player)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var roundID string
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&e.ID, &roundID, &e.Player, &e.Score, &e.Cleared, &e.MaxCombo, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		id, err := uuid.Parse(roundID)
		if err != nil {
			return nil, fmt.Errorf("storage: bad round id %q: %w", roundID, err)
		}
		e.RoundID = id
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the best score of any player.
// Returns 0 if no rounds exist.
func (s *Store) HighScore(ctx context.Context) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx, "SELECT MAX(high_score) FROM leaderboard").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Clear deletes all rounds and leaderboard rows.
func (s *Store) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, table := range []string{"scores", "leaderboard"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("storage: cannot clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// timeLayouts are the textual forms the driver may hand back for DATETIME columns.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

// parseTime converts a scanned DATETIME value to time.Time.
// Unparseable or NULL values yield the zero time.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	case []byte:
		return parseTime(string(t))
	case int64:
		return time.Unix(t, 0).UTC()
	}
	return time.Time{}
}
