package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lumberjack/internal/storage"
)

var (
	flagLimit int
	flagReset bool
	flagYes   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the best players, ranked by high score.

Examples:
  lumberjack scores
  lumberjack scores --limit 25
  lumberjack scores --reset --yes`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of players to show")
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete every recorded round")
	scoresCmd.Flags().BoolVar(&flagYes, "yes", false, "Confirm --reset")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	out := cmd.OutOrStdout()
	if flagReset {
		if !flagYes {
			return fmt.Errorf("refusing to reset %s without --yes", flagDBPath)
		}
		if err := store.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "All scores deleted.")
		return nil
	}

	entries, err := store.Leaderboard(ctx, flagLimit)
	if err != nil {
		return err
	}
	printLeaderboard(out, entries)
	return nil
}

// printLeaderboard writes the leaderboard as a table.
func printLeaderboard(w io.Writer, entries []storage.LeaderboardEntry) {
	fmt.Fprintln(w, "Lumberjack - Leaderboard")
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No rounds recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'lumberjack play' to set the first high score!")
		return
	}

	t := newTable("Rank", "Player", "Best", "Logs", "Games", "Last")
	for i, e := range entries {
		t.Row(
			strconv.Itoa(i+1),
			e.DisplayName,
			strconv.Itoa(e.HighScore),
			strconv.Itoa(e.TotalCleared),
			strconv.Itoa(e.GamesPlayed),
			e.UpdatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	fmt.Fprintln(w, t.String())
}

// newTable returns a plain bordered table with the given headers.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			return s
		}).
		Headers(headers...)
}
