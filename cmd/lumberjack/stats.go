package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lumberjack/internal/storage"
)

var flagRecent int

var statsCmd = &cobra.Command{
	Use:   "stats [player]",
	Short: "Show a player's record",
	Long: `Display totals and recent rounds for one player.
Defaults to --player, or the current user.

Examples:
  lumberjack stats
  lumberjack stats alice --recent 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent rounds to show")
}

func runStats(cmd *cobra.Command, args []string) error {
	player := playerName()
	if len(args) == 1 {
		player = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	out := cmd.OutOrStdout()
	stats, err := store.PlayerStats(ctx, player)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(out, "No rounds recorded for %s.\n", player)
		return nil
	}
	if err != nil {
		return err
	}

	rounds, err := store.RecentRounds(ctx, player, flagRecent)
	if err != nil {
		return err
	}
	printStats(out, stats, rounds)
	return nil
}

func printStats(w io.Writer, s *storage.PlayerStats, rounds []storage.ScoreEntry) {
	fmt.Fprintf(w, "%s\n\n", s.DisplayName)
	fmt.Fprintf(w, "  High score   %d\n", s.HighScore)
	fmt.Fprintf(w, "  Games        %d\n", s.GamesPlayed)
	fmt.Fprintf(w, "  Logs sliced  %d\n", s.TotalCleared)
	fmt.Fprintf(w, "  Best combo   %dx\n", s.BestCombo)
	fmt.Fprintf(w, "  Average      %.1f\n", s.AvgScore)
	fmt.Fprintf(w, "  Last played  %s\n", s.LastPlayed.Local().Format("2006-01-02 15:04"))

	if len(rounds) == 0 {
		return
	}

	fmt.Fprintln(w)
	t := newTable("Date", "Score", "Logs", "Combo", "Time")
	for _, r := range rounds {
		t.Row(
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Cleared),
			fmt.Sprintf("%dx", r.MaxCombo),
			r.Duration.Round(time.Second).String(),
		)
	}
	fmt.Fprintln(w, t.String())
}
