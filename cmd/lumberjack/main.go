// lumberjack is a terminal slicing game: drag the mouse across falling logs
// to chop them and keep clear of the bombs.
//
// Usage:
//
//	lumberjack                 - Start the menu (play, leaderboard)
//	lumberjack play            - Jump straight into a round
//	lumberjack scores          - Print the leaderboard
//	lumberjack stats [player]  - Print one player's record
//	lumberjack serve           - Start SSH server for remote play
//	lumberjack config          - Print the default game config
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.lumberjack/scores.db)
//	--player <name>     - Name recorded with your rounds
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagPlayer     string
	flagLogLevel   string
	flagLogFile    string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lumberjack",
	Short: "Lumberjack - slice falling logs in your terminal",
	Long: `Lumberjack is a terminal slicing game. Logs are thrown up from the
bottom of the screen; drag the mouse across them to chop them before they
fall back down. Never touch a bomb.

Available commands:
  play     - Start a round directly
  scores   - Show the leaderboard
  stats    - Show one player's record
  serve    - Start SSH server for remote play
  config   - Print the default config file

Examples:
  lumberjack
  lumberjack play --difficulty hard
  lumberjack scores --limit 20
  lumberjack serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.lumberjack/scores.db", "Path to scores database")
	pf.StringVar(&flagPlayer, "player", "", "Player name (default: current user)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "~/.lumberjack/lumberjack.log", "Log file for interactive sessions")

	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
