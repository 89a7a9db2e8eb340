package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lumberjack/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a round",
	Long: `Start a round straight away, skipping the menu.

Controls:
  Mouse drag - Slice
  P/Esc      - Pause
  R          - Restart (after game over)
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  lumberjack play
  lumberjack play --difficulty hard
  lumberjack play --config ./my-lumberjack.yaml --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	logger, closer, err := openLogFile(flagLogFile, flagLogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	s := openScores(logger)
	defer s.Close()

	return tui.Run(newGame(), s.recorder, runtimeConfig(), logger)
}

// runMenu starts the menu-driven session.
func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	logger, closer, err := openLogFile(flagLogFile, flagLogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	s := openScores(logger)
	defer s.Close()

	deps := tui.SessionDeps{
		Store:    s.reader(),
		Recorder: s.recorder,
		Logger:   logger,
		NewGame:  newGame,
	}
	return tui.RunSession(deps, runtimeConfig())
}
