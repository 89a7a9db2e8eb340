package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/lumberjack/internal/config"
	"github.com/vovakirdan/lumberjack/internal/core"
	"github.com/vovakirdan/lumberjack/internal/games/lumberjack"
	"github.com/vovakirdan/lumberjack/internal/platform/tui"
	"github.com/vovakirdan/lumberjack/internal/storage"
)

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// playerName returns --player, falling back to the login name.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return core.DefaultConfig().Player
}

// openLogFile opens a logger writing to path. The alt screen owns the
// terminal while a round runs, so interactive logs go to a file.
func openLogFile(path, level string) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
		Prefix:          "lumberjack",
	})
	return logger, f, nil
}

// stderrLogger logs to stderr for non-interactive commands.
func stderrLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
	}), nil
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Player = playerName()
	return cfg
}

// applyGameFlags hands --config and --difficulty to the game package.
// The config is loaded once up front so a bad file fails before the alt
// screen takes over.
func applyGameFlags() error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	if flagConfig != "" {
		if _, err := config.LoadLumberjack(flagConfig); err != nil {
			return err
		}
	}
	lumberjack.SetConfigPath(flagConfig)
	lumberjack.SetDifficultyPreset(preset)
	return nil
}

// scores bundles the store with the recorder that writes to it.
type scores struct {
	store    *storage.Store
	recorder *storage.Recorder
}

// openScores opens the database. A failure is logged and play goes on
// without persistence.
func openScores(logger *log.Logger) scores {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return scores{}
	}
	return scores{store: store, recorder: storage.NewRecorder(store, logger)}
}

// reader returns the store as a ScoreReader, nil when there is none.
func (s scores) reader() tui.ScoreReader {
	if s.store == nil {
		return nil
	}
	return s.store
}

// Close waits for in-flight round writes, then closes the store.
func (s scores) Close() error {
	if s.store == nil {
		return nil
	}
	s.recorder.Wait()
	return s.store.Close()
}

func newGame() tui.Game {
	return lumberjack.New()
}
