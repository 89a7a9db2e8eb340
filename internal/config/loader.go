package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "lumberjack.yaml"

// LoadLumberjack loads the Lumberjack configuration.
// Search order: customPath -> ~/.lumberjack/configs/lumberjack.yaml ->
// ./configs/lumberjack.yaml -> embedded default.
//
// Files are decoded on top of the defaults, so a file only needs the keys it
// changes. Only an explicit customPath produces an error; broken files found
// during the search are skipped.
func LoadLumberjack(customPath string) (LumberjackConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return LumberjackConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return LumberjackConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath(configFile),
		filepath.Join("configs", configFile),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parse(defaultLumberjackYAML); err == nil {
		return cfg, nil
	}
	return DefaultLumberjackConfig(), nil // Fallback to hardcoded if embed fails
}

// parse decodes YAML over the hardcoded defaults and validates the result.
func parse(data []byte) (LumberjackConfig, error) {
	cfg := DefaultLumberjackConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LumberjackConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return LumberjackConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lumberjack", "configs", filename)
}

// ApplyLumberjackPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyLumberjackPreset(cfg *LumberjackConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	if cfg.Difficulty.Progression.Type == "" || cfg.Difficulty.Progression.Type == "none" {
		cfg.Difficulty.Progression.Type = "score"
	}

	switch preset {
	case DifficultyEasy:
		cfg.Spawn.HazardThreshold = 0.05
		cfg.Spawn.BonusThreshold = 0.15
	case DifficultyHard:
		cfg.Spawn.HazardThreshold = 0.12
		cfg.Spawn.BonusThreshold = 0.18
	}
}
