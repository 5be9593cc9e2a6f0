package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const gameFile = "game.yaml"

// LoadGame loads the game configuration.
// Search order: customPath -> ~/.merge2048/configs/game.yaml -> ./configs/game.yaml -> embedded default.
// A custom path must exist and be valid; the other locations are skipped when
// missing or invalid.
func LoadGame(customPath string) (GameConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GameConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := ParseGame(data)
		if err != nil {
			return GameConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(gameFile), filepath.Join("configs", gameFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := ParseGame(data); err == nil {
				return cfg, nil
			}
		}
	}

	if cfg, err := ParseGame(defaultGameYAML); err == nil {
		return cfg, nil
	}
	return DefaultGameConfig(), nil
}

// ParseGame decodes and validates a YAML document. Fields it omits keep
// their default values.
func ParseGame(data []byte) (GameConfig, error) {
	cfg := DefaultGameConfig()
	cfg.Spawn.Values = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GameConfig{}, fmt.Errorf("parse: %w", err)
	}
	if cfg.Spawn.Values == nil {
		cfg.Spawn.Values = DefaultGameConfig().Spawn.Values
	}
	if err := cfg.Validate(); err != nil {
		return GameConfig{}, err
	}
	return cfg.Clamp(), nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".merge2048", "configs", filename)
}
