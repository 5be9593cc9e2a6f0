// Package t2048 implements the merge puzzle game: the turn orchestrator,
// board variants and the game adapter that renders to a core.Screen.
package t2048

import (
	"github.com/vovakirdan/merge2048/internal/config"
	"github.com/vovakirdan/merge2048/internal/games/t2048/engine"
)

// Variant is a registered board preset.
type Variant struct {
	ID       string
	Name     string
	Info     string
	Settings Settings
	Custom   bool // settings come from the YAML config at reset time
}

// Variants lists the presets in menu order.
var Variants = []Variant{
	{
		ID:       "classic",
		Name:     "Classic",
		Info:     "4x4, spawns 2 and 4",
		Settings: preset(4, 4, 4, 1, 2),
	},
	{
		ID:       "mini",
		Name:     "Mini",
		Info:     "3x3, spawns only 2",
		Settings: preset(3, 3, 2, 1),
	},
	{
		ID:       "wide",
		Name:     "Wide",
		Info:     "4x6, spawns 2 and 4",
		Settings: preset(4, 6, 4, 1, 2),
	},
	{
		ID:       "big",
		Name:     "Big",
		Info:     "6x6, spawns 2 and 4",
		Settings: preset(6, 6, 6, 1, 2),
	},
	{
		ID:       "lucky",
		Name:     "Lucky",
		Info:     "4x4, sometimes spawns 32",
		Settings: preset(4, 4, 4, 1, 2, 5),
	},
	{
		ID:     "custom",
		Name:   "Custom",
		Info:   "rules from game.yaml",
		Custom: true,
	},
}

func preset(rows, cols, initial int, values ...int) Settings {
	return Settings{
		Shape:        engine.Shape{Rows: rows, Cols: cols},
		InitialTiles: initial,
		Values:       values,
		CleanupDelay: DefaultCleanupDelay,
	}
}

// VariantByID returns the variant with the given ID.
func VariantByID(id string) (Variant, bool) {
	for _, v := range Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// LoadSettings returns the variant's settings. The custom variant reads the
// YAML config set with SetConfigPath.
func (v Variant) LoadSettings() (Settings, error) {
	if !v.Custom {
		return v.Settings, nil
	}
	cfg, err := config.LoadGame(configPath)
	if err != nil {
		return Settings{}, err
	}
	return SettingsFromConfig(cfg), nil
}

// SettingsFromConfig converts a loaded YAML config.
func SettingsFromConfig(cfg config.GameConfig) Settings {
	return Settings{
		Shape:        engine.Shape{Rows: cfg.Board.Rows, Cols: cfg.Board.Cols},
		InitialTiles: cfg.Spawn.InitialTiles,
		Values:       append([]int(nil), cfg.Spawn.Values...),
		CleanupDelay: cfg.CleanupDelay(),
	}
}
