package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the classic 4×4 configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Board: BoardConfig{
			Rows: 4,
			Cols: 4,
		},
		Spawn: SpawnConfig{
			InitialTiles: 4,
			Values:       []int{1, 2},
		},
		Timing: TimingConfig{
			CleanupDelayMS: 500,
		},
	}
}
