// Package config provides YAML-based configuration of the merge puzzle:
// board shape, spawn rules and animation timing.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid game config")

// GameConfig contains the settings read when a game is reset.
type GameConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Spawn  SpawnConfig  `yaml:"spawn"`
	Timing TimingConfig `yaml:"timing"`
}

// BoardConfig defines the grid shape.
type BoardConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// SpawnConfig defines how tiles enter the board.
// Values are levels: a value v shows as 2^v.
type SpawnConfig struct {
	InitialTiles int   `yaml:"initial_tiles"`
	Values       []int `yaml:"values"`
}

// TimingConfig defines animation timing.
type TimingConfig struct {
	CleanupDelayMS int `yaml:"cleanup_delay_ms"` // How long merge sources stay visible
}

// CleanupDelay returns the clean-up delay as a duration.
func (c GameConfig) CleanupDelay() time.Duration {
	return time.Duration(c.Timing.CleanupDelayMS) * time.Millisecond
}

// Cells returns the number of board cells.
func (c GameConfig) Cells() int {
	return c.Board.Rows * c.Board.Cols
}

// Validate reports the first problem with the config.
func (c GameConfig) Validate() error {
	switch {
	case c.Board.Rows < 1 || c.Board.Cols < 1:
		return fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, c.Board.Rows, c.Board.Cols)
	case len(c.Spawn.Values) == 0:
		return fmt.Errorf("%w: no spawn values", ErrInvalidConfig)
	case c.Spawn.InitialTiles < 0:
		return fmt.Errorf("%w: initial_tiles %d", ErrInvalidConfig, c.Spawn.InitialTiles)
	case c.Timing.CleanupDelayMS < 0:
		return fmt.Errorf("%w: cleanup_delay_ms %d", ErrInvalidConfig, c.Timing.CleanupDelayMS)
	}
	for _, v := range c.Spawn.Values {
		if v < 1 {
			return fmt.Errorf("%w: spawn value %d", ErrInvalidConfig, v)
		}
	}
	return nil
}

// Clamp caps the initial tile count at the number of cells.
func (c GameConfig) Clamp() GameConfig {
	c.Spawn.InitialTiles = min(c.Spawn.InitialTiles, c.Cells())
	return c
}
